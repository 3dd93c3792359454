package generator

import (
	"math"
	"strings"
)

// Difficulty estimates how many candidates must be generated on average
// before one matches req. Each pattern symbol contributes the size of the
// alphabet divided by the number of symbols that would also satisfy it.
// The leading '1' of a P2PKH start pattern is free.
func Difficulty(req SearchRequest) uint64 {
	pattern := req.Pattern
	if req.Position == Start && (req.Chain == Bitcoin || req.Chain == BitcoinSV) {
		pattern = strings.TrimPrefix(pattern, p2pkhLeader)
	}

	d := 1.0
	for _, c := range pattern {
		d *= symbolOdds(req.Chain, c, req.CaseSensitive)
	}
	if d >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(d)
}

func symbolOdds(chain Chain, c rune, caseSensitive bool) float64 {
	if chain == Ethereum {
		// A checksummed hex letter is upper or lower case with equal odds.
		if caseSensitive && strings.ContainsRune("abcdefABCDEF", c) {
			return 32
		}
		return 16
	}

	if caseSensitive {
		return float64(len(Base58Alphabet))
	}
	variants := 0
	for _, a := range Base58Alphabet {
		if strings.EqualFold(string(a), string(c)) {
			variants++
		}
	}
	if variants == 0 {
		variants = 1
	}
	return float64(len(Base58Alphabet)) / float64(variants)
}

// MatchProbability returns the chance that at least one match has been
// seen after the given number of attempts.
func MatchProbability(attempts, difficulty uint64) float64 {
	if difficulty == 0 {
		return 1
	}
	p := 1.0 / float64(difficulty)
	return 1 - math.Pow(1-p, float64(attempts))
}
