package generator

import (
	"strings"
	"unicode/utf8"
)

// MaxPatternLength is the longest pattern a search accepts.
const MaxPatternLength = 4

// Base58 alphabet (Bitcoin/Solana style - excludes 0, O, I, l)
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// HexAlphabet accepts both cases; Ethereum addresses carry EIP-55 checksum casing.
const HexAlphabet = "0123456789abcdefABCDEF"

// p2pkhLeader is the first symbol of every mainnet P2PKH address.
const p2pkhLeader = "1"

// SearchRequest describes one vanity search. Build it with NewSearchRequest
// and treat it as immutable afterwards.
type SearchRequest struct {
	Pattern       string
	Position      Position
	CaseSensitive bool
	Chain         Chain
}

// NormalizePattern trims whitespace and drops a fixed address prefix the
// user may have typed along with the pattern, such as "0x" for Ethereum.
func NormalizePattern(pattern string, chain Chain) string {
	pattern = strings.TrimSpace(pattern)
	if prefix := chain.AddressPrefix(); prefix != "" && len(pattern) >= len(prefix) &&
		strings.EqualFold(pattern[:len(prefix)], prefix) {
		pattern = pattern[len(prefix):]
	}
	return pattern
}

// NewSearchRequest normalizes the pattern, validates the parameters and
// returns the request.
func NewSearchRequest(pattern string, position Position, caseSensitive bool, chain Chain) (SearchRequest, error) {
	req := SearchRequest{
		Pattern:       NormalizePattern(pattern, chain),
		Position:      position,
		CaseSensitive: caseSensitive,
		Chain:         chain,
	}
	if err := req.Validate(); err != nil {
		return SearchRequest{}, err
	}
	return req, nil
}

// Validate checks the pattern length, its alphabet and whether the address
// format of the chain can produce it at the requested position.
func (r SearchRequest) Validate() error {
	if r.Chain < Solana || r.Chain > Ethereum {
		return &ValidationError{Field: "chain", Value: r.Chain.String(), Err: ErrUnknownChain}
	}
	if r.Position != Start && r.Position != End {
		return &ValidationError{Field: "position", Value: r.Position.String(), Err: ErrUnknownPosition}
	}
	if r.Pattern == "" {
		return &ValidationError{Field: "pattern", Value: r.Pattern, Err: ErrPatternEmpty}
	}
	if utf8.RuneCountInString(r.Pattern) > MaxPatternLength {
		return &ValidationError{Field: "pattern", Value: r.Pattern, Err: ErrPatternTooLong}
	}
	if bad := InvalidSymbols(r.Pattern, r.Chain); len(bad) > 0 {
		return &ValidationError{Field: "pattern", Value: r.Pattern, Err: ErrInvalidSymbol}
	}
	if r.Position == Start && (r.Chain == Bitcoin || r.Chain == BitcoinSV) &&
		!strings.HasPrefix(r.Pattern, p2pkhLeader) {
		return &ValidationError{Field: "pattern", Value: r.Pattern, Err: ErrUnreachablePattern}
	}
	return nil
}

// InvalidSymbols returns the runes of s that are not valid for the chain.
// Useful for providing helpful error messages to users.
func InvalidSymbols(s string, chain Chain) []rune {
	alphabet := chain.Alphabet()
	var invalid []rune
	for _, c := range s {
		if !strings.ContainsRune(alphabet, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}
