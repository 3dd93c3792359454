package generator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name          string
		address       string
		pattern       string
		position      Position
		caseSensitive bool
		want          bool
	}{
		{"start exact", "AcExyz", "AcE", Start, true, true},
		{"start wrong case", "AcExyz", "ace", Start, true, false},
		{"start folded", "AcExyz", "ace", Start, false, true},
		{"end exact", "xyzAcE", "AcE", End, true, true},
		{"end folded", "xyzAcE", "ACE", End, false, true},
		{"end at start only", "AcExyz", "AcE", End, true, false},
		{"pattern longer than address", "ab", "abc", Start, true, false},
		{"whole address", "abcd", "abcd", End, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(tt.address, tt.pattern, tt.position, tt.caseSensitive)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesFollowsStringLaws(t *testing.T) {
	addresses := []string{"7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", "1BoatSLRy", "zzzz"}
	patterns := []string{"7x", "7X", "gAsU", "gasu", "1B", "zz", "Zz"}
	for _, a := range addresses {
		for _, p := range patterns {
			assert.Equal(t, strings.HasPrefix(a, p), Matches(a, p, Start, true), "%s/%s", a, p)
			assert.Equal(t, strings.HasSuffix(a, p), Matches(a, p, End, true), "%s/%s", a, p)
			assert.Equal(t, strings.HasPrefix(strings.ToLower(a), strings.ToLower(p)), Matches(a, p, Start, false), "%s/%s", a, p)
			assert.Equal(t, strings.HasSuffix(strings.ToLower(a), strings.ToLower(p)), Matches(a, p, End, false), "%s/%s", a, p)
		}
	}
}

func TestMatcherStripsEthereumPrefix(t *testing.T) {
	req, err := NewSearchRequest("f39f", Start, false, Ethereum)
	require.NoError(t, err)

	m := NewMatcher(req)
	assert.True(t, m.Matches("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
	assert.False(t, m.Matches("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"))

	req, err = NewSearchRequest("F39F", Start, true, Ethereum)
	require.NoError(t, err)
	assert.False(t, NewMatcher(req).Matches("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
}

func TestNewSearchRequest(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		position Position
		chain    Chain
		wantErr  error
	}{
		{"solana ok", "ace", Start, Solana, nil},
		{"solana four", "Pump", End, Solana, nil},
		{"too long", "abcde", Start, Solana, ErrPatternTooLong},
		{"empty", "", Start, Solana, ErrPatternEmpty},
		{"base58 zero", "a0", End, Solana, ErrInvalidSymbol},
		{"base58 capital O", "O", End, Solana, ErrInvalidSymbol},
		{"base58 lower l", "l", End, Bitcoin, ErrInvalidSymbol},
		{"bitcoin start needs leader", "abc", Start, Bitcoin, ErrUnreachablePattern},
		{"bsv start needs leader", "Zz", Start, BitcoinSV, ErrUnreachablePattern},
		{"bitcoin start with leader", "1abc", Start, Bitcoin, nil},
		{"bitcoin end free", "abc", End, Bitcoin, nil},
		{"ethereum hex", "dead", Start, Ethereum, nil},
		{"ethereum mixed case hex", "BeeF", End, Ethereum, nil},
		{"ethereum non hex", "cafg", Start, Ethereum, ErrInvalidSymbol},
		{"ethereum bare 0x", "0x", Start, Ethereum, ErrPatternEmpty},
		{"ethereum 0x then invalid", "0xg", Start, Ethereum, ErrInvalidSymbol},
		{"unknown chain", "abc", Start, Chain(9), ErrUnknownChain},
		{"unknown position", "abc", Position(7), Solana, ErrUnknownPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewSearchRequest(tt.pattern, tt.position, false, tt.chain)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var verr *ValidationError
				assert.True(t, errors.As(err, &verr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, req.Pattern)
		})
	}
}

func TestNewSearchRequestNormalizesPattern(t *testing.T) {
	tests := []struct {
		pattern string
		chain   Chain
		want    string
	}{
		{"0xab", Ethereum, "ab"},
		{"0XAb", Ethereum, "Ab"},
		{"  dead ", Ethereum, "dead"},
		{"0x0x", Ethereum, "0x"},
		{" ace ", Solana, "ace"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePattern(tt.pattern, tt.chain), tt.pattern)
	}

	req, err := NewSearchRequest("0xBEEF", End, true, Ethereum)
	require.NoError(t, err)
	assert.Equal(t, "BEEF", req.Pattern)
	assert.True(t, NewMatcher(req).Matches("0x000000000000000000000000000000000000BEEF"))
}

func TestResultHashRate(t *testing.T) {
	assert.Zero(t, Result{TotalAttempts: 10}.HashRate())
	assert.InDelta(t, 500.0, Result{TotalAttempts: 1000, Elapsed: 2 * time.Second}.HashRate(), 1e-9)
}

func TestParseChain(t *testing.T) {
	tests := map[string]Chain{
		"sol": Solana, "Solana": Solana,
		"btc": Bitcoin, "BITCOIN": Bitcoin,
		"bsv": BitcoinSV, "Bitcoin SV": BitcoinSV, "bitcoinsv": BitcoinSV,
		"eth": Ethereum, " ethereum ": Ethereum,
	}
	for in, want := range tests {
		got, err := ParseChain(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseChain("doge")
	assert.ErrorIs(t, err, ErrUnknownChain)
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition("END")
	require.NoError(t, err)
	assert.Equal(t, End, p)

	p, err = ParsePosition("start")
	require.NoError(t, err)
	assert.Equal(t, Start, p)

	_, err = ParsePosition("middle")
	assert.ErrorIs(t, err, ErrUnknownPosition)
}

func TestChainNames(t *testing.T) {
	for _, c := range Chains {
		parsed, err := ParseChain(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
		assert.NotEqual(t, "Unknown", c.DisplayName())
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
		want uint64
	}{
		{"solana one symbol sensitive", SearchRequest{Pattern: "a", Chain: Solana, CaseSensitive: true}, 58},
		{"solana folded letter", SearchRequest{Pattern: "a", Chain: Solana}, 29},
		{"solana folded digit", SearchRequest{Pattern: "9", Chain: Solana}, 58},
		{"solana folded L has one variant", SearchRequest{Pattern: "L", Chain: Solana}, 58},
		{"bitcoin leader is free", SearchRequest{Pattern: "1A", Chain: Bitcoin, CaseSensitive: true}, 58},
		{"bitcoin end counts leader", SearchRequest{Pattern: "1", Chain: Bitcoin, Position: End}, 58},
		{"ethereum folded", SearchRequest{Pattern: "ab", Chain: Ethereum}, 256},
		{"ethereum checksum case", SearchRequest{Pattern: "a1", Chain: Ethereum, CaseSensitive: true}, 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Difficulty(tt.req))
		})
	}
}

func TestMatchProbability(t *testing.T) {
	assert.Equal(t, 0.0, MatchProbability(0, 100))
	assert.InDelta(t, 0.632, MatchProbability(1000, 1000), 0.001)
	assert.Equal(t, 1.0, MatchProbability(10, 0))
}

func TestEventTerminal(t *testing.T) {
	assert.False(t, Event{Kind: EventProgress}.Terminal())
	assert.True(t, Event{Kind: EventCompleted}.Terminal())
	assert.True(t, Event{Kind: EventFailed}.Terminal())
}
