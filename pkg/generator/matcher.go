package generator

import "strings"

// Matches reports whether address carries pattern at the given position.
// Case-insensitive comparison folds ASCII case in place, so the check is
// O(len(pattern)) and allocation free.
func Matches(address, pattern string, position Position, caseSensitive bool) bool {
	if len(pattern) > len(address) {
		return false
	}
	var window string
	if position == End {
		window = address[len(address)-len(pattern):]
	} else {
		window = address[:len(pattern)]
	}
	if caseSensitive {
		return window == pattern
	}
	return strings.EqualFold(window, pattern)
}

// Matcher tests addresses of one chain against a fixed search request.
// The fixed address prefix of the chain ("0x" for Ethereum) is stripped
// before comparison.
type Matcher struct {
	pattern       string
	position      Position
	caseSensitive bool
	strip         string
}

// NewMatcher prepares a matcher for req. The pattern is normalized once.
func NewMatcher(req SearchRequest) *Matcher {
	pattern := req.Pattern
	if !req.CaseSensitive {
		pattern = strings.ToLower(pattern)
	}
	return &Matcher{
		pattern:       pattern,
		position:      req.Position,
		caseSensitive: req.CaseSensitive,
		strip:         req.Chain.AddressPrefix(),
	}
}

// Matches checks a full chain formatted address.
func (m *Matcher) Matches(address string) bool {
	if m.strip != "" {
		address = strings.TrimPrefix(address, m.strip)
	}
	return Matches(address, m.pattern, m.position, m.caseSensitive)
}
