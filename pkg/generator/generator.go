// Package generator defines the contracts of the vanity search engine.
// Chain backends produce candidate keypairs, the matcher tests their addresses,
// and a pool implementation (see package cpu) drives both in parallel and
// reports progress and a single terminal outcome as an event stream.
package generator

import (
	"context"
	"strings"
	"time"
)

// Chain represents the blockchain whose address format is searched.
type Chain int

const (
	Solana    Chain = iota // Solana (Ed25519, Base58)
	Bitcoin                // Bitcoin (secp256k1, P2PKH, Base58Check)
	BitcoinSV              // Bitcoin SV (secp256k1, P2PKH, Base58Check)
	Ethereum               // Ethereum (secp256k1, Keccak-256, Hex)
)

// Chains lists every supported chain in display order.
var Chains = []Chain{Solana, Bitcoin, BitcoinSV, Ethereum}

// String returns the canonical lowercase chain name used in files and logs.
func (c Chain) String() string {
	switch c {
	case Solana:
		return "solana"
	case Bitcoin:
		return "bitcoin"
	case BitcoinSV:
		return "bsv"
	case Ethereum:
		return "ethereum"
	default:
		return "unknown"
	}
}

// DisplayName returns the human readable chain name.
func (c Chain) DisplayName() string {
	switch c {
	case Solana:
		return "Solana"
	case Bitcoin:
		return "Bitcoin"
	case BitcoinSV:
		return "Bitcoin SV"
	case Ethereum:
		return "Ethereum"
	default:
		return "Unknown"
	}
}

// Alphabet returns the set of symbols a pattern for this chain may use.
func (c Chain) Alphabet() string {
	if c == Ethereum {
		return HexAlphabet
	}
	return Base58Alphabet
}

// AddressPrefix returns the fixed text every address of the chain starts with
// and that is excluded from matching ("0x" for Ethereum).
func (c Chain) AddressPrefix() string {
	if c == Ethereum {
		return "0x"
	}
	return ""
}

// ParseChain resolves a user supplied chain name or ticker.
func ParseChain(s string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sol", "solana":
		return Solana, nil
	case "btc", "bitcoin":
		return Bitcoin, nil
	case "bsv", "bitcoin sv", "bitcoinsv":
		return BitcoinSV, nil
	case "eth", "ethereum":
		return Ethereum, nil
	}
	return 0, &ValidationError{Field: "chain", Value: s, Err: ErrUnknownChain}
}

// Position is where in the address the pattern must appear.
type Position int

const (
	Start Position = iota
	End
)

func (p Position) String() string {
	if p == End {
		return "end"
	}
	return "start"
}

// ParsePosition resolves "start" or "end".
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return Start, nil
	case "end":
		return End, nil
	}
	return 0, &ValidationError{Field: "position", Value: s, Err: ErrUnknownPosition}
}

// Candidate is one freshly generated keypair.
type Candidate struct {
	Address  string // Chain formatted public address
	Secret   string // Exportable private key (Base58, WIF or 0x hex)
	Mnemonic string // Seed phrase, empty when the chain has none
}

// AddressGenerator produces one fresh candidate per call. Implementations
// are owned by a single worker and need not be safe for concurrent use.
type AddressGenerator interface {
	Generate() (Candidate, error)
}

// Factory builds a generator for a chain. A returned error is an
// initialization failure and is fatal for the whole search.
type Factory func(chain Chain) (AddressGenerator, error)

// Result is a successfully found vanity address.
type Result struct {
	Chain         Chain
	Address       string
	Secret        string
	Mnemonic      string
	TotalAttempts uint64
	Elapsed       time.Duration
}

// HashRate returns the average addresses per second of the search.
func (r Result) HashRate() float64 {
	secs := r.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.TotalAttempts) / secs
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Total number of addresses generated
	HashRate    float64 // Current addresses per second
	ElapsedSecs float64 // Time elapsed since start
}

// EventKind discriminates the events of a search stream.
type EventKind int

const (
	EventProgress EventKind = iota
	EventCompleted
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is one element of the stream returned by Searcher.Start. A stream
// carries any number of progress events followed by exactly one completed
// or failed event, after which it is closed.
type Event struct {
	Kind          EventKind
	TotalAttempts uint64  // Running total, set on progress events
	Result        *Result // Set on completed events
	Err           error   // Set on failed events
}

// Terminal reports whether the event ends the stream.
func (e Event) Terminal() bool {
	return e.Kind == EventCompleted || e.Kind == EventFailed
}

// Searcher defines the contract for search backends.
type Searcher interface {
	// Start begins a search for the given request. Starting while another
	// search is active stops the previous one first. The search can be
	// cancelled via the context.
	Start(ctx context.Context, req SearchRequest) (<-chan Event, error)

	// Stop ends the active search, if any, and waits for its workers.
	Stop()

	// Stats returns the current performance statistics.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats
}
