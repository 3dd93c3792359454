package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/generator/cpu"
)

// Errors
var (
	ErrInvalidToggle = errors.New("value must be 'on' or 'off'")
	ErrNoWorkers     = errors.New("workers must be at least 1")
	ErrNoInterval    = errors.New("report interval must be at least 1")
)

const (
	On  = "on"
	Off = "off"
)

// Config holds the application configuration
type Config struct {
	Pattern          string
	Position         string
	Case             string // "on" = case-sensitive
	Chain            string
	Encrypt          string
	Workers          int
	ReportInterval   uint64
	ProgressThrottle time.Duration
	OutputDir        string
	HistoryPath      string // empty disables history
	MetricsAddr      string // empty disables the metrics endpoint
	LogLevel         string
	LogFormat        string
	AssumeYes        bool
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Position:         "start",
		Case:             Off,
		Chain:            "solana",
		Encrypt:          On,
		Workers:          runtime.NumCPU(),
		ReportInterval:   cpu.DefaultReportInterval,
		ProgressThrottle: cpu.DefaultProgressThrottle,
		OutputDir:        ".",
		HistoryPath:      ".crat-history",
	}
}

func parseToggle(field, v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case On:
		return true, nil
	case Off:
		return false, nil
	}
	return false, fmt.Errorf("--%s %q: %w", field, v, ErrInvalidToggle)
}

// Validate checks everything except the pattern, which may still be
// supplied interactively.
func (c *Config) Validate() error {
	if _, err := generator.ParseChain(c.Chain); err != nil {
		return err
	}
	if _, err := generator.ParsePosition(c.Position); err != nil {
		return err
	}
	if _, err := parseToggle("case", c.Case); err != nil {
		return err
	}
	if _, err := parseToggle("encrypt", c.Encrypt); err != nil {
		return err
	}
	if c.Workers < 1 {
		return ErrNoWorkers
	}
	if c.ReportInterval < 1 {
		return ErrNoInterval
	}
	return nil
}

// CaseSensitive reports whether --case is on.
func (c *Config) CaseSensitive() bool {
	v, _ := parseToggle("case", c.Case)
	return v
}

// EncryptEnabled reports whether --encrypt is on.
func (c *Config) EncryptEnabled() bool {
	v, _ := parseToggle("encrypt", c.Encrypt)
	return v
}

// Request validates the configuration and builds the search request.
func (c *Config) Request() (generator.SearchRequest, error) {
	if err := c.Validate(); err != nil {
		return generator.SearchRequest{}, err
	}
	chain, _ := generator.ParseChain(c.Chain)
	position, _ := generator.ParsePosition(c.Position)
	return generator.NewSearchRequest(c.Pattern, position, c.CaseSensitive(), chain)
}

// PoolOptions returns the engine settings; logging and metrics are wired
// by the caller.
func (c *Config) PoolOptions() cpu.Options {
	return cpu.Options{
		Workers:          c.Workers,
		ReportInterval:   c.ReportInterval,
		ProgressThrottle: c.ProgressThrottle,
	}
}
