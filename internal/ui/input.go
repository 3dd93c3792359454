package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/Amr-9/crat/internal/config"
	"github.com/Amr-9/crat/pkg/generator"
)

// readLine returns the next trimmed line. A final line without a newline is
// still returned; io.EOF is reported only when nothing was read.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Prompt asks for one line of input.
func (c *Console) Prompt(label string) (string, error) {
	c.printf("    %s: ", cyan(label))
	return c.readLine()
}

// PromptSecret asks for input that is not echoed when stdin is a terminal.
func (c *Console) PromptSecret(label string) (string, error) {
	c.printf("    %s: ", cyan(label))
	if !c.Interactive() {
		return c.readLine()
	}
	b, err := term.ReadPassword(c.fd)
	c.printf("\n")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// confirm asks a yes/no question, returning def on an empty answer.
func (c *Console) confirm(label string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	answer, err := c.Prompt(label + " " + hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (c *Console) promptChain() (generator.Chain, error) {
	c.printf("    %s\n", magentaBold("🌐 SELECT NETWORK"))
	for i, chain := range generator.Chains {
		c.printf("    %s %s %s\n", cyan(fmt.Sprintf("[%d]", i+1)), chain.DisplayName(), dim("- "+alphabetHint(chain)))
	}
	for {
		answer, err := c.Prompt("→")
		if err != nil {
			return 0, err
		}
		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(generator.Chains) {
			return generator.Chains[n-1], nil
		}
		if chain, parseErr := generator.ParseChain(answer); parseErr == nil {
			return chain, nil
		}
		c.printf("    %s\n", redBold(fmt.Sprintf("⚠ Choose 1-%d", len(generator.Chains))))
	}
}

func alphabetHint(chain generator.Chain) string {
	if chain == generator.Ethereum {
		return "0x prefix, Hex"
	}
	return "Base58"
}

// PromptSearch fills cfg interactively and returns a validated request.
// Invalid patterns are reported and asked for again.
func (c *Console) PromptSearch(cfg *config.Config) (generator.SearchRequest, error) {
	chain, err := c.promptChain()
	if err != nil {
		return generator.SearchRequest{}, err
	}
	c.printf("    %s\n\n", green("✓ "+chain.DisplayName()+" Selected"))
	cfg.Chain = chain.String()

	c.printf("    %s\n", magentaBold("🎯 TARGET PATTERN"))
	for {
		pattern, err := c.Prompt(fmt.Sprintf("Pattern (1-%d chars)", generator.MaxPatternLength))
		if err != nil {
			return generator.SearchRequest{}, err
		}
		pattern = generator.NormalizePattern(pattern, chain)
		if bad := generator.InvalidSymbols(pattern, chain); len(bad) > 0 {
			c.printf("    %s\n", redBold("⚠ Invalid character(s): "+string(bad)))
			if chain != generator.Ethereum {
				c.printf("    %s\n", dim("  (Not allowed: 0, O, I, l)"))
			}
			continue
		}

		pos, err := c.Prompt("Position [start/end]")
		if err != nil {
			return generator.SearchRequest{}, err
		}
		if pos == "" {
			pos = "start"
		}
		position, err := generator.ParsePosition(pos)
		if err != nil {
			c.printf("    %s\n", redBold("⚠ "+err.Error()))
			continue
		}

		caseSensitive, err := c.confirm("Case-sensitive?", false)
		if err != nil {
			return generator.SearchRequest{}, err
		}

		req, err := generator.NewSearchRequest(pattern, position, caseSensitive, chain)
		if err != nil {
			c.printf("    %s\n", redBold("⚠ "+err.Error()))
			continue
		}

		cfg.Pattern = req.Pattern
		cfg.Position = req.Position.String()
		cfg.Case = toggle(req.CaseSensitive)
		return req, nil
	}
}

// PromptEncrypt asks whether the result file should be encrypted.
func (c *Console) PromptEncrypt(cfg *config.Config) error {
	encrypt, err := c.confirm("Encrypt the result file?", true)
	if err != nil {
		return err
	}
	cfg.Encrypt = toggle(encrypt)
	return nil
}

func toggle(v bool) string {
	if v {
		return config.On
	}
	return config.Off
}

// AskToContinue prompts user to continue or exit
func (c *Console) AskToContinue() bool {
	c.printf("\n    %s Start another search  │  %s Exit\n", green("[Enter]"), redBold("[Q]"))
	c.printf("    %s ", cyan("→"))
	input, err := c.readLine()
	if err != nil {
		return false
	}
	input = strings.ToLower(input)
	return input != "q" && input != "quit" && input != "exit"
}
