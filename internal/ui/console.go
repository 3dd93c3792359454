// Package ui renders the interactive terminal front end.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Amr-9/crat/pkg/generator"
	"github.com/Amr-9/crat/pkg/history"
	"github.com/Amr-9/crat/pkg/sink"
)

var (
	cyan        = color.New(color.FgCyan).SprintFunc()
	cyanBold    = color.New(color.FgCyan, color.Bold).SprintFunc()
	green       = color.New(color.FgGreen).SprintFunc()
	greenBold   = color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow      = color.New(color.FgYellow).SprintFunc()
	yellowBold  = color.New(color.FgYellow, color.Bold).SprintFunc()
	redBold     = color.New(color.FgRed, color.Bold).SprintFunc()
	magentaBold = color.New(color.FgMagenta, color.Bold).SprintFunc()
	dim         = color.New(color.Faint).SprintFunc()
)

// Console reads answers from in and writes to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal descriptor of in, -1 when in is not a terminal
}

// NewConsole wraps stdin/stdout style files. Hidden input is used when in
// is a terminal.
func NewConsole(in *os.File, out io.Writer) *Console {
	fd := -1
	if term.IsTerminal(int(in.Fd())) {
		fd = int(in.Fd())
	}
	return &Console{in: bufio.NewReader(in), out: out, fd: fd}
}

// NewTestConsole uses plain readers and never hides input.
func NewTestConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, fd: -1}
}

// Interactive reports whether input comes from a terminal.
func (c *Console) Interactive() bool {
	return c.fd >= 0
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ClearScreen clears the terminal
func (c *Console) ClearScreen() {
	if c.Interactive() {
		c.printf("\033[H\033[2J")
	}
}

// Banner shows the welcome screen
func (c *Console) Banner(version string) {
	c.printf("\n")
	c.printf("  %s\n", cyanBold("╔══════════════════════════════════════════════╗"))
	c.printf("  %s  %s  %s%s\n", cyanBold("║"), cyanBold("CRAT"), yellow("Vanity Address Generator"), dim(" • v"+version))
	c.printf("  %s\n", cyanBold("╚══════════════════════════════════════════════╝"))
	c.printf("\n")
}

// EngineInfo prints the host the search runs on.
func (c *Console) EngineInfo(workers int, cpuModel, outputDir string, free uint64) {
	c.printf("    %s %d workers %s\n", cyan("💻 CPU"), workers, dim("("+cpuModel+")"))
	if free > 0 {
		c.printf("    %s %s %s\n", cyan("💾 Output"), outputDir, dim("("+humanize.IBytes(free)+" free)"))
	}
}

// SearchInfo displays search configuration
func (c *Console) SearchInfo(req generator.SearchRequest, difficulty uint64) {
	prefix := req.Chain.AddressPrefix()
	var shape string
	if req.Position == generator.Start {
		shape = cyanBold(prefix+req.Pattern) + dim("...")
	} else {
		shape = dim(prefix+"...") + cyanBold(req.Pattern)
	}
	mode := "case-insensitive"
	if req.CaseSensitive {
		mode = "case-sensitive"
	}
	c.printf("\n    %s %s %s %s\n", greenBold("🚀 SEARCHING"), req.Chain.DisplayName(), shape, dim("(1/"+FormatNumber(difficulty)+", "+mode+")"))
	c.printf("    %s\n\n", dim("Press Ctrl+C to cancel"))
}

// Success shows the found address and where it was saved.
func (c *Console) Success(res generator.Result, saved sink.Saved) {
	c.printf("\n    %s\n", greenBold("✨ MATCH FOUND"))
	c.printf("    %s %s\n", cyanBold(res.Chain.DisplayName()+" address:"), greenBold(res.Address))
	c.printf("    ⏱  %s   │   📊 %s attempts   │   ⚡ %s   │   💾 %s\n",
		FormatDuration(res.Elapsed), FormatNumber(res.TotalAttempts), FormatHashRate(res.HashRate()), saved.Path)
	if saved.Encrypted {
		c.printf("    %s\n", dim("Encryption: ON"))
		c.printf("    %s\n", yellow("Run `crat decrypt --file "+saved.Path+"` to recover the key."))
	} else {
		c.printf("    %s\n", dim("Encryption: OFF"))
		c.printf("    %s\n", redBold("⚠  The file contains your UNENCRYPTED private key!"))
	}
}

// Reveal waits for ENTER, then prints the plaintext secrets.
func (c *Console) Reveal(res generator.Result) {
	c.printf("\n    %s", dim("Press ENTER to reveal the private key..."))
	_, _ = c.in.ReadString('\n')
	c.printf("    %s\n", yellow(strings.Repeat("-", 40)))
	c.printf("    %s\n    %s\n", magentaBold("🔑 PRIVATE KEY"), yellow(res.Secret))
	if res.Mnemonic != "" {
		c.printf("    %s\n    %s\n", magentaBold("📝 MNEMONIC"), yellow(res.Mnemonic))
	}
	c.printf("    %s\n", yellow(strings.Repeat("-", 40)))
	c.printf("    %s\n", redBold("⚠  KEEP YOUR PRIVATE KEY SECRET!"))
}

// Cancelled reports a search stopped by the user.
func (c *Console) Cancelled(stats generator.Stats) {
	c.printf("\n    %s │ %s attempts │ %s │ %s\n",
		yellowBold("⚠ Cancelled"),
		FormatNumber(stats.Attempts),
		FormatHashRate(stats.HashRate),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
}

// Error prints a failure line.
func (c *Console) Error(err error) {
	c.printf("\n    %s %v\n", redBold("✗"), err)
}

// Notice prints an informational line.
func (c *Console) Notice(msg string) {
	c.printf("    %s %s\n", green("✓"), msg)
}

// History lists past searches, newest first.
func (c *Console) History(records []history.Record) {
	if len(records) == 0 {
		c.printf("    %s\n", dim("No searches recorded yet."))
		return
	}
	for _, r := range records {
		lock := "🔓"
		if r.Encrypted {
			lock = "🔒"
		}
		c.printf("    %s %s %s %-9s %s %s\n",
			dim(r.ID),
			dim(r.CreatedAt.Local().Format("2006-01-02 15:04")),
			lock,
			r.Chain,
			greenBold(r.Address),
			dim(fmt.Sprintf("%s@%s │ %s attempts │ %s │ %s",
				r.Pattern, r.Position, FormatNumber(r.Attempts), FormatDuration(r.Elapsed), r.File)),
		)
	}
}

// HistoryRecord prints every field of one recorded search.
func (c *Console) HistoryRecord(r history.Record) {
	encryption := "off"
	if r.Encrypted {
		encryption = "on"
	}
	caseMode := "insensitive"
	if r.CaseSensitive {
		caseMode = "sensitive"
	}
	rate := 0.0
	if secs := r.Elapsed.Seconds(); secs > 0 {
		rate = float64(r.Attempts) / secs
	}
	rows := [][2]string{
		{"ID", r.ID},
		{"Chain", r.Chain},
		{"Address", greenBold(r.Address)},
		{"Pattern", r.Pattern + " @ " + r.Position + " (case-" + caseMode + ")"},
		{"Attempts", FormatNumber(r.Attempts)},
		{"Time", FormatDuration(r.Elapsed)},
		{"Speed", FormatHashRate(rate)},
		{"File", r.File},
		{"Encryption", encryption},
		{"Created", r.CreatedAt.Local().Format("2006-01-02 15:04:05")},
	}
	for _, row := range rows {
		c.printf("    %s %s\n", cyan(fmt.Sprintf("%-11s", row[0]+":")), row[1])
	}
}
