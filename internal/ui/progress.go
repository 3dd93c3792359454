package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Amr-9/crat/pkg/generator"
)

// Progress is a live spinner showing attempts, rate and the chance that a
// match should have turned up by now.
type Progress struct {
	bar        *progressbar.ProgressBar
	difficulty uint64
}

// NewProgress starts a spinner on w.
func NewProgress(w io.Writer, difficulty uint64) *Progress {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("🔄 searching"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("addr/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar, difficulty: difficulty}
}

// Update moves the spinner to the running total.
func (p *Progress) Update(total uint64) {
	chance := generator.MatchProbability(total, p.difficulty) * 100
	p.bar.Describe(fmt.Sprintf("🔄 %5.1f%% likely", chance))
	_ = p.bar.Set64(int64(total))
}

// Done removes the spinner from the screen.
func (p *Progress) Done() {
	_ = p.bar.Finish()
}
