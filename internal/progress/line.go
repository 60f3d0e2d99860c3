package progress

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Line writes a single carriage-return refreshed status line.
type Line struct {
	w        io.Writer
	total    int64
	received int64
	width    int
	started  bool
}

// NewLine creates a Line reporter writing to w.
func NewLine(w io.Writer) *Line {
	return &Line{w: w}
}

// Init implements Reporter.
func (l *Line) Init(total int64) {
	l.total = total
	l.received = 0
	l.started = true
	l.render()
}

// Update implements Reporter. Counts lower than the last one are ignored.
func (l *Line) Update(received int64) {
	if received < l.received {
		return
	}
	l.received = received
	l.render()
}

// Finish implements Reporter. It ends the status line if one was drawn.
func (l *Line) Finish() {
	if !l.started {
		return
	}
	l.started = false
	_, _ = fmt.Fprintln(l.w)
}

func (l *Line) render() {
	text := Status(l.received, l.total)
	// Pad over the previous line when the new one is shorter.
	pad := max(l.width-len(text), 0)
	l.width = len(text)
	_, _ = fmt.Fprintf(l.w, "\r%s%*s", text, pad, "")
}

// Status formats a byte count as "42% 4.2 MB / 10 MB", or "4.2 MB received"
// when total is unknown.
func Status(received, total int64) string {
	if total <= 0 {
		return fmt.Sprintf("%s received", humanize.Bytes(uint64(max(received, 0))))
	}
	return fmt.Sprintf("%3d%% %s / %s",
		Percent(received, total),
		humanize.Bytes(uint64(max(received, 0))),
		humanize.Bytes(uint64(total)))
}

// Percent returns received as a whole percentage of total, clamped to 0..100.
func Percent(received, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(min(max(received*100/total, 0), 100))
}
