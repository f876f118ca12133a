package detect

import (
	"time"

	"github.com/pion/logging"
)

// Timer measures nested sections of code and reports them at trace level.
// Start and End pair up like brackets; ending a section logs its duration.
// A Timer is not safe for concurrent use; make one per goroutine.
type Timer struct {
	log   logging.LeveledLogger
	stack []timedSection
}

type timedSection struct {
	name  string
	start time.Time
}

func NewTimer(log logging.LeveledLogger) *Timer {
	return &Timer{log: log}
}

// Start begins timing a new section.
func (t *Timer) Start(name string) {
	t.stack = append(t.stack, timedSection{name: name, start: time.Now()})
}

// End stops the most recently started section and logs its duration.
// Calling End with no open section panics.
func (t *Timer) End() {
	last := len(t.stack) - 1
	section := t.stack[last]
	t.stack = t.stack[:last]

	elapsed := time.Since(section.start)
	t.log.Tracef("section %q took %d ms (%d ns)", section.name, elapsed.Milliseconds(), elapsed.Nanoseconds())
}
