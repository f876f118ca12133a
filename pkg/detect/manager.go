package detect

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/ftcvision/vision/internal/logging"
)

var managerLog = logging.NewLogger("detect")

// Analyzer inspects a single frame and returns what it recognized.
// Implementations must be safe for concurrent calls when the Manager runs
// more than one worker.
type Analyzer interface {
	Analyze(frame *Frame) ([]Recognition, error)
}

// FrameGenerator produces frames for a Manager to analyze. Frame blocks
// until a frame is available, the context is done, or the source is
// exhausted, in which case it returns io.EOF.
type FrameGenerator interface {
	Frame(ctx context.Context) (*Frame, error)
}

// AnnotatedFrame pairs a frame with the recognitions found in it and the
// time analysis took.
type AnnotatedFrame struct {
	Frame        *Frame
	Recognitions []Recognition
	Latency      time.Duration
}

// Config tunes a Manager. Zero values select the defaults.
type Config struct {
	// Workers is the number of concurrent analyzer invocations. Default 1.
	Workers int
	// TimingWindow is how many analysis durations feed the pacing average.
	// Default 10.
	TimingWindow int
	// SeedLatency seeds the pacing average before the first result comes
	// back. Default 100ms.
	SeedLatency time.Duration
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.TimingWindow <= 0 {
		c.TimingWindow = 10
	}
	if c.SeedLatency <= 0 {
		c.SeedLatency = 100 * time.Millisecond
	}
}

// Manager reads frames from a generator indefinitely and feeds them to a
// bounded pool of analyzer workers. Frames arriving faster than the workers
// can absorb are dropped, and submissions are paced so the workers stay
// evenly spaced: one frame per (average analysis time / worker count).
// Results arriving out of capture order are discarded so the callback only
// ever sees progress.
type Manager struct {
	generator FrameGenerator
	analyzer  Analyzer
	callback  func(*AnnotatedFrame)
	cfg       Config

	slots chan struct{}
	wg    sync.WaitGroup

	mu             sync.Mutex
	avgAnalysis    *RollingAverage
	last           *AnnotatedFrame
	lastSubmission time.Time
}

// NewManager wires a generator to an analyzer. callback receives every
// in-order result and may be nil. The callback runs on a worker goroutine
// while the manager is locked: it must not block for long and must not call
// back into the Manager.
func NewManager(generator FrameGenerator, analyzer Analyzer, callback func(*AnnotatedFrame), cfg Config) *Manager {
	cfg.applyDefaults()

	slots := make(chan struct{}, cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		slots <- struct{}{}
	}

	return &Manager{
		generator:   generator,
		analyzer:    analyzer,
		callback:    callback,
		cfg:         cfg,
		slots:       slots,
		avgAnalysis: NewSeededRollingAverage(cfg.TimingWindow, cfg.SeedLatency.Seconds()),
	}
}

// Run pulls frames until ctx is done or the generator reports io.EOF. It
// waits for in-flight analyses before returning. The returned error is nil
// on generator exhaustion and ctx.Err() on cancellation.
func (m *Manager) Run(ctx context.Context) error {
	defer m.wg.Wait()

	for {
		frame, err := m.generator.Frame(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				managerLog.Debug("frame generator exhausted")
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		m.submit(frame)
	}
}

// submit hands the frame to a worker if one is free and the pacing interval
// has elapsed; otherwise the frame is dropped.
func (m *Manager) submit(frame *Frame) {
	m.mu.Lock()
	interval := time.Duration(m.avgAnalysis.Get()*float64(time.Second)) / time.Duration(m.cfg.Workers)
	tooSoon := time.Since(m.lastSubmission) < interval
	m.mu.Unlock()

	if tooSoon {
		managerLog.Tracef("dropping frame %s: pacing interval not elapsed", frame.ID())
		return
	}

	select {
	case <-m.slots:
	default:
		managerLog.Tracef("dropping frame %s: no analyzer available", frame.ID())
		return
	}

	m.mu.Lock()
	m.lastSubmission = time.Now()
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer func() { m.slots <- struct{}{} }()
		m.analyze(frame)
	}()
}

func (m *Manager) analyze(frame *Frame) {
	start := time.Now()
	recognitions, err := m.analyzer.Analyze(frame)
	elapsed := time.Since(start)

	m.mu.Lock()
	m.avgAnalysis.Add(elapsed.Seconds())
	m.mu.Unlock()

	if err != nil {
		managerLog.Warnf("analyzer failed on frame %s: %v", frame.ID(), err)
		return
	}

	m.deliver(&AnnotatedFrame{
		Frame:        frame,
		Recognitions: recognitions,
		Latency:      elapsed,
	})
}

// deliver publishes a result unless a newer frame has already been
// published. The callback runs under the manager lock so publications stay
// in capture order.
func (m *Manager) deliver(annotated *AnnotatedFrame) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.last != nil && !annotated.Frame.CapturedAt().After(m.last.Frame.CapturedAt()) {
		managerLog.Warnf("discarding out of order result for frame %s", annotated.Frame.ID())
		return
	}
	m.last = annotated

	if m.callback != nil {
		m.callback(annotated)
	}
}

// LastAnnotatedFrame returns the most recently published result, or nil if
// none has been published yet.
func (m *Manager) LastAnnotatedFrame() *AnnotatedFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
