package detect

import (
	"context"
	"image"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceGenerator hands out a fixed set of frames, then reports io.EOF.
type sliceGenerator struct {
	mu     sync.Mutex
	frames []*Frame
}

func (g *sliceGenerator) Frame(ctx context.Context) (*Frame, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(g.frames) == 0 {
		return nil, io.EOF
	}
	f := g.frames[0]
	g.frames = g.frames[1:]
	return f, nil
}

type staticAnalyzer struct {
	recognitions []Recognition
}

func (a *staticAnalyzer) Analyze(frame *Frame) ([]Recognition, error) {
	return a.recognitions, nil
}

func testFrames(t *testing.T, n int) []*Frame {
	t.Helper()
	frames := make([]*Frame, n)
	for i := range frames {
		f, err := NewYUVFrame(make([]byte, 2*2*3/2), 2, 2, false)
		require.NoError(t, err)
		frames[i] = f
		time.Sleep(time.Millisecond) // distinct capture timestamps
	}
	return frames
}

func TestManagerAnnotatesFrames(t *testing.T) {
	recognition := Recognition{Label: "ball", Confidence: 0.9, Location: image.Rect(0, 0, 2, 2)}

	var mu sync.Mutex
	var results []*AnnotatedFrame
	callback := func(af *AnnotatedFrame) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, af)
	}

	generator := &sliceGenerator{frames: testFrames(t, 5)}
	manager := NewManager(generator, &staticAnalyzer{recognitions: []Recognition{recognition}}, callback, Config{
		Workers:     1,
		SeedLatency: time.Nanosecond,
	})

	err := manager.Run(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, results)
	for _, af := range results {
		assert.Equal(t, []Recognition{recognition}, af.Recognitions)
		assert.Greater(t, af.Latency, time.Duration(0))
	}

	last := manager.LastAnnotatedFrame()
	require.NotNil(t, last)
	assert.Equal(t, results[len(results)-1].Frame.ID(), last.Frame.ID())
}

func TestManagerCallbackSeesMonotonicCaptureTimes(t *testing.T) {
	var mu sync.Mutex
	var captureTimes []time.Time
	callback := func(af *AnnotatedFrame) {
		mu.Lock()
		defer mu.Unlock()
		captureTimes = append(captureTimes, af.Frame.CapturedAt())
	}

	generator := &sliceGenerator{frames: testFrames(t, 8)}
	manager := NewManager(generator, &staticAnalyzer{}, callback, Config{
		Workers:     4,
		SeedLatency: time.Nanosecond,
	})

	require.NoError(t, manager.Run(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(captureTimes); i++ {
		assert.True(t, captureTimes[i].After(captureTimes[i-1]),
			"callback %d arrived with an older capture time", i)
	}
}

func TestManagerDropsStaleResults(t *testing.T) {
	frames := testFrames(t, 2)
	older, newer := frames[0], frames[1]

	var delivered []*AnnotatedFrame
	manager := NewManager(nil, nil, func(af *AnnotatedFrame) {
		delivered = append(delivered, af)
	}, Config{})

	manager.deliver(&AnnotatedFrame{Frame: newer})
	manager.deliver(&AnnotatedFrame{Frame: older})

	require.Len(t, delivered, 1)
	assert.Equal(t, newer.ID(), delivered[0].Frame.ID())
	assert.Equal(t, newer.ID(), manager.LastAnnotatedFrame().Frame.ID())
}

func TestManagerHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked := &blockingGenerator{}
	manager := NewManager(blocked, &staticAnalyzer{}, nil, Config{})

	err := manager.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type blockingGenerator struct{}

func (g *blockingGenerator) Frame(ctx context.Context) (*Frame, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
