package generator

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageRequiresImages(t *testing.T) {
	_, err := NewImage(nil, 0)
	assert.Error(t, err)
}

func TestImageGeneratorCycles(t *testing.T) {
	first := image.NewRGBA(image.Rect(0, 0, 4, 4))
	second := image.NewRGBA(image.Rect(0, 0, 6, 2))
	first.Set(0, 0, color.RGBA{R: 0xAA, A: 0xFF})
	second.Set(0, 0, color.RGBA{G: 0xBB, A: 0xFF})

	g, err := NewImage([]image.Image{first, second}, 0)
	require.NoError(t, err)

	ctx := context.Background()

	a, err := g.Frame(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, a.Width())
	assert.Equal(t, uint32(0xFFAA0000), a.ARGB()[0])

	b, err := g.Frame(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Width())
	assert.Equal(t, 2, b.Height())
	assert.Equal(t, uint32(0xFF00BB00), b.ARGB()[0])

	c, err := g.Frame(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.Width(), c.Width())
}

func TestImageGeneratorCropsOddDimensions(t *testing.T) {
	odd := image.NewRGBA(image.Rect(0, 0, 5, 3))

	g, err := NewImage([]image.Image{odd}, 0)
	require.NoError(t, err)

	f, err := g.Frame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, f.Width())
	assert.Equal(t, 2, f.Height())
}

func TestImageGeneratorHandsOutIndependentBuffers(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	g, err := NewImage([]image.Image{img}, 0)
	require.NoError(t, err)

	ctx := context.Background()
	a, err := g.Frame(ctx)
	require.NoError(t, err)
	a.ARGB()[0] = 0xDEADBEEF

	b, err := g.Frame(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uint32(0xDEADBEEF), b.ARGB()[0])
}

func TestImageGeneratorRespectsContext(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	g, err := NewImage([]image.Image{img}, time.Hour)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = g.Frame(ctx) // first frame is immediate
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = g.Frame(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
