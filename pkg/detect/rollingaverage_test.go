package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const allowableDelta = 1e-5

func TestRollingAverageReturnsSeed(t *testing.T) {
	for _, seed := range []float64{-42, -10.5, -1, -0.1, 0, 0.1, 1, 10.5, 42} {
		average := NewSeededRollingAverage(10, seed)
		assert.Equal(t, seed, average.Get())
	}
}

func TestRollingAverageDefaultsToZero(t *testing.T) {
	average := NewRollingAverage(10)
	assert.Equal(t, 0.0, average.Get())
}

func TestRollingAverageWindowOfOneKeepsNewest(t *testing.T) {
	average := NewRollingAverage(1)

	for x := -math.Pi; x <= math.Pi; x += math.Pi / 32 {
		value := math.Sin(x)
		average.Add(value)
		assert.InDelta(t, value, average.Get(), allowableDelta)
	}
}

func TestRollingAverageMatchesReference(t *testing.T) {
	const windowSize = 20

	var window []float64
	average := NewRollingAverage(windowSize)

	for x := -math.Pi; x <= math.Pi; x += math.Pi / 32 {
		value := math.Sin(x)
		window = append(window, value)
		average.Add(value)

		if len(window) > windowSize {
			window = window[1:]
		}

		var sum float64
		for _, v := range window {
			sum += v
		}
		assert.InDelta(t, sum/float64(len(window)), average.Get(), allowableDelta)
	}
}

func TestRollingAveragePartialWindow(t *testing.T) {
	average := NewRollingAverage(2)

	average.Add(1)
	assert.Equal(t, 1.0, average.Get())

	average.Add(2)
	assert.InDelta(t, 1.5, average.Get(), allowableDelta)

	average.Add(4)
	assert.InDelta(t, 3.0, average.Get(), allowableDelta)
}

func TestRollingAverageRejectsEmptyWindow(t *testing.T) {
	assert.Panics(t, func() { NewRollingAverage(0) })
}
