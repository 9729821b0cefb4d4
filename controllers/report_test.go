package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuarterStart(t *testing.T) {
	feb := time.Date(2026, time.February, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), quarterStart(feb))

	nov := time.Date(2026, time.November, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), quarterStart(nov))
}

func TestQuarterEnd(t *testing.T) {
	feb := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), quarterEnd(feb))
}

func TestGrowthPercentage(t *testing.T) {
	assert.InDelta(t, 50.0, growthPercentage(150, 100), 0.001)
	assert.InDelta(t, -25.0, growthPercentage(75, 100), 0.001)
	assert.InDelta(t, 100.0, growthPercentage(50, 0), 0.001)
	assert.Zero(t, growthPercentage(0, 0))
}
