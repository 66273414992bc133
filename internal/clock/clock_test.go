package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	c := RealClock{}
	before := time.Now().Add(-time.Second)
	now := c.Now()
	after := time.Now().Add(time.Second)
	assert.True(t, now.After(before) && now.Before(after))
	assert.InDelta(t, time.Now().UnixMilli(), c.NowUnixMilli(), 2000)
}

func TestMockClock(t *testing.T) {
	fixed := time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)
	c := NewMockClock(fixed)

	assert.Equal(t, fixed, c.Now())
	assert.Equal(t, fixed.UnixMilli(), c.NowUnixMilli())

	c.Advance(30 * time.Minute)
	assert.Equal(t, fixed.Add(30*time.Minute), c.Now())

	later := fixed.Add(24 * time.Hour)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}
