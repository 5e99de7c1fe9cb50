package renderer

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayNightBlend(t *testing.T) {
	tests := []struct {
		name   string
		time   float32
		from   Sky
		to     Sky
		factor float32
	}{
		{"midnight", 0, Night, Night, 0},
		{"late night", 2500, Night, Night, 0.5},
		{"dawn starts", 5000, Night, Day, 0},
		{"dawn", 6500, Night, Day, 0.5},
		{"day starts", 8000, Day, Day, 0},
		{"noon", 14500, Day, Day, 0.5},
		{"dusk starts", 21000, Day, Night, 0},
		{"dusk", 22500, Day, Night, 0.5},
		{"wraps", 24000 + 6500, Night, Day, 0.5},
		{"negative wraps", -1500, Day, Night, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayNightBlend(tt.time)
			assert.Equal(t, tt.from, got.From)
			assert.Equal(t, tt.to, got.To)
			assert.InDelta(t, tt.factor, got.Factor, 1e-5)
		})
	}
}

func TestDayNightBlendIsContinuous(t *testing.T) {
	// The visible mix is (1-f)*From + f*To with Day as 1.
	mix := func(b SkyBlend) float32 {
		return (1-b.Factor)*float32(b.From) + b.Factor*float32(b.To)
	}
	prev := mix(DayNightBlend(0))
	for ms := float32(10); ms < DayLength; ms += 10 {
		cur := mix(DayNightBlend(ms))
		assert.InDelta(t, prev, cur, 0.01, "jump at %v ms", ms)
		prev = cur
	}
}

func TestWrapDayTime(t *testing.T) {
	assert.Zero(t, WrapDayTime(DayLength))
	assert.Equal(t, float32(100), WrapDayTime(100))
	assert.Equal(t, float32(23900), WrapDayTime(-100))
	assert.Zero(t, WrapDayTime(float32(gomath.NaN())))
	assert.Zero(t, WrapDayTime(float32(gomath.Inf(1))))
}

func TestSkyString(t *testing.T) {
	assert.Equal(t, "day", Day.String())
	assert.Equal(t, "night", Night.String())
}
