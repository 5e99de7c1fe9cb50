package renderer

import "github.com/chewxy/math32"

// DayLength is the length of one day/night cycle in milliseconds.
const DayLength float32 = 24000

// Sky selects one of the two skybox cube maps.
type Sky uint8

const (
	Night Sky = iota
	Day
)

func (s Sky) String() string {
	if s == Day {
		return "day"
	}
	return "night"
}

// SkyBlend is the pair of cube maps to mix and how far the mix has moved
// from the first to the second.
type SkyBlend struct {
	From, To Sky
	Factor   float32
}

type skyBand struct {
	start, end float32
	from, to   Sky
}

var skyBands = [...]skyBand{
	{0, 5000, Night, Night},
	{5000, 8000, Night, Day},
	{8000, 21000, Day, Day},
	{21000, DayLength, Day, Night},
}

// DayNightBlend returns the skybox blend at time t milliseconds into the
// cycle. Times outside [0, DayLength) wrap around.
func DayNightBlend(t float32) SkyBlend {
	t = WrapDayTime(t)
	for _, b := range skyBands {
		if t < b.end {
			return SkyBlend{From: b.from, To: b.to, Factor: (t - b.start) / (b.end - b.start)}
		}
	}
	last := skyBands[len(skyBands)-1]
	return SkyBlend{From: last.from, To: last.to, Factor: 1}
}

// WrapDayTime folds t into [0, DayLength).
func WrapDayTime(t float32) float32 {
	if math32.IsNaN(t) || math32.IsInf(t, 0) {
		return 0
	}
	t = math32.Mod(t, DayLength)
	if t < 0 {
		t += DayLength
	}
	if t >= DayLength {
		t = 0
	}
	return t
}
