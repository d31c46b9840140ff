package service

import "ironai/workout-app/internal/domain"

// Fallbacks for targets that are absent or cannot be parsed.
const (
	DefaultSeries      = 3
	DefaultRepMin      = 8
	DefaultRepMax      = 12
	DefaultRestSeconds = 60
)

// Targets are the strict execution targets of a day exercise.
type Targets struct {
	Series      int
	RepMin      int
	RepMax      int
	RestSeconds int
}

// TargetInput collects the loosely typed target fields of a request. The
// structured fields win over the text ones when both are sent.
type TargetInput struct {
	Series      domain.LooseInt
	Reps        domain.LooseText // "10-12", "10" or 10
	RepMin      domain.LooseInt
	RepMax      domain.LooseInt
	Rest        domain.LooseText // "60s" or 60
	RestSeconds domain.LooseInt
}

// ResolveTargets turns a loose input into Targets. It never fails; anything
// unusable falls back to the defaults.
func ResolveTargets(in TargetInput) Targets {
	t := Targets{Series: DefaultSeries}
	if in.Series.Valid && in.Series.Value > 0 {
		t.Series = in.Series.Value
	}

	t.RepMin, t.RepMax = ParseRepRange(in.Reps)
	if in.RepMin.Valid && in.RepMin.Value > 0 {
		t.RepMin = in.RepMin.Value
	}
	if in.RepMax.Valid && in.RepMax.Value > 0 {
		t.RepMax = in.RepMax.Value
	}
	if t.RepMin > t.RepMax {
		t.RepMin, t.RepMax = t.RepMax, t.RepMin
	}

	t.RestSeconds = ParseRest(in.Rest)
	if in.RestSeconds.Valid && in.RestSeconds.Value >= 0 {
		t.RestSeconds = in.RestSeconds.Value
	}
	return t
}

// ParseRepRange reads a repetition range. A single number gives min=max, two
// numbers give min and max in the order they appear. A zero bound falls back
// to the default for that bound, and anything else gives the default range.
func ParseRepRange(v domain.LooseText) (min, max int) {
	if !v.Present {
		return DefaultRepMin, DefaultRepMax
	}
	if v.IsNumber {
		if n, ok := v.Int(); ok && n > 0 {
			return n, n
		}
		return DefaultRepMin, DefaultRepMax
	}

	runs := domain.DigitRuns(v.Text)
	switch {
	case len(runs) >= 2:
		min, max = runs[0], runs[1]
		if min == 0 {
			min = DefaultRepMin
		}
		if max == 0 {
			max = DefaultRepMax
		}
		return min, max
	case len(runs) == 1 && runs[0] > 0:
		return runs[0], runs[0]
	default:
		return DefaultRepMin, DefaultRepMax
	}
}

// ParseRest reads a rest duration in seconds from "60s", "60" or 60.
func ParseRest(v domain.LooseText) int {
	if !v.Present {
		return DefaultRestSeconds
	}
	if v.IsNumber {
		if n, ok := v.Int(); ok && n >= 0 {
			return n
		}
		return DefaultRestSeconds
	}
	if runs := domain.DigitRuns(v.Text); len(runs) > 0 {
		return runs[0]
	}
	return DefaultRestSeconds
}
