// Package curve implements keyframe curves evaluated with cubic Hermite
// interpolation. They describe authored response shapes such as a steering
// input curve or an engine torque curve.
package curve

import (
	"math"
	"sort"
)

type Keyframe struct {
	Time       float64
	Value      float64
	InTangent  float64
	OutTangent float64
}

// Key returns a keyframe with flat tangents.
func Key(time, value float64) Keyframe {
	return Keyframe{Time: time, Value: value}
}

// Curve is an immutable, time-sorted list of keyframes. The zero value is an
// empty curve that evaluates to 0 everywhere.
type Curve struct {
	keys []Keyframe
}

// New builds a curve from the given keys, sorting them by time.
func New(keys ...Keyframe) Curve {
	sorted := make([]Keyframe, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return Curve{keys: sorted}
}

// Linear returns a straight line between (t0, v0) and (t1, v1). Outside that
// range the curve is clamped to the end values.
func Linear(t0, v0, t1, v1 float64) Curve {
	slope := 0.0
	if t1 != t0 {
		slope = (v1 - v0) / (t1 - t0)
	}
	return New(
		Keyframe{Time: t0, Value: v0, InTangent: slope, OutTangent: slope},
		Keyframe{Time: t1, Value: v1, InTangent: slope, OutTangent: slope},
	)
}

// Keys returns a copy of the curve's keyframes.
func (c Curve) Keys() []Keyframe {
	keys := make([]Keyframe, len(c.keys))
	copy(keys, c.keys)
	return keys
}

func (c Curve) Len() int { return len(c.keys) }

// Range returns the time of the first and last keyframe.
func (c Curve) Range() (start, end float64) {
	if len(c.keys) == 0 {
		return 0, 0
	}
	return c.keys[0].Time, c.keys[len(c.keys)-1].Time
}

// Evaluate samples the curve at t. Values before the first key or after the
// last key are clamped to the respective key's value.
func (c Curve) Evaluate(t float64) float64 {
	n := len(c.keys)
	switch {
	case n == 0:
		return 0
	case n == 1, t <= c.keys[0].Time:
		return c.keys[0].Value
	case t >= c.keys[n-1].Time:
		return c.keys[n-1].Value
	}

	// First key strictly after t; t is inside (keys[i-1], keys[i]].
	i := sort.Search(n, func(i int) bool {
		return c.keys[i].Time >= t
	})
	return hermite(c.keys[i-1], c.keys[i], t)
}

func hermite(k0, k1 Keyframe, t float64) float64 {
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}

	// An infinite tangent describes a stepped segment.
	if math.IsInf(k0.OutTangent, 0) || math.IsInf(k1.InTangent, 0) {
		return k0.Value
	}

	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	m0 := k0.OutTangent * dt
	m1 := k1.InTangent * dt

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*m0 + h01*k1.Value + h11*m1
}
