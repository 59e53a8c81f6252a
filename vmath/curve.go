package vmath

import "sort"

// Key is a single curve sample.
type Key struct {
	T float64
	V float64
}

// Curve is a piecewise-linear response curve sampled at sorted keys.
// Evaluation clamps at the first and last key, so a curve over
// [-1, 1] answers any dot-product input. The zero Curve evaluates
// to 1 everywhere, which leaves scaled quantities unchanged.
type Curve struct {
	keys []Key
}

// NewCurve builds a curve from keys, sorting them by T.
func NewCurve(keys ...Key) Curve {
	ks := make([]Key, len(keys))
	copy(ks, keys)
	sort.Slice(ks, func(i, j int) bool { return ks[i].T < ks[j].T })
	return Curve{keys: ks}
}

// Evaluate samples the curve at t with linear interpolation between
// the surrounding keys.
func (c Curve) Evaluate(t float64) float64 {
	n := len(c.keys)
	if n == 0 {
		return 1
	}
	if t <= c.keys[0].T {
		return c.keys[0].V
	}
	if t >= c.keys[n-1].T {
		return c.keys[n-1].V
	}
	i := sort.Search(n, func(i int) bool { return c.keys[i].T >= t })
	a, b := c.keys[i-1], c.keys[i]
	span := b.T - a.T
	if span < Epsilon {
		return b.V
	}
	return a.V + (b.V-a.V)*(t-a.T)/span
}

// Keys returns a copy of the curve's samples.
func (c Curve) Keys() []Key {
	out := make([]Key, len(c.keys))
	copy(out, c.keys)
	return out
}
