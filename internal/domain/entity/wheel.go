package entity

import "math"

// WheelAccumulator converts fractional, device-dependent wheel deltas into
// whole zoom ticks. Pixel-based devices accumulate smoothly until a full
// tick is earned; line-based devices produce one tick per physical click
// since their deltas have magnitude >= 1.
//
// Not safe for concurrent use; wheel events arrive on a single input path.
type WheelAccumulator struct {
	unused float64
}

// Accumulate folds one delta into the residue and returns the number of
// whole ticks to apply, which may be zero. A direction reversal discards
// the accumulated residue instead of blending across it.
func (a *WheelAccumulator) Accumulate(delta float64) int {
	if (a.unused > 0 && delta < 0) || (a.unused < 0 && delta > 0) {
		a.unused = 0
	}
	a.unused += delta

	whole := math.Copysign(math.Floor(math.Abs(a.unused)), a.unused)
	a.unused -= whole
	return int(whole)
}

// Residue returns the unused fractional remainder; its magnitude is
// always below 1.
func (a *WheelAccumulator) Residue() float64 {
	return a.unused
}

// Reset clears any accumulated residue.
func (a *WheelAccumulator) Reset() {
	a.unused = 0
}
