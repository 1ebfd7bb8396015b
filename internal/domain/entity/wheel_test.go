package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliolabs/folio/internal/domain/entity"
)

func TestWheelAccumulator_FractionalDeltas(t *testing.T) {
	var acc entity.WheelAccumulator

	// Four quarter-ish deltas: the fourth crosses the tick boundary.
	assert.Equal(t, 0, acc.Accumulate(0.3))
	assert.Equal(t, 0, acc.Accumulate(0.3))
	assert.Equal(t, 0, acc.Accumulate(0.3))
	assert.Equal(t, 1, acc.Accumulate(0.3))
	assert.InDelta(t, 0.2, acc.Residue(), 1e-9)
}

func TestWheelAccumulator_SignReversalResetsResidue(t *testing.T) {
	var acc entity.WheelAccumulator

	assert.Equal(t, 0, acc.Accumulate(0.6))
	// Direction change discards the 0.6; only the new delta counts.
	assert.Equal(t, 0, acc.Accumulate(-0.2))
	assert.InDelta(t, -0.2, acc.Residue(), 1e-9)
}

func TestWheelAccumulator_WholeDeltas(t *testing.T) {
	var acc entity.WheelAccumulator

	assert.Equal(t, 1, acc.Accumulate(1))
	assert.Equal(t, 0.0, acc.Residue())
	assert.Equal(t, -2, acc.Accumulate(-2))
	assert.Equal(t, 0.0, acc.Residue())
}

func TestWheelAccumulator_MultiTickDelta(t *testing.T) {
	var acc entity.WheelAccumulator

	assert.Equal(t, 2, acc.Accumulate(2.5))
	assert.InDelta(t, 0.5, acc.Residue(), 1e-9)
	assert.Equal(t, 1, acc.Accumulate(0.5))
	assert.Equal(t, 0.0, acc.Residue())
}

func TestWheelAccumulator_Reset(t *testing.T) {
	var acc entity.WheelAccumulator

	acc.Accumulate(0.9)
	acc.Reset()
	assert.Equal(t, 0.0, acc.Residue())
	assert.Equal(t, 0, acc.Accumulate(0.9))
}

func TestWheelAccumulator_NegativeAccumulation(t *testing.T) {
	var acc entity.WheelAccumulator

	assert.Equal(t, 0, acc.Accumulate(-0.7))
	assert.Equal(t, -1, acc.Accumulate(-0.7))
	assert.InDelta(t, -0.4, acc.Residue(), 1e-9)
}
