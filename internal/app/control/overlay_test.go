package control_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliolabs/folio/internal/app/control"
)

// fakeDialog implements port.Overlay and records its interactions.
type fakeDialog struct {
	shown      int
	dismissed  int
	showErr    error
	dismissErr error
	cancel     func()
}

func (d *fakeDialog) ShowModal() error {
	if d.showErr != nil {
		return d.showErr
	}
	d.shown++
	return nil
}

func (d *fakeDialog) Dismiss() error {
	if d.dismissErr != nil {
		return d.dismissErr
	}
	d.dismissed++
	return nil
}

func (d *fakeDialog) OnCancel(fn func()) {
	d.cancel = fn
}

func TestOverlayManager_Register(t *testing.T) {
	m := control.NewOverlayManager()
	dialog := &fakeDialog{}

	require.NoError(t, m.Register(dialog, false))
	assert.ErrorIs(t, m.Register(dialog, false), control.ErrOverlayAlreadyRegistered)
	assert.Error(t, m.Register(nil, false))
}

func TestOverlayManager_Unregister(t *testing.T) {
	m := control.NewOverlayManager()
	dialog := &fakeDialog{}

	assert.ErrorIs(t, m.Unregister(dialog), control.ErrOverlayNotRegistered)

	require.NoError(t, m.Register(dialog, false))
	require.NoError(t, m.Unregister(dialog))
	assert.ErrorIs(t, m.Unregister(dialog), control.ErrOverlayNotRegistered)
}

func TestOverlayManager_OpenClose(t *testing.T) {
	m := control.NewOverlayManager()
	dialog := &fakeDialog{}
	require.NoError(t, m.Register(dialog, false))

	require.NoError(t, m.Open(dialog))
	assert.Equal(t, 1, dialog.shown)
	assert.Same(t, dialog, m.Active())

	require.NoError(t, m.Close(dialog))
	assert.Equal(t, 1, dialog.dismissed)
	assert.Nil(t, m.Active())
}

func TestOverlayManager_OpenErrors(t *testing.T) {
	m := control.NewOverlayManager()
	blocking := &fakeDialog{}
	other := &fakeDialog{}
	unregistered := &fakeDialog{}
	require.NoError(t, m.Register(blocking, false))
	require.NoError(t, m.Register(other, false))

	assert.ErrorIs(t, m.Open(unregistered), control.ErrOverlayNotRegistered)

	require.NoError(t, m.Open(blocking))
	assert.ErrorIs(t, m.Open(blocking), control.ErrOverlayAlreadyActive)
	assert.ErrorIs(t, m.Open(other), control.ErrAnotherOverlayActive)
	assert.Equal(t, 0, other.shown)
	assert.Same(t, blocking, m.Active())
}

func TestOverlayManager_ForceClose(t *testing.T) {
	m := control.NewOverlayManager()
	yielding := &fakeDialog{}
	incoming := &fakeDialog{}
	require.NoError(t, m.Register(yielding, true))
	require.NoError(t, m.Register(incoming, false))

	require.NoError(t, m.Open(yielding))
	require.NoError(t, m.Open(incoming))

	assert.Equal(t, 1, yielding.dismissed)
	assert.Equal(t, 1, incoming.shown)
	assert.Same(t, incoming, m.Active())
}

func TestOverlayManager_ShowFailureLeavesNothingActive(t *testing.T) {
	m := control.NewOverlayManager()
	broken := &fakeDialog{showErr: errors.New("widget realization failed")}
	working := &fakeDialog{}
	require.NoError(t, m.Register(broken, false))
	require.NoError(t, m.Register(working, false))

	require.Error(t, m.Open(broken))
	assert.Nil(t, m.Active())

	// The failed presentation must not block later opens.
	require.NoError(t, m.Open(working))
	assert.Same(t, working, m.Active())
}

func TestOverlayManager_ForceCloseFailureKeepsBlockingActive(t *testing.T) {
	m := control.NewOverlayManager()
	stuck := &fakeDialog{dismissErr: errors.New("dialog refused to close")}
	incoming := &fakeDialog{}
	require.NoError(t, m.Register(stuck, true))
	require.NoError(t, m.Register(incoming, false))

	require.NoError(t, m.Open(stuck))
	require.Error(t, m.Open(incoming))

	assert.Same(t, stuck, m.Active())
	assert.Equal(t, 0, incoming.shown)
}

func TestOverlayManager_CloseErrors(t *testing.T) {
	m := control.NewOverlayManager()
	active := &fakeDialog{}
	other := &fakeDialog{}
	require.NoError(t, m.Register(active, false))
	require.NoError(t, m.Register(other, false))

	assert.ErrorIs(t, m.Close(active), control.ErrNoOverlayActive)
	assert.ErrorIs(t, m.Close(nil), control.ErrNoOverlayActive)

	require.NoError(t, m.Open(active))
	assert.ErrorIs(t, m.Close(other), control.ErrAnotherOverlayActive)
	assert.ErrorIs(t, m.Close(&fakeDialog{}), control.ErrOverlayNotRegistered)
}

func TestOverlayManager_CloseNilClosesActive(t *testing.T) {
	m := control.NewOverlayManager()
	dialog := &fakeDialog{}
	require.NoError(t, m.Register(dialog, false))

	require.NoError(t, m.Open(dialog))
	require.NoError(t, m.Close(nil))
	assert.Equal(t, 1, dialog.dismissed)
	assert.Nil(t, m.Active())
}

func TestOverlayManager_PlatformCancelClearsActive(t *testing.T) {
	m := control.NewOverlayManager()
	dialog := &fakeDialog{}
	next := &fakeDialog{}
	require.NoError(t, m.Register(dialog, false))
	require.NoError(t, m.Register(next, false))

	require.NoError(t, m.Open(dialog))

	// Escape pressed: the platform dismisses the dialog itself.
	dialog.cancel()
	assert.Nil(t, m.Active())

	// The slot is free again without a Close call.
	require.NoError(t, m.Open(next))
	assert.Same(t, next, m.Active())
}
