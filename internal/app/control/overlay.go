package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/foliolabs/folio/internal/application/port"
)

// Overlay contract violations. These signal wiring bugs in the caller and
// must not be swallowed.
var (
	ErrOverlayNotRegistered     = errors.New("overlay is not registered")
	ErrOverlayAlreadyRegistered = errors.New("overlay is already registered")
	ErrOverlayAlreadyActive     = errors.New("overlay is already active")
	ErrAnotherOverlayActive     = errors.New("another overlay is currently active")
	ErrNoOverlayActive          = errors.New("no overlay is currently active")
)

type overlayRegistration struct {
	canForceClose bool
}

// OverlayManager enforces the single-active-modal invariant across any
// number of registered dialogs. Dialogs request opening and closing but
// never touch the active pointer directly.
type OverlayManager struct {
	mu       sync.Mutex
	overlays map[port.Overlay]overlayRegistration
	active   port.Overlay
}

// NewOverlayManager creates an empty overlay manager.
func NewOverlayManager() *OverlayManager {
	return &OverlayManager{overlays: make(map[port.Overlay]overlayRegistration)}
}

// Active returns the currently active overlay, or nil.
func (m *OverlayManager) Active() port.Overlay {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Register makes dialog eligible for modal presentation. canForceClose
// permits a later Open of a different dialog to close this one
// transparently while it is active. A platform-level cancel of the dialog
// clears the active pointer without going through Close.
func (m *OverlayManager) Register(dialog port.Overlay, canForceClose bool) error {
	if dialog == nil {
		return fmt.Errorf("register overlay: dialog must not be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.overlays[dialog]; ok {
		return ErrOverlayAlreadyRegistered
	}
	m.overlays[dialog] = overlayRegistration{canForceClose: canForceClose}

	dialog.OnCancel(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.active == dialog {
			m.active = nil
		}
	})
	return nil
}

// Unregister removes dialog. It does not require the dialog to be
// inactive.
func (m *OverlayManager) Unregister(dialog port.Overlay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.overlays[dialog]; !ok {
		return ErrOverlayNotRegistered
	}
	delete(m.overlays, dialog)
	return nil
}

// Open activates dialog and presents it modally. When a different
// force-closable dialog is active it is closed first; when the blocking
// dialog does not permit forced closure, Open fails.
func (m *OverlayManager) Open(dialog port.Overlay) error {
	m.mu.Lock()
	if _, ok := m.overlays[dialog]; !ok {
		m.mu.Unlock()
		return ErrOverlayNotRegistered
	}

	var toClose port.Overlay
	if m.active != nil {
		if m.active == dialog {
			m.mu.Unlock()
			return ErrOverlayAlreadyActive
		}
		if !m.overlays[m.active].canForceClose {
			m.mu.Unlock()
			return ErrAnotherOverlayActive
		}
		toClose = m.active
	}
	m.active = dialog
	m.mu.Unlock()

	if toClose != nil {
		if err := toClose.Dismiss(); err != nil {
			// The blocking dialog is still showing; it stays active.
			m.restoreActive(dialog, toClose)
			return fmt.Errorf("force-close active overlay: %w", err)
		}
	}
	if err := dialog.ShowModal(); err != nil {
		m.restoreActive(dialog, nil)
		return err
	}
	return nil
}

// restoreActive rolls the active pointer back from dialog to prev after a
// failed presentation, unless something else claimed it meanwhile.
func (m *OverlayManager) restoreActive(dialog, prev port.Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == dialog {
		m.active = prev
	}
}

// Close deactivates dialog, which must be the active one. Passing nil
// closes the currently active overlay.
func (m *OverlayManager) Close(dialog port.Overlay) error {
	m.mu.Lock()
	if dialog == nil {
		if m.active == nil {
			m.mu.Unlock()
			return ErrNoOverlayActive
		}
		dialog = m.active
	}
	if _, ok := m.overlays[dialog]; !ok {
		m.mu.Unlock()
		return ErrOverlayNotRegistered
	}
	if m.active == nil {
		m.mu.Unlock()
		return ErrNoOverlayActive
	}
	if m.active != dialog {
		m.mu.Unlock()
		return ErrAnotherOverlayActive
	}
	m.active = nil
	m.mu.Unlock()

	return dialog.Dismiss()
}
