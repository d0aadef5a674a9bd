// Package input turns the raw keyboard and pointer events delivered by the
// windowing system into a frame-consistent view of which keys are held and
// which changed since the previous frame.
package input

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// generation is one frame's worth of input state. A code missing from
// either map is not held.
type generation struct {
	keys  map[Key]bool
	scans map[ScanCode]bool
	delta mgl32.Vec2
}

func newGeneration() generation {
	return generation{
		keys:  make(map[Key]bool),
		scans: make(map[ScanCode]bool),
	}
}

// Manager keeps the current and previous input generations. Events are
// written into the current generation with Record; queries compare the two;
// AdvanceFrame freezes the current generation as the previous one.
//
// A Manager is not safe for concurrent use. It is meant to be owned by the
// event loop that also runs the per-frame update.
type Manager struct {
	curr, prev generation

	// Codes touched since the last AdvanceFrame. Replaying just these into
	// prev keeps the copy proportional to the number of changes.
	changedKeys  []Key
	changedScans []ScanCode

	frame uint64
}

// NewManager returns a manager with both generations empty.
func NewManager() *Manager {
	return &Manager{
		curr: newGeneration(),
		prev: newGeneration(),
	}
}

// Record applies a single event to the current generation. Events that do
// not carry input state are ignored. A key event updates the scan-code
// entry when it has a scan code and the virtual-key entry when the key was
// resolved; an event with neither changes nothing.
//
// Pointer motion accumulates: several motion events between two calls to
// AdvanceFrame add up to the total movement over the frame.
func (m *Manager) Record(ev Event) {
	switch e := ev.(type) {
	case KeyDown:
		m.setKey(e.ScanCode, e.Key, true)
	case *KeyDown:
		if e != nil {
			m.setKey(e.ScanCode, e.Key, true)
		}
	case KeyUp:
		m.setKey(e.ScanCode, e.Key, false)
	case *KeyUp:
		if e != nil {
			m.setKey(e.ScanCode, e.Key, false)
		}
	case PointerMotion:
		m.curr.delta = m.curr.delta.Add(mgl32.Vec2{e.DX, e.DY})
	case *PointerMotion:
		if e != nil {
			m.curr.delta = m.curr.delta.Add(mgl32.Vec2{e.DX, e.DY})
		}
	}
}

func (m *Manager) setKey(sc ScanCode, k Key, down bool) {
	if sc > NoScanCode {
		if down {
			m.curr.scans[sc] = true
		} else {
			delete(m.curr.scans, sc)
		}
		m.changedScans = append(m.changedScans, sc)
	}
	if k > 0 {
		if down {
			m.curr.keys[k] = true
		} else {
			delete(m.curr.keys, k)
		}
		m.changedKeys = append(m.changedKeys, k)
	}
}

// IsDown reports whether c is held in the current frame.
func (m *Manager) IsDown(c Code) bool {
	return c != nil && c.held(&m.curr)
}

// IsJustPressed reports whether c is held now but was not held in the
// previous frame.
func (m *Manager) IsJustPressed(c Code) bool {
	return c != nil && c.held(&m.curr) && !c.held(&m.prev)
}

// IsJustReleased reports whether c was held in the previous frame but is
// not held now.
func (m *Manager) IsJustReleased(c Code) bool {
	return c != nil && c.held(&m.prev) && !c.held(&m.curr)
}

// MouseDelta returns the pointer movement recorded since the last
// AdvanceFrame. It does not reset the delta.
func (m *Manager) MouseDelta() mgl32.Vec2 {
	return m.curr.delta
}

// AdvanceFrame makes the previous generation a copy of the current one and
// starts a new frame. Held keys stay held; only the mouse delta is cleared.
func (m *Manager) AdvanceFrame() {
	for _, k := range m.changedKeys {
		if v, ok := m.curr.keys[k]; ok {
			m.prev.keys[k] = v
		} else {
			delete(m.prev.keys, k)
		}
	}
	for _, sc := range m.changedScans {
		if v, ok := m.curr.scans[sc]; ok {
			m.prev.scans[sc] = v
		} else {
			delete(m.prev.scans, sc)
		}
	}
	m.changedKeys = m.changedKeys[:0]
	m.changedScans = m.changedScans[:0]

	m.prev.delta = m.curr.delta
	m.curr.delta = mgl32.Vec2{}
	m.frame++
}

// Frame returns the number of completed frames.
func (m *Manager) Frame() uint64 {
	return m.frame
}

// HeldKeys returns the virtual keys currently held, in ascending order.
func (m *Manager) HeldKeys() []Key {
	held := make([]Key, 0, len(m.curr.keys))
	for k := range m.curr.keys {
		held = append(held, k)
	}
	slices.Sort(held)
	return held
}
