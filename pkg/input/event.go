package input

// Event is a raw event delivered by the windowing system. Only KeyDown,
// KeyUp and PointerMotion carry input state; Scroll, CloseRequested and
// Resized are handled by whoever drives the event loop.
type Event interface {
	isEvent()
}

// KeyDown reports the first press of a key. Key is KeyUnknown when the
// platform could not resolve a virtual key for the physical one.
type KeyDown struct {
	ScanCode ScanCode
	Key      Key
}

// KeyUp reports the release of a key.
type KeyUp struct {
	ScanCode ScanCode
	Key      Key
}

// PointerMotion is relative pointer movement in window pixels.
type PointerMotion struct {
	DX, DY float32
}

// Scroll is wheel or touchpad scrolling, in scroll steps.
type Scroll struct {
	DX, DY float32
}

type CloseRequested struct{}

// Resized carries the new framebuffer size.
type Resized struct {
	Width, Height int
}

func (KeyDown) isEvent()        {}
func (KeyUp) isEvent()          {}
func (PointerMotion) isEvent()  {}
func (Scroll) isEvent()         {}
func (CloseRequested) isEvent() {}
func (Resized) isEvent()        {}
