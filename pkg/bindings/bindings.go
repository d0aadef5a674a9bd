// Package bindings maps camera actions to keys and holds the movement speed
// they apply.
package bindings

import (
	"maps"
	"slices"

	"github.com/leterax/opal/pkg/input"
)

type Action string

const (
	Forward Action = "forward"
	Back    Action = "back"
	Left    Action = "left"
	Right   Action = "right"
	Rise    Action = "rise"
	Fall    Action = "fall"
	Exit    Action = "exit"
)

// Actions lists every action in a stable order.
var Actions = []Action{Forward, Back, Left, Right, Rise, Fall, Exit}

const DefaultSpeed = 10

// Bindings associates each action with the key that triggers it. Speed is
// in world units per second.
type Bindings struct {
	Keys  map[Action]input.Code
	Speed float32
}

func Default() Bindings {
	return Bindings{
		Keys: map[Action]input.Code{
			Forward: input.KeyW,
			Back:    input.KeyS,
			Left:    input.KeyA,
			Right:   input.KeyD,
			Rise:    input.KeySpace,
			Fall:    input.KeyLeftShift,
			Exit:    input.KeyEscape,
		},
		Speed: DefaultSpeed,
	}
}

// Code returns the key bound to a, or nil when it is unbound.
func (b Bindings) Code(a Action) input.Code {
	return b.Keys[a]
}

func (b Bindings) Clone() Bindings {
	return Bindings{Keys: maps.Clone(b.Keys), Speed: b.Speed}
}

func valid(a Action) bool {
	return slices.Contains(Actions, a)
}
