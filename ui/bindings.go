package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Action identifies something the user can trigger from the keyboard.
type Action string

// Standard actions.
const (
	ActionInterpolate Action = "interpolate"
	ActionSamples     Action = "samples"
	ActionGrid        Action = "grid"
	ActionAnimate     Action = "animate"
	ActionSaddle      Action = "saddle"
	ActionDeselect    Action = "deselect"
	ActionSnapshot    Action = "snapshot"
	ActionPanel       Action = "panel"
	ActionPerf        Action = "perf"
)

// Binding maps a key to an action.
type Binding struct {
	Action   Action
	Name     string // Display name
	Key      int32  // Keyboard key
	KeyLabel string // Key label for display (e.g., "S", "Space")
	Category string // Grouping ("view", "field", "tools")
}

// Bindings holds the key map in display order.
type Bindings struct {
	list []Binding
	byID map[Action]Binding
}

// NewBindings creates the default key map.
func NewBindings() *Bindings {
	b := &Bindings{byID: make(map[Action]Binding)}

	b.Register(Binding{Action: ActionInterpolate, Name: "Interpolate", Key: rl.KeyI, KeyLabel: "I", Category: "field"})
	b.Register(Binding{Action: ActionSaddle, Name: "Centre saddles", Key: rl.KeyC, KeyLabel: "C", Category: "field"})
	b.Register(Binding{Action: ActionAnimate, Name: "Animate", Key: rl.KeySpace, KeyLabel: "Space", Category: "field"})

	b.Register(Binding{Action: ActionSamples, Name: "Samples", Key: rl.KeyS, KeyLabel: "S", Category: "view"})
	b.Register(Binding{Action: ActionGrid, Name: "Grid", Key: rl.KeyG, KeyLabel: "G", Category: "view"})
	b.Register(Binding{Action: ActionPerf, Name: "Perf panel", Key: rl.KeyF3, KeyLabel: "F3", Category: "view"})
	b.Register(Binding{Action: ActionPanel, Name: "Controls", Key: rl.KeyTab, KeyLabel: "Tab", Category: "view"})

	b.Register(Binding{Action: ActionDeselect, Name: "Drop source", Key: rl.KeyD, KeyLabel: "D", Category: "tools"})
	b.Register(Binding{Action: ActionSnapshot, Name: "Snapshot", Key: rl.KeyP, KeyLabel: "P", Category: "tools"})

	return b
}

// Register adds or replaces a binding.
func (b *Bindings) Register(binding Binding) {
	if _, exists := b.byID[binding.Action]; !exists {
		b.list = append(b.list, binding)
	} else {
		for i := range b.list {
			if b.list[i].Action == binding.Action {
				b.list[i] = binding
			}
		}
	}
	b.byID[binding.Action] = binding
}

// Get returns the binding for an action.
func (b *Bindings) Get(a Action) (Binding, bool) {
	binding, ok := b.byID[a]
	return binding, ok
}

// Pressed returns the actions whose key went down this frame.
func (b *Bindings) Pressed() []Action {
	var actions []Action
	for _, binding := range b.list {
		if rl.IsKeyPressed(binding.Key) {
			actions = append(actions, binding.Action)
		}
	}
	return actions
}

// Categories returns the categories in first-seen order.
func (b *Bindings) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, binding := range b.list {
		if !seen[binding.Category] {
			seen[binding.Category] = true
			cats = append(cats, binding.Category)
		}
	}
	return cats
}

// ByCategory returns the bindings in a category.
func (b *Bindings) ByCategory(cat string) []Binding {
	var out []Binding
	for _, binding := range b.list {
		if binding.Category == cat {
			out = append(out, binding)
		}
	}
	return out
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "field":
		return "Field"
	case "view":
		return "View"
	case "tools":
		return "Tools"
	default:
		return cat
	}
}
