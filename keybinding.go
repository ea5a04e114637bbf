package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyState abstracts the keyboard so bindings can be checked without a running game
type keyState interface {
	IsKeyJustPressed(key ebiten.Key) bool
	IsKeyPressed(key ebiten.Key) bool
}

// ebitenKeyState reads the keyboard through ebiten
type ebitenKeyState struct{}

func (ebitenKeyState) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }
func (ebitenKeyState) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

// getKeyMapping returns a mapping from config key names to ebiten keys.
// Letters and digits are spelled KeyA and Key1; other keys use ebiten's name (Escape, ArrowLeft).
func getKeyMapping() map[string]ebiten.Key {
	mapping := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		switch {
		case name == "":
			continue
		case len(name) == 1:
			mapping["Key"+name] = k
		case strings.HasPrefix(name, "Digit"):
			mapping["Key"+strings.TrimPrefix(name, "Digit")] = k
		default:
			mapping[name] = k
		}
	}
	return mapping
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseKeyString parses a key string like "Shift+KeyB" into a KeyCombination
func parseKeyString(keyStr string, mapping map[string]ebiten.Key) (KeyCombination, bool) {
	parts := strings.Split(keyStr, "+")

	key, exists := mapping[parts[len(parts)-1]]
	if !exists {
		return KeyCombination{}, false
	}
	combination := KeyCombination{Key: key}

	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return KeyCombination{}, false
		}
	}
	return combination, true
}

// pressed reports whether the combination was just pressed with exactly its modifiers held
func (c KeyCombination) pressed(keys keyState) bool {
	if !keys.IsKeyJustPressed(c.Key) {
		return false
	}
	return keys.IsKeyPressed(ebiten.KeyShift) == c.Shift &&
		keys.IsKeyPressed(ebiten.KeyControl) == c.Ctrl &&
		keys.IsKeyPressed(ebiten.KeyAlt) == c.Alt
}

// KeybindingManager resolves configured key strings into actions
type KeybindingManager struct {
	keybindings map[string][]string
	compiled    map[string][]KeyCombination
	keys        keyState
}

// NewKeybindingManager creates a new KeybindingManager. Unparseable key strings are ignored.
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	mapping := getKeyMapping()
	compiled := make(map[string][]KeyCombination, len(keybindings))
	for action, keyStrings := range keybindings {
		for _, keyStr := range keyStrings {
			if c, ok := parseKeyString(keyStr, mapping); ok {
				compiled[action] = append(compiled[action], c)
			}
		}
	}

	return &KeybindingManager{
		keybindings: keybindings,
		compiled:    compiled,
		keys:        ebitenKeyState{},
	}
}

// CheckAction checks if any keybinding for the given action is pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, c := range km.compiled[action] {
		if c.pressed(km.keys) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !km.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}
