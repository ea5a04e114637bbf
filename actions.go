package main

import "lightbox/viewer"

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Description string
	// ViewerKey is the viewer key the action is forwarded as while the viewer is open.
	ViewerKey viewer.Key
}

// actionDefinitions contains all action definitions with default keybindings and descriptions
var actionDefinitions = []ActionDefinition{
	{"quit", []string{"KeyQ"}, "Quit application", viewer.KeyNone},
	{"dismiss", []string{"Escape"}, "Zoom out, or close the viewer", viewer.KeyEscape},
	{"previous", []string{"ArrowLeft"}, "Previous image", viewer.KeyArrowLeft},
	{"next", []string{"ArrowRight"}, "Next image", viewer.KeyArrowRight},
	{"grid_up", []string{"ArrowUp"}, "Move grid selection up", viewer.KeyNone},
	{"grid_down", []string{"ArrowDown"}, "Move grid selection down", viewer.KeyNone},
	{"open", []string{"Enter", "Space"}, "Open the selected image", viewer.KeyNone},
	{"toggle_zoom", []string{"KeyZ"}, "Toggle zoom", viewer.KeyNone},
	{"fullscreen", []string{"KeyF"}, "Toggle fullscreen", viewer.KeyNone},
	{"help", []string{"KeyH"}, "Show or hide this help", viewer.KeyNone},
}

// actionByName returns the definition of the named action
func actionByName(name string) (ActionDefinition, bool) {
	for _, def := range actionDefinitions {
		if def.Name == name {
			return def, true
		}
	}
	return ActionDefinition{}, false
}

// ActionExecutor provides centralized action execution logic
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
// Viewer keys go through the viewer so its zoom gating applies.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	def, ok := actionByName(action)
	if !ok {
		return false
	}

	if inputState.IsViewerOpen() {
		if def.ViewerKey != viewer.KeyNone {
			inputActions.SendViewerKey(def.ViewerKey)
			return true
		}
		switch action {
		case "toggle_zoom":
			inputActions.ToggleZoom()
			return true
		case "grid_up", "grid_down", "open":
			return false
		}
	}

	switch action {
	case "quit":
		inputActions.Exit()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "help":
		inputActions.ToggleHelp()
	case "previous":
		inputActions.MoveSelection(-1, 0)
	case "next":
		inputActions.MoveSelection(1, 0)
	case "grid_up":
		inputActions.MoveSelection(0, -1)
	case "grid_down":
		inputActions.MoveSelection(0, 1)
	case "open":
		inputActions.OpenSelected()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}
