package main

import "lightbox/viewer"

// InputHandler routes keyboard actions and pointer strokes for one game update
type InputHandler struct {
	inputActions      InputActions
	inputState        InputState
	keybindingManager *KeybindingManager
	pointer           *PointerSource

	viewerSink SampleSink
	gridSink   SampleSink
	lastSink   SampleSink
}

// NewInputHandler creates a new InputHandler. Pointer strokes go to viewerSink
// while the viewer is open and to gridSink otherwise.
func NewInputHandler(inputActions InputActions, inputState InputState, keybindingManager *KeybindingManager,
	pointer *PointerSource, viewerSink, gridSink SampleSink) *InputHandler {
	return &InputHandler{
		inputActions:      inputActions,
		inputState:        inputState,
		keybindingManager: keybindingManager,
		pointer:           pointer,
		viewerSink:        viewerSink,
		gridSink:          gridSink,
	}
}

// HandleInput processes all input for the current frame.
// It returns the effects reported by the pointer sink.
func (h *InputHandler) HandleInput() viewer.Effect {
	h.handleKeys()
	return h.handlePointer()
}

func (h *InputHandler) handleKeys() bool {
	inputProcessed := false
	for _, def := range actionDefinitions {
		if h.keybindingManager.ExecuteAction(def.Name, h.inputActions, h.inputState) {
			inputProcessed = true
		}
	}
	return inputProcessed
}

// handlePointer polls the pointer into the sink for the current view.
// A stroke that outlives its view is cancelled on the old sink.
func (h *InputHandler) handlePointer() viewer.Effect {
	sink := h.gridSink
	if h.inputState.IsViewerOpen() {
		sink = h.viewerSink
	}

	var eff viewer.Effect
	if h.lastSink != nil && sink != h.lastSink && h.pointer.Active() {
		eff |= h.pointer.Abort(h.lastSink)
	}
	h.lastSink = sink

	return eff | h.pointer.Poll(sink)
}
