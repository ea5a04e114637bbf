package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/viewer"
)

// RenderState provides read-only access to app state for the renderer
type RenderState interface {
	// Viewer state
	IsViewerOpen() bool
	GetTransform() viewer.Transform

	// Grid state
	GetMediaCount() int
	GetSelection() int
	GetGridScroll() float64
	GetGridLayout() gridLayout

	// Rendering data
	GetImage(idx int) *ebiten.Image
	GetThumbnail(idx int) *ebiten.Image
	GetMediaName(idx int) string

	// Overlays
	IsShowingHelp() bool
	GetFontSize() float64
	GetKeybindings() map[string][]string
	GetConfigStatus() ConfigLoadResult
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()
	ToggleFullscreen()
	ToggleHelp()

	// Viewer
	SendViewerKey(k viewer.Key)
	ToggleZoom()

	// Grid
	MoveSelection(dx, dy int)
	OpenSelected()
	OpenAt(idx int)
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsViewerOpen() bool
}

// SampleSink receives normalized gesture samples from a PointerSource
type SampleSink interface {
	Start(s viewer.Sample) viewer.Effect
	Move(s viewer.Sample) viewer.Effect
	End() viewer.Effect
	Cancel() viewer.Effect
}
