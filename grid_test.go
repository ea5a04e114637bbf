package main

import (
	"testing"

	"lightbox/viewer"
)

func TestGridLayoutHit(t *testing.T) {
	l := newGridLayout(800, 600, 160)
	if l.cols != 4 {
		t.Fatalf("Expected 4 columns, got %d", l.cols)
	}

	tests := []struct {
		name     string
		x, y     float64
		scroll   float64
		count    int
		expected int
	}{
		{"First cell", 10, 10, 0, 10, 0},
		{"Second row", 180, 180, 0, 10, 5},
		{"Left margin", 4, 50, 0, 10, -1},
		{"Gap between columns", 172, 50, 0, 10, -1},
		{"Past the last item", 180, 180, 0, 5, -1},
		{"Scrolled", 180, 12, 164, 10, 5},
		{"Right of the last column", 790, 50, 0, 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.hit(tt.x, tt.y, tt.scroll, tt.count); got != tt.expected {
				t.Errorf("hit(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestGridLayoutScroll(t *testing.T) {
	l := newGridLayout(800, 600, 160)

	if got := l.maxScroll(10); got != 0 {
		t.Errorf("Expected no scroll for 3 rows, got %v", got)
	}
	if got := l.maxScroll(20); got != 248 {
		t.Errorf("Expected max scroll 248 for 5 rows, got %v", got)
	}

	if got := l.reveal(16, 0, 20); got != 248 {
		t.Errorf("Expected reveal of last row to scroll to 248, got %v", got)
	}
	if got := l.reveal(0, 200, 20); got != 0 {
		t.Errorf("Expected reveal of first row to scroll to 0, got %v", got)
	}
	if got := l.reveal(5, 100, 20); got != 100 {
		t.Errorf("Expected visible cell to keep scroll, got %v", got)
	}
}

func TestGridMoveSelection(t *testing.T) {
	g := NewGrid(10, 160, 10, nil)
	g.Resize(800, 600)

	tests := []struct {
		dx, dy   int
		expected int
	}{
		{1, 0, 1},
		{0, 1, 5},
		{0, 1, 9},
		{1, 0, 9},
		{0, -1, 5},
		{-1, 0, 4},
		{0, -5, 0},
	}
	for _, tt := range tests {
		g.MoveSelection(tt.dx, tt.dy)
		if g.Selection() != tt.expected {
			t.Errorf("MoveSelection(%d, %d) -> %d, want %d", tt.dx, tt.dy, g.Selection(), tt.expected)
		}
	}
}

func TestGridTapOpens(t *testing.T) {
	opened := -1
	g := NewGrid(20, 160, 10, func(idx int) { opened = idx })
	g.Resize(800, 600)

	g.Start(viewer.Sample{X: 180, Y: 180, T: 0})
	g.Move(viewer.Sample{X: 182, Y: 181, T: 16})
	g.End()

	if opened != 5 {
		t.Errorf("Expected tap to open 5, got %d", opened)
	}
	if g.Selection() != 5 {
		t.Errorf("Expected selection 5, got %d", g.Selection())
	}
}

func TestGridDragScrolls(t *testing.T) {
	opened := -1
	g := NewGrid(20, 160, 10, func(idx int) { opened = idx })
	g.Resize(800, 600)

	g.Start(viewer.Sample{X: 100, Y: 400, T: 0})
	g.Move(viewer.Sample{X: 100, Y: 300, T: 16})
	if g.Scroll() != 100 {
		t.Errorf("Expected scroll 100, got %v", g.Scroll())
	}

	// Dragging past the end stops at the maximum
	g.Move(viewer.Sample{X: 100, Y: -400, T: 32})
	if g.Scroll() != 248 {
		t.Errorf("Expected scroll 248, got %v", g.Scroll())
	}

	g.End()
	if opened != -1 {
		t.Errorf("Expected drag not to open, got %d", opened)
	}
}

func TestGridCancelDoesNotOpen(t *testing.T) {
	opened := -1
	g := NewGrid(20, 160, 10, func(idx int) { opened = idx })
	g.Resize(800, 600)

	g.Start(viewer.Sample{X: 10, Y: 10, T: 0})
	g.Cancel()
	g.End()
	if opened != -1 {
		t.Errorf("Expected cancelled stroke not to open, got %d", opened)
	}
}
