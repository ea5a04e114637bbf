package main

import (
	"bytes"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorErrorFill = color.RGBA{120, 30, 30, 255}
)

// Global font source for all text rendering
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// newFace returns a face of the given size, or nil before InitGraphics
func newFace(size float64) *text.GoTextFace {
	if globalFontSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: globalFontSource, Size: size}
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	if font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// DrawStrokeRect draws a rectangle outline
func DrawStrokeRect(screen *ebiten.Image, x, y, w, h, width float64, c color.Color) {
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), float32(width), c, false)
}

// fitScale returns the scale that fits a w x h image inside bw x bh without upscaling
func fitScale(w, h, bw, bh float64) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return min(1, bw/w, bh/h)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:max(0, n)])
	}
	return string(r[:n-3]) + "..."
}

// CreateErrorImage creates an error placeholder image with filename and error message
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(colorErrorFill)

	w, h := float64(width), float64(height)
	DrawStrokeRect(errorImg, 1.5, 1.5, w-3, h-3, 3, colorWhite)

	// Small placeholders (thumbnails) get a smaller font
	size := min(20.0, h/8)
	face := newFace(size)
	if face == nil {
		return errorImg
	}

	maxChars := int((w - 20) / (size / 2))
	DrawText(errorImg, "ERROR", face, 10, size*0.5, colorWhite)
	DrawText(errorImg, truncate("File: "+filepath.Base(filename), maxChars), face, 10, size*2, colorWhite)
	DrawText(errorImg, truncate("Reason: "+errorMsg, maxChars), face, 10, size*3.5, colorWhite)

	return errorImg
}
