package main

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"lightbox/viewer"
)

// Common colors used in rendering
var (
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}
	colorGridBG    = color.RGBA{24, 24, 28, 255}
	colorThumbBG   = color.RGBA{48, 48, 56, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128} // Light semi-transparent
	bgColorMedium = color.RGBA{0, 0, 0, 160} // Medium semi-transparent
)

// Rates for the renderer's own eased values, per drawn frame
const (
	offsetEaseRate = 0.25
	fadeStep       = 1.0 / 14
)

// gestureHelp lists the pointer gestures shown in the help overlay
var gestureHelp = [][2]string{
	{"swipe", "Next / previous image"},
	{"drag down", "Close the viewer"},
	{"double tap", "Toggle zoom"},
	{"drag (zoomed)", "Pan the image"},
}

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState

	// Displayed closing offset, eased back to the engine value when a drag is released
	shownOffset float64
	// Viewer layer opacity, faded in on open and out on close
	fade float64
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{renderState: renderState}
}

// easeToward moves cur a fraction rate toward target, snapping once within half a pixel
func easeToward(cur, target, rate float64) float64 {
	next := cur + (target-cur)*rate
	if math.Abs(target-next) < 0.5 {
		return target
	}
	return next
}

// stepFade moves the viewer layer opacity one step toward its target for tr
func stepFade(fade float64, tr viewer.Transform) float64 {
	target := 1.0
	if tr.Opening || tr.Closing {
		target = 0
	}
	if fade < target {
		return math.Min(target, fade+fadeStep)
	}
	return math.Max(target, fade-fadeStep)
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorGridBG)

	r.drawGrid(screen)

	tr := r.renderState.GetTransform()
	if tr.Visible {
		r.drawViewer(screen, tr)
	} else {
		r.fade = 0
		r.shownOffset = 0
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}
}

func (r *Renderer) drawGrid(screen *ebiten.Image) {
	count := r.renderState.GetMediaCount()
	if count == 0 {
		r.drawStatus(screen, "No images")
		return
	}

	l := r.renderState.GetGridLayout()
	scroll := r.renderState.GetGridScroll()
	selection := r.renderState.GetSelection()
	size := float64(l.thumb)

	first := max(0, int((scroll-gridGap)/l.pitch())) * l.cols
	last := min(count, (int((scroll+float64(l.height))/l.pitch())+1)*l.cols)

	for idx := first; idx < last; idx++ {
		x, y := l.cell(idx)
		y -= scroll

		thumb := r.renderState.GetThumbnail(idx)
		if thumb == nil {
			DrawFilledRect(screen, x, y, size, size, colorThumbBG)
		} else {
			r.drawImageInRegion(screen, thumb, x, y, size, size, 1)
		}

		if idx == selection {
			DrawStrokeRect(screen, x-2, y-2, size+4, size+4, 3, colorYellow)
		}
	}

	if !r.renderState.IsViewerOpen() {
		r.drawStatus(screen, fmt.Sprintf("%d / %d  %s", selection+1, count, r.renderState.GetMediaName(selection)))
	}
}

// drawImageInRegion draws img centered in the region, scaled to fit without upscaling
func (r *Renderer) drawImageInRegion(screen, img *ebiten.Image, x, y, w, h, alpha float64) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	scale := fitScale(iw, ih, w, h)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x+(w-iw*scale)/2, y+(h-ih*scale)/2)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, op)
}

func (r *Renderer) drawViewer(screen *ebiten.Image, tr viewer.Transform) {
	r.fade = stepFade(r.fade, tr)

	// Follow the finger exactly while dragging and hold position while closing
	switch {
	case tr.Mode == viewer.ModeDraggingToClose:
		r.shownOffset = tr.ClosingOffset
	case !tr.Closing:
		r.shownOffset = easeToward(r.shownOffset, tr.ClosingOffset, offsetEaseRate)
	}

	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	backdrop := viewer.Clamp(tr.OverlayOpacity*r.fade, 0, 1)
	DrawFilledRect(screen, 0, 0, w, h, color.RGBA{0, 0, 0, uint8(backdrop * 255)})

	img := r.renderState.GetImage(tr.Index)
	if img == nil {
		return
	}

	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	scale := math.Min(w/iw, h/ih)
	if !ebiten.IsFullscreen() {
		scale = fitScale(iw, ih, w, h)
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(scale*tr.Zoom, scale*tr.Zoom)
	op.GeoM.Translate(w/2+tr.Pan.X, h/2+tr.Pan.Y+r.shownOffset)
	op.ColorScale.ScaleAlpha(float32(r.fade))
	screen.DrawImage(img, op)

	if !tr.Closing {
		r.drawStatus(screen, r.buildViewerStatus(tr))
	}
}

func (r *Renderer) buildViewerStatus(tr viewer.Transform) string {
	status := fmt.Sprintf("%d / %d  %s", tr.Index+1, tr.Count, r.renderState.GetMediaName(tr.Index))
	if tr.Zoom > 1 {
		status += fmt.Sprintf("  %gx", tr.Zoom)
	}
	return status
}

// drawStatus draws a status line at the bottom right corner
func (r *Renderer) drawStatus(screen *ebiten.Image, status string) {
	font := newFace(r.renderState.GetFontSize())
	if font == nil {
		return
	}

	textWidth, textHeight := text.Measure(status, font, 0)

	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)
	DrawText(screen, status, font, textX, textY, colorWhite)
}

// helpLine is one row of the help overlay
type helpLine struct {
	name, input, desc string
}

// helpLines returns the bound actions sorted by name, followed by the gestures
func (r *Renderer) helpLines() []helpLine {
	keybindings := r.renderState.GetKeybindings()
	descriptions := GetActionDescriptions()

	actions := make([]string, 0, len(keybindings))
	for action, keys := range keybindings {
		if len(keys) > 0 {
			actions = append(actions, action)
		}
	}
	sort.Strings(actions)

	lines := make([]helpLine, 0, len(actions)+len(gestureHelp))
	for _, action := range actions {
		desc := descriptions[action]
		if desc == "" {
			desc = "No description available"
		}
		lines = append(lines, helpLine{action, strings.Join(keybindings[action], ", "), desc})
	}
	for _, g := range gestureHelp {
		lines = append(lines, helpLine{"gesture", g[0], g[1]})
	}
	return lines
}

// helpColumns measures the name and input columns of lines
func helpColumns(lines []helpLine, font *text.GoTextFace) (nameW, inputW, descW float64) {
	for _, l := range lines {
		w, _ := text.Measure(l.name, font, 0)
		nameW = math.Max(nameW, w)
		w, _ = text.Measure(l.input, font, 0)
		inputW = math.Max(inputW, w)
		w, _ = text.Measure(l.desc, font, 0)
		descW = math.Max(descW, w)
	}
	return nameW, inputW, descW
}

const helpPadding = 40.0

// calculateRequiredDimensions calculates the size of the help content at a given font size
func (r *Renderer) calculateRequiredDimensions(lines []helpLine, fontSize float64) (float64, float64) {
	font := newFace(fontSize)
	lineHeight := fontSize * 1.5
	warnings := min(2, len(r.renderState.GetConfigStatus().Warnings))

	height := fontSize*2 + lineHeight*1.5
	height += float64(len(lines)) * lineHeight
	height += lineHeight * float64(3+warnings)

	nameW, inputW, descW := helpColumns(lines, font)
	width := 40 + nameW + 20 + 30 + inputW + 20 + descW + helpPadding

	return width + helpPadding*2, height + helpPadding*2
}

// calculateOptimalFontSize finds the largest font size that fits within the given dimensions
func (r *Renderer) calculateOptimalFontSize(lines []helpLine, availableWidth, availableHeight float64) (float64, bool) {
	maxFontSize := r.renderState.GetFontSize()
	minFontSize := 12.0

	fits := func(size float64) bool {
		w, h := r.calculateRequiredDimensions(lines, size)
		return w <= availableWidth && h <= availableHeight
	}

	if !fits(minFontSize) {
		return minFontSize, false
	}
	if fits(maxFontSize) {
		return maxFontSize, true
	}

	// Binary search for optimal font size
	low, high := minFontSize, maxFontSize
	for high-low > 0.5 {
		mid := (low + high) / 2.0
		if fits(mid) {
			low = mid
		} else {
			high = mid
		}
	}
	return low, true
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	if globalFontSource == nil {
		return
	}
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	padding := helpPadding

	lines := r.helpLines()
	fontSize, canFit := r.calculateOptimalFontSize(lines, w, h)
	if !canFit {
		r.drawMarginTooSmallMessage(screen)
		return
	}

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	helpFont := newFace(fontSize)
	lineHeight := fontSize * 1.5

	titleY := padding + 30
	DrawText(screen, "HELP:", helpFont, padding+20, titleY, colorWhite)
	currentY := titleY + fontSize*2

	DrawText(screen, "Controls:", helpFont, padding+20, currentY, colorWhite)
	currentY += lineHeight * 1.5

	nameW, inputW, _ := helpColumns(lines, helpFont)
	nameX := padding + 40
	arrowX := nameX + nameW + 20
	inputX := arrowX + 30
	descX := inputX + inputW + 20

	for _, l := range lines {
		DrawText(screen, l.name, helpFont, nameX, currentY, colorLightBlue)
		DrawText(screen, "→", helpFont, arrowX, currentY, colorWhite)
		DrawText(screen, l.input, helpFont, inputX, currentY, colorYellow)
		DrawText(screen, l.desc, helpFont, descX, currentY, colorGray)
		currentY += lineHeight
	}

	currentY += lineHeight
	DrawText(screen, "System:", helpFont, padding+20, currentY, colorWhite)
	currentY += lineHeight

	configStatus := r.renderState.GetConfigStatus()
	statusColor := colorGreen
	if configStatus.Status == "Warning" || configStatus.Status == "Error" {
		statusColor = colorOrange
	}
	DrawText(screen, "Config Status: "+configStatus.Status, helpFont, padding+40, currentY, statusColor)
	currentY += lineHeight

	for i, warning := range configStatus.Warnings {
		if i >= 2 { // Limit to first 2 warnings to avoid clutter
			break
		}
		DrawText(screen, "• "+truncate(warning, 50), helpFont, padding+40, currentY, colorLightRed)
		currentY += lineHeight
	}
}

// drawMarginTooSmallMessage displays Fermat's margin joke when help cannot fit
func (r *Renderer) drawMarginTooSmallMessage(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)

	jokeFont := newFace(16)
	message := "Hanc marginis exiguitas non caperet."
	subtitle := "(This margin is too small to contain it.)"

	messageWidth, messageHeight := text.Measure(message, jokeFont, 0)
	subtitleWidth, _ := text.Measure(subtitle, jokeFont, 0)

	messageY := h/2 - messageHeight/2
	DrawText(screen, message, jokeFont, w/2-messageWidth/2, messageY, colorWhite)
	DrawText(screen, subtitle, jokeFont, w/2-subtitleWidth/2, messageY+messageHeight+10, colorGray)
}
