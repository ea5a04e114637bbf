package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/viewer"
)

const defaultFontSize = 20.0

var debugMode bool

// debugLog prints only when debug logging is enabled
func debugLog(format string, args ...any) {
	if debugMode {
		log.Printf("Debug: "+format, args...)
	}
}

// Game is the ebiten game: a thumbnail grid with the fullscreen viewer on top
type Game struct {
	store        *MediaStore
	config       Config
	configStatus ConfigLoadResult
	viewer       *viewer.Viewer
	grid         *Grid
	inputHandler *InputHandler
	renderer     *Renderer
	started      time.Time
	showHelp     bool
	quitting     bool
}

// NewGame wires the media store, viewer, grid and input together
func NewGame(store *MediaStore, configStatus ConfigLoadResult) *Game {
	config := configStatus.Config
	g := &Game{
		store:        store,
		config:       config,
		configStatus: configStatus,
		started:      time.Now(),
	}

	g.viewer = viewer.New(store.Locators(), viewer.Options{
		Policy:  config.Gesture,
		OnClose: g.closeViewer,
		Logf:    debugLog,
	})
	g.grid = NewGrid(store.Count(), config.ThumbSize, config.Gesture.TapSlop, g.OpenAt)

	pointer := NewPointerSource(g.now)
	g.inputHandler = NewInputHandler(g, g, NewKeybindingManager(config.Keybindings), pointer, g.viewer, g.grid)
	g.renderer = NewRenderer(g)
	return g
}

// now returns the milliseconds elapsed since the game started
func (g *Game) now() float64 {
	return float64(time.Since(g.started).Microseconds()) / 1000
}

func (g *Game) closeViewer() {
	idx := g.viewer.Session().Index()
	g.viewer.SetOpen(false, idx, g.now())
	g.grid.Select(idx)
}

// applyEffects follows up on viewer effects the host cares about
func (g *Game) applyEffects(eff viewer.Effect) {
	if eff.Has(viewer.EffectNavigated) {
		idx := g.viewer.Session().Index()
		g.grid.Select(idx)
		g.store.Preload(idx, g.config.PreloadCount)
		debugLog("Navigated to %d/%d %s", idx+1, g.store.Count(), g.store.Name(idx))
	}
}

func (g *Game) saveCurrentWindowSize() {
	if ebiten.IsFullscreen() {
		// Window size is meaningless in fullscreen; keep the saved one
		g.config.Fullscreen = true
	} else {
		g.config.Fullscreen = false
		g.config.WindowWidth, g.config.WindowHeight = ebiten.WindowSize()
	}
	saveConfig(g.config)
}

func (g *Game) Update() error {
	if g.quitting {
		g.saveCurrentWindowSize()
		return ebiten.Termination
	}

	eff := g.inputHandler.HandleInput()
	eff |= g.viewer.Tick(g.now())
	g.applyEffects(eff)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.grid.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// InputActions implementation

func (g *Game) Exit() {
	g.quitting = true
}

func (g *Game) ToggleFullscreen() {
	ebiten.SetFullscreen(!ebiten.IsFullscreen())
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) SendViewerKey(k viewer.Key) {
	g.applyEffects(g.viewer.Key(k))
}

func (g *Game) ToggleZoom() {
	g.applyEffects(g.viewer.ToggleZoom())
}

func (g *Game) MoveSelection(dx, dy int) {
	g.grid.MoveSelection(dx, dy)
}

func (g *Game) OpenSelected() {
	g.OpenAt(g.grid.Selection())
}

func (g *Game) OpenAt(idx int) {
	if g.store.Count() == 0 {
		return
	}
	g.grid.Select(idx)
	g.viewer.SetOpen(true, idx, g.now())
	g.store.Preload(g.viewer.Session().Index(), g.config.PreloadCount)
}

// InputState and RenderState implementation

func (g *Game) IsViewerOpen() bool { return g.viewer.IsOpen() }

func (g *Game) GetTransform() viewer.Transform { return g.viewer.Transform() }

func (g *Game) GetMediaCount() int { return g.store.Count() }

func (g *Game) GetSelection() int { return g.grid.Selection() }

func (g *Game) GetGridScroll() float64 { return g.grid.Scroll() }

func (g *Game) GetGridLayout() gridLayout { return g.grid.Layout() }

func (g *Game) GetImage(idx int) *ebiten.Image { return g.store.Image(idx) }

func (g *Game) GetThumbnail(idx int) *ebiten.Image { return g.store.Thumbnail(idx) }

func (g *Game) GetMediaName(idx int) string { return g.store.Name(idx) }

func (g *Game) IsShowingHelp() bool { return g.showHelp }

func (g *Game) GetFontSize() float64 { return defaultFontSize }

func (g *Game) GetKeybindings() map[string][]string { return g.config.Keybindings }

func (g *Game) GetConfigStatus() ConfigLoadResult { return g.configStatus }

func main() {
	start := flag.Int("start", 1, "open the viewer at this image (1-based)")
	gridOnly := flag.Bool("grid", false, "start on the thumbnail grid instead of the viewer")
	flag.BoolVar(&debugMode, "debug", false, "verbose logging")
	flag.Parse()
	if os.Getenv("LIGHTBOX_DEBUG") == "1" {
		debugMode = true
	}

	configStatus := loadConfig()
	config := configStatus.Config
	debugLog("Config status: %s", configStatus.Status)

	media, err := collectMedia(flag.Args(), config.SortMethod)
	if err != nil {
		log.Fatal(err)
	}
	if len(media) == 0 {
		log.Fatal("no image files specified")
	}

	if err := InitGraphics(); err != nil {
		log.Printf("Error: Failed to load font: %v", err)
	}

	store := NewMediaStore(media, config.CacheSize, config.ThumbSize)
	defer store.Close()

	g := NewGame(store, configStatus)
	if *gridOnly {
		g.grid.Select(*start - 1)
	} else {
		g.OpenAt(*start - 1)
	}

	ebiten.SetWindowTitle("lightbox")
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(config.Fullscreen)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
