package mach

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size in layout pixels.
	// Defaults: 1024x768.
	Width, Height int
	// Scene is passed to NewScene. The zero value means DefaultSceneConfig.
	Scene SceneConfig
	// SequenceKeys advance the sequence step. Default: space and right arrow.
	SequenceKeys []ebiten.Key
	// TestScript, when non-empty, is a JSON script played back through a
	// TestRunner. The window closes once the script is done.
	TestScript []byte
	// ShowFPS adds an FPS overlay on top of the scene's objects.
	ShowFPS bool
	// OnReady, if set, is called with the started scene before the first
	// frame, e.g. to register OnClick handlers.
	OnReady func(s *Scene) error
}

const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 768
)

// Run opens a window, builds a scene holding objs and drives it until the
// window closes, ctx is cancelled, or, with SceneConfig.HaltOnError, a frame
// fails. The scene is destroyed before Run returns.
func Run(ctx context.Context, cfg RunConfig, objs ...SceneObject) error {
	if cfg.Width <= 0 {
		cfg.Width = defaultWindowWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultWindowHeight
	}
	if len(cfg.SequenceKeys) == 0 {
		cfg.SequenceKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowRight}
	}
	sceneCfg := cfg.Scene
	if sceneCfg == (SceneConfig{}) {
		sceneCfg = DefaultSceneConfig()
	}
	sceneCfg = sceneCfg.withDefaults()

	res := sceneCfg.Resolution
	surface := NewImageSurface(int(float64(cfg.Width)*res), int(float64(cfg.Height)*res))
	surface.SetResolution(res)
	surface.SetLayoutBox(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})

	scene, err := NewScene(surface, sceneCfg)
	if err != nil {
		return err
	}
	defer scene.Destroy()

	if err := scene.Add(objs...); err != nil {
		return err
	}
	if cfg.ShowFPS {
		if err := scene.Add(NewFPSOverlay()); err != nil {
			return err
		}
	}
	scene.SetInput(&ebitenInput{resolution: res, sequenceKeys: cfg.SequenceKeys})

	if len(cfg.TestScript) > 0 {
		runner, err := LoadTestScript(cfg.TestScript)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
	}

	if err := scene.Start(); err != nil {
		if sceneCfg.HaltOnError {
			return err
		}
		fmt.Fprintf(os.Stderr, "[mach] start: %v\n", err)
	}
	if cfg.OnReady != nil {
		if err := cfg.OnReady(scene); err != nil {
			return err
		}
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{ctx: ctx, scene: scene, surface: surface, haltOnError: sceneCfg.HaltOnError}
	return ebiten.RunGame(g)
}

// game adapts a Scene to ebiten.Game. The scene renders into an offscreen
// surface during Update so input, drawing and screenshots share one tick;
// Draw only presents it.
type game struct {
	ctx         context.Context
	scene       *Scene
	surface     *ImageSurface
	haltOnError bool
	resized     bool
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return err
	}
	if g.resized {
		g.resized = false
		g.scene.Resize()
	}

	err := g.scene.Update(g.ctx)
	if err != nil {
		if g.haltOnError || errors.Is(err, ErrSceneDestroyed) {
			return err
		}
		if !g.scene.debug {
			fmt.Fprintf(os.Stderr, "[mach] frame %d: %v\n", g.scene.Frame(), err)
		}
	}

	if r := g.scene.testRunner; r != nil && r.Done() && len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if img := g.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
}

// Layout makes the logical screen the device surface: the window size times
// the resolution.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	box := Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	if box != g.surface.LayoutBox() {
		g.surface.SetLayoutBox(box)
		g.resized = true
	}
	res := g.surface.Resolution()
	return int(float64(outsideWidth) * res), int(float64(outsideHeight) * res)
}
