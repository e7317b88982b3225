package mach

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the overlay re-reads the counters.
const fpsRefresh = 500 * time.Millisecond

// FPSOverlay is a scene object that prints the current FPS and TPS in the
// top-left corner. Add it last so it draws over everything else.
type FPSOverlay struct {
	Object
	elapsed time.Duration
	label   string
}

// NewFPSOverlay creates an FPS overlay. Run adds one when
// RunConfig.ShowFPS is set.
func NewFPSOverlay() *FPSOverlay {
	return &FPSOverlay{}
}

// Label returns the text drawn on the last frame.
func (f *FPSOverlay) Label() string { return f.label }

// Update implements Updater.
func (f *FPSOverlay) Update(ctx context.Context) error {
	f.elapsed += f.DeltaTime()
	if f.label == "" || f.elapsed >= fpsRefresh {
		f.elapsed = 0
		f.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}

	c := f.Canvas()
	if c == nil {
		return nil
	}
	if img, ok := c.Surface().(imageSurface); ok && img.Image() != nil {
		ebitenutil.DebugPrintAt(img.Image(), f.label, 4, 4)
		return nil
	}
	c.Text(f.label, 4, 4, ColorWhite, AlignRight, AlignBottom)
	return nil
}
