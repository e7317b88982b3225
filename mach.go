package mach

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a Surface submits the color.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default stroke color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the default background.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D point or offset. Used for Cartesian points, device pixel
// positions and pan offsets alike; the meaning comes from the call site.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in device or layout pixels. The origin is
// at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Bounds is a rectangle in Cartesian space (y up).
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Contains reports whether the Cartesian point (x, y) lies inside b.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.XMin && x <= b.XMax && y >= b.YMin && y <= b.YMax
}

// Align positions an overlay relative to its anchor point. 0 places the
// content before the anchor (left of it, or above it), 0.5 centers it and 1
// places it after the anchor. Intermediate values interpolate.
type Align float64

const (
	AlignLeft   Align = 0
	AlignTop    Align = 0
	AlignCenter Align = 0.5
	AlignRight  Align = 1
	AlignBottom Align = 1
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// EventType identifies a kind of scene-level event.
type EventType uint8

const (
	EventClick    EventType = iota // press then release without dragging
	EventPan                       // pointer drag moved the view
	EventZoom                      // wheel changed the target scale
	EventSequence                  // sequence key advanced the step counter
)
