package mach

import (
	"bytes"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// defaultFaceSize is the size in points of the default text face.
const defaultFaceSize = 14

// defaultFaceSource is parsed once from the embedded Go Regular font.
var defaultFaceSource *text.GoTextFaceSource

// defaultFace returns Go Regular, which covers the Greek and math symbols
// labels use. If the font cannot be parsed it falls back to basicfont.
func defaultFace() text.Face {
	if defaultFaceSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return text.NewGoXFace(basicfont.Face7x13)
		}
		defaultFaceSource = src
	}
	return &text.GoTextFace{Source: defaultFaceSource, Size: defaultFaceSize}
}

// whiteImage is the source texture for solid-color triangles. Created on
// first use so that importing the package does not touch the graphics driver.
var whiteImage *ebiten.Image

func whiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(ColorWhite)
	}
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// ImageSurface is a Surface backed by an *ebiten.Image. Paths are tessellated
// with ebiten's vector package and text goes through text/v2.
//
// The surface owns an offscreen image that Resize reallocates. Run draws a
// scene into one and presents it on the window's screen.
type ImageSurface struct {
	img  *ebiten.Image
	w, h int
	box  Rect
	res  float64
	face text.Face

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewImageSurface creates an offscreen surface of the given device size. Its
// layout box is the same size at resolution 1.
func NewImageSurface(width, height int) *ImageSurface {
	s := &ImageSurface{
		res: 1,
		box: Rect{Width: float64(width), Height: float64(height)},
	}
	s.Resize(width, height)
	return s
}

// Image returns the offscreen image the surface draws into.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// SetFace replaces the face used by Text. The default is Go Regular.
func (s *ImageSurface) SetFace(face text.Face) {
	s.face = face
}

// SetLayoutBox sets the surface's rectangle in window coordinates.
func (s *ImageSurface) SetLayoutBox(r Rect) {
	s.box = r
}

// Size implements Sizer.
func (s *ImageSurface) Size() (int, int) {
	return s.w, s.h
}

// Resize implements Surface.
func (s *ImageSurface) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.w, s.h = width, height
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(width, height)
}

// LayoutBox implements Surface.
func (s *ImageSurface) LayoutBox() Rect {
	return s.box
}

// Resolution implements Surface.
func (s *ImageSurface) Resolution() float64 {
	return s.res
}

// SetResolution implements Surface.
func (s *ImageSurface) SetResolution(r float64) {
	s.res = r
}

// Clear implements Surface.
func (s *ImageSurface) Clear(bg Color) {
	if s.img == nil {
		return
	}
	s.img.Fill(bg)
}

// Stroke implements Surface.
func (s *ImageSurface) Stroke(p *Path, c Color, width float64) {
	if s.img == nil || p.Len() == 0 {
		return
	}
	vp := toVectorPath(p)
	vs, is := vp.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	s.drawTriangles(vs, is, c)
}

// Fill implements Surface.
func (s *ImageSurface) Fill(p *Path, c Color) {
	if s.img == nil || p.Len() == 0 {
		return
	}
	vp := toVectorPath(p)
	vs, is := vp.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.drawTriangles(vs, is, c)
}

func (s *ImageSurface) drawTriangles(vs []ebiten.Vertex, is []uint16, c Color) {
	a := float32(clamp01(c.A))
	r := float32(clamp01(c.R)) * a
	g := float32(clamp01(c.G)) * a
	b := float32(clamp01(c.B)) * a
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	s.img.DrawTriangles(vs, is, whiteSubImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	s.vertices, s.indices = vs, is
}

// Text implements Surface. Glyphs are scaled by the resolution so captions
// keep the same apparent size on dense surfaces.
func (s *ImageSurface) Text(str string, x, y float64, c Color, alignX, alignY Align) {
	if s.img == nil || str == "" {
		return
	}
	if s.face == nil {
		s.face = defaultFace()
	}
	m := s.face.Metrics()
	lineHeight := m.HAscent + m.HDescent
	w, h := text.Measure(str, s.face, lineHeight)

	scale := s.res
	if scale <= 0 {
		scale = 1
	}
	w *= scale
	h *= scale

	op := &text.DrawOptions{}
	op.LineSpacing = lineHeight
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x+(float64(alignX)-1)*w, y+(float64(alignY)-1)*h)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.img, str, s.face, op)
}

// toVectorPath replays a Path into an ebiten vector path.
func toVectorPath(p *Path) *vector.Path {
	var vp vector.Path
	for _, cmd := range p.Commands() {
		a := cmd.Args
		switch cmd.Op {
		case PathMoveTo:
			vp.MoveTo(float32(a[0]), float32(a[1]))
		case PathLineTo:
			vp.LineTo(float32(a[0]), float32(a[1]))
		case PathQuadTo:
			vp.QuadTo(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]))
		case PathCubicTo:
			vp.CubicTo(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]), float32(a[4]), float32(a[5]))
		case PathArc:
			dir := vector.Clockwise
			if a[5] != 0 {
				dir = vector.CounterClockwise
			}
			vp.Arc(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]), float32(a[4]), dir)
		case PathClose:
			vp.Close()
		}
	}
	return &vp
}
