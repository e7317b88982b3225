package mach

// Canvas is the drawing context handed to scene objects. It binds a Surface
// to a scene's entry in a Registry, so drawing code can work in Cartesian
// coordinates without knowing which scene it belongs to.
type Canvas struct {
	surface  Surface
	registry *Registry
	id       SceneID
}

// NewCanvas binds surface to id's transform in registry. Scenes create their
// own; this is for drawing outside a scene, such as in tests or offline
// rendering.
func NewCanvas(surface Surface, registry *Registry, id SceneID) *Canvas {
	return &Canvas{surface: surface, registry: registry, id: id}
}

// Surface returns the underlying surface.
func (c *Canvas) Surface() Surface { return c.surface }

// Registry returns the registry holding the transform.
func (c *Canvas) Registry() *Registry { return c.registry }

// SceneID returns the id of the transform the canvas draws with.
func (c *Canvas) SceneID() SceneID { return c.id }

// Size returns the surface's device size.
func (c *Canvas) Size() (width, height int) { return c.surface.Size() }

// Resolution returns the surface's device pixels per layout pixel.
func (c *Canvas) Resolution() float64 { return c.surface.Resolution() }

// Scale returns the current device pixels per Cartesian unit.
func (c *Canvas) Scale() float64 { return c.registry.Scale(c.id) }

// CartesianToDevice converts a Cartesian point to device pixels. ok is false
// when the point is Undefined.
func (c *Canvas) CartesianToDevice(x, y float64) (dx, dy float64, ok bool) {
	return c.registry.CartesianToDevice(c.surface, c.id, x, y)
}

// DeviceToCartesian converts device pixels to a Cartesian point.
func (c *Canvas) DeviceToCartesian(dx, dy float64) (x, y float64, ok bool) {
	return c.registry.DeviceToCartesian(c.surface, c.id, dx, dy)
}

// DOMToCartesian converts window (layout) coordinates to a Cartesian point.
func (c *Canvas) DOMToCartesian(x, y float64) (cx, cy float64, ok bool) {
	return c.registry.DOMToCartesian(c.surface, c.id, x, y)
}

// VisibleBounds returns the Cartesian rectangle currently on screen.
func (c *Canvas) VisibleBounds() Bounds {
	return c.registry.VisibleBounds(c.surface, c.id)
}

// Stroke outlines a device-space path.
func (c *Canvas) Stroke(p *Path, col Color, width float64) {
	c.surface.Stroke(p, col, width)
}

// Fill fills a device-space path.
func (c *Canvas) Fill(p *Path, col Color) {
	c.surface.Fill(p, col)
}

// Text draws a string at a device-space anchor.
func (c *Canvas) Text(s string, x, y float64, col Color, alignX, alignY Align) {
	c.surface.Text(s, x, y, col, alignX, alignY)
}
