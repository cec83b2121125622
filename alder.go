package alder

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when converting for ebiten via toRGBA.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default foreground color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// WhitePixel is a 1x1 white image. Render hooks scale and tint it to draw
// solid rectangles without allocating per-component images.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// FillRect draws a solid rectangle onto target by scaling WhitePixel. The
// color scale is premultiplied, matching what ebiten expects.
func FillRect(target *ebiten.Image, r Rect, c Color) {
	if target == nil || r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	target.DrawImage(WhitePixel, &op)
}

// StrokeRect draws the outline of a rectangle as four filled edges of the
// given thickness, inset into the rectangle.
func StrokeRect(target *ebiten.Image, r Rect, thickness float64, c Color) {
	FillRect(target, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: thickness}, c)
	FillRect(target, Rect{X: r.X, Y: r.Y + r.Height - thickness, Width: r.Width, Height: thickness}, c)
	FillRect(target, Rect{X: r.X, Y: r.Y + thickness, Width: thickness, Height: r.Height - 2*thickness}, c)
	FillRect(target, Rect{X: r.X + r.Width - thickness, Y: r.Y + thickness, Width: thickness, Height: r.Height - 2*thickness}, c)
}
