package window

import (
	"time"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/shared/id"
)

// Geometry is a window rectangle in screen pixels.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GeometryPatch carries the fields of a partial geometry update. Nil fields
// are left unchanged.
type GeometryPatch struct {
	X      *int `json:"x,omitempty"`
	Y      *int `json:"y,omitempty"`
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
}

// Move builds a patch changing only the position.
func Move(x, y int) GeometryPatch {
	return GeometryPatch{X: &x, Y: &y}
}

// Resize builds a patch changing only the size.
func Resize(width, height int) GeometryPatch {
	return GeometryPatch{Width: &width, Height: &height}
}

// Apply returns g with the patch merged in.
func (p GeometryPatch) Apply(g Geometry) Geometry {
	if p.X != nil {
		g.X = *p.X
	}
	if p.Y != nil {
		g.Y = *p.Y
	}
	if p.Width != nil {
		g.Width = *p.Width
	}
	if p.Height != nil {
		g.Height = *p.Height
	}
	return g
}

// Record is one open application window.
type Record struct {
	ID        id.WindowID `json:"id"`
	AppID     string      `json:"app_id"`
	Title     string      `json:"title"`
	Geometry  Geometry    `json:"geometry"`
	Minimized bool        `json:"minimized"`
	Maximized bool        `json:"maximized"`
	ZOrder    int64       `json:"z_order"`
}

// Layout returns the rectangle the window occupies inside bounds. A
// maximized window fills bounds; the stored geometry is not changed.
func (r Record) Layout(bounds Geometry) Geometry {
	if r.Maximized {
		return bounds
	}
	return r.Geometry
}

// Visible reports whether the window is painted.
func (r Record) Visible() bool {
	return !r.Minimized
}

// OpenedAt returns the spawn time encoded in the window id.
func (r Record) OpenedAt() (time.Time, error) {
	return id.Timestamp(r.ID.String())
}
