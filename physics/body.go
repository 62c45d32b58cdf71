package physics

// Body is the kinematic state of any moving actor. X and Y are the center of
// its box. Horizontal motion is supplied per tick as a displacement, so only
// the vertical velocity is stored.
type Body struct {
	X, Y          float64
	Width, Height float64
	VelocityY     float64
	Grounded      bool
}

// NewBody returns an airborne body at rest.
func NewBody(x, y, width, height float64) Body {
	return Body{X: x, Y: y, Width: width, Height: height}
}

func (b Body) Left() float64   { return b.X - b.Width/2 }
func (b Body) Right() float64  { return b.X + b.Width/2 }
func (b Body) Bottom() float64 { return b.Y - b.Height/2 }
func (b Body) Top() float64    { return b.Y + b.Height/2 }

// Reset moves the body to a spawn point and clears its motion in one step.
func (b *Body) Reset(x, y float64) {
	*b = Body{X: x, Y: y, Width: b.Width, Height: b.Height}
}

// Jump launches a grounded body. Airborne bodies ignore the request.
func (b *Body) Jump(force float64) bool {
	if !b.Grounded {
		return false
	}
	b.VelocityY = force
	b.Grounded = false
	return true
}

// Bounce pops the body upward with factor*force, grounded or not.
func (b *Body) Bounce(force, factor float64) {
	b.VelocityY = force * factor
	b.Grounded = false
}

func (b *Body) coord(axis Axis) float64 {
	if axis == Horizontal {
		return b.X
	}
	return b.Y
}

func (b *Body) setCoord(axis Axis, v float64) {
	if axis == Horizontal {
		b.X = v
	} else {
		b.Y = v
	}
}
