// Package camera tracks the viewer's model orientation and zoom.
package camera

// ViewerCamera holds the model rotation and camera distance the renderer
// consumes. The model rotates under a fixed camera, so dragging changes the
// model's yaw and pitch rather than moving an eye point.
type ViewerCamera struct {
	YawDeg   float32
	PitchDeg float32
	RollDeg  float32
	Distance float32

	// Sensitivity
	RotateSpeed float32 // degrees per pixel of drag
	ZoomStep    float32 // distance change per wheel notch

	// Constraints
	MinDistance float32
	MaxDistance float32
}

// New creates a camera with the viewer's default pose.
func New(rotateSpeed, zoomStep, minDistance, maxDistance float32) *ViewerCamera {
	return &ViewerCamera{
		Distance:    (minDistance + maxDistance) / 2,
		RotateSpeed: rotateSpeed,
		ZoomStep:    zoomStep,
		MinDistance: minDistance,
		MaxDistance: maxDistance,
	}
}

// HandleDrag updates yaw and pitch from a mouse drag delta in pixels.
func (c *ViewerCamera) HandleDrag(deltaX, deltaY float32) {
	c.YawDeg += deltaX * c.RotateSpeed
	c.PitchDeg += deltaY * c.RotateSpeed

	c.YawDeg = wrapDegrees(c.YawDeg)
	c.PitchDeg = wrapDegrees(c.PitchDeg)
}

// HandleZoom updates distance from scroll wheel notches. Scrolling away
// from the user moves closer.
func (c *ViewerCamera) HandleZoom(notches float32) {
	c.Distance -= notches * c.ZoomStep
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Reset restores the default pose without touching sensitivities.
func (c *ViewerCamera) Reset() {
	c.YawDeg = 0
	c.PitchDeg = 0
	c.RollDeg = 0
	c.Distance = (c.MinDistance + c.MaxDistance) / 2
}

// wrapDegrees keeps an angle in (-360, 360) so long drags never overflow
// float precision.
func wrapDegrees(deg float32) float32 {
	for deg >= 360 {
		deg -= 360
	}
	for deg <= -360 {
		deg += 360
	}
	return deg
}
