package render

// Clear and overlay colors shared by every backend, so switching renderers
// never changes what an identical scene looks like.
const (
	ClearColorR = 18
	ClearColorG = 20
	ClearColorB = 24

	WireColorR = 176
	WireColorG = 210
	WireColorB = 255
)

// blankProbeTolerance is how far a probed channel may sit from the clear
// color and still count as blank. Drivers that dither or quantize the
// backbuffer shift channels by a point or two.
const blankProbeTolerance = 3

// Watchdog thresholds: a backend that produces only clear-colored output
// for blankFrameThreshold consecutive frames inside the first
// blankObservationWindow frames is declared blank.
const (
	blankFrameThreshold    = 45
	blankObservationWindow = 180
)

// ProbeX and ProbeY locate the backbuffer pixel the watchdog samples.
const (
	ProbeX = 30
	ProbeY = 30
)

// PixelIsBlank reports whether a sampled pixel is within tolerance of the
// clear color.
func PixelIsBlank(r, g, b uint8) bool {
	return channelNear(r, ClearColorR) &&
		channelNear(g, ClearColorG) &&
		channelNear(b, ClearColorB)
}

func channelNear(got, want uint8) bool {
	diff := int(got) - int(want)
	if diff < 0 {
		diff = -diff
	}
	return diff <= blankProbeTolerance
}

// BlankWatch detects a backend that claims success but never produces
// output. It watches the first frames after initialization; one non-blank
// frame resets the consecutive count, and once the observation window
// passes the watchdog disarms for good.
type BlankWatch struct {
	frames      int
	consecutive int
	tripped     bool
}

// Observe records one presented frame. It returns true exactly once, on the
// frame where the blank streak reaches the threshold inside the window.
func (w *BlankWatch) Observe(blank bool) bool {
	if w.tripped || w.frames >= blankObservationWindow {
		return false
	}
	w.frames++

	if !blank {
		w.consecutive = 0
		return false
	}
	w.consecutive++
	if w.consecutive >= blankFrameThreshold {
		w.tripped = true
		return true
	}
	return false
}

// Active reports whether the watchdog is still observing.
func (w *BlankWatch) Active() bool {
	return !w.tripped && w.frames < blankObservationWindow
}
