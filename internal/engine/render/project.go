package render

import "github.com/Faultbox/meshview/pkg/math"

// Camera bounds and projection constants shared by all backends.
const (
	MinCameraDistance = 1.0
	MaxCameraDistance = 20.0

	fovYDegrees = 60.0
	nearPlane   = 0.1
	farPlane    = 100.0

	// Vertices whose clip-space W falls at or below this are behind the eye
	// or at the projection singularity and are dropped.
	minClipW = 0.0001
)

// ClipVertex is a projected vertex in normalized device coordinates. Invalid
// vertices exclude every primitive that references them.
type ClipVertex struct {
	X, Y, Z float32
	Valid   bool
}

// ModelViewProjection builds the combined matrix for the viewer camera:
// model yaw about Y, then pitch about X, then roll about Z; eye at
// (0, 0, distance) looking at the origin with +Y up; 60 degree perspective.
// The distance is clamped to [MinCameraDistance, MaxCameraDistance].
func ModelViewProjection(yawDeg, pitchDeg, rollDeg, distance, aspect float32) math.Mat4 {
	if distance < MinCameraDistance {
		distance = MinCameraDistance
	}
	if distance > MaxCameraDistance {
		distance = MaxCameraDistance
	}

	modelMat := math.RotateY(math.Radians(yawDeg)).
		Mul(math.RotateX(math.Radians(pitchDeg))).
		Mul(math.RotateZ(math.Radians(rollDeg)))

	view := math.LookAt(
		math.Vec3{Z: distance},
		math.Vec3{},
		math.Vec3{Y: 1},
	)

	proj := math.Perspective(math.Radians(fovYDegrees), aspect, nearPlane, farPlane)
	return proj.Mul(view).Mul(modelMat)
}

// ProjectVertex transforms one model-space position to NDC.
func ProjectVertex(p math.Vec3, mvp math.Mat4) ClipVertex {
	clip := mvp.MulVec4(math.Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if clip.W <= minClipW {
		return ClipVertex{}
	}
	return ClipVertex{
		X:     clip.X / clip.W,
		Y:     clip.Y / clip.W,
		Z:     clip.Z / clip.W,
		Valid: true,
	}
}

// ProjectPositions projects every model position with one MVP.
func ProjectPositions(positions []math.Vec3, mvp math.Mat4) []ClipVertex {
	projected := make([]ClipVertex, len(positions))
	for i, p := range positions {
		projected[i] = ProjectVertex(p, mvp)
	}
	return projected
}
