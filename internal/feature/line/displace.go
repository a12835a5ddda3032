package line

import (
	stdmath "math"

	"github.com/Faultbox/geoline/pkg/math"
)

const (
	degenerateEpsilon = 1e-4
	twoPi             = 2 * stdmath.Pi
)

// Displace evaluates the vertex shader on the CPU. mvp is the combined
// projection and model-view matrix; the result is the displaced vertex in
// normalized device coordinates.
func Displace(mvp math.Mat4, pos, prev, next [3]float32, offset, strokeWidth, pixelWidth float32) math.Vec4 {
	worldPos := project(mvp, pos)
	deltaPrev := worldPos.XY().Sub(project(mvp, prev).XY())
	deltaNext := project(mvp, next).XY().Sub(worldPos.XY())

	anglePrev := float64(deltaPrev.Angle())
	angleNext := float64(deltaNext.Angle())
	if degenerate(deltaPrev) {
		anglePrev = angleNext
	}
	if degenerate(deltaNext) {
		angleNext = anglePrev
	}
	if angleNext-anglePrev > stdmath.Pi {
		anglePrev += twoPi
	} else if anglePrev-angleNext > stdmath.Pi {
		angleNext += twoPi
	}

	angle := (anglePrev + angleNext) / 2
	distance := float64(offset*strokeWidth*pixelWidth) / stdmath.Cos(anglePrev-angle)
	worldPos[0] += float32(distance * stdmath.Sin(angle))
	worldPos[1] -= float32(distance * stdmath.Cos(angle))
	return worldPos
}

func project(mvp math.Mat4, p [3]float32) math.Vec4 {
	return mvp.MulVec4(math.Vec4{p[0], p[1], p[2], 1}).PerspectiveDivide()
}

func degenerate(d math.Vec2) bool {
	return stdmath.Abs(float64(d.X)) < degenerateEpsilon && stdmath.Abs(float64(d.Y)) < degenerateEpsilon
}
