package component

import "math"

type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

// DistanceTo returns the euclidean distance between two transforms.
func (t *Transform) DistanceTo(o *Transform) float64 {
	return math.Hypot(o.X-t.X, o.Y-t.Y)
}
