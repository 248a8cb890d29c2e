package console

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// FormatPoint renders the point reached after joint n.
func FormatPoint(n int, p r3.Vec) string {
	return fmt.Sprintf("joint %d: (%.3f, %.3f, %.3f)", n, zero(p.X), zero(p.Y), zero(p.Z))
}

// zero folds negative zero and rounding noise so output is stable.
func zero(v float64) float64 {
	if v > -5e-4 && v < 5e-4 {
		return 0
	}
	return v
}
