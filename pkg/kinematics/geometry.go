package kinematics

import (
	"fmt"
	"math"
)

// Link holds the constant Denavit-Hartenberg values of one joint.
type Link struct {
	A        float64 // link length along x, mm
	D        float64 // link offset along z, mm
	SinAlpha float64 // twist sine, one of -1, 0, 1
	CosAlpha float64 // twist cosine, one of -1, 0, 1
	Offset   float64 // joint zero offset, radians
	Reversed bool    // joint turns against its z axis
}

// Twist returns the sine/cosine pair of a twist given in quarter turns.
func Twist(quarterTurns int) (sin, cos float64) {
	switch ((quarterTurns % 4) + 4) % 4 {
	case 1:
		return 1, 0
	case 2:
		return 0, -1
	case 3:
		return -1, 0
	default:
		return 0, 1
	}
}

// Theta returns the effective rotation about z for a joint angle.
func (l Link) Theta(angle float64) float64 {
	if l.Reversed {
		angle = -angle
	}
	return angle + l.Offset
}

// Transform returns the frame transform of this link for a joint angle:
// rotate about z and translate D along it, then translate A along x and
// rotate by the twist about x.
func (l Link) Transform(angle float64) Transform {
	s, c := math.Sincos(l.Theta(angle))
	sa, ca := l.SinAlpha, l.CosAlpha
	return Transform{
		{c, -s * ca, s * sa, l.A * c},
		{s, c * ca, -c * sa, l.A * s},
		{0, sa, ca, l.D},
		{0, 0, 0, 1},
	}
}

func (l Link) validate(joint int) error {
	for _, v := range []float64{l.A, l.D, l.Offset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &GeometryError{Joint: joint, Reason: "non-finite constant"}
		}
	}
	if l.A < 0 {
		return &GeometryError{Joint: joint, Reason: fmt.Sprintf("negative link length %g", l.A)}
	}
	if !isUnitStep(l.SinAlpha) || !isUnitStep(l.CosAlpha) ||
		l.SinAlpha*l.SinAlpha+l.CosAlpha*l.CosAlpha != 1 {
		return &GeometryError{Joint: joint, Reason: fmt.Sprintf("twist (%g, %g) is not a multiple of 90°", l.SinAlpha, l.CosAlpha)}
	}
	return nil
}

func isUnitStep(v float64) bool {
	return v == -1 || v == 0 || v == 1
}

// Geometry is an immutable DH table plus a tool offset along the last z
// axis. It is safe for concurrent use.
type Geometry struct {
	links []Link
	tool  float64
}

// NewGeometry validates links and returns a geometry owning a copy of them.
func NewGeometry(links []Link, tool float64) (*Geometry, error) {
	if len(links) == 0 {
		return nil, &GeometryError{Reason: "no links"}
	}
	for i, l := range links {
		if err := l.validate(i + 1); err != nil {
			return nil, err
		}
	}
	if math.IsNaN(tool) || math.IsInf(tool, 0) {
		return nil, &GeometryError{Reason: "non-finite tool offset"}
	}
	return &Geometry{
		links: append([]Link(nil), links...),
		tool:  tool,
	}, nil
}

// NumJoints returns the number of links.
func (g *Geometry) NumJoints() int {
	return len(g.links)
}

// Link returns link i (0-based).
func (g *Geometry) Link(i int) Link {
	return g.links[i]
}

// Links returns a copy of the DH table.
func (g *Geometry) Links() []Link {
	return append([]Link(nil), g.links...)
}

// Tool returns the tool offset along the last joint's z axis, mm.
func (g *Geometry) Tool() float64 {
	return g.tool
}

// Dimensions are the non-zero constants of a six-axis arm with a spherical
// wrist, in millimeters.
type Dimensions struct {
	A1   float64 `json:"a1" mapstructure:"a1"`
	D1   float64 `json:"d1" mapstructure:"d1"`
	A2   float64 `json:"a2" mapstructure:"a2"`
	A3   float64 `json:"a3" mapstructure:"a3"`
	D4   float64 `json:"d4" mapstructure:"d4"`
	D6   float64 `json:"d6" mapstructure:"d6"`
	Tool float64 `json:"tool" mapstructure:"tool"`
}

// ReferenceDimensions is the six-axis arm the solver was characterized on.
var ReferenceDimensions = Dimensions{
	A1: 100,
	D1: 350,
	A2: 250,
	A3: 130,
	D4: 250,
	D6: 85,
}

// sixAxisLayout lists twist and zero offset per joint of the supported arm.
var sixAxisLayout = [6]struct {
	quarterTurns int
	offset       float64
}{
	{-1, 0},
	{0, -math.Pi / 2},
	{-1, -math.Pi / 2},
	{1, 0},
	{-1, 0},
	{0, math.Pi},
}

// NewSixAxis builds the geometry of a six-axis arm whose last three axes
// intersect at the wrist center.
func NewSixAxis(dim Dimensions) (*Geometry, error) {
	links := make([]Link, len(sixAxisLayout))
	for i, j := range sixAxisLayout {
		sa, ca := Twist(j.quarterTurns)
		links[i] = Link{SinAlpha: sa, CosAlpha: ca, Offset: j.offset}
	}
	links[0].A, links[0].D = dim.A1, dim.D1
	links[1].A = dim.A2
	links[2].A = dim.A3
	links[3].D = dim.D4
	links[5].D = dim.D6
	return NewGeometry(links, dim.Tool)
}

// Dimensions returns the six-axis constants of g. It fails when g does not
// have the spherical-wrist layout NewSixAxis produces.
func (g *Geometry) Dimensions() (Dimensions, error) {
	if err := g.checkSixAxis(); err != nil {
		return Dimensions{}, err
	}
	return Dimensions{
		A1:   g.links[0].A,
		D1:   g.links[0].D,
		A2:   g.links[1].A,
		A3:   g.links[2].A,
		D4:   g.links[3].D,
		D6:   g.links[5].D,
		Tool: g.tool,
	}, nil
}

func (g *Geometry) checkSixAxis() error {
	if len(g.links) != len(sixAxisLayout) {
		return &GeometryError{Reason: fmt.Sprintf("solver needs %d joints, geometry has %d", len(sixAxisLayout), len(g.links))}
	}
	for i, j := range sixAxisLayout {
		l := g.links[i]
		sa, ca := Twist(j.quarterTurns)
		if l.SinAlpha != sa || l.CosAlpha != ca || l.Offset != j.offset || l.Reversed {
			return &GeometryError{Joint: i + 1, Reason: "twist or zero offset differs from the spherical-wrist layout"}
		}
	}
	zero := []struct {
		joint int
		v     float64
	}{
		{2, g.links[1].D}, {3, g.links[2].D}, {4, g.links[3].A},
		{5, g.links[4].A}, {5, g.links[4].D}, {6, g.links[5].A},
	}
	for _, z := range zero {
		if z.v != 0 {
			return &GeometryError{Joint: z.joint, Reason: "wrist axes do not intersect"}
		}
	}
	if g.links[1].A == 0 || math.Hypot(g.links[2].A, g.links[3].D) == 0 {
		return &GeometryError{Reason: "upper arm and forearm must have non-zero length"}
	}
	return nil
}
