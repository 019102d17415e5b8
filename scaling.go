package plot

import "fmt"

// PrimitiveKind identifies a curved or closed primitive whose native
// rendering depends on the active transform.
type PrimitiveKind uint8

const (
	PrimArc PrimitiveKind = iota
	PrimEllArc
	PrimQuad
	PrimCubic
	PrimBox
	PrimCircle
	PrimEllipse

	numPrimitiveKinds
)

var primitiveKindNames = [...]string{
	PrimArc:     "arc",
	PrimEllArc:  "ellarc",
	PrimQuad:    "quad",
	PrimCubic:   "cubic",
	PrimBox:     "box",
	PrimCircle:  "circle",
	PrimEllipse: "ellipse",
}

func (k PrimitiveKind) String() string {
	if int(k) < len(primitiveKindNames) {
		return primitiveKindNames[k]
	}
	return fmt.Sprintf("PrimitiveKind(%d)", k)
}

// ScalingClass orders affine distortions: a transform of class c can be
// rendered natively by a backend whose policy for the primitive is >= c.
type ScalingClass uint8

const (
	scalingUnset ScalingClass = iota
	// ScaleNone allows translation only.
	ScaleNone
	// ScaleUniform allows similarities (uniform scale, rotation, reflection).
	ScaleUniform
	// ScaleAny allows every affine transform.
	ScaleAny
)

func (c ScalingClass) String() string {
	switch c {
	case ScaleNone:
		return "none"
	case ScaleUniform:
		return "uniform"
	case ScaleAny:
		return "any"
	default:
		return "unset"
	}
}

// ScalingPolicy maps each primitive kind to the most general transform
// class the backend renders natively.
type ScalingPolicy [numPrimitiveKinds]ScalingClass

// PolicyAll returns a policy allowing class c for every primitive kind.
func PolicyAll(c ScalingClass) ScalingPolicy {
	var p ScalingPolicy
	for i := range p {
		p[i] = c
	}
	return p
}

// With returns a copy of p with kind set to c.
func (p ScalingPolicy) With(kind PrimitiveKind, c ScalingClass) ScalingPolicy {
	p[kind] = c
	return p
}

func (p ScalingPolicy) validate() error {
	for k, c := range p {
		if c < ScaleNone || c > ScaleAny {
			return fmt.Errorf("scaling for %s unset", PrimitiveKind(k))
		}
	}
	return nil
}

// MaxAllowedClass returns the most general transform class under which
// the backend described by d renders kind natively.
func MaxAllowedClass(kind PrimitiveKind, d *Descriptor) ScalingClass {
	return d.Scaling[kind]
}

// ClassifyTransform returns the distortion class of m.
func ClassifyTransform(m Matrix) ScalingClass {
	return m.Class()
}

// Native reports whether d can render kind natively under transform m.
// When it returns false the primitive must be flattened to line segments.
func Native(kind PrimitiveKind, d *Descriptor, m Matrix) bool {
	return ClassifyTransform(m) <= MaxAllowedClass(kind, d)
}
