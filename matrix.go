package plot

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Matrix is used both for the user-to-NDC transform set by [Plotter.Space]
// and for the NDC-to-device map computed by [ComputeMap].
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// matrixEpsilon is the tolerance used when classifying a transform.
const matrixEpsilon = 1e-9

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Shear creates a shear matrix.
func Shear(x, y float64) Matrix {
	return Matrix{
		A: 1, B: x, C: 0,
		D: y, E: 1, F: 0,
	}
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// Determinant returns the determinant of the linear part.
// A negative determinant means the transformation flips orientation.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslation reports whether the linear part is the identity,
// i.e. the matrix moves points without distorting them.
func (m Matrix) IsTranslation() bool {
	return near(m.A, 1) && near(m.B, 0) && near(m.D, 0) && near(m.E, 1)
}

// IsUniform reports whether the matrix is a similarity: a uniform scale
// combined with rotation, reflection and translation. Circles map to circles.
func (m Matrix) IsUniform() bool {
	// Columns of the linear part must be orthogonal and of equal length.
	c1 := Point{X: m.A, Y: m.D}
	c2 := Point{X: m.B, Y: m.E}
	l1, l2 := c1.Length(), c2.Length()
	if l1 == 0 || l2 == 0 {
		return false
	}
	scale := math.Max(l1, l2)
	return math.Abs(l1-l2) <= matrixEpsilon*scale && math.Abs(c1.Dot(c2)) <= matrixEpsilon*scale*scale
}

// IsAxisAligned reports whether the matrix maps the x and y axes onto
// the device axes (no rotation or shear).
func (m Matrix) IsAxisAligned() bool {
	return near(m.B, 0) && near(m.D, 0)
}

// ScaleFactor returns the largest singular value of the linear part:
// the maximum factor by which the transform stretches any vector.
func (m Matrix) ScaleFactor() float64 {
	a := m.A*m.A + m.D*m.D
	b := m.A*m.B + m.D*m.E
	c := m.B*m.B + m.E*m.E
	// Largest eigenvalue of the symmetric matrix [a b; b c].
	half := (a + c) / 2
	disc := math.Sqrt(math.Max(0, (a-c)*(a-c)/4+b*b))
	return math.Sqrt(half + disc)
}

// UniformScale returns the scale factor of a similarity transform,
// the square root of the absolute determinant.
func (m Matrix) UniformScale() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// Class classifies the distortion the matrix applies:
// [ScaleNone] for translation only, [ScaleUniform] for a similarity,
// [ScaleAny] for a general affine transform.
func (m Matrix) Class() ScalingClass {
	switch {
	case m.IsTranslation():
		return ScaleNone
	case m.IsUniform():
		return ScaleUniform
	default:
		return ScaleAny
	}
}

func near(v, want float64) bool {
	return math.Abs(v-want) <= matrixEpsilon
}
