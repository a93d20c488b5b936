package types

import "math"

// Mat3 is a 3x3 matrix stored as three row vectors. When used as a linear
// space (see Frame/Clamp below) the rows are the space's orthonormal axes,
// so transforming a world-space vector into the space is a row-major
// matrix-vector product.
type Mat3 struct {
	X, Y, Z Vec3
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		X: Vec3{1, 0, 0},
		Y: Vec3{0, 1, 0},
		Z: Vec3{0, 0, 1},
	}
}

// Transform applies the matrix to a world-space vector, row by row.
func (m Mat3) Transform(v Vec3) Vec3 {
	return Vec3{m.X.Dot(v), m.Y.Dot(v), m.Z.Dot(v)}
}

// Transposed returns the transpose of the matrix.
func (m Mat3) Transposed() Mat3 {
	return Mat3{
		X: Vec3{m.X[0], m.Y[0], m.Z[0]},
		Y: Vec3{m.X[1], m.Y[1], m.Z[1]},
		Z: Vec3{m.X[2], m.Y[2], m.Z[2]},
	}
}

// Frame builds an orthonormal basis whose Z axis is the (already
// normalized) input direction, using the standard Duff et al.
// branchless construction so that it stays stable for directions close
// to the poles.
func Frame(z Vec3) Mat3 {
	sign := float32(1.0)
	if z[2] < 0 {
		sign = -1.0
	}
	a := -1.0 / (sign + z[2])
	b := z[0] * z[1] * a
	x := Vec3{1 + sign*z[0]*z[0]*a, sign * b, -sign * z[0]}
	y := Vec3{b, sign + z[1]*z[1]*a, -z[1]}
	return Mat3{X: x, Y: y, Z: z}
}

// Clamp re-orthonormalizes a frame via Gram-Schmidt, guarding against the
// numerical drift that repeated transforms of a hand-built frame can
// introduce. It also bounds the magnitude of each row so a near-degenerate
// input can never produce a row with huge components.
func (m Mat3) Clamp() Mat3 {
	x := m.X.Normalize()
	y := m.Y.Sub(x.Mul(x.Dot(m.Y))).Normalize()
	z := x.Cross(y)

	clampRow := func(v Vec3) Vec3 {
		const maxComponent = 1e4
		for i := 0; i < 3; i++ {
			if v[i] > maxComponent {
				v[i] = maxComponent
			} else if v[i] < -maxComponent {
				v[i] = -maxComponent
			}
		}
		return v
	}
	return Mat3{X: clampRow(x), Y: clampRow(y), Z: clampRow(z)}
}

// Orthonormal reports whether the matrix's rows are unit length and
// pairwise orthogonal to within tolerance.
func (m Mat3) Orthonormal(tolerance float32) bool {
	unit := func(v Vec3) bool {
		l := v.Len()
		return float32(math.Abs(float64(l-1))) <= tolerance
	}
	if !unit(m.X) || !unit(m.Y) || !unit(m.Z) {
		return false
	}
	ortho := func(a, b Vec3) bool {
		return float32(math.Abs(float64(a.Dot(b)))) <= tolerance
	}
	return ortho(m.X, m.Y) && ortho(m.Y, m.Z) && ortho(m.X, m.Z)
}
