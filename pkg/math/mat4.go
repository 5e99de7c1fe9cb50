package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults used by the demo scene.
const (
	DefaultFOV  float32 = 70
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 1000
)

// Mat4 is a 4x4 matrix stored row by row: element (r, c) lives at index r*4+c.
// Points are row vectors multiplied on the left (p' = p*M), so the translation
// sits in elements 12, 13 and 14.
//
// This is the same memory layout OpenGL expects for a column-major upload, so
// a Mat4 is passed to UniformMatrix4fv without transposing.
//
//	[m0  m1  m2  m3 ]
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
type Mat4 [16]float32

// Vec4 is a 4-component vector.
type Vec4 [4]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Multiply returns the matrix product a * b.
func Multiply(a, b Mat4) Mat4 {
	var result Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[r*4+c] =
				a[r*4+0]*b[0*4+c] +
					a[r*4+1]*b[1*4+c] +
					a[r*4+2]*b[2*4+c] +
					a[r*4+3]*b[3*4+c]
		}
	}
	return result
}

// Translate returns T * m where T translates by v.
func Translate(v Vec3, m Mat4) Mat4 {
	t := Identity()
	t[12] = v.X
	t[13] = v.Y
	t[14] = v.Z
	return Multiply(t, m)
}

// RotateX returns R * m where R rotates by angle radians around the X axis.
func RotateX(angle float32, m Mat4) Mat4 {
	s, c := math32.Sincos(angle)
	r := Identity()
	r[5] = c
	r[6] = s
	r[9] = -s
	r[10] = c
	return Multiply(r, m)
}

// RotateY returns R * m where R rotates by angle radians around the Y axis.
func RotateY(angle float32, m Mat4) Mat4 {
	s, c := math32.Sincos(angle)
	r := Identity()
	r[0] = c
	r[2] = -s
	r[8] = s
	r[10] = c
	return Multiply(r, m)
}

// RotateZ returns R * m where R rotates by angle radians around the Z axis.
func RotateZ(angle float32, m Mat4) Mat4 {
	s, c := math32.Sincos(angle)
	r := Identity()
	r[0] = c
	r[1] = s
	r[4] = -s
	r[5] = c
	return Multiply(r, m)
}

// Scale returns S * m where S scales each axis by the matching component of v.
func Scale(v Vec3, m Mat4) Mat4 {
	s := Identity()
	s[0] = v.X
	s[5] = v.Y
	s[10] = v.Z
	return Multiply(s, m)
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// CreateTransformationMatrix builds a model matrix from a position, a rotation
// in degrees around each axis and a per-axis scale.
//
// The builders are applied translate, rotateX, rotateY, rotateZ, scale. Each
// call prepends its matrix, which yields scale, then rotation, then
// translation when applied to a point.
func CreateTransformationMatrix(position, rotation, scale Vec3) Mat4 {
	m := Identity()
	m = Translate(position, m)
	m = RotateX(Radians(rotation.X), m)
	m = RotateY(Radians(rotation.Y), m)
	m = RotateZ(Radians(rotation.Z), m)
	m = Scale(scale, m)
	return m
}

// CreateGUITransformationMatrix places a screen quad: scale in NDC units, then
// move to translation.
func CreateGUITransformationMatrix(translation, scale Vec2) Mat4 {
	m := Translate(Vec3{translation.X, translation.Y, 0}, Identity())
	return Scale(Vec3{scale.X, scale.Y, 1}, m)
}

// CreateViewMatrix maps world space into the eye space of a camera at
// position, with pitch and yaw given in degrees.
func CreateViewMatrix(position Vec3, pitch, yaw float32) Mat4 {
	m := RotateX(Radians(pitch), Identity())
	m = RotateY(Radians(yaw), m)
	return Translate(position.Scale(-1), m)
}

// CreatePerspectiveProjection returns a perspective projection for a viewport
// of width x height pixels. fov is the vertical field of view in degrees.
// height must not be zero.
func CreatePerspectiveProjection(width, height, fov, near, far float32) Mat4 {
	aspect := width / height
	yScale := 1 / math32.Tan(Radians(fov)/2)
	xScale := yScale / aspect
	frustum := far - near

	m := Identity()
	m[0] = xScale
	m[5] = yScale
	m[10] = -((far + near) / frustum)
	m[11] = -1
	m[14] = -((2 * near * far) / frustum)
	m[15] = 0
	return m
}

// DefaultProjection is CreatePerspectiveProjection with the default fov and
// clip planes.
func DefaultProjection(width, height float32) Mat4 {
	return CreatePerspectiveProjection(width, height, DefaultFOV, DefaultNear, DefaultFar)
}

// Barycentric interpolates the Y value of the triangle p1, p2, p3 at the
// point pos, where pos.X and pos.Y are coordinates on the triangle's XZ plane.
func Barycentric(p1, p2, p3 Vec3, pos Vec2) float32 {
	det := (p2.Z-p3.Z)*(p1.X-p3.X) + (p3.X-p2.X)*(p1.Z-p3.Z)
	l1 := ((p2.Z-p3.Z)*(pos.X-p3.X) + (p3.X-p2.X)*(pos.Y-p3.Z)) / det
	l2 := ((p3.Z-p1.Z)*(pos.X-p3.X) + (p1.X-p3.X)*(pos.Y-p3.Z)) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y + l2*p2.Y + l3*p3.Y
}

// MulVec4 returns the row vector v multiplied by m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// TransformPoint transforms a point (w=1), dividing by w when it is not 1.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	v := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	if v[3] != 0 && v[3] != 1 {
		return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
	}
	return Vec3{v[0], v[1], v[2]}
}

// TransformDirection transforms a direction (w=0), ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	v := m.MulVec4(Vec4{d.X, d.Y, d.Z, 0})
	return Vec3{v[0], v[1], v[2]}
}

// Inverse returns the inverse of m. The second result is false when m is
// singular, in which case the identity is returned.
func (m Mat4) Inverse() (Mat4, bool) {
	g := mgl32.Mat4(m)
	det := g.Det()
	if det == 0 || math32.IsNaN(det) || math32.IsInf(det, 0) {
		return Identity(), false
	}
	return Mat4(g.Inv()), true
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t[c*4+r] = m[r*4+c]
		}
	}
	return t
}

// WithoutTranslation returns m with elements 12..14 cleared.
func (m Mat4) WithoutTranslation() Mat4 {
	m[12], m[13], m[14] = 0, 0, 0
	return m
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
