package math

import (
	"math"
	"math/rand/v2"
	"testing"
)

const eps = 1e-4

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps
}

func approxVec3(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func randomMat4(rng *rand.Rand) Mat4 {
	var m Mat4
	for i := range m {
		m[i] = rng.Float32()*200 - 100
	}
	return m
}

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMultiplyIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for n := 0; n < 200; n++ {
		m := randomMat4(rng)
		if got := Multiply(Identity(), m); got != m {
			t.Fatalf("I * M should equal M\n got: %v\nwant: %v", got, m)
		}
		if got := Multiply(m, Identity()); got != m {
			t.Fatalf("M * I should equal M\n got: %v\nwant: %v", got, m)
		}
	}
}

func TestMultiplyRowMajor(t *testing.T) {
	a := Mat4{
		1, 2, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	b := Mat4{
		1, 0, 0, 0,
		3, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	got := Multiply(a, b)

	// Row 0 of a times columns of b: (1*1 + 2*3, 1*0 + 2*1)
	if got[0] != 7 || got[1] != 2 {
		t.Errorf("expected row 0 to start (7, 2), got (%f, %f)", got[0], got[1])
	}
	if got[4] != 3 || got[5] != 1 {
		t.Errorf("expected row 1 to start (3, 1), got (%f, %f)", got[4], got[5])
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15}, Identity())

	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTranslateAccumulates(t *testing.T) {
	m := Translate(Vec3{1, 2, 3}, Identity())
	m = Translate(Vec3{10, 20, 30}, m)

	got := m.TransformPoint(Vec3{})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestScale(t *testing.T) {
	m := Scale(Vec3{2, 3, 4}, Identity())

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestRotations(t *testing.T) {
	quarter := float32(math.Pi / 2)

	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"x axis turns +Y to +Z", RotateX(quarter, Identity()), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y axis turns +X to -Z", RotateY(quarter, Identity()), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"z axis turns +X to +Y", RotateZ(quarter, Identity()), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformDirection(tt.in)
			if !approxVec3(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30}, Identity())
	got := m.TransformPoint(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformationMatrixOrigin(t *testing.T) {
	positions := []Vec3{
		{0, 0, 0},
		{3, -4, 5},
		{185, 100, -293},
		{-0.25, 1e3, 7},
	}

	for _, pos := range positions {
		m := CreateTransformationMatrix(pos, Vec3{}, Vec3{1, 1, 1})
		if got := m.TransformPoint(Vec3{}); got != pos {
			t.Errorf("expected origin to map to %v, got %v", pos, got)
		}
	}
}

func TestTransformationMatrixOrder(t *testing.T) {
	// Scale first, then rotate, then translate.
	m := CreateTransformationMatrix(Vec3{10, 0, 0}, Vec3{0, 90, 0}, Vec3{2, 2, 2})

	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{10, 0, -2}
	if !approxVec3(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGUITransformationMatrix(t *testing.T) {
	m := CreateGUITransformationMatrix(Vec2{-0.8, -0.5}, Vec2{0.2, 0.4})

	got := m.TransformPoint(Vec3{1, 1, 0})
	want := Vec3{-0.6, -0.1, 0}
	if !approxVec3(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestViewMatrixMovesCameraToOrigin(t *testing.T) {
	pos := Vec3{12, 34, -56}
	view := CreateViewMatrix(pos, 25, 140)

	if got := view.TransformPoint(pos); !approxVec3(got, Vec3{}) {
		t.Errorf("expected camera position to map to eye origin, got %v", got)
	}
}

func TestViewMatrixPitchDown(t *testing.T) {
	view := CreateViewMatrix(Vec3{0, 100, 0}, 90, 0)

	// A point straight below the camera must end up straight ahead (-Z in eye space).
	got := view.TransformPoint(Vec3{0, 0, 0})
	want := Vec3{0, 0, -100}
	if !approxVec3(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPerspectiveProjection(t *testing.T) {
	m := CreatePerspectiveProjection(1280, 720, 70, 0.1, 1000)

	yScale := float32(1 / math.Tan(70*math.Pi/180/2))
	if !approx(m[5], yScale) {
		t.Errorf("expected y scale %f, got %f", yScale, m[5])
	}
	if !approx(m[0], yScale/(1280.0/720.0)) {
		t.Errorf("expected x scale %f, got %f", yScale/(1280.0/720.0), m[0])
	}
	if m[11] != -1 || m[15] != 0 {
		t.Errorf("expected w row (-1, 0), got (%f, %f)", m[11], m[15])
	}
	if !approx(m[10], -1000.1/999.9) {
		t.Errorf("expected m10 %f, got %f", -1000.1/999.9, m[10])
	}
	if !approx(m[14], -200.0/999.9) {
		t.Errorf("expected m14 %f, got %f", -200.0/999.9, m[14])
	}
	if m != DefaultProjection(1280, 720) {
		t.Error("DefaultProjection should use fov 70, near 0.1, far 1000")
	}
}

func TestProjectionCentre(t *testing.T) {
	m := DefaultProjection(1280, 720)
	got := m.TransformPoint(Vec3{0, 0, -10})

	if !approx(got.X, 0) || !approx(got.Y, 0) {
		t.Errorf("expected a point on the view axis to land at the NDC centre, got %v", got)
	}
	if got.Z <= -1 || got.Z >= 1 {
		t.Errorf("expected depth inside the clip range, got %f", got.Z)
	}
}

func TestInverse(t *testing.T) {
	matrices := []Mat4{
		CreateTransformationMatrix(Vec3{1, 2, 3}, Vec3{10, 20, 30}, Vec3{2, 3, 4}),
		CreateViewMatrix(Vec3{-50, 12, 7}, 20, 160),
		DefaultProjection(1280, 720),
	}

	for i, m := range matrices {
		inv, ok := m.Inverse()
		if !ok {
			t.Fatalf("matrix %d: expected an inverse", i)
		}
		product := Multiply(m, inv)
		id := Identity()
		for j := range product {
			if !approx(product[j], id[j]) {
				t.Errorf("matrix %d: M * M^-1 element %d = %f, want %f", i, j, product[j], id[j])
			}
		}
	}
}

func TestInverseSingular(t *testing.T) {
	inv, ok := Mat4{}.Inverse()
	if ok {
		t.Error("expected zero matrix to be reported singular")
	}
	if inv != Identity() {
		t.Errorf("expected identity for a singular matrix, got %v", inv)
	}
}

func TestBarycentric(t *testing.T) {
	p1 := Vec3{0, 4, 0}
	p2 := Vec3{1, -2, 0}
	p3 := Vec3{0, 7, 1}

	tests := []struct {
		name string
		pos  Vec2
		want float32
	}{
		{"first vertex", Vec2{0, 0}, 4},
		{"second vertex", Vec2{1, 0}, -2},
		{"third vertex", Vec2{0, 1}, 7},
		{"edge midpoint", Vec2{0.5, 0}, 1},
		{"centroid", Vec2{1.0 / 3, 1.0 / 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Barycentric(p1, p2, p3, tt.pos); !approx(got, tt.want) {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestWithoutTranslation(t *testing.T) {
	m := CreateViewMatrix(Vec3{5, 6, 7}, 10, 20).WithoutTranslation()
	if m[12] != 0 || m[13] != 0 || m[14] != 0 {
		t.Errorf("expected translation cleared, got (%f, %f, %f)", m[12], m[13], m[14])
	}
}
