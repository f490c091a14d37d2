package components

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSkyboxViewStripsTranslation(t *testing.T) {
	c := NewCamera()
	c.SetPosition(mgl32.Vec3{4, 2.5, -0.4})
	c.SetEulerRotation(mgl32.Vec3{10, 45, 0})

	view := c.GetView()
	sky := c.GetSkyboxView()

	if col := sky.Col(3); col != (mgl32.Vec4{0, 0, 0, 1}) {
		t.Fatalf("skybox view translation column = %v", col)
	}
	// The rotation part must be untouched.
	for col := 0; col < 3; col++ {
		if view.Col(col) != sky.Col(col) {
			t.Fatalf("column %d differs between view and skybox view", col)
		}
	}
}

func TestProjectionFlipsY(t *testing.T) {
	c := NewCamera()
	proj := c.GetProjection(16.0 / 9.0)
	if proj[5] >= 0 {
		t.Fatalf("proj[5] = %v, want negative for flipped clip space", proj[5])
	}
}

func TestViewIsRecalculatedAfterMove(t *testing.T) {
	c := NewCamera()
	c.SetPosition(mgl32.Vec3{1, 0, 0})
	first := c.GetView()
	c.SetPosition(mgl32.Vec3{2, 0, 0})
	second := c.GetView()
	if first == second {
		t.Fatal("moving the camera did not change the view matrix")
	}
}
