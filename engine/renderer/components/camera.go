package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/aura/engine/mathex"
)

/**
 * @brief Represents the viewing camera. Created and managed by the
 * camera system; the demo uses a single fixed one.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position mgl32.Vec3
	/**
	 * @brief The rotation of this camera using Euler angles (pitch, yaw, roll)
	 * in degrees. NOTE: Do not set this directly, use SetEulerRotation()
	 * instead so the view matrix is recalculated when needed.
	 */
	EulerRotation mgl32.Vec3
	/** @brief Vertical field of view in degrees. */
	FovDeg float32
	/** @brief Near clip plane distance. */
	Near float32
	/** @brief Far clip plane distance. */
	Far float32

	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	isDirty    bool
	viewMatrix mgl32.Mat4
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewCamera() *Camera {
	camera := &Camera{
		FovDeg: 60.0,
		Near:   0.1,
		Far:    256.0,
	}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.EulerRotation = mgl32.Vec3{}
	c.Position = mgl32.Vec3{}
	c.isDirty = false
	c.viewMatrix = mgl32.Ident4()
}

func (c *Camera) GetPosition() mgl32.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.Position = position
	c.isDirty = true
}

func (c *Camera) GetEulerRotation() mgl32.Vec3 {
	return c.EulerRotation
}

func (c *Camera) SetEulerRotation(rotation mgl32.Vec3) {
	c.EulerRotation = rotation
	c.isDirty = true
}

// GetView returns the view matrix, rebuilding it when position or
// rotation changed since the last call.
func (c *Camera) GetView() mgl32.Mat4 {
	if c.isDirty {
		rotation := mgl32.Rotate3DX(mathex.DegToRad(c.EulerRotation.X())).
			Mul3(mgl32.Rotate3DY(mathex.DegToRad(c.EulerRotation.Y()))).
			Mul3(mgl32.Rotate3DZ(mathex.DegToRad(c.EulerRotation.Z()))).Mat4()
		translation := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())

		c.viewMatrix = rotation.Mul4(translation).Inv()
		c.isDirty = false
	}
	return c.viewMatrix
}

// GetSkyboxView is the view matrix with the translation stripped, so the
// skybox stays centered on the camera.
func (c *Camera) GetSkyboxView() mgl32.Mat4 {
	view := c.GetView()
	view.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return view
}

// GetProjection builds the perspective projection for the given aspect
// ratio. The Y axis is flipped for Vulkan clip space.
func (c *Camera) GetProjection(aspect float32) mgl32.Mat4 {
	proj := mgl32.Perspective(mathex.DegToRad(c.FovDeg), aspect, c.Near, c.Far)
	proj[5] *= -1
	return proj
}
