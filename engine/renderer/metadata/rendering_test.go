package metadata

import (
	"testing"
	"unsafe"
)

func TestVertexLayoutMatchesPipeline(t *testing.T) {
	var v Vertex3D
	if got := unsafe.Sizeof(v); got != uintptr(Vertex3DSize) {
		t.Errorf("Vertex3D size = %d, want %d", got, Vertex3DSize)
	}
	if got := unsafe.Offsetof(v.Position); got != 0 {
		t.Errorf("Position offset = %d, want 0", got)
	}
	if got := unsafe.Offsetof(v.Normal); got != uintptr(Vertex3DNormalOffset) {
		t.Errorf("Normal offset = %d, want %d", got, Vertex3DNormalOffset)
	}
	if got := unsafe.Offsetof(v.TexCoord); got != uintptr(Vertex3DTexCoordOffset) {
		t.Errorf("TexCoord offset = %d, want %d", got, Vertex3DTexCoordOffset)
	}
}

func TestUniformBlockSizes(t *testing.T) {
	if got := unsafe.Sizeof(UBOMatrices{}); got != uintptr(UBOMatricesSize) {
		t.Errorf("UBOMatrices size = %d, want %d", got, UBOMatricesSize)
	}
	if got := unsafe.Sizeof(UBOParams{}); got != uintptr(UBOParamsSize) {
		t.Errorf("UBOParams size = %d, want %d", got, UBOParamsSize)
	}
}

func TestDummyPixelsAreOpaqueAndSized(t *testing.T) {
	for _, role := range AllTextureRoles() {
		pixels, dim := DummyPixels(role)
		if len(pixels) != int(dim*dim*4) {
			t.Fatalf("%s: %d bytes for dimension %d", role, len(pixels), dim)
		}
		for i := 3; i < len(pixels); i += 4 {
			if pixels[i] != 255 {
				t.Fatalf("%s: alpha at %d is %d", role, i, pixels[i])
			}
		}
	}
}
