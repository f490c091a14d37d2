package brdf

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDistributionGGXPositiveAndFinite(t *testing.T) {
	for r := float32(0.05); r <= 1.0; r += 0.05 {
		for h := float32(0.001); h <= 1.0; h += 0.111 {
			d := DistributionGGX(h, r)
			if d <= 0 {
				t.Errorf("D(%v, %v) = %v, expected > 0", h, r, d)
			}
			if math.IsNaN(float64(d)) || math.IsInf(float64(d), 0) {
				t.Errorf("D(%v, %v) = %v, expected finite", h, r, d)
			}
		}
	}
}

func TestDistributionGGXPeaksAtNormalIncidence(t *testing.T) {
	r := float32(0.3)
	if DistributionGGX(1.0, r) <= DistributionGGX(0.5, r) {
		t.Error("distribution should peak when the half vector aligns with the normal")
	}
}

func TestFresnelEndpoints(t *testing.T) {
	albedo := mgl32.Vec3{0.8, 0.2, 0.1}

	// Dielectric at normal incidence reflects the base 4%.
	f := FresnelSchlick(1.0, albedo, 0.0)
	if math.Abs(float64(f.X()-0.04)) > 1e-6 {
		t.Errorf("dielectric F at cos=1 is %v, want 0.04", f.X())
	}

	// Full metal at normal incidence reflects the albedo.
	f = FresnelSchlick(1.0, albedo, 1.0)
	if math.Abs(float64(f.X()-0.8)) > 1e-6 || math.Abs(float64(f.Y()-0.2)) > 1e-6 {
		t.Errorf("metal F at cos=1 is %v, want albedo %v", f, albedo)
	}

	// Grazing angle pushes every channel toward 1.
	f = FresnelSchlick(0.0, albedo, 0.0)
	if f.X() < 0.99 {
		t.Errorf("grazing F is %v, want near 1", f.X())
	}
}

func TestGeometryTermBounded(t *testing.T) {
	for r := float32(0.05); r <= 1.0; r += 0.05 {
		g := GeometrySchlickSmithGGX(0.7, 0.6, r)
		if g <= 0 || g > 1 {
			t.Errorf("G(0.7, 0.6, %v) = %v, expected in (0, 1]", r, g)
		}
	}
}

func TestSpecularContributionSkipsBackfacingLight(t *testing.T) {
	n := mgl32.Vec3{0, 0, 1}
	v := mgl32.Vec3{0, 0, 1}
	// Light behind the surface.
	l := mgl32.Vec3{0, 0, -1}
	c := SpecularContribution(l, v, n, mgl32.Vec3{0.5, 0.5, 0.5}, 0.5, 0.5)
	if c.Len() != 0 {
		t.Errorf("backfacing light contributed %v, want zero", c)
	}
}

func TestGammaRoundTrip(t *testing.T) {
	in := mgl32.Vec3{0.25, 0.5, 0.75}
	out := GammaEncode(LinearizeAlbedo(in))
	if in.Sub(out).Len() > 1e-5 {
		t.Errorf("gamma round trip drifted: in %v out %v", in, out)
	}
}

func TestPerturbNormalFlatSampleKeepsNormal(t *testing.T) {
	n := mgl32.Vec3{0, 0, 1}
	tan := mgl32.Vec3{1, 0, 0}
	// A flat normal map texel (128, 128, 255) decodes to roughly +Z.
	sample := mgl32.Vec3{0.5, 0.5, 1.0}
	p := PerturbNormal(n, tan, sample)
	if p.Sub(n).Len() > 1e-5 {
		t.Errorf("flat sample moved the normal: %v", p)
	}
}

func shadeInput() LightingInput {
	return LightingInput{
		WorldPos:     mgl32.Vec3{0, 0, 0},
		CamPos:       mgl32.Vec3{4, -2.5, -0.4},
		Normal:       mgl32.Vec3{0, -1, 0},
		Tangent:      mgl32.Vec3{1, 0, 0},
		Albedo:       mgl32.Vec3{0.6, 0.4, 0.3},
		NormalSample: mgl32.Vec3{0.5, 0.5, 1.0},
		Metallic:     0.5,
		Roughness:    0.4,
		AO:           1.0,
		Lights: [4]mgl32.Vec4{
			{-15, -7.5, -15, 1},
			{-15, -7.5, 15, 1},
			{15, -7.5, 15, 1},
			{15, -7.5, -15, 1},
		},
	}
}

func TestShadeDeterministic(t *testing.T) {
	a := Shade(shadeInput())
	b := Shade(shadeInput())
	if a != b {
		t.Errorf("identical inputs shaded differently: %v vs %v", a, b)
	}
}

func TestShadeAmbientOnlyWhenAllLightsBelowHorizon(t *testing.T) {
	in := shadeInput()
	// Push every light behind the surface so only the ambient term remains.
	for i := range in.Lights {
		in.Lights[i] = mgl32.Vec4{0, 100, 0, 1}
	}
	got := Shade(in)

	albedo := LinearizeAlbedo(in.Albedo)
	want := GammaEncode(albedo.Mul(0.02 * in.AO))
	if got.Sub(want).Len() > 1e-5 {
		t.Errorf("ambient-only shade is %v, want %v", got, want)
	}
}

func TestShadeRoughnessFloorApplied(t *testing.T) {
	in := shadeInput()
	in.Roughness = 0.0
	zero := Shade(in)
	in.Roughness = 0.05
	floor := Shade(in)
	if zero != floor {
		t.Errorf("roughness below the floor should shade like 0.05: %v vs %v", zero, floor)
	}
}
