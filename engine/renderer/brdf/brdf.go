package brdf

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/aura/engine/mathex"
)

// Cook-Torrance evaluation matching the fragment shader in
// assets/shaders/pbr.frag term for term. The shader is the GPU path;
// this package is the reference the constants are tested against.

const (
	// Base reflectance for dielectrics.
	dielectricF0 = 0.04
	// Ambient term weight applied to albedo * ao.
	ambientFactor = 0.02
	// Floor for roughness before the distribution term.
	minRoughness = 0.05
	// Floor for dot products to keep denominators finite.
	minDot = 0.001
	// Display gamma. Albedo is linearized with it, output encoded with
	// its inverse (0.4545).
	gamma = 2.2
)

// LightingInput is one full fragment evaluation: a surface point, its
// tangent frame, the sampled material values and the shared lighting
// parameters.
type LightingInput struct {
	WorldPos mgl32.Vec3
	CamPos   mgl32.Vec3
	// Interpolated surface normal and tangent, not necessarily unit.
	Normal  mgl32.Vec3
	Tangent mgl32.Vec3
	// Albedo sample as stored in the texture, gamma encoded.
	Albedo mgl32.Vec3
	// Tangent-space normal map sample in [0, 1] per channel.
	NormalSample mgl32.Vec3
	Metallic     float32
	Roughness    float32
	AO           float32
	// Light positions; w unused.
	Lights [4]mgl32.Vec4
}

// LinearizeAlbedo removes the display gamma from a stored albedo sample.
func LinearizeAlbedo(srgb mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		pow(srgb.X(), gamma),
		pow(srgb.Y(), gamma),
		pow(srgb.Z(), gamma),
	}
}

// GammaEncode applies the inverse display gamma to a linear color.
func GammaEncode(linear mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		pow(max32(linear.X(), 0), 1.0/gamma),
		pow(max32(linear.Y(), 0), 1.0/gamma),
		pow(max32(linear.Z(), 0), 1.0/gamma),
	}
}

// DistributionGGX is the Trowbridge-Reitz normal distribution term.
func DistributionGGX(dotNH, roughness float32) float32 {
	alpha := roughness * roughness
	alpha2 := alpha * alpha
	denom := dotNH*dotNH*(alpha2-1.0) + 1.0
	return alpha2 / (math.Pi * denom * denom)
}

// GeometrySchlickSmithGGX is the Smith visibility term with the
// Schlick-GGX k remapping, k = (r + 1)^2 / 8.
func GeometrySchlickSmithGGX(dotNL, dotNV, roughness float32) float32 {
	r := roughness + 1.0
	k := (r * r) / 8.0
	gl := dotNL / (dotNL*(1.0-k) + k)
	gv := dotNV / (dotNV*(1.0-k) + k)
	return gl * gv
}

// FresnelSchlick returns the Schlick approximation with F0 blended
// between the dielectric constant and the albedo by metallic.
func FresnelSchlick(cosTheta float32, albedo mgl32.Vec3, metallic float32) mgl32.Vec3 {
	f0 := mgl32.Vec3{dielectricF0, dielectricF0, dielectricF0}
	f0 = mix(f0, albedo, metallic)
	s := pow(1.0-cosTheta, 5.0)
	return mgl32.Vec3{
		f0.X() + (1.0-f0.X())*s,
		f0.Y() + (1.0-f0.Y())*s,
		f0.Z() + (1.0-f0.Z())*s,
	}
}

// SpecularContribution evaluates one light's specular and diffuse
// contribution. Lights at or below the horizon contribute nothing.
// albedo must already be linear.
func SpecularContribution(lightDir, viewDir, normal, albedo mgl32.Vec3, metallic, roughness float32) mgl32.Vec3 {
	h := viewDir.Add(lightDir).Normalize()
	dotNH := clampDot(normal.Dot(h))
	dotNV := clampDot(normal.Dot(viewDir))
	dotNL := normal.Dot(lightDir)
	if dotNL <= 0 {
		return mgl32.Vec3{}
	}
	dotNL = mathex.Clamp(dotNL, minDot, 1.0)
	roughness = max32(roughness, minRoughness)

	d := DistributionGGX(dotNH, roughness)
	g := GeometrySchlickSmithGGX(dotNL, dotNV, roughness)
	f := FresnelSchlick(dotNV, albedo, metallic)

	spec := f.Mul(d * g / (4.0 * dotNL * dotNV))
	kd := mgl32.Vec3{1, 1, 1}.Sub(f).Mul(1.0 - metallic)
	diffuse := mgl32.Vec3{
		kd.X() * albedo.X(),
		kd.Y() * albedo.Y(),
		kd.Z() * albedo.Z(),
	}.Mul(1.0 / math.Pi)

	return diffuse.Add(spec).Mul(dotNL)
}

// PerturbNormal applies the tangent-space normal map sample to the
// interpolated tangent frame.
func PerturbNormal(normal, tangent, sample mgl32.Vec3) mgl32.Vec3 {
	tangentNormal := sample.Mul(2.0).Sub(mgl32.Vec3{1, 1, 1})
	n := normal.Normalize()
	t := tangent.Normalize()
	b := n.Cross(t)
	tbn := mgl32.Mat3FromCols(t, b, n)
	return tbn.Mul3x1(tangentNormal).Normalize()
}

// Shade runs the whole fragment program on the CPU: perturb the normal,
// linearize albedo, accumulate the per-light terms, add the ambient
// term and re-encode for display.
func Shade(in LightingInput) mgl32.Vec3 {
	n := PerturbNormal(in.Normal, in.Tangent, in.NormalSample)
	v := in.CamPos.Sub(in.WorldPos).Normalize()
	albedo := LinearizeAlbedo(in.Albedo)

	lo := mgl32.Vec3{}
	for i := range in.Lights {
		l := in.Lights[i].Vec3().Sub(in.WorldPos).Normalize()
		lo = lo.Add(SpecularContribution(l, v, n, albedo, in.Metallic, in.Roughness))
	}

	color := albedo.Mul(ambientFactor * in.AO).Add(lo)
	return GammaEncode(color)
}

func clampDot(d float32) float32 {
	return mathex.Clamp(d, minDot, 1.0)
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1.0 - t).Add(b.Mul(t))
}

func pow(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
