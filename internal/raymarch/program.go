package raymarch

import (
	"errors"
	"fmt"
	"math"

	"raymarch-renderer/internal/mathutil"
	"raymarch-renderer/internal/quad"
	"raymarch-renderer/internal/raster"
	"raymarch-renderer/internal/uniform"
)

// Program is the raymarching pass. It is stateless between draws and safe
// for concurrent use.
type Program struct {
	NormalEpsilon  float64
	ShadowEpsilon  float64
	MaxShadowSteps int
}

func NewProgram() *Program {
	return &Program{
		NormalEpsilon:  0.001,
		ShadowEpsilon:  0.001,
		MaxShadowSteps: 256,
	}
}

var schema = uniform.Schema{
	{Name: uLightDir, Kind: uniform.Vector},
	{Name: uLightCol, Kind: uniform.Color},
	{Name: uLightIntensity, Kind: uniform.Float},
	{Name: uShadowIntensity, Kind: uniform.Float},
	{Name: uShadowPenumbra, Kind: uniform.Float},
	{Name: uShadowDistance, Kind: uniform.Vector},
	{Name: uCamFrustum, Kind: uniform.Matrix},
	{Name: uCamToWorld, Kind: uniform.Matrix},
	{Name: uMaxDistance, Kind: uniform.Float},
	{Name: uAccuracy, Kind: uniform.Float},
	{Name: uMaxIterations, Kind: uniform.Int},
	{Name: uBoxRound, Kind: uniform.Float},
	{Name: uBoxSphereSmooth, Kind: uniform.Float},
	{Name: uSphereIntersectSmooth, Kind: uniform.Float},
	{Name: uSphere1, Kind: uniform.Vector},
	{Name: uSphere2, Kind: uniform.Vector},
	{Name: uBox1, Kind: uniform.Vector},
	{Name: uMainColor, Kind: uniform.Color},
	{Name: uModInterval, Kind: uniform.Vector},
	{Name: uAoStepSize, Kind: uniform.Float},
	{Name: uAoIntensity, Kind: uniform.Float},
	{Name: uAoIterations, Kind: uniform.Int},
}

// Schema returns the uniforms Draw reads.
func (p *Program) Schema() uniform.Schema {
	return schema
}

// params is the program's view of one uniform block.
type params struct {
	lightDir        mathutil.Vec3
	lightCol        mathutil.Vec3
	lightIntensity  float64
	shadowIntensity float64
	shadowPenumbra  float64
	shadowMin       float64
	shadowMax       float64
	camFrustum      mathutil.Mat4
	camToWorld      mathutil.Mat4
	maxDistance     float64
	accuracy        float64
	maxIterations   int
	boxRound        float64
	boxSphereSmooth float64
	sphereSmooth    float64
	sphere1         mathutil.Vec4
	sphere2         mathutil.Vec4
	box             mathutil.Vec4
	mainColor       mathutil.Vec3
	modInterval     mathutil.Vec3
	aoStepSize      float64
	aoIntensity     float64
	aoIterations    int
}

// reader collects getter errors so a block is loaded in one pass.
type reader struct {
	b    *uniform.Block
	errs []error
}

func (r *reader) getFloat(name string) float64 {
	v, err := r.b.Float(name)
	r.add(err)
	return v
}

func (r *reader) getInt(name string) int {
	v, err := r.b.Int(name)
	r.add(err)
	return v
}

func (r *reader) getVector(name string) mathutil.Vec4 {
	v, err := r.b.Vector(name)
	r.add(err)
	return v
}

func (r *reader) getColor(name string) mathutil.Vec4 {
	v, err := r.b.Color(name)
	r.add(err)
	return v
}

func (r *reader) getMatrix(name string) mathutil.Mat4 {
	v, err := r.b.Matrix(name)
	r.add(err)
	return v
}

func (r *reader) add(err error) {
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

func load(b *uniform.Block) (params, error) {
	r := &reader{b: b}
	sd := r.getVector(uShadowDistance)
	p := params{
		lightDir:        r.getVector(uLightDir).XYZ().Normalize(),
		lightCol:        r.getColor(uLightCol).XYZ(),
		lightIntensity:  r.getFloat(uLightIntensity),
		shadowIntensity: r.getFloat(uShadowIntensity),
		shadowPenumbra:  r.getFloat(uShadowPenumbra),
		shadowMin:       sd[0],
		shadowMax:       sd[1],
		camFrustum:      r.getMatrix(uCamFrustum),
		camToWorld:      r.getMatrix(uCamToWorld),
		maxDistance:     r.getFloat(uMaxDistance),
		accuracy:        r.getFloat(uAccuracy),
		maxIterations:   r.getInt(uMaxIterations),
		boxRound:        r.getFloat(uBoxRound),
		boxSphereSmooth: r.getFloat(uBoxSphereSmooth),
		sphereSmooth:    r.getFloat(uSphereIntersectSmooth),
		sphere1:         r.getVector(uSphere1),
		sphere2:         r.getVector(uSphere2),
		box:             r.getVector(uBox1),
		mainColor:       r.getColor(uMainColor).XYZ(),
		modInterval:     r.getVector(uModInterval).XYZ(),
		aoStepSize:      r.getFloat(uAoStepSize),
		aoIntensity:     r.getFloat(uAoIntensity),
		aoIterations:    r.getInt(uAoIterations),
	}
	return p, errors.Join(r.errs...)
}

// Draw marches the scene described by b over src and writes the result to
// dst. Rays stop at the source depth, so nearer source pixels stay in front.
func (p *Program) Draw(b *uniform.Block, src, dst *raster.FrameBuffer) error {
	if src.Width != dst.Width || src.Height != dst.Height {
		return fmt.Errorf("raymarch: source %dx%d does not match destination %dx%d",
			src.Width, src.Height, dst.Width, dst.Height)
	}
	u, err := load(b)
	if err != nil {
		return fmt.Errorf("raymarch: load uniforms: %w", err)
	}

	verts := quad.FullScreen()
	rays := quad.Rays(verts, u.camFrustum, u.camToWorld)
	origin := u.camToWorld.MulPoint(mathutil.Vec3{})

	return quad.Draw(dst.Width, dst.Height, verts, rays, func(x, y int, ray mathutil.Vec3) {
		col := src.At(x, y)
		depth := src.DepthAt(x, y)
		rd := ray.Normalize()

		shaded, t, hit := p.march(&u, origin, rd, depth)
		if !hit {
			dst.Set(x, y, col)
			dst.Depth[y*dst.Width+x] = depth
			return
		}
		dst.Set(x, y, [4]float64{shaded[0], shaded[1], shaded[2], 1})
		dst.Depth[y*dst.Width+x] = t
	})
}

func (p *Program) march(u *params, ro, rd mathutil.Vec3, depth float64) (mathutil.Vec3, float64, bool) {
	t := 0.0
	for i := 0; i < u.maxIterations; i++ {
		if t > u.maxDistance || t >= depth {
			return mathutil.Vec3{}, t, false
		}
		pos := ro.Add(rd.Scale(t))
		d := u.distance(pos)
		if d < u.accuracy {
			n := p.normal(u, pos)
			return p.shade(u, pos, n), t, true
		}
		t += d
	}
	return mathutil.Vec3{}, t, false
}

// distance is the scene field: a ground plane and the box/sphere composite.
func (u *params) distance(pos mathutil.Vec3) float64 {
	ground := sdPlane(pos, mathutil.Vec3{0, 1, 0}, 0)
	return opUnion(ground, u.boxSphere(repeat(pos, u.modInterval)))
}

func (u *params) boxSphere(pos mathutil.Vec3) float64 {
	s1 := sdSphere(pos.Sub(u.sphere1.XYZ()), u.sphere1[3])
	b := u.box[3]
	box := sdRoundBox(pos.Sub(u.box.XYZ()), mathutil.Vec3{b, b, b}, u.boxRound)
	carved := opSmoothSubtract(s1, box, u.boxSphereSmooth)
	s2 := sdSphere(pos.Sub(u.sphere2.XYZ()), u.sphere2[3])
	return opSmoothIntersect(s2, carved, u.sphereSmooth)
}

func (p *Program) normal(u *params, pos mathutil.Vec3) mathutil.Vec3 {
	e := p.NormalEpsilon
	return mathutil.Vec3{
		u.distance(pos.Add(mathutil.Vec3{e, 0, 0})) - u.distance(pos.Sub(mathutil.Vec3{e, 0, 0})),
		u.distance(pos.Add(mathutil.Vec3{0, e, 0})) - u.distance(pos.Sub(mathutil.Vec3{0, e, 0})),
		u.distance(pos.Add(mathutil.Vec3{0, 0, e})) - u.distance(pos.Sub(mathutil.Vec3{0, 0, e})),
	}.Normalize()
}

func (p *Program) shade(u *params, pos, n mathutil.Vec3) mathutil.Vec3 {
	toLight := u.lightDir.Neg()

	ndl := toLight.Dot(n)
	light := u.lightCol.Scale(ndl * 0.5).Add(mathutil.Vec3{0.5, 0.5, 0.5}).Scale(u.lightIntensity)

	shadow := p.softShadow(u, pos, toLight)*0.5 + 0.5
	shadow = math.Max(0, math.Pow(shadow, u.shadowIntensity))

	ao := u.ambientOcclusion(pos, n)

	return u.mainColor.Mul(light).Scale(shadow * ao)
}

// softShadow returns 0 in full shadow and 1 when the path to the light is clear.
func (p *Program) softShadow(u *params, ro, rd mathutil.Vec3) float64 {
	result := 1.0
	t := u.shadowMin
	for i := 0; i < p.MaxShadowSteps && t < u.shadowMax; i++ {
		h := u.distance(ro.Add(rd.Scale(t)))
		if h < p.ShadowEpsilon {
			return 0
		}
		if t > 0 {
			result = math.Min(result, u.shadowPenumbra*h/t)
		}
		t += h
	}
	return result
}

func (u *params) ambientOcclusion(pos, n mathutil.Vec3) float64 {
	ao := 0.0
	for i := 1; i <= u.aoIterations; i++ {
		dist := u.aoStepSize * float64(i)
		ao += math.Max(0, (dist-u.distance(pos.Add(n.Scale(dist))))/dist)
	}
	return 1 - ao*u.aoIntensity
}
