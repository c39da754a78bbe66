package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.25
)

// Camera orbits the box center, or the comet when following, at a distance of
// Zoom box lengths. Lat and Lon are look angles in [-1, 1] radians.
type Camera struct {
	Lat, Lon float64
	Zoom     float64
	BoxScale float64
	FOV      float64
	Follow   bool

	target mgl64.Vec3
	vel    mgl64.Vec3
	spring harmonica.Spring
}

func NewCamera(boxScale float64, fps int) *Camera {
	if fps < 1 {
		fps = 30
	}
	return &Camera{
		Zoom:     1,
		BoxScale: boxScale,
		FOV:      mgl64.DegToRad(75),
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Look sets both angles, clamped to [-1, 1].
func (c *Camera) Look(lat, lon float64) {
	c.Lat = clampUnit(lat)
	c.Lon = clampUnit(lon)
}

// LookFrom maps a pointer position on a w x h surface to look angles, the
// center of the surface being straight ahead.
func (c *Camera) LookFrom(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Look(float64(2*x-w)/float64(w), float64(2*y-h)/float64(h))
}

func (c *Camera) ZoomIn() {
	if c.Zoom >= MinZoom+ZoomStep {
		c.Zoom -= ZoomStep
	}
}

func (c *Camera) ZoomOut() {
	if c.Zoom <= MaxZoom-ZoomStep {
		c.Zoom += ZoomStep
	}
}

// Track eases the orbit center toward p when following, or back toward the
// box center otherwise. Call once per rendered frame.
func (c *Camera) Track(p mgl64.Vec3) {
	goal := mgl64.Vec3{}
	if c.Follow {
		goal = p
	}
	for a := 0; a < 3; a++ {
		c.target[a], c.vel[a] = c.spring.Update(c.target[a], c.vel[a], goal[a])
	}
}

// Target returns the current orbit center.
func (c *Camera) Target() mgl64.Vec3 { return c.target }

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 {
	r := c.BoxScale * c.Zoom
	offset := mgl64.Vec3{
		-r * math.Cos(c.Lat),
		-r * math.Sin(c.Lon),
		r * math.Sin(c.Lat),
	}
	return c.target.Add(offset)
}

// Matrix returns the combined projection and view transform for a surface
// with the given aspect ratio.
func (c *Camera) Matrix(aspect float64) mgl64.Mat4 {
	proj := mgl64.Perspective(c.FOV, aspect, 0.1, 1000)
	view := mgl64.LookAtV(c.Eye(), c.target, mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// Projector maps world points onto a w x h pixel surface.
type Projector struct {
	mvp  mgl64.Mat4
	w, h int
}

func (c *Camera) Projector(w, h int) Projector {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	return Projector{mvp: c.Matrix(aspect), w: w, h: h}
}

// Project returns pixel coordinates, clip depth and whether p is in front of
// the near plane and on the surface.
func (p Projector) Project(v mgl64.Vec3) (int, int, float64, bool) {
	clip := p.clip(v)
	if clip[3] <= 0 || clip[2] < -clip[3] {
		return 0, 0, 0, false
	}
	x, y, depth := p.screen(clip)
	if x < 0 || x >= float64(p.w) || y < 0 || y >= float64(p.h) {
		return 0, 0, 0, false
	}
	return int(x), int(y), depth, true
}

// ProjectSegment projects the segment a-b, cut at the near plane and then at
// the surface edges. ok is false when no part of it is visible.
func (p Projector) ProjectSegment(a, b mgl64.Vec3) (x0, y0, x1, y1 int, depth float64, ok bool) {
	ca, cb := p.clip(a), p.clip(b)
	da, db := ca[2]+ca[3], cb[2]+cb[3]
	switch {
	case da < 0 && db < 0:
		return 0, 0, 0, 0, 0, false
	case da < 0:
		ca = ca.Add(cb.Sub(ca).Mul(da / (da - db)))
	case db < 0:
		cb = cb.Add(ca.Sub(cb).Mul(db / (db - da)))
	}
	if ca[3] <= 0 || cb[3] <= 0 {
		return 0, 0, 0, 0, 0, false
	}

	ax, ay, za := p.screen(ca)
	bx, by, zb := p.screen(cb)
	ax, ay, bx, by, ok = clipSegment(ax, ay, bx, by, float64(p.w), float64(p.h))
	if !ok {
		return 0, 0, 0, 0, 0, false
	}
	return int(math.Round(ax)), int(math.Round(ay)), int(math.Round(bx)), int(math.Round(by)), (za + zb) / 2, true
}

func (p Projector) clip(v mgl64.Vec3) mgl64.Vec4 {
	return p.mvp.Mul4x1(v.Vec4(1))
}

// screen divides by w and maps NDC onto the surface.
func (p Projector) screen(clip mgl64.Vec4) (x, y, depth float64) {
	ndc := clip.Vec3().Mul(1 / clip[3])
	return (ndc[0] + 1) / 2 * float64(p.w), (1 - ndc[1]) / 2 * float64(p.h), ndc[2]
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
