package utils

import (
	"math"
)

// nearPlane 小于此深度的点不可见
const nearPlane = 0.1

// Camera 绕 Y 轴旋转的透视摄像机
//
// The eye orbits the vertical axis at Distance, Elevation above the target
// point (0, TargetY, 0), and always looks at that point. Screen Y grows
// downwards, world Y upwards.
type Camera struct {
	Yaw       float64
	Distance  float64
	Elevation float64
	TargetY   float64
	// FOV 垂直视场角（弧度）
	FOV float64

	Width  float64
	Height float64
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() (x, y, z float64) {
	return math.Sin(c.Yaw) * c.Distance, c.TargetY + c.Elevation, math.Cos(c.Yaw) * c.Distance
}

// Rotate advances the yaw by delta radians, wrapped to [0, 2π).
func (c *Camera) Rotate(delta float64) {
	c.Yaw = math.Mod(c.Yaw+delta, 2*math.Pi)
	if c.Yaw < 0 {
		c.Yaw += 2 * math.Pi
	}
}

// Resize updates the viewport size used by Project.
func (c *Camera) Resize(width, height int) {
	c.Width, c.Height = float64(width), float64(height)
}

// FocalLength returns the pixel distance to the image plane for the current
// viewport height and FOV.
func (c *Camera) FocalLength() float64 {
	return (c.Height / 2) / math.Tan(c.FOV/2)
}

// Project 把世界坐标投影到屏幕
//
// 返回：
//   - sx, sy: 屏幕坐标（像素）
//   - depth: 沿视线方向的距离，用于计算贴图缩放
//   - ok: 点在摄像机前方时为 true
func (c *Camera) Project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	ex, ey, ez := c.Eye()

	// forward = normalize(target - eye)
	fx, fy, fz := -ex, c.TargetY-ey, -ez
	fl := math.Sqrt(fx*fx + fy*fy + fz*fz)
	if fl == 0 {
		return 0, 0, 0, false
	}
	fx, fy, fz = fx/fl, fy/fl, fz/fl

	// right = normalize(forward × worldUp)
	rx, rz := -fz, fx
	rl := math.Sqrt(rx*rx + rz*rz)
	if rl == 0 {
		return 0, 0, 0, false
	}
	rx, rz = rx/rl, rz/rl

	// up = right × forward
	ux, uy, uz := -rz*fy, rz*fx-rx*fz, rx*fy

	px, py, pz := x-ex, y-ey, z-ez
	depth = px*fx + py*fy + pz*fz
	if depth <= nearPlane {
		return 0, 0, depth, false
	}

	f := c.FocalLength()
	cx := px*rx + pz*rz
	cy := px*ux + py*uy + pz*uz

	sx = c.Width/2 + cx*f/depth
	sy = c.Height/2 - cy*f/depth
	return sx, sy, depth, true
}
