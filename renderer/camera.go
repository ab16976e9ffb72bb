package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/camera"
	"github.com/pthm-cable/orrery/game"
)

// Camera converts the orbit rig into a raylib perspective camera.
func Camera(r *camera.Rig) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(r.Position),
		Target:     vec(r.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(r.FOV),
		Projection: rl.CameraPerspective,
	}
}

// Pick returns the name of the nearest body under the screen point, or
// "" when the ray misses every body.
func Pick(cam rl.Camera3D, screen rl.Vector2, bodies []game.BodyView) string {
	ray := rl.GetScreenToWorldRay(screen, cam)
	best := ""
	var bestDist float32
	for i := range bodies {
		b := &bodies[i]
		hit := rl.GetRayCollisionSphere(ray, vec(b.Position), float32(b.Radius))
		if !hit.Hit {
			continue
		}
		if best == "" || hit.Distance < bestDist {
			best = b.Name
			bestDist = hit.Distance
		}
	}
	return best
}
