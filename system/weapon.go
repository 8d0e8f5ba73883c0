package system

import (
	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/physics"
	"github.com/lmcneill42/space-game/vmath"
)

// WeaponSystem fires the weapons that are switched on. Projectile weapons
// spawn bullet entities on their shot cadence; beam weapons drain power and
// deliver damage along a hit scan every tick they are held open.
type WeaponSystem struct {
	space *physics.Space
}

func NewWeaponSystem(space *physics.Space) *WeaponSystem {
	return &WeaponSystem{space: space}
}

func (s *WeaponSystem) Priority() int {
	return parameter.PriorityWeapon
}

func (s *WeaponSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(
		engine.TypeOf[component.Weapon](),
		engine.TypeOf[physics.Body](),
	) {
		weapon := engine.Get[component.Weapon](w, e)
		if weapon.ShotTimer > 0 {
			weapon.ShotTimer -= dt
		}
		if !weapon.Shooting() {
			continue
		}
		switch weapon.Type {
		case component.WeaponProjectile:
			s.shootBullets(w, e, weapon)
		case component.WeaponBeam:
			s.shootBeam(w, e, weapon, dt)
		}
	}
}

// shootBullets spawns bullets until the shot timer catches up with the
// present. A high rate of fire can put several bullets into one tick.
func (s *WeaponSystem) shootBullets(w *engine.World, e core.Entity, weapon *component.Weapon) {
	body := engine.Get[physics.Body](w, e)
	team := engine.Get[component.Team](w, e)

	for weapon.ShotTimer <= 0 {
		weapon.ShotTimer += 1.0 / weapon.ShotsPerSecond

		direction := weapon.AimDirection(w)
		if direction.LengthSq() == 0 {
			weapon.StopShooting()
			return
		}

		// Clear the shooter's own hull, then add some spread.
		position := body.Position.Add(direction.Scaled(body.Size * 2))
		spread := weapon.SpreadDegrees
		muzzle := direction.Scaled(weapon.BulletSpeed).
			RotatedDegrees(spread*w.Resources.Rand.Float64() - spread/2)

		ov := engine.Overrides{
			"parent":      e,
			"position":    position,
			"velocity":    body.Velocity.Add(muzzle),
			"orientation": direction.AngleDegrees() + 90,
		}
		if team != nil {
			ov["team"] = team.Name
		}
		if _, err := w.CreateEntity(weapon.BulletConfig, ov); err != nil {
			w.Resources.Log.Error("spawning bullet",
				zap.String("config", weapon.BulletConfig), zap.Error(err))
			weapon.StopShooting()
			return
		}
	}
}

// shootBeam holds a damage ray on whatever the weapon is aimed at, as long
// as the power holds out.
func (s *WeaponSystem) shootBeam(w *engine.World, e core.Entity, weapon *component.Weapon, dt float64) {
	power := engine.Get[component.Power](w, e)
	if power == nil || !power.TryConsume(weapon.PowerUsage*dt) {
		weapon.StopShooting()
		return
	}

	body := engine.Get[physics.Body](w, e)
	scan := s.space.HitScan(w, body, vmath.Vec2{}, vmath.V(0, -1), weapon.Range, weapon.Radius)
	weapon.BeamActive = true
	weapon.ImpactPoint = scan.Point
	weapon.ImpactNormal = scan.Normal
	if scan.Body != nil {
		ApplyDamageToEntity(w, weapon.Damage*dt, scan.Body.Entity())
	}
}
