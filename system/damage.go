package system

import (
	"reflect"

	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/physics"
)

// ApplyDamageToEntity routes damage into an entity: shields absorb first,
// the overflow goes to hitpoints, and the entity dies at zero. An entity
// without its own shields is covered by the nearest ancestor's shields, so a
// turret benefits from the ship it is mounted on.
func ApplyDamageToEntity(w *engine.World, damage float64, e core.Entity) {
	var shields *component.Shields
	if s := engine.Get[component.Shields](w, e); s != nil {
		shields = s
	} else if anc := engine.GetAncestorWith[component.Shields](w, e); !anc.IsNil() {
		shields = engine.Get[component.Shields](w, anc)
	}
	if shields != nil && !shields.Overloaded {
		shields.HP -= damage
		if shields.HP < 0 {
			damage = -shields.HP
			shields.Overload()
		} else {
			damage = 0
		}
	}

	if damage <= 0 {
		return
	}
	hitpoints := engine.Get[component.Hitpoints](w, e)
	if hitpoints == nil {
		return
	}
	hitpoints.HP -= damage
	if hitpoints.HP <= 0 {
		w.Kill(e)
	}
}

// DamageCollisionHandler delivers contact damage: DamageOnContact entities
// (bullets, mostly) hurt Hitpoints entities they touch. Related entities
// never hurt each other; a bullet spawns as a child of its shooter, so the
// shooter's own fire passes through it.
type DamageCollisionHandler struct{}

func (DamageCollisionHandler) Types() (reflect.Type, reflect.Type) {
	return engine.TypeOf[component.DamageOnContact](), engine.TypeOf[component.Hitpoints]()
}

func (DamageCollisionHandler) Handle(w *engine.World, first, second core.Entity) physics.CollisionResult {
	if w.IsAncestor(first, second) || w.IsAncestor(second, first) {
		return physics.CollisionResult{}
	}

	contact := engine.Get[component.DamageOnContact](w, first)
	ApplyDamageToEntity(w, contact.Damage, second)

	var result physics.CollisionResult
	if contact.DestroyOnHit {
		w.Kill(first)
		result.ConsumedFirst = true
	}
	return result
}
