package parameter

// System execution priorities (lower runs first). The order is mandated:
// targeting before fire control (shooting decisions use tracking results),
// force application before integration, collision resolution on settled
// positions, and lifecycle passes last so they observe final health.
const (
	PriorityTracking       = 10
	PriorityFollowsTracked = 20
	PriorityShootsAt       = 30
	PriorityLauncher       = 40
	PriorityWeapon         = 50
	PriorityThrusters      = 60
	PrioritySpace          = 70 // thruster forces, integration, collisions
	PriorityPower          = 80
	PriorityShields        = 90
	PriorityKillOnTimer    = 100
	PriorityAnimation      = 110
	PriorityText           = 120
	PriorityCamera         = 130
	PriorityWaveSpawner    = 140
)
