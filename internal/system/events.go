package system

import "glyphcrawl/internal/ecs"

// Entity event names.
const (
	EventAttack   = "attack"
	EventDamaged  = "damaged"
	EventDeath    = "@DestructibleSystem/death"
	EventMoveTo   = "moveto"
	EventTrampled = "trampled"
	EventTouch    = "touch"
	EventMessage  = "message"
	EventMessages = "messages"
	EventDig      = "dig"
)

// Game event names, dispatched on the session's game dispatcher.
const (
	GameSendMessage = "sendMessage"
	GameLose        = "lose"
	GameWin         = "win"
)

// AttackEvent is the payload of both "attack" (on the attacker) and
// "damaged" (on the target).
type AttackEvent struct {
	Source *ecs.Entity
	Target *ecs.Entity
	Damage int
}

// DeathEvent is dispatched on an entity right before it is removed.
type DeathEvent struct {
	Entity *ecs.Entity
}

// MoveToEvent is dispatched on a mover before its position changes.
type MoveToEvent struct {
	Tile    *ecs.Entity
	Items   []*ecs.Entity
	X, Y, Z int
}

// TrampledEvent is dispatched on the tile a being steps onto.
type TrampledEvent struct {
	By      *ecs.Entity
	X, Y, Z int
}

// TouchEvent is dispatched on a target bumped without an attack.
type TouchEvent struct {
	By *ecs.Entity
}

// MessageEvent carries broadcast text.
type MessageEvent struct {
	Source   *ecs.Entity
	Messages []string
}

// Message is one entry of a "messages" event.
type Message struct {
	Text string
	Kind string
}

// MessagesEvent is the payload of "messages".
type MessagesEvent struct {
	Source   *ecs.Entity
	Messages []Message
}

// DigEvent is dispatched on the digger when a wall turns into floor.
type DigEvent struct {
	X, Y, Z int
}
