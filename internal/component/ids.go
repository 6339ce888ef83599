// Package component holds the plain data records that systems attach to
// entities, and the SystemID each record is stored under.
package component

import "glyphcrawl/internal/ecs"

// System identifiers. The order is fixed; it is also the world's default
// registration order, which is why the player comes first.
const (
	CPlayer ecs.SystemID = iota + 1
	CPosition
	CAppearance
	CTile
	CDescriptible
	CItem
	CDestructible
	CAttack
	CPerception
	CSight
	CMovement
	CFungus
	CInventory
	CMessageLogger
	CBat
	CBigSlime
	CSmallSlime
	CSound
)
