// Package action defines PlayerAction, the tagged union every client
// submission to the dispatcher takes. Only the fields relevant to Type
// are populated; the rest are left zero, mirroring event.Event's own
// tagged-union field layout so the two line up across the wire.
package action

import "github.com/mage-knight-digital/MageKnight-sub012/elemental"

// Type identifies a PlayerAction variant.
type Type string

const (
	AssignBlock      Type = "ASSIGN_BLOCK"
	DeclareBlock     Type = "DECLARE_BLOCK"
	AssignAttack     Type = "ASSIGN_ATTACK"
	DeclareAttack    Type = "DECLARE_ATTACK"
	PayCumbersome    Type = "PAY_CUMBERSOME"
	PayHeroesAssault Type = "PAY_HEROES_ASSAULT_INFLUENCE"
	PayThugsDamage   Type = "PAY_THUGS_DAMAGE_INFLUENCE"
	Defend           Type = "DEFEND"
	AdvanceCombat    Type = "ADVANCE_COMBAT_PHASE"
	EndCombat        Type = "END_COMBAT"
	PlayCard         Type = "PLAY_CARD"
	ResolveChoice    Type = "RESOLVE_CHOICE"
)

// PlayerAction is one submitted player command, in the shape the
// dispatcher validates and executes.
type PlayerAction struct {
	Type     Type
	PlayerID string

	EnemyInstanceID string
	UnitInstanceID  string

	Amount      int
	Element     elemental.Element
	AttackType  string // "ranged", "siege", or "normal"
	MovePoints  int
	Cost        int
	UnitArmor   int
	UnitIsThugs bool

	Resistances elemental.Resistances

	CardID   string // PlayCard
	Powered  bool   // PlayCard: resolve the card's powered branch
	OptionID string // ResolveChoice
}
