// Package effect implements the effect resolver: a tagged-union tree
// interpreter that can suspend on player choices. A single Resolve call
// walks the tree left-to-right, accumulating state changes, and returns
// either a fully-resolved ResolveResult or one carrying a pending choice,
// already written onto the player, to be resumed later via
// ResolveChoice.
//
// Modeled on a staged, suspendable pipeline abstraction (a linear stage
// list with continuation data for resuming mid-pipeline), generalized
// here from a linear stage list into a recursive effect tree, and on a
// generic Effect[T] Apply/Remove shape for the idea of a typed,
// composable modification — generalized here from "apply to a chain" to
// "resolve against a player's state".
package effect

import (
	"github.com/mage-knight-digital/MageKnight-sub012/elemental"
	"github.com/mage-knight-digital/MageKnight-sub012/event"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

// Kind is the discriminant of a Node.
type Kind string

const (
	KindGainMove         Kind = "gain_move"
	KindGainInfluence    Kind = "gain_influence"
	KindGainBlock        Kind = "gain_block"
	KindGainAttack       Kind = "gain_attack"
	KindHeal             Kind = "heal"
	KindGainCrystal      Kind = "gain_crystal"
	KindDrawCard         Kind = "draw_card"
	KindAddModifier      Kind = "add_modifier"
	KindReadyUnit        Kind = "ready_unit"
	KindMovementReduce   Kind = "movement_reduce"
	KindIgnoreTerrain    Kind = "ignore_terrain"
	KindCompound         Kind = "compound"
	KindChoice           Kind = "choice"
	KindIf               Kind = "if"
	KindChooseBonusWithRisk Kind = "choose_bonus_with_risk"
	KindDiscardForAttack Kind = "discard_for_attack"
	KindDiscardForBonus  Kind = "discard_for_bonus"
	KindDiscardForCrystal Kind = "discard_for_crystal"
	KindMaximalEffect    Kind = "maximal_effect"
	KindCardBoost        Kind = "card_boost"
	KindRollDieForWound  Kind = "roll_die_for_wound"
)

// PredicateKind is the discriminant of a Predicate used by If nodes.
// Predicates are plain data (never Go closures) so a Node tree — and the
// PendingChoice continuations built from one — stays serializable, which
// is what makes persisted state actually reconstructable.
type PredicateKind string

const (
	PredSourceCardColor PredicateKind = "source_card_color"
	PredHasCrystal      PredicateKind = "has_crystal"
	PredAlways          PredicateKind = "always"
)

// Predicate is evaluated against the resolving player and the card that
// sourced the effect tree.
type Predicate struct {
	Kind  PredicateKind
	Color string // PredSourceCardColor, PredHasCrystal
}

// Option is one branch of a Choice node.
type Option struct {
	ID    string
	Label string
	Next  *Node
}

// Node is the tagged-union effect tree. Only fields
// relevant to Kind are populated. Node implements catalog.EffectTree via
// IsEffectNode so catalog.CardDef can reference trees without importing
// this package.
type Node struct {
	Kind Kind

	N          int
	Element    elemental.Element
	AttackType string // "normal" | "ranged" | "siege"
	Color      string // crystal color

	Modifier state.ActiveModifier // KindAddModifier

	UnitInstanceID string   // KindReadyUnit
	TerrainSet     []string // KindIgnoreTerrain

	Children []Node // KindCompound, resolved strictly left-to-right

	Options []Option // KindChoice

	Predicate  Predicate // KindIf
	Then, Else *Node     // KindIf

	RiskAmount int // KindChooseBonusWithRisk: bonus if risk card avoided
	RiskColors []string // wound-triggering colors for the risk roll

	DiceCount   int      // KindRollDieForWound
	WoundColors []string // die colors that produce a wound on this roll

	MaximalOptions []Node // KindMaximalEffect: pick the single best-resolving child
}

// IsEffectNode implements catalog.EffectTree.
func (Node) IsEffectNode() {}

// Compound builds a left-to-right sequence node.
func Compound(children ...Node) Node {
	return Node{Kind: KindCompound, Children: children}
}

// ResolveResult is what a single Resolve call returns.
type ResolveResult struct {
	NextState   state.GameState
	Description string
	Events      []event.Event

	// RequiresChoice is non-nil when resolution suspended on a player
	// decision. It is the same PendingChoice the resolver has already
	// written onto the player in NextState; a later ResolveChoice call
	// resumes with the selected option.
	RequiresChoice *state.PendingChoice
}
