// Package state defines the engine's immutable data model:
// GameState, Player, Map, CombatState, CombatAccumulator, and the
// modifier/effect data shapes they reference. Every value here is a
// plain record; transitions are expressed elsewhere (effect, modifier,
// combat, command packages) as pure functions old-value -> new-value.
// No method on a type in this package mutates a receiver in place —
// "With*" helpers always return a new value, following the same
// clone-on-write convention an entity/ref pattern uses, generalized here
// to whole-state records.
package state

import "github.com/mage-knight-digital/MageKnight-sub012/hexcoord"

// Continuation is an opaque placeholder for a resolvable effect
// fragment. Concrete values are effect.Node trees (package effect); the
// state package intentionally does not know that type to avoid an
// import cycle (effect.Resolve needs GameState/Player, so effect must
// import state, not the reverse). Any code holding a Continuation type
// asserts it back to effect.Node before use.
type Continuation any

// ChoiceOption is one selectable branch of a PendingChoice.
type ChoiceOption struct {
	ID     string
	Label  string
	Next   Continuation
}

// PendingChoice is the suspension record an effect resolution writes to
// a player when it needs player input to continue. A
// subsequent ResolveChoice action feeds the selected option's Next back
// into the resolver.
type PendingChoice struct {
	ID           string
	SourceCardID string
	Kind         string // e.g. "choice", "discard_for_attack", "maximal_effect"
	Prompt       string
	Options      []ChoiceOption
}

// CardColor mirrors catalog.CardColor without creating an import cycle
// (state is a leaf package; catalog is free to depend on state-less
// value types but state should not depend on catalog for something this
// small).
type CardColor string

const (
	ColorRed   CardColor = "red"
	ColorBlue  CardColor = "blue"
	ColorGreen CardColor = "green"
	ColorWhite CardColor = "white"
)

// Card is a card instance — an id reference plus nothing else; all
// rules content lives in the catalog, keyed by ID.
type Card struct {
	ID string
}

// UnitInstance is a recruited unit sitting in a player's army.
type UnitInstance struct {
	InstanceID   string
	DefID        string
	Wounded      bool
	Exhausted    bool
	IsBanner     bool
}

// SkillCooldownState tracks a skill's per-scope usage for the current
// round/turn/combat, and whether it is flipped to its spent face.
type SkillCooldownState struct {
	UsedThisRound  bool
	UsedThisTurn   bool
	UsedThisCombat bool
	ActiveUntilNextTurn bool
}

// Player is seat-scoped state.
type Player struct {
	ID       string
	HeroID   string
	Position *hexcoord.Coord

	Fame       int
	Reputation int // clamped [-7, 7]
	Armor      int
	HandLimit  int
	CommandTokens int

	Hand         []Card
	Deck         []Card
	Discard      []Card
	PlayArea     []Card
	RemovedCards []Card

	Crystals map[string]int // per basic color, cap 3
	PureMana map[string]int // per-turn tokens, any color including gold/black

	Units           []UnitInstance
	AttachedBanners []string // unit instance ids carrying a banner

	Skills         []string
	SkillFlipState map[string]bool // skill id -> flipped to spent face
	SkillCooldowns map[string]SkillCooldownState

	SelectedTacticID string
	TacticFlipped    bool

	HasMovedThisTurn      bool
	HasTakenActionThisTurn bool
	HasCombattedThisTurn  bool

	MovePoints      int
	InfluencePoints int

	UsedManaFromSource []string // die colors taken from Source this turn

	IsResting bool

	PendingChoice               *PendingChoice
	PendingDiscardFor           string // kind tag; e.g. "attack","bonus","crystal"
	PendingMaximalEffect        *PendingChoice
	PendingRewardSelection      *PendingChoice

	CombatAccumulator CombatAccumulator

	WoundsReceivedThisTurn  int
	EnemiesDefeatedThisTurn int
}

// NewPlayer creates a zero-value player with initialized maps/slices so
// callers never have to nil-check before indexing.
func NewPlayer(id, heroID string) Player {
	return Player{
		ID:             id,
		HeroID:         heroID,
		Crystals:       map[string]int{"red": 0, "blue": 0, "green": 0, "white": 0},
		PureMana:       map[string]int{},
		SkillFlipState: map[string]bool{},
		SkillCooldowns: map[string]SkillCooldownState{},
		HandLimit:      5,
		CommandTokens:  1,
	}
}

// Clone returns a deep-enough copy of the player for commands that need
// to snapshot prior to a speculative mutation, to support undo. Slices
// and maps are copied; Card/UnitInstance values are copied by value
// since they hold no nested reference types.
func (p Player) Clone() Player {
	clone := p
	clone.Hand = append([]Card(nil), p.Hand...)
	clone.Deck = append([]Card(nil), p.Deck...)
	clone.Discard = append([]Card(nil), p.Discard...)
	clone.PlayArea = append([]Card(nil), p.PlayArea...)
	clone.RemovedCards = append([]Card(nil), p.RemovedCards...)
	clone.Units = append([]UnitInstance(nil), p.Units...)
	clone.AttachedBanners = append([]string(nil), p.AttachedBanners...)
	clone.Skills = append([]string(nil), p.Skills...)
	clone.UsedManaFromSource = append([]string(nil), p.UsedManaFromSource...)

	clone.Crystals = cloneIntMap(p.Crystals)
	clone.PureMana = cloneIntMap(p.PureMana)
	clone.SkillFlipState = cloneBoolMap(p.SkillFlipState)

	clone.SkillCooldowns = make(map[string]SkillCooldownState, len(p.SkillCooldowns))
	for k, v := range p.SkillCooldowns {
		clone.SkillCooldowns[k] = v
	}

	if p.Position != nil {
		pos := *p.Position
		clone.Position = &pos
	}
	return clone
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ClampReputation enforces the [-7, 7] invariant and returns the clamped value plus the actual delta applied, so
// callers can emit both the nominal and actual deltas.
func ClampReputation(current, delta int) (newValue int, actualDelta int) {
	raw := current + delta
	switch {
	case raw > 7:
		raw = 7
	case raw < -7:
		raw = -7
	}
	return raw, raw - current
}

// ClampCrystal enforces the crystals[c] in [0,3] invariant.
func ClampCrystal(current, delta int) int {
	v := current + delta
	if v > 3 {
		return 3
	}
	if v < 0 {
		return 0
	}
	return v
}
