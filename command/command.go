// Package command supplies the concrete state.ReversibleCommand
// implementation pushed onto GameState.CommandStack, plus the id
// generator the rest of the engine (notably effect.Resolve's injected
// idFunc) is told lives at this boundary. Commands snapshot the whole
// GameState before executing, since GameState is an immutable
// clone-on-write value: undo is just handing back the snapshot, the way
// handing back a prior value is cheaper here than recording an inverse
// operation per command kind.
package command

import "github.com/mage-knight-digital/MageKnight-sub012/state"

// Kind tags identify what a pushed command did, for diagnostics and for
// the "an irreversible command clears the stack" rule.
const (
	KindAssignBlock         = "assign_block"
	KindDeclareBlock        = "declare_block"
	KindAssignAttack        = "assign_attack"
	KindDeclareAttack       = "declare_attack"
	KindPayCumbersome       = "pay_cumbersome"
	KindPayHeroesAssault    = "pay_heroes_assault_influence"
	KindPayThugsDamage      = "pay_thugs_damage_influence"
	KindDefend              = "defend"
	KindAdvanceCombatPhase  = "advance_combat_phase"
	KindEndCombat           = "end_combat"
	KindPlayCard            = "play_card"
	KindResolveChoice       = "resolve_choice"
)

// IDGenerator produces opaque ids: each pushed Command's own id, and —
// because dispatch passes its NewID to effect.Resolve/ResolveChoice as
// their idFunc — the ids of modifiers added during effect resolution.
//go:generate mockgen -destination=mock/mock_idgenerator.go -package=mock github.com/mage-knight-digital/MageKnight-sub012/command IDGenerator
type IDGenerator interface {
	NewID() string
}

// Command is the concrete type pushed onto GameState.CommandStack. It
// satisfies state.ReversibleCommand.
type Command struct {
	ID     string
	Tag    string
	Player string
	Before state.GameState
}

// Kind returns the command's kind tag.
func (c Command) Kind() string { return c.Tag }

// PlayerID returns the acting player.
func (c Command) PlayerID() string { return c.Player }

// Undo restores the snapshot taken before this command executed.
func (c Command) Undo(state.GameState) (state.GameState, []state.EventRecord) {
	return c.Before, nil
}

// New builds a Command recording gs as the pre-execution snapshot to
// undo back to, tagged with kind and the acting player, identified via
// gen.
func New(gen IDGenerator, kind, playerID string, before state.GameState) Command {
	return Command{ID: gen.NewID(), Tag: kind, Player: playerID, Before: before}
}
