// Package validate checks a submitted action.PlayerAction against the
// current GameState before the dispatcher hands it to a rule package,
// accumulating every violation data-driven, the way a class-requirements
// validator walks a list of (requirement, choices, field) triples rather
// than hand-writing one big if/else chain.
package validate

import (
	"github.com/mage-knight-digital/MageKnight-sub012/action"
	"github.com/mage-knight-digital/MageKnight-sub012/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

// check is one named precondition. Requirements for a given action.Type
// are expressed as a slice of these, so adding a new rule doesn't touch
// control flow — it adds a row to the slice Checks returns.
type check struct {
	failed  bool
	code    rpgerr.Code
	message string
}

// Checks returns every unsatisfied precondition for a, broadest first:
// player existence, then the action's shared preconditions (active
// combat, known target), then action-specific ones such as the phase.
// An empty return means a is valid to execute.
func Checks(gs state.GameState, a action.PlayerAction) []*rpgerr.Error {
	var rows []check

	if _, ok := gs.PlayerByID(a.PlayerID); !ok {
		rows = append(rows, check{true, rpgerr.CodeNotFound, "unknown player"})
	}

	switch a.Type {
	case action.AssignBlock, action.DeclareBlock:
		rows = append(rows, combatChecks(gs, a)...)
		if a.Type == action.AssignBlock {
			rows = append(rows, check{gs.Combat != nil && gs.Combat.Phase != state.PhaseBlock,
				rpgerr.CodeWrongCombatPhase, "block can only be assigned during the block phase"})
		}
	case action.AssignAttack, action.DeclareAttack:
		rows = append(rows, combatChecks(gs, a)...)
		if a.Type == action.AssignAttack {
			rows = append(rows, check{gs.Combat != nil && gs.Combat.Phase != state.PhaseRangedSiege && gs.Combat.Phase != state.PhaseAttack,
				rpgerr.CodeWrongCombatPhase, "attack can only be assigned during ranged/siege or attack"})
		}
	case action.PayCumbersome, action.PayHeroesAssault, action.PayThugsDamage, action.Defend, action.AdvanceCombat, action.EndCombat:
		rows = append(rows, combatChecks(gs, a)...)
	case action.PlayCard:
		rows = append(rows, cardInHandCheck(gs, a)...)
	case action.ResolveChoice:
		rows = append(rows, pendingChoiceCheck(gs, a)...)
	}

	var errs []*rpgerr.Error
	for _, r := range rows {
		if r.failed {
			errs = append(errs, rpgerr.New(r.code, r.message))
		}
	}
	return errs
}

// combatChecks covers the preconditions shared by every action that
// requires an active combat referencing a known enemy.
func combatChecks(gs state.GameState, a action.PlayerAction) []check {
	rows := []check{
		{gs.Combat == nil, rpgerr.CodeNotInCombat, "no active combat"},
	}
	if gs.Combat == nil {
		return rows
	}
	if a.EnemyInstanceID != "" {
		found := false
		for _, e := range gs.Combat.Enemies {
			if e.InstanceID == a.EnemyInstanceID {
				found = true
				break
			}
		}
		rows = append(rows, check{!found, rpgerr.CodeInvalidTarget, "unknown enemy instance"})
	}
	return rows
}

// cardInHandCheck covers the one precondition PlayCard needs beyond the
// shared player-existence check: the referenced card must actually be in
// the acting player's hand. Whether the id resolves in the catalog, and
// whether the chosen branch exists, is a dispatch-time concern — those
// failures surface as execution errors rather than validation rows,
// since validate has no catalog dependency.
func cardInHandCheck(gs state.GameState, a action.PlayerAction) []check {
	player, ok := gs.PlayerByID(a.PlayerID)
	if !ok {
		return nil
	}
	for _, c := range player.Hand {
		if c.ID == a.CardID {
			return nil
		}
	}
	return []check{{true, rpgerr.CodeCardNotInHand, "card not in hand"}}
}

// pendingChoiceCheck requires the acting player to actually have a
// PendingChoice to resolve before ResolveChoice is allowed to run.
func pendingChoiceCheck(gs state.GameState, a action.PlayerAction) []check {
	player, ok := gs.PlayerByID(a.PlayerID)
	if !ok {
		return nil
	}
	return []check{{player.PendingChoice == nil, rpgerr.CodeNoPendingChoice, "no pending choice"}}
}
