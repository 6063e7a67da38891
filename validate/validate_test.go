package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub012/action"
	"github.com/mage-knight-digital/MageKnight-sub012/combat"
	"github.com/mage-knight-digital/MageKnight-sub012/rng"
	"github.com/mage-knight-digital/MageKnight-sub012/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

func TestChecksRejectsActionOutsideCombat(t *testing.T) {
	gs := state.GameState{Players: []state.Player{state.NewPlayer("p1", "arythea")}, RNG: rng.New(1)}
	errs := Checks(gs, action.PlayerAction{Type: action.AssignBlock, PlayerID: "p1", EnemyInstanceID: "e1"})
	require.NotEmpty(t, errs)
	require.Equal(t, rpgerr.CodeNotInCombat, errs[0].Code)
}

func TestChecksRejectsUnknownEnemy(t *testing.T) {
	gs := state.GameState{Players: []state.Player{state.NewPlayer("p1", "arythea")}, RNG: rng.New(1)}
	gs = combat.Start(gs, []state.CombatEnemy{{InstanceID: "e1"}}, false, nil)
	gs, _, _ = combat.AdvancePhase(gs, "p1")
	errs := Checks(gs, action.PlayerAction{Type: action.AssignBlock, PlayerID: "p1", EnemyInstanceID: "does-not-exist"})
	require.NotEmpty(t, errs)
	require.Equal(t, rpgerr.CodeInvalidTarget, errs[0].Code)
}

func TestChecksPassesValidAssignBlock(t *testing.T) {
	gs := state.GameState{Players: []state.Player{state.NewPlayer("p1", "arythea")}, RNG: rng.New(1)}
	gs = combat.Start(gs, []state.CombatEnemy{{InstanceID: "e1"}}, false, nil)
	gs, _, _ = combat.AdvancePhase(gs, "p1")
	errs := Checks(gs, action.PlayerAction{Type: action.AssignBlock, PlayerID: "p1", EnemyInstanceID: "e1"})
	require.Empty(t, errs)
}

func TestChecksRejectsUnknownPlayer(t *testing.T) {
	gs := state.GameState{Players: []state.Player{state.NewPlayer("p1", "arythea")}, RNG: rng.New(1)}
	errs := Checks(gs, action.PlayerAction{Type: action.EndCombat, PlayerID: "ghost"})
	require.NotEmpty(t, errs)
	require.Equal(t, rpgerr.CodeNotFound, errs[0].Code)
}
