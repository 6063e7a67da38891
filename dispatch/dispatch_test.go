package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mage-knight-digital/MageKnight-sub012/action"
	"github.com/mage-knight-digital/MageKnight-sub012/catalog"
	"github.com/mage-knight-digital/MageKnight-sub012/combat"
	"github.com/mage-knight-digital/MageKnight-sub012/command/mock"
	"github.com/mage-knight-digital/MageKnight-sub012/effect"
	"github.com/mage-knight-digital/MageKnight-sub012/elemental"
	"github.com/mage-knight-digital/MageKnight-sub012/event"
	"github.com/mage-knight-digital/MageKnight-sub012/rng"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

func newDispatchTestState() state.GameState {
	gs := state.GameState{
		Players: []state.Player{state.NewPlayer("p1", "arythea")},
		RNG:     rng.New(1),
	}
	return combat.Start(gs, []state.CombatEnemy{{InstanceID: "e1", Armor: 3}}, false, nil)
}

func TestDispatchRejectsActionDuringWrongPhase(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock.NewMockIDGenerator(ctrl)

	gs := newDispatchTestState()
	next, events := Dispatch(gs, action.PlayerAction{Type: action.AssignBlock, PlayerID: "p1", EnemyInstanceID: "e1"}, gen, nil)

	require.Equal(t, gs, next, "rejected dispatch must not mutate state")
	require.Len(t, events, 1)
	require.Equal(t, event.InvalidAction, events[0].Type)
}

func TestDispatchAssignAndDeclareAttackPushesCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock.NewMockIDGenerator(ctrl)
	gen.EXPECT().NewID().Return("cmd-1")
	gen.EXPECT().NewID().Return("cmd-2")

	gs := newDispatchTestState()
	gs, events := Dispatch(gs, action.PlayerAction{
		Type: action.AssignAttack, PlayerID: "p1", EnemyInstanceID: "e1",
		Amount: 3, Element: elemental.Physical, AttackType: "ranged",
	}, gen, nil)
	require.Empty(t, events)
	require.Len(t, gs.CommandStack, 1)

	gs, events = Dispatch(gs, action.PlayerAction{Type: action.DeclareAttack, PlayerID: "p1", EnemyInstanceID: "e1"}, gen, nil)
	require.Len(t, gs.CommandStack, 2)

	var defeated bool
	for _, e := range events {
		if e.Type == event.EnemyDefeated {
			defeated = true
		}
	}
	require.True(t, defeated)
}

func TestDispatchUndoRestoresPriorSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock.NewMockIDGenerator(ctrl)
	gen.EXPECT().NewID().Return("cmd-1")

	before := newDispatchTestState()
	after, _ := Dispatch(before, action.PlayerAction{
		Type: action.AssignAttack, PlayerID: "p1", EnemyInstanceID: "e1",
		Amount: 3, Element: elemental.Physical, AttackType: "ranged",
	}, gen, nil)

	cmd, popped, ok := after.PopCommand()
	require.True(t, ok)
	restored, _ := cmd.Undo(popped)
	require.Equal(t, before.Combat.PendingAttack, restored.Combat.PendingAttack)
}

func TestDispatchPlayCardResolvesEffectTree(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock.NewMockIDGenerator(ctrl)
	gen.EXPECT().NewID().Return("cmd-1")

	cat := catalog.New()
	cat.Cards["march"] = catalog.CardDef{
		ID:   "march",
		Name: "March",
		Basic: effect.Node{Kind: effect.KindGainMove, N: 2},
	}

	gs := state.GameState{
		Players: []state.Player{state.NewPlayer("p1", "arythea")},
		RNG:     rng.New(1),
	}
	p, _ := gs.PlayerByID("p1")
	p.Hand = append(p.Hand, state.Card{ID: "march"})
	gs = gs.WithPlayer(p)

	next, events := Dispatch(gs, action.PlayerAction{Type: action.PlayCard, PlayerID: "p1", CardID: "march"}, gen, cat)
	require.Empty(t, events)
	require.Len(t, next.CommandStack, 1)

	p, _ = next.PlayerByID("p1")
	require.Equal(t, 2, p.MovePoints)
	require.Empty(t, p.Hand)
	require.Len(t, p.PlayArea, 1)
	require.Equal(t, "march", p.PlayArea[0].ID)
}

func TestDispatchPlayCardRejectsCardNotInHand(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock.NewMockIDGenerator(ctrl)
	cat := catalog.New()

	gs := state.GameState{
		Players: []state.Player{state.NewPlayer("p1", "arythea")},
		RNG:     rng.New(1),
	}
	next, events := Dispatch(gs, action.PlayerAction{Type: action.PlayCard, PlayerID: "p1", CardID: "march"}, gen, cat)
	require.Equal(t, gs, next)
	require.Len(t, events, 1)
	require.Equal(t, event.InvalidAction, events[0].Type)
}
