package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub012/elemental"
	"github.com/mage-knight-digital/MageKnight-sub012/event"
	"github.com/mage-knight-digital/MageKnight-sub012/rng"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

func newCombatTestState() state.GameState {
	return state.GameState{
		Players: []state.Player{state.NewPlayer("p1", "arythea")},
		RNG:     rng.New(1),
		Decks:   state.Decks{EnemyTokensByColor: map[string][]string{"brown": {"prowlers"}}},
	}
}

func TestStartCreatesRangedSiegePhase(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1"}}, false, nil)
	require.NotNil(t, gs.Combat)
	require.Equal(t, state.PhaseRangedSiege, gs.Combat.Phase)
}

func TestAssignBlockOnlyDuringBlockPhase(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1"}}, false, nil)
	_, err := AssignBlock(gs, "p1", "e1", 3, elemental.Physical)
	require.Error(t, err)
}

func TestAdvancePhaseWalksAllFourPhases(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1", Attack: elemental.Values{Physical: 3}, Armor: 3, FameValue: 2}}, false, nil)

	want := []state.CombatPhase{state.PhaseBlock, state.PhaseAssignDamage, state.PhaseAttack}
	for _, phase := range want {
		var err error
		gs, _, err = AdvancePhase(gs, "p1")
		require.NoError(t, err)
		require.Equal(t, phase, gs.Combat.Phase)
	}
	_, _, err := AdvancePhase(gs, "p1")
	require.Error(t, err)
}

func TestRangedSiegeExitAwardsFameAndDrawsSummons(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{
		{InstanceID: "e1", FameValue: 4, IsDefeated: true},
		{InstanceID: "e2", Abilities: []string{"summon"}},
	}, false, nil)

	gs, events, err := AdvancePhase(gs, "p1")
	require.NoError(t, err)

	p, _ := gs.PlayerByID("p1")
	require.Equal(t, 4, p.Fame)
	require.Equal(t, 1, p.EnemiesDefeatedThisTurn)

	var sawSummon bool
	for _, e := range events {
		if e.Type == event.EnemySummoned {
			sawSummon = true
		}
	}
	require.True(t, sawSummon, "expected a summon event, got %+v", events)
	require.Len(t, gs.Combat.Enemies, 3)

	var summoner, summoned state.CombatEnemy
	for _, e := range gs.Combat.Enemies {
		if e.InstanceID == "e2" {
			summoner = e
		}
		if e.IsSummoned {
			summoned = e
		}
	}
	require.True(t, summoner.IsSummonerHidden)
	require.Equal(t, "e2", summoned.SummonerInstanceID)
}

func TestBlockExitDiscardsPendingAndComputesAllBlocked(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1", Attack: elemental.Values{Physical: 3}, Armor: 3}}, false, nil)
	gs, _, err := AdvancePhase(gs, "p1")
	require.NoError(t, err)

	gs, err = AssignBlock(gs, "p1", "e1", 3, elemental.Physical)
	require.NoError(t, err)
	gs, _, err = DeclareBlock(gs, "p1", "e1", elemental.Resistances{})
	require.NoError(t, err)
	require.True(t, gs.Combat.Enemies[0].IsBlocked)

	gs, _, err = AdvancePhase(gs, "p1")
	require.NoError(t, err)
	require.True(t, gs.Combat.AllDamageBlockedThisPhase)
	require.Empty(t, gs.Combat.PendingBlock)
}

func TestAssignDamageExitDiscardsUndefeatedSummons(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{
		{InstanceID: "e1", Abilities: []string{"summon"}},
	}, false, nil)
	gs, _, err := AdvancePhase(gs, "p1") // -> Block, draws a summon
	require.NoError(t, err)
	require.Len(t, gs.Combat.Enemies, 2)

	gs, _, err = AdvancePhase(gs, "p1") // -> AssignDamage
	require.NoError(t, err)
	gs, _, err = AdvancePhase(gs, "p1") // -> Attack, discards the undefeated summon
	require.NoError(t, err)

	require.Len(t, gs.Combat.Enemies, 1)
	require.False(t, gs.Combat.Enemies[0].IsSummonerHidden)
}

func TestIsEnemyBlockedRequiresSufficientBlock(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1"}}, false, nil)
	gs, _, _ = AdvancePhase(gs, "p1")
	gs, err := AssignBlock(gs, "p1", "e1", 3, elemental.Physical)
	require.NoError(t, err)
	attack := elemental.Values{Physical: 3}
	require.True(t, IsEnemyBlocked(gs, "e1", attack, elemental.Resistances{}))
	require.False(t, IsEnemyBlocked(gs, "e1", elemental.Values{Physical: 4}, elemental.Resistances{}))
}

func TestDeclareBlockFailsWithInsufficientBlock(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1", Attack: elemental.Values{Physical: 4}}}, false, nil)
	gs, _, _ = AdvancePhase(gs, "p1")
	gs, err := AssignBlock(gs, "p1", "e1", 3, elemental.Physical)
	require.NoError(t, err)
	_, _, err = DeclareBlock(gs, "p1", "e1", elemental.Resistances{})
	require.Error(t, err)
}

func TestCumbersomeReducesEffectiveAttack(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1", Attack: elemental.Values{Physical: 5}, Abilities: []string{"cumbersome"}}}, false, nil)
	p, _ := gs.PlayerByID("p1")
	p.MovePoints = 3
	gs = gs.WithPlayer(p)

	gs, err := PayCumbersome(gs, "p1", "e1", 3)
	require.NoError(t, err)
	gs, _, err = AdvancePhase(gs, "p1")
	require.NoError(t, err)

	gs, err = AssignBlock(gs, "p1", "e1", 2, elemental.Physical)
	require.NoError(t, err)
	gs, _, err = DeclareBlock(gs, "p1", "e1", elemental.Resistances{})
	require.NoError(t, err, "reduced attack of 2 should be covered by 2 block")
}

func TestBrutalDoublesAssignedDamage(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1", Attack: elemental.Values{Physical: 2}, Abilities: []string{"brutal"}}}, false, nil)
	gs, events, wounded := ResolveDamage(gs, "p1", "e1", 3)
	require.True(t, wounded, "2 brutal doubles to 4, exceeding armor of 3")
	require.NotEmpty(t, events)
}

func TestDeclareAttackUsesEffectiveEnemyArmor(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1", Armor: 2, Abilities: []string{"elusive"}}}, false, nil)
	gs, err := AssignAttack(gs, "p1", "e1", 2, elemental.Physical, "ranged")
	require.NoError(t, err)
	gs, events, err := DeclareAttack(gs, "p1", "e1")
	require.NoError(t, err)
	require.True(t, gs.Combat.Enemies[0].IsDefeated)
	require.Len(t, events, 1)
}

func TestRangedAttackOnFortifiedHeroesRequiresInfluence(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1", Armor: 3, Abilities: []string{"heroes"}}}, true, nil)
	gs, err := AssignAttack(gs, "p1", "e1", 5, elemental.Physical, "ranged")
	require.NoError(t, err)
	_, _, err = DeclareAttack(gs, "p1", "e1")
	require.Error(t, err)

	p, _ := gs.PlayerByID("p1")
	p.InfluencePoints = 3
	gs = gs.WithPlayer(p)
	gs, err = PayHeroesAssaultInfluence(gs, "p1", 3)
	require.NoError(t, err)
	_, _, err = DeclareAttack(gs, "p1", "e1")
	require.NoError(t, err)
}

func TestEndCombatReportsVictoryAndClearsCombatState(t *testing.T) {
	gs := newCombatTestState()
	gs = Start(gs, []state.CombatEnemy{{InstanceID: "e1", Armor: 5}}, false, nil)
	gs, err := AssignAttack(gs, "p1", "e1", 5, elemental.Physical, "ranged")
	require.NoError(t, err)
	gs, _, err = DeclareAttack(gs, "p1", "e1")
	require.NoError(t, err)
	gs, events := End(gs, "p1")
	require.Nil(t, gs.Combat)

	found := false
	for _, e := range events {
		if e.Victory {
			found = true
		}
	}
	require.True(t, found, "expected a victory=true event among %+v", events)
}
