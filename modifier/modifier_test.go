package modifier

import (
	"testing"

	"github.com/mage-knight-digital/MageKnight-sub012/elemental"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

func baseState() state.GameState {
	return state.GameState{Players: []state.Player{state.NewPlayer("p1", "arythea")}}
}

func TestEffectiveAttackBonusSumsMatchingModifiers(t *testing.T) {
	gs := baseState()
	gs = Add(gs, "m1", state.ActiveModifier{
		CreatedByPlayerID: "p1",
		Scope:             state.ModifierScope{Kind: state.ScopeSelf},
		Effect:            state.ModifierEffect{Kind: state.EffectAttackBonus, Amount: 2, Element: elemental.Fire},
	})
	gs = Add(gs, "m2", state.ActiveModifier{
		CreatedByPlayerID: "p1",
		Scope:             state.ModifierScope{Kind: state.ScopeSelf},
		Effect:            state.ModifierEffect{Kind: state.EffectAttackBonus, Amount: 1},
	})
	if got := EffectiveAttackBonus(gs, "p1", elemental.Fire); got != 3 {
		t.Fatalf("got %d, want 3 (2 fire-specific + 1 unscoped)", got)
	}
	if got := EffectiveAttackBonus(gs, "p1", elemental.Ice); got != 1 {
		t.Fatalf("got %d, want 1 (only unscoped applies to ice)", got)
	}
}

func TestExpireTurnEndOnlyRemovesMatchingPlayerAndKind(t *testing.T) {
	gs := baseState()
	gs = Add(gs, "b1", state.ActiveModifier{
		Duration: state.ModifierDuration{Kind: state.DurationTurn, PlayerID: "p1"},
		Effect:   state.ModifierEffect{Kind: state.EffectAttackBonus, Amount: 1},
	})
	gs = Add(gs, "a1", state.ActiveModifier{
		Duration: state.ModifierDuration{Kind: state.DurationPersistent},
		Effect:   state.ModifierEffect{Kind: state.EffectAttackBonus, Amount: 1},
	})
	next, removed := Expire(gs, TriggerTurnEnd, "p1", "")
	if len(removed) != 1 || removed[0] != "b1" {
		t.Fatalf("expected only b1 removed, got %v", removed)
	}
	if len(next.ActiveModifiers) != 1 || next.ActiveModifiers[0].ID != "a1" {
		t.Fatalf("persistent modifier should survive turn end")
	}
}

func TestExpireOrdersRemovedIDsAscending(t *testing.T) {
	gs := baseState()
	gs = Add(gs, "zeta", state.ActiveModifier{
		Duration: state.ModifierDuration{Kind: state.DurationRound},
		Effect:   state.ModifierEffect{Kind: state.EffectAttackBonus},
	})
	gs = Add(gs, "alpha", state.ActiveModifier{
		Duration: state.ModifierDuration{Kind: state.DurationRound},
		Effect:   state.ModifierEffect{Kind: state.EffectAttackBonus},
	})
	_, removed := Expire(gs, TriggerRoundEnd, "p1", "")
	if removed[0] != "alpha" || removed[1] != "zeta" {
		t.Fatalf("expected ascending id order, got %v", removed)
	}
}

func TestEffectiveEnemyArmorAppliesOverrideThenReduction(t *testing.T) {
	gs := baseState()
	gs = Add(gs, "elusive", state.ActiveModifier{
		Scope: state.ModifierScope{Kind: state.ScopeOneEnemy, EnemyInstanceID: "e1"},
		Effect: state.ModifierEffect{
			Kind:         state.EffectBaseArmorOverride,
			ArmorByPhase: map[state.CombatPhase]int{state.PhaseRangedSiege: 9},
		},
	})
	gs = Add(gs, "reduce", state.ActiveModifier{
		Scope:  state.ModifierScope{Kind: state.ScopeOneEnemy, EnemyInstanceID: "e1"},
		Effect: state.ModifierEffect{Kind: state.EffectEnemyArmorReduction, Amount: 3},
	})
	got := EffectiveEnemyArmor(gs, "e1", 4, state.PhaseRangedSiege)
	if got != 6 {
		t.Fatalf("got %d, want 6 (override 9 - reduction 3)", got)
	}
}

func TestEffectiveEnemyArmorNeverNegative(t *testing.T) {
	gs := baseState()
	gs = Add(gs, "reduce", state.ActiveModifier{
		Scope:  state.ModifierScope{Kind: state.ScopeAllEnemies},
		Effect: state.ModifierEffect{Kind: state.EffectEnemyArmorReduction, Amount: 99},
	})
	if got := EffectiveEnemyArmor(gs, "e1", 2, state.PhaseAttack); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestReputationClamping(t *testing.T) {
	v, delta := state.ClampReputation(6, 5)
	if v != 7 || delta != 1 {
		t.Fatalf("got v=%d delta=%d, want v=7 delta=1", v, delta)
	}
	v, delta = state.ClampReputation(-6, -5)
	if v != -7 || delta != -1 {
		t.Fatalf("got v=%d delta=%d, want v=-7 delta=-1", v, delta)
	}
}
