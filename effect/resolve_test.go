package effect

import (
	"testing"

	"github.com/mage-knight-digital/MageKnight-sub012/elemental"
	"github.com/mage-knight-digital/MageKnight-sub012/rng"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

func newTestState() state.GameState {
	return state.GameState{
		Players: []state.Player{state.NewPlayer("p1", "arythea")},
		RNG:     rng.New(1),
	}
}

func noID() string { return "gen-id" }

func TestResolveGainMove(t *testing.T) {
	gs := newTestState()
	res := Resolve(gs, "p1", Node{Kind: KindGainMove, N: 3}, "", noID)
	p, _ := res.NextState.PlayerByID("p1")
	if p.MovePoints != 3 {
		t.Fatalf("got %d, want 3", p.MovePoints)
	}
}

func TestResolveCompoundAccumulatesLeftToRight(t *testing.T) {
	gs := newTestState()
	tree := Compound(
		Node{Kind: KindGainMove, N: 2},
		Node{Kind: KindGainInfluence, N: 1},
		Node{Kind: KindGainBlock, N: 4, Element: elemental.Fire},
	)
	res := Resolve(gs, "p1", tree, "", noID)
	p, _ := res.NextState.PlayerByID("p1")
	if p.MovePoints != 2 || p.InfluencePoints != 1 || p.CombatAccumulator.Block != 4 {
		t.Fatalf("compound did not accumulate: %+v", p)
	}
	if p.CombatAccumulator.BlockElements.Fire != 4 {
		t.Fatalf("block element not recorded: %+v", p.CombatAccumulator.BlockElements)
	}
}

func TestResolveChoiceFreezesLaterSiblings(t *testing.T) {
	gs := newTestState()
	tree := Compound(
		Node{Kind: KindGainMove, N: 1},
		Node{Kind: KindChoice, Options: []Option{
			{ID: "a", Label: "gain influence", Next: &Node{Kind: KindGainInfluence, N: 5}},
			{ID: "b", Label: "gain block", Next: &Node{Kind: KindGainBlock, N: 5}},
		}},
		Node{Kind: KindGainInfluence, N: 1},
	)
	res := Resolve(gs, "p1", tree, "card1", noID)
	if res.RequiresChoice == nil {
		t.Fatalf("expected suspension on choice node")
	}
	p, _ := res.NextState.PlayerByID("p1")
	if p.MovePoints != 1 {
		t.Fatalf("effect before the choice should have applied")
	}
	if p.InfluencePoints != 0 {
		t.Fatalf("effect after the choice should NOT have applied yet, got influence=%d", p.InfluencePoints)
	}

	final, err := ResolveChoice(res.NextState, "p1", "a", noID)
	if err != nil {
		t.Fatalf("ResolveChoice: %v", err)
	}
	p, _ = final.NextState.PlayerByID("p1")
	if p.InfluencePoints != 6 {
		t.Fatalf("got influence=%d, want 6 (5 from choice + 1 from frozen sibling)", p.InfluencePoints)
	}
}

func TestResolveChoiceUnknownOptionErrors(t *testing.T) {
	gs := newTestState()
	tree := Node{Kind: KindChoice, Options: []Option{{ID: "a", Next: &Node{Kind: KindGainMove, N: 1}}}}
	res := Resolve(gs, "p1", tree, "", noID)
	if _, err := ResolveChoice(res.NextState, "p1", "nope", noID); err == nil {
		t.Fatalf("expected error for unknown option id")
	}
}

func TestResolveDiscardForAttackDiscardsSelectedCard(t *testing.T) {
	gs := newTestState()
	p, _ := gs.PlayerByID("p1")
	p.Hand = []state.Card{{ID: "march"}, {ID: "stamina"}}
	gs = gs.WithPlayer(p)

	tree := Node{Kind: KindDiscardForAttack, Options: []Option{
		{ID: "march", Label: "discard march", Next: &Node{Kind: KindGainAttack, N: 2}},
		{ID: "stamina", Label: "discard stamina", Next: &Node{Kind: KindGainAttack, N: 1}},
	}}
	res := Resolve(gs, "p1", tree, "", noID)
	if res.RequiresChoice == nil {
		t.Fatalf("expected suspension")
	}
	final, err := ResolveChoice(res.NextState, "p1", "march", noID)
	if err != nil {
		t.Fatalf("ResolveChoice: %v", err)
	}
	p, _ = final.NextState.PlayerByID("p1")
	if len(p.Hand) != 1 || p.Hand[0].ID != "stamina" {
		t.Fatalf("expected march discarded, hand=%+v", p.Hand)
	}
	if len(p.Discard) != 1 || p.Discard[0].ID != "march" {
		t.Fatalf("expected march in discard, got %+v", p.Discard)
	}
	if p.CombatAccumulator.Attack.Normal != 2 {
		t.Fatalf("expected attack bonus from discarded card's branch, got %d", p.CombatAccumulator.Attack.Normal)
	}
}

func TestResolveMaximalEffectPicksHighest(t *testing.T) {
	gs := newTestState()
	tree := Node{Kind: KindMaximalEffect, MaximalOptions: []Node{
		{Kind: KindGainMove, N: 2},
		{Kind: KindGainMove, N: 5},
		{Kind: KindGainMove, N: 3},
	}}
	res := Resolve(gs, "p1", tree, "", noID)
	p, _ := res.NextState.PlayerByID("p1")
	if p.MovePoints != 5 {
		t.Fatalf("got %d, want 5", p.MovePoints)
	}
}

func TestResolveRollDieForWoundAdvancesRNGExactlyOncePerTrial(t *testing.T) {
	gs := newTestState()
	startCounter := gs.RNG.Counter
	res := Resolve(gs, "p1", Node{Kind: KindRollDieForWound, DiceCount: 1, WoundColors: []string{"black", "red"}}, "", noID)
	if res.NextState.RNG.Counter-startCounter != 1 {
		t.Fatalf("expected exactly one RNG draw, advanced by %d", res.NextState.RNG.Counter-startCounter)
	}
}
