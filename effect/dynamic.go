package effect

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub012/event"
	"github.com/mage-knight-digital/MageKnight-sub012/rng"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

// resolveChooseBonusWithRisk rolls RiskColors-flagged dice immediately
// (no suspension: the player already committed to the risk by playing
// this branch) and grants the bonus only if no rolled color appears in
// RiskColors, mirroring cards like Horn of Wrath's risk/reward draws.
func resolveChooseBonusWithRisk(gs state.GameState, playerID string, n Node, sourceCardID string) ResolveResult {
	player, _ := gs.PlayerByID(playerID)
	color, nextRNG := gs.RNG.RollDie()
	gs = gs.WithRNG(nextRNG)

	wounded := false
	for _, wc := range n.RiskColors {
		if string(color) == wc {
			wounded = true
			break
		}
	}

	var events []event.Event
	if wounded {
		player.Hand = append(player.Hand, state.Card{ID: "wound"})
		player.WoundsReceivedThisTurn++
		events = append(events, event.Event{Type: event.CardGained, PlayerID: playerID, CardID: "wound"})
	} else {
		if n.AttackType == "block" {
			player.CombatAccumulator.Block += n.RiskAmount
			player.CombatAccumulator.BlockElements = player.CombatAccumulator.BlockElements.With(
				n.Element, player.CombatAccumulator.BlockElements.Get(n.Element)+n.RiskAmount)
		} else {
			applyAttackGain(&player, Node{N: n.RiskAmount, Element: n.Element, AttackType: n.AttackType})
		}
	}
	gs = gs.WithPlayer(player)
	return ResolveResult{NextState: gs, Description: "choose bonus with risk", Events: events}
}

// resolveDiscardFor suspends on a choice of hand cards; selecting one
// discards that card and resolves its attached bonus effect. Shared by
// DiscardForAttack / DiscardForBonus / DiscardForCrystal / CardBoost —
// they differ only in what bonus each option's Next node grants, which
// the catalog already encodes per-option.
func resolveDiscardFor(gs state.GameState, playerID string, n Node, sourceCardID string) ResolveResult {
	player, _ := gs.PlayerByID(playerID)
	if len(n.Options) == 0 {
		return ResolveResult{NextState: gs, Description: "no discard options available"}
	}
	pc := &state.PendingChoice{
		ID:           fmt.Sprintf("discard:%s:%s", playerID, n.Kind),
		SourceCardID: sourceCardID,
		Kind:         string(n.Kind),
		Prompt:       "discard a card",
	}
	for _, opt := range n.Options {
		next := Node{}
		if opt.Next != nil {
			next = *opt.Next
		}
		pc.Options = append(pc.Options, state.ChoiceOption{ID: opt.ID, Label: opt.Label, Next: next})
	}
	player.PendingChoice = pc
	return ResolveResult{NextState: gs.WithPlayer(player), RequiresChoice: pc}
}

// resolveMaximalEffect picks the single highest-value option without
// suspending — MaximalEffect cards grant "the best of these fixed
// options" automatically rather than asking the player, since the
// choice has only one rational answer.
func resolveMaximalEffect(gs state.GameState, playerID string, n Node, sourceCardID string) ResolveResult {
	if len(n.MaximalOptions) == 0 {
		return ResolveResult{NextState: gs, Description: "no maximal options"}
	}
	best := n.MaximalOptions[0]
	for _, opt := range n.MaximalOptions[1:] {
		if opt.N > best.N {
			best = opt
		}
	}
	return Resolve(gs, playerID, best, sourceCardID, func() string { return "" })
}

// resolveCardBoost is CardBoost's entry point: identical suspension
// shape to resolveDiscardFor (offer-a-card, resolve-its-bonus).
func resolveCardBoost(gs state.GameState, playerID string, n Node, sourceCardID string) ResolveResult {
	return resolveDiscardFor(gs, playerID, n, sourceCardID)
}

// resolveRollDieForWound draws DiceCount dice and, for each rolled color
// found in WoundColors, adds a wound card to the player's hand and
// increments WoundsReceivedThisTurn by one. The RNG counter advances by
// exactly DiceCount.
func resolveRollDieForWound(gs state.GameState, playerID string, n Node) ResolveResult {
	player, _ := gs.PlayerByID(playerID)
	var events []event.Event
	r := gs.RNG
	for i := 0; i < n.DiceCount; i++ {
		var color rng.Color
		color, r = r.RollDie()
		for _, wc := range n.WoundColors {
			if string(color) == wc {
				player.Hand = append(player.Hand, state.Card{ID: "wound"})
				player.WoundsReceivedThisTurn++
				events = append(events, event.Event{Type: event.CardGained, PlayerID: playerID, CardID: "wound"})
				break
			}
		}
	}
	gs = gs.WithRNG(r).WithPlayer(player)
	return ResolveResult{NextState: gs, Description: "roll die for wound", Events: events}
}
