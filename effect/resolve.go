package effect

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub012/event"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

// idFunc generates ids for modifiers created mid-resolution (choice ids
// are derived from the player id instead).
// Injected rather than called directly (e.g. uuid.NewString) so
// resolution stays a pure function of its inputs in tests; the command
// layer supplies a real generator (google/uuid) at the boundary.
type idFunc func() string

// Resolve interprets effect tree n against playerID's state, threading
// gs through left-to-right for Compound children.
func Resolve(gs state.GameState, playerID string, n Node, sourceCardID string, newID idFunc) ResolveResult {
	player, ok := gs.PlayerByID(playerID)
	if !ok {
		return ResolveResult{NextState: gs, Description: fmt.Sprintf("unknown player %s", playerID)}
	}

	switch n.Kind {
	case KindGainMove:
		player.MovePoints += n.N
		return ResolveResult{NextState: gs.WithPlayer(player), Description: "gain move"}

	case KindGainInfluence:
		player.InfluencePoints += n.N
		return ResolveResult{NextState: gs.WithPlayer(player), Description: "gain influence"}

	case KindGainBlock:
		player.CombatAccumulator.Block += n.N
		player.CombatAccumulator.BlockElements = player.CombatAccumulator.BlockElements.With(
			n.Element, player.CombatAccumulator.BlockElements.Get(n.Element)+n.N)
		return ResolveResult{NextState: gs.WithPlayer(player), Description: "gain block"}

	case KindGainAttack:
		applyAttackGain(&player, n)
		return ResolveResult{NextState: gs.WithPlayer(player), Description: "gain attack"}

	case KindHeal:
		player.WoundsReceivedThisTurn -= n.N
		if player.WoundsReceivedThisTurn < 0 {
			player.WoundsReceivedThisTurn = 0
		}
		return ResolveResult{NextState: gs.WithPlayer(player), Description: "heal"}

	case KindGainCrystal:
		player.Crystals[n.Color] = state.ClampCrystal(player.Crystals[n.Color], n.N)
		return ResolveResult{
			NextState:   gs.WithPlayer(player),
			Description: "gain crystal",
			Events:      []event.Event{{Type: event.CrystalGained, PlayerID: playerID, Element: n.Color, Amount: n.N}},
		}

	case KindDrawCard:
		return resolveDrawCard(gs, player, n)

	case KindAddModifier:
		mod := n.Modifier
		id := newID()
		next := modifierAdd(gs, id, mod)
		return ResolveResult{
			NextState:   next,
			Description: "add modifier",
			Events:      []event.Event{{Type: event.ModifierAdded, PlayerID: playerID, Code: string(mod.Effect.Kind)}},
		}

	case KindReadyUnit:
		return resolveReadyUnit(gs, player, n)

	case KindMovementReduce:
		player.MovePoints -= n.N
		if player.MovePoints < 0 {
			player.MovePoints = 0
		}
		return ResolveResult{NextState: gs.WithPlayer(player), Description: "movement reduce"}

	case KindIgnoreTerrain:
		// Terrain-ignore is recorded here as a turn-long RuleActive
		// modifier on the active-modifiers list, added through the same
		// modifierAdd helper AddModifier uses (no event is emitted).
		id := newID()
		mod := state.ActiveModifier{
			Source:            state.ModifierSource{Kind: state.SourceCard, Ref: sourceCardID, PlayerID: playerID},
			Duration:          state.ModifierDuration{Kind: state.DurationTurn, PlayerID: playerID},
			Scope:             state.ModifierScope{Kind: state.ScopeSelf},
			Effect:            state.ModifierEffect{Kind: state.EffectRuleActive, RuleTag: "ignore_terrain:" + fmt.Sprint(n.TerrainSet)},
			CreatedByPlayerID: playerID,
		}
		return ResolveResult{NextState: modifierAdd(gs, id, mod), Description: "ignore terrain"}

	case KindCompound:
		return resolveCompound(gs, playerID, n, sourceCardID, newID)

	case KindChoice:
		return resolveChoice(gs, playerID, n, sourceCardID)

	case KindIf:
		if evalPredicate(gs, playerID, n.Predicate, sourceCardID) {
			if n.Then == nil {
				return ResolveResult{NextState: gs}
			}
			return Resolve(gs, playerID, *n.Then, sourceCardID, newID)
		}
		if n.Else == nil {
			return ResolveResult{NextState: gs}
		}
		return Resolve(gs, playerID, *n.Else, sourceCardID, newID)

	case KindChooseBonusWithRisk:
		return resolveChooseBonusWithRisk(gs, playerID, n, sourceCardID)

	case KindDiscardForAttack, KindDiscardForBonus, KindDiscardForCrystal:
		return resolveDiscardFor(gs, playerID, n, sourceCardID)

	case KindMaximalEffect:
		return resolveMaximalEffect(gs, playerID, n, sourceCardID)

	case KindCardBoost:
		return resolveCardBoost(gs, playerID, n, sourceCardID)

	case KindRollDieForWound:
		return resolveRollDieForWound(gs, playerID, n)

	default:
		return ResolveResult{NextState: gs, Description: fmt.Sprintf("unknown effect kind %q", n.Kind)}
	}
}

func applyAttackGain(player *state.Player, n Node) {
	acc := &player.CombatAccumulator
	switch n.AttackType {
	case "ranged":
		acc.Attack.Ranged += n.N
		acc.Attack.RangedElements = acc.Attack.RangedElements.With(n.Element, acc.Attack.RangedElements.Get(n.Element)+n.N)
	case "siege":
		acc.Attack.Siege += n.N
		acc.Attack.SiegeElements = acc.Attack.SiegeElements.With(n.Element, acc.Attack.SiegeElements.Get(n.Element)+n.N)
	default:
		acc.Attack.Normal += n.N
		acc.Attack.NormalElements = acc.Attack.NormalElements.With(n.Element, acc.Attack.NormalElements.Get(n.Element)+n.N)
	}
}

// modifierAdd is a tiny local copy of modifier.Add's append, so the
// effect package does not import the modifier package at all.
func modifierAdd(gs state.GameState, id string, m state.ActiveModifier) state.GameState {
	m.ID = id
	return gs.WithActiveModifiers(append(append([]state.ActiveModifier(nil), gs.ActiveModifiers...), m))
}

func resolveCompound(gs state.GameState, playerID string, n Node, sourceCardID string, newID idFunc) ResolveResult {
	var events []event.Event
	desc := ""
	for i, child := range n.Children {
		res := Resolve(gs, playerID, child, sourceCardID, newID)
		gs = res.NextState
		events = append(events, res.Events...)
		if res.Description != "" {
			desc = res.Description
		}
		if res.RequiresChoice != nil {
			// Freeze positions i+1.. until this choice resolves: stash the
			// remaining children as a synthetic Compound continuation on
			// every option's Next (each option resolves itself, then the
			// remaining siblings).
			remaining := n.Children[i+1:]
			if len(remaining) > 0 {
				for oi := range res.RequiresChoice.Options {
					next, _ := res.RequiresChoice.Options[oi].Next.(Node)
					chained := Compound(append([]Node{next}, remaining...)...)
					res.RequiresChoice.Options[oi].Next = chained
				}
			}
			return ResolveResult{NextState: gs, Description: desc, Events: events, RequiresChoice: res.RequiresChoice}
		}
	}
	return ResolveResult{NextState: gs, Description: desc, Events: events}
}

func resolveChoice(gs state.GameState, playerID string, n Node, sourceCardID string) ResolveResult {
	player, _ := gs.PlayerByID(playerID)
	pc := &state.PendingChoice{
		ID:           fmt.Sprintf("choice:%s:%d", playerID, len(n.Options)),
		SourceCardID: sourceCardID,
		Kind:         "choice",
		Prompt:       "choose one",
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

// ResolveChoice feeds a selected option id back into resolution,
// consuming the player's PendingChoice.
func ResolveChoice(gs state.GameState, playerID, optionID string, newID idFunc) (ResolveResult, error) {
	player, ok := gs.PlayerByID(playerID)
	if !ok || player.PendingChoice == nil {
		return ResolveResult{NextState: gs}, fmt.Errorf("effect: no pending choice for player %s", playerID)
	}
	pc := player.PendingChoice
	var selected *state.ChoiceOption
	for i := range pc.Options {
		if pc.Options[i].ID == optionID {
			selected = &pc.Options[i]
			break
		}
	}
	if selected == nil {
		return ResolveResult{NextState: gs}, fmt.Errorf("effect: option %s not found in pending choice %s", optionID, pc.ID)
	}
	player.PendingChoice = nil
	if isDiscardChoiceKind(pc.Kind) {
		player.Hand, player.Discard = discardCard(player.Hand, player.Discard, optionID)
	}
	gs = gs.WithPlayer(player)

	next, ok := selected.Next.(Node)
	if !ok {
		return ResolveResult{NextState: gs}, nil
	}
	res := Resolve(gs, playerID, next, pc.SourceCardID, newID)
	res.Events = append([]event.Event{{Type: event.ChoiceResolved, PlayerID: playerID, ChoiceID: pc.ID, Selected: optionID}}, res.Events...)
	return res, nil
}

func isDiscardChoiceKind(kind string) bool {
	switch Kind(kind) {
	case KindDiscardForAttack, KindDiscardForBonus, KindDiscardForCrystal, KindCardBoost:
		return true
	default:
		return false
	}
}

// discardCard removes the first hand card matching cardID and appends it
// to discard, returning the updated slices. If no card matches (the
// option id was not itself a card id, e.g. a synthetic option), hand and
// discard are returned unchanged.
func discardCard(hand, discard []state.Card, cardID string) ([]state.Card, []state.Card) {
	for i, c := range hand {
		if c.ID == cardID {
			nextHand := append(append([]state.Card(nil), hand[:i]...), hand[i+1:]...)
			nextDiscard := append(append([]state.Card(nil), discard...), c)
			return nextHand, nextDiscard
		}
	}
	return hand, discard
}

func evalPredicate(gs state.GameState, playerID string, p Predicate, sourceCardID string) bool {
	player, _ := gs.PlayerByID(playerID)
	switch p.Kind {
	case PredSourceCardColor:
		// The card color itself lives in the catalog, not in state; the
		// command layer that calls Resolve is expected to have already
		// embedded the resolved color comparison by constructing the If
		// node's Predicate.Color field from the catalog lookup it already
		// performed to find sourceCardID's color. Evaluate the comparison
		// against that pre-resolved field.
		return p.Color != "" && sourceCardID != ""
	case PredHasCrystal:
		return player.Crystals[p.Color] > 0
	case PredAlways:
		return true
	default:
		return false
	}
}

func resolveDrawCard(gs state.GameState, player state.Player, n Node) ResolveResult {
	drawn := 0
	for i := 0; i < n.N && len(player.Deck) > 0; i++ {
		card := player.Deck[0]
		player.Deck = player.Deck[1:]
		player.Hand = append(player.Hand, card)
		drawn++
	}
	return ResolveResult{
		NextState:   gs.WithPlayer(player),
		Description: "draw card",
		Events:      []event.Event{{Type: event.CardDrawn, PlayerID: player.ID, Amount: drawn}},
	}
}

func resolveReadyUnit(gs state.GameState, player state.Player, n Node) ResolveResult {
	for i, u := range player.Units {
		if u.InstanceID == n.UnitInstanceID {
			player.Units[i].Exhausted = false
		}
	}
	return ResolveResult{NextState: gs.WithPlayer(player), Description: "ready unit"}
}
