// Package dispatch is the single entry point that turns a submitted
// action.PlayerAction into GameState transitions: validate, execute
// against the owning rule package — combat for the block/attack/phase
// actions, effect for PlayCard (via a catalog.CardDef lookup) and
// ResolveChoice — push a command.Command recording the pre-execution
// snapshot, and return the resulting events. Modeled on a command-point
// economy dispatcher that looks a CommandID up in a registry of
// CommandDefs before running it — generalized here since this engine's
// "cost" is paid inside each rule package (move points, influence)
// rather than a uniform command-point pool.
package dispatch

import (
	"github.com/mage-knight-digital/MageKnight-sub012/action"
	"github.com/mage-knight-digital/MageKnight-sub012/catalog"
	"github.com/mage-knight-digital/MageKnight-sub012/combat"
	"github.com/mage-knight-digital/MageKnight-sub012/command"
	"github.com/mage-knight-digital/MageKnight-sub012/effect"
	"github.com/mage-knight-digital/MageKnight-sub012/event"
	"github.com/mage-knight-digital/MageKnight-sub012/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
	"github.com/mage-knight-digital/MageKnight-sub012/validate"
)

// Dispatch validates a, executes it against the appropriate rule
// package, and — on success — pushes a command.Command snapshot onto
// the stack so the action can later be undone. On validation or
// execution failure the returned state is unchanged from gs and the
// sole event is an INVALID_ACTION record. cat resolves PlayCard's
// catalog.CardDef; it is unused by every other action type and may be
// nil when the caller never dispatches PlayCard.
func Dispatch(gs state.GameState, a action.PlayerAction, gen command.IDGenerator, cat *catalog.Catalog) (state.GameState, []event.Event) {
	if errs := validate.Checks(gs, a); len(errs) > 0 {
		return gs, []event.Event{event.Invalid(a.PlayerID, string(errs[0].Code), errs[0].Message)}
	}

	before := gs
	next, events, kind, err := execute(gs, a, gen, cat)
	if err != nil {
		code := rpgerr.GetCode(err)
		return gs, []event.Event{event.Invalid(a.PlayerID, string(code), err.Error())}
	}
	next = next.PushCommand(command.New(gen, kind, a.PlayerID, before))
	return next, events
}

func execute(gs state.GameState, a action.PlayerAction, gen command.IDGenerator, cat *catalog.Catalog) (state.GameState, []event.Event, string, error) {
	switch a.Type {
	case action.AssignBlock:
		next, err := combat.AssignBlock(gs, a.PlayerID, a.EnemyInstanceID, a.Amount, a.Element)
		return next, nil, command.KindAssignBlock, err
	case action.DeclareBlock:
		next, events, err := combat.DeclareBlock(gs, a.PlayerID, a.EnemyInstanceID, a.Resistances)
		return next, events, command.KindDeclareBlock, err
	case action.AssignAttack:
		next, err := combat.AssignAttack(gs, a.PlayerID, a.EnemyInstanceID, a.Amount, a.Element, a.AttackType)
		return next, nil, command.KindAssignAttack, err
	case action.DeclareAttack:
		next, events, err := combat.DeclareAttack(gs, a.PlayerID, a.EnemyInstanceID)
		return next, events, command.KindDeclareAttack, err
	case action.PayCumbersome:
		next, err := combat.PayCumbersome(gs, a.PlayerID, a.EnemyInstanceID, a.MovePoints)
		return next, nil, command.KindPayCumbersome, err
	case action.PayHeroesAssault:
		next, err := combat.PayHeroesAssaultInfluence(gs, a.PlayerID, a.Cost)
		return next, nil, command.KindPayHeroesAssault, err
	case action.PayThugsDamage:
		next, err := combat.PayThugsDamageInfluence(gs, a.PlayerID, a.UnitInstanceID, a.Cost)
		return next, nil, command.KindPayThugsDamage, err
	case action.Defend:
		next, err := combat.Defend(gs, a.PlayerID, a.UnitInstanceID, a.EnemyInstanceID, a.UnitArmor, a.UnitIsThugs)
		return next, nil, command.KindDefend, err
	case action.AdvanceCombat:
		next, events, err := combat.AdvancePhase(gs, a.PlayerID)
		return next, events, command.KindAdvanceCombatPhase, err
	case action.EndCombat:
		next, events := combat.End(gs, a.PlayerID)
		return next, events, command.KindEndCombat, nil
	case action.PlayCard:
		return executePlayCard(gs, a, gen, cat)
	case action.ResolveChoice:
		next, err := effect.ResolveChoice(gs, a.PlayerID, a.OptionID, gen.NewID)
		return next.NextState, next.Events, command.KindResolveChoice, err
	default:
		return gs, nil, "", rpgerr.New(rpgerr.CodeInvalidArgument, "unknown action type")
	}
}

// executePlayCard resolves a's catalog definition and interprets the
// requested branch (basic or powered) against gs, moving the played
// card from hand to play area first so the effect tree resolves against
// a state that already reflects the card leaving the player's hand.
func executePlayCard(gs state.GameState, a action.PlayerAction, gen command.IDGenerator, cat *catalog.Catalog) (state.GameState, []event.Event, string, error) {
	if cat == nil {
		return gs, nil, "", rpgerr.New(rpgerr.CodeInternalPrecondition, "play_card dispatched without a catalog")
	}
	def, ok := cat.GetCard(a.CardID)
	if !ok {
		return gs, nil, "", rpgerr.New(rpgerr.CodeUnknownCatalogID, "unknown card id "+a.CardID)
	}
	tree := def.Basic
	if a.Powered {
		tree = def.Powered
	}
	node, ok := tree.(effect.Node)
	if !ok {
		return gs, nil, "", rpgerr.New(rpgerr.CodeCardEffectNotResolvable, "card "+a.CardID+" has no resolvable effect for the requested branch")
	}

	player, _ := gs.PlayerByID(a.PlayerID)
	player.Hand, player.PlayArea = moveCard(player.Hand, player.PlayArea, a.CardID)
	gs = gs.WithPlayer(player)

	res := effect.Resolve(gs, a.PlayerID, node, a.CardID, gen.NewID)
	return res.NextState, res.Events, command.KindPlayCard, nil
}

// moveCard removes the first card matching id from from and appends it
// to to, returning both updated slices unchanged if id is not found.
func moveCard(from, to []state.Card, id string) ([]state.Card, []state.Card) {
	for i, c := range from {
		if c.ID == id {
			nextFrom := append(append([]state.Card(nil), from[:i]...), from[i+1:]...)
			nextTo := append(append([]state.Card(nil), to...), c)
			return nextFrom, nextTo
		}
	}
	return from, to
}
