package state

import "github.com/mage-knight-digital/MageKnight-sub012/rng"

// TimeOfDay is Day or Night.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
)

// Phase is the top-level game phase.
type Phase string

const (
	PhaseSetup            Phase = "setup"
	PhaseTacticsSelection Phase = "tactics_selection"
	PhasePlayerTurns      Phase = "player_turns"
	PhaseCleanup          Phase = "cleanup"
)

// ReversibleCommand is the interface GameState.CommandStack entries
// satisfy. GameState only needs to know how to pop
// and undo an entry; the concrete command types (package command) never
// need to be known by this package — this interface is what breaks what
// would otherwise be a state<->command import cycle.
type ReversibleCommand interface {
	// Kind returns the command's kind tag, for diagnostics and for the
	// "clear stack on irreversible command" rule.
	Kind() string
	// PlayerID returns the acting player.
	PlayerID() string
	// Undo restores the state to what it was before this command's
	// Execute ran, returning any compensating events (normally none).
	Undo(GameState) (GameState, []EventRecord)
}

// EventRecord is an opaque alias for event.Event, used the same way
// Continuation aliases effect.Node: this package must not import the
// event package's concrete Event struct without creating layering noise
// for a type it only ever passes through. Callers that need the
// concrete value type-assert back to event.Event.
type EventRecord = any

// GameState is the whole world.
type GameState struct {
	Round             uint32
	TimeOfDay         TimeOfDay
	Phase             Phase
	TurnOrder         []string
	CurrentPlayerIndex int
	EndOfRoundAnnouncedBy *string
	PlayersWithFinalTurn []string

	Players []Player

	Map    Map
	Source ManaSource

	Offers Offers
	Decks  Decks

	Combat *CombatState

	ActiveModifiers []ActiveModifier

	RNG rng.State

	CommandStack []ReversibleCommand

	ScenarioEndTriggered bool
	WoundPileCount       uint32
}

// CurrentPlayer returns the player whose turn it currently is.
func (g GameState) CurrentPlayer() Player {
	return g.Players[g.playerIndexByID(g.TurnOrder[g.CurrentPlayerIndex])]
}

func (g GameState) playerIndexByID(id string) int {
	for i, p := range g.Players {
		if p.ID == id {
			return i
		}
	}
	panic("state: unknown player id " + id)
}

// PlayerByID returns the player with the given id and whether it exists.
func (g GameState) PlayerByID(id string) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// WithPlayer returns a new GameState with the player matching p.ID
// replaced by p, all else unchanged (clone-on-write).
func (g GameState) WithPlayer(p Player) GameState {
	next := g
	next.Players = make([]Player, len(g.Players))
	copy(next.Players, g.Players)
	for i, existing := range next.Players {
		if existing.ID == p.ID {
			next.Players[i] = p
			return next
		}
	}
	panic("state: WithPlayer called with unknown player id " + p.ID)
}

// WithCombat returns a new GameState with Combat replaced.
func (g GameState) WithCombat(c *CombatState) GameState {
	next := g
	next.Combat = c
	return next
}

// WithRNG returns a new GameState with the RNG state replaced — every
// random draw must write back its returned state.
func (g GameState) WithRNG(r rng.State) GameState {
	next := g
	next.RNG = r
	return next
}

// PushCommand returns a new GameState with c pushed onto the command
// stack.
func (g GameState) PushCommand(c ReversibleCommand) GameState {
	next := g
	next.CommandStack = append(append([]ReversibleCommand(nil), g.CommandStack...), c)
	return next
}

// PopCommand returns the top command and a GameState with it removed.
// ok is false if the stack is empty.
func (g GameState) PopCommand() (ReversibleCommand, GameState, bool) {
	if len(g.CommandStack) == 0 {
		return nil, g, false
	}
	top := g.CommandStack[len(g.CommandStack)-1]
	next := g
	next.CommandStack = append([]ReversibleCommand(nil), g.CommandStack[:len(g.CommandStack)-1]...)
	return top, next, true
}

// ClearCommandStack empties the stack — every irreversible command and
// every end-of-turn does this unconditionally.
func (g GameState) ClearCommandStack() GameState {
	next := g
	next.CommandStack = nil
	return next
}

// WithActiveModifiers returns a new GameState with ActiveModifiers
// replaced wholesale — callers compute the full next slice (add/filter)
// and pass it here, keeping the add/expire logic in the modifier
// package rather than duplicated as GameState methods.
func (g GameState) WithActiveModifiers(mods []ActiveModifier) GameState {
	next := g
	next.ActiveModifiers = mods
	return next
}

// WithMap returns a new GameState with Map replaced.
func (g GameState) WithMap(m Map) GameState {
	next := g
	next.Map = m
	return next
}

// WithSource returns a new GameState with Source replaced.
func (g GameState) WithSource(s ManaSource) GameState {
	next := g
	next.Source = s
	return next
}

// WithDecks returns a new GameState with Decks replaced.
func (g GameState) WithDecks(d Decks) GameState {
	next := g
	next.Decks = d
	return next
}

// WithOffers returns a new GameState with Offers replaced.
func (g GameState) WithOffers(o Offers) GameState {
	next := g
	next.Offers = o
	return next
}
