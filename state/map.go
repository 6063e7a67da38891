package state

import "github.com/mage-knight-digital/MageKnight-sub012/hexcoord"

// Terrain names a hex's terrain type. The concrete terrain vocabulary is
// catalog content; the engine core only needs to compare terrain values
// for move-cost and site-adjacency rules.
type Terrain string

// EnemyToken is an enemy sitting on the map, outside of combat.
type EnemyToken struct {
	DefID      string
	InstanceID string
	FaceUp     bool
}

// Hex is one map cell.
type Hex struct {
	Coord       hexcoord.Coord
	Terrain     Terrain
	SiteID      string // empty if no site
	Enemies     []EnemyToken
	ShieldTokens []string // player ids who have left a shield token here
	Revealed    bool
}

// Map is the hex grid, keyed by axial coordinate.
type Map struct {
	Hexes map[string]Hex // keyed by hexcoord.Coord.Key()
}

// NewMap creates an empty map.
func NewMap() Map {
	return Map{Hexes: map[string]Hex{}}
}

// Get returns the hex at c, and whether it has been placed at all.
func (m Map) Get(c hexcoord.Coord) (Hex, bool) {
	h, ok := m.Hexes[c.Key()]
	return h, ok
}

// With returns a new Map with hex h placed (structural sharing: only the
// top-level map is copied, not every hex).
func (m Map) With(h Hex) Map {
	next := make(map[string]Hex, len(m.Hexes)+1)
	for k, v := range m.Hexes {
		next[k] = v
	}
	next[h.Coord.Key()] = h
	return Map{Hexes: next}
}

// Die is one die in the shared mana Source.
type Die struct {
	Color   string
	TakenBy *string // player id, nil if available
	Depleted bool
}

// ManaSource is the fixed-size pool of colored dice.
type ManaSource struct {
	Dice []Die
}

// AvailableCount returns how many dice are neither taken nor depleted.
func (s ManaSource) AvailableCount() int {
	n := 0
	for _, d := range s.Dice {
		if d.TakenBy == nil && !d.Depleted {
			n++
		}
	}
	return n
}

// Offer is a face-up selection of purchasable/recruitable content plus
// its backing draw deck.
type Offer struct {
	FaceUp []string // catalog ids currently visible
	Deck   []string // catalog ids remaining to draw, in draw order
}

// Offers bundles all five face-up offers.
type Offers struct {
	Units             Offer
	AdvancedActions   Offer
	Spells            Offer
	CommonSkills      Offer
	MonasteryActions  Offer
}

// Decks bundles the remaining shuffled decks not exposed as offers.
type Decks struct {
	Spells           []string
	AdvancedActions  []string
	Artifacts        []string
	RegularUnits     []string
	EliteUnits       []string
	EnemyTokensByColor map[string][]string // color -> ids, in draw order
}

// DrawEnemyToken removes and returns the top id of the named color's enemy
// token deck, along with a Decks value reflecting the draw (clone-on-write:
// the receiver's map and slice are left untouched). ok is false if that
// color's deck is empty.
func (d Decks) DrawEnemyToken(color string) (id string, next Decks, ok bool) {
	deck := d.EnemyTokensByColor[color]
	if len(deck) == 0 {
		return "", d, false
	}
	next = d
	nextByColor := make(map[string][]string, len(d.EnemyTokensByColor))
	for k, v := range d.EnemyTokensByColor {
		nextByColor[k] = v
	}
	nextByColor[color] = append([]string(nil), deck[1:]...)
	next.EnemyTokensByColor = nextByColor
	return deck[0], next, true
}
