// Package event defines GameEvent, the tagged union of domain events the
// engine emits. Events are pure, serializable
// data — the engine never holds behavior on an event, only a record of
// what happened, in command-execution order and, within a command, in
// declaration order.
package event

import "github.com/mage-knight-digital/MageKnight-sub012/hexcoord"

// Type identifies a GameEvent variant.
type Type string

const (
	GameStarted        Type = "GAME_STARTED"
	RoundStarted        Type = "ROUND_STARTED"
	TurnStarted         Type = "TURN_STARTED"
	PlayerMoved         Type = "PLAYER_MOVED"
	TileRevealed        Type = "TILE_REVEALED"
	CardPlayed          Type = "CARD_PLAYED"
	CardPlayedSideways  Type = "CARD_PLAYED_SIDEWAYS"
	CombatStarted       Type = "COMBAT_STARTED"
	CombatPhaseChanged  Type = "COMBAT_PHASE_CHANGED"
	EnemyDefeated       Type = "ENEMY_DEFEATED"
	EnemySummoned       Type = "ENEMY_SUMMONED"
	AttackFailed        Type = "ATTACK_FAILED"
	BlockAssigned       Type = "BLOCK_ASSIGNED"
	BlockUnassigned     Type = "BLOCK_UNASSIGNED"
	DamageAssigned      Type = "DAMAGE_ASSIGNED"
	CardGained          Type = "CARD_GAINED"
	CardDiscarded       Type = "CARD_DISCARDED"
	CardDrawn           Type = "CARD_DRAWN"
	FameGained          Type = "FAME_GAINED"
	ReputationChanged   Type = "REPUTATION_CHANGED"
	CrystalGained       Type = "CRYSTAL_GAINED"
	ModifierAdded       Type = "MODIFIER_ADDED"
	ModifierExpired     Type = "MODIFIER_EXPIRED"
	SiteConquered       Type = "SITE_CONQUERED"
	SiteLiberated       Type = "SITE_LIBERATED"
	UnitRecruited       Type = "UNIT_RECRUITED"
	UnitActivated       Type = "UNIT_ACTIVATED"
	SkillUsed           Type = "SKILL_USED"
	InvalidAction       Type = "INVALID_ACTION"
	ChoiceRequired      Type = "CHOICE_REQUIRED"
	ChoiceResolved      Type = "CHOICE_RESOLVED"
	CombatEnded         Type = "COMBAT_ENDED"
	TurnEnded           Type = "TURN_ENDED"
	RoundEnded          Type = "ROUND_ENDED"
	EndOfRoundAnnounced Type = "END_OF_ROUND_ANNOUNCED"
	GameEnded           Type = "GAME_ENDED"
	RewardEnqueued      Type = "REWARD_ENQUEUED"
	RewardResolved      Type = "REWARD_RESOLVED"
	DiceRerolled        Type = "DICE_REROLLED"
)

// Event is a single tagged-union record. Only the fields relevant to
// Type are populated; the rest are zero values. This mirrors the wire
// protocol's JSON tagged union field-for-field, so
// marshaling Event directly produces the wire shape.
type Event struct {
	Type Type `json:"type"`

	PlayerID string `json:"playerId,omitempty"`

	// Movement / map
	From hexcoord.Coord `json:"from,omitempty"`
	To   hexcoord.Coord `json:"to,omitempty"`
	TileID string `json:"tileId,omitempty"`

	// Cards
	CardID   string `json:"cardId,omitempty"`
	Powered  bool   `json:"powered,omitempty"`
	SidewaysAs string `json:"sidewaysAs,omitempty"`

	// Combat
	CombatPhase   string `json:"combatPhase,omitempty"`
	EnemyInstanceID string `json:"enemyInstanceId,omitempty"`
	Element       string `json:"element,omitempty"`
	Amount        int    `json:"amount,omitempty"`
	Victory       bool   `json:"victory,omitempty"`

	// Deltas
	NominalDelta int `json:"nominalDelta,omitempty"`
	ActualDelta  int `json:"actualDelta,omitempty"`

	// Sites / units
	SiteID       string `json:"siteId,omitempty"`
	UnitInstanceID string `json:"unitInstanceId,omitempty"`
	SkillID      string `json:"skillId,omitempty"`

	// Round / turn
	Round int `json:"round,omitempty"`

	// Errors
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`

	// Choices
	ChoiceID string   `json:"choiceId,omitempty"`
	Options  []string `json:"options,omitempty"`
	Selected string   `json:"selected,omitempty"`
}

// Invalid constructs an INVALID_ACTION event from a code and reason —
// the one event shape the dispatcher emits instead of progressing state.
func Invalid(playerID, code, reason string) Event {
	return Event{Type: InvalidAction, PlayerID: playerID, Code: code, Reason: reason}
}
