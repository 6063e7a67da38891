// Package modifier implements effective-value queries: typed, scoped,
// duration-tagged rule overlays layered over base entity data, consulted
// instead of mutating the base data directly. Modeled on a
// source/type/target/priority modifier interface and duration-tagged
// condition overlays ordinarily resolved against an event bus;
// generalized here into a pure query surface over state.GameState since
// this engine has no event bus — "effective_*" helpers are called
// directly at the point of need instead of being pushed through a
// pub/sub resolver.
package modifier

import (
	"github.com/mage-knight-digital/MageKnight-sub012/elemental"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

// forPlayer filters the active modifiers relevant to a given player,
// honoring Scope (self matches only the player who created the modifier;
// every other scope always matches here, and one_unit/one_enemy/all_units
// are filtered again by the caller against the specific index/instance).
func forPlayer(gs state.GameState, playerID string) []state.ActiveModifier {
	var out []state.ActiveModifier
	for _, m := range gs.ActiveModifiers {
		switch m.Scope.Kind {
		case state.ScopeSelf:
			if m.CreatedByPlayerID == playerID {
				out = append(out, m)
			}
		default:
			out = append(out, m)
		}
	}
	return out
}

// EffectiveAttackBonus sums all AttackBonus modifiers applicable to the
// player, optionally filtered to a single element (zero-value element
// matches all).
func EffectiveAttackBonus(gs state.GameState, playerID string, elem elemental.Element) int {
	total := 0
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind != state.EffectAttackBonus {
			continue
		}
		if m.Effect.Element != "" && m.Effect.Element != elem {
			continue
		}
		total += m.Effect.Amount
	}
	return total
}

// EffectiveBlockBonus sums all BlockBonus modifiers applicable to the
// player.
func EffectiveBlockBonus(gs state.GameState, playerID string, elem elemental.Element) int {
	total := 0
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind != state.EffectBlockBonus {
			continue
		}
		if m.Effect.Element != "" && m.Effect.Element != elem {
			continue
		}
		total += m.Effect.Amount
	}
	return total
}

// UnitAttackBonus sums UnitAttackBonus modifiers applicable to the
// player's units as a whole (scope all_units).
func UnitAttackBonus(gs state.GameState, playerID string) int {
	total := 0
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind == state.EffectUnitAttackBonus && m.Scope.Kind == state.ScopeAllUnits {
			total += m.Effect.Amount
		}
	}
	return total
}

// UnitBlockBonus sums UnitBlockBonus modifiers applicable to the
// player's units as a whole.
func UnitBlockBonus(gs state.GameState, playerID string) int {
	total := 0
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind == state.EffectUnitBlockBonus && m.Scope.Kind == state.ScopeAllUnits {
			total += m.Effect.Amount
		}
	}
	return total
}

// UnitArmorBonus sums UnitArmorBonus modifiers for a specific unit index
// (scope one_unit) plus any all_units bonuses.
func UnitArmorBonus(gs state.GameState, playerID string, unitIndex int) int {
	total := 0
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind != state.EffectUnitArmorBonus {
			continue
		}
		switch m.Scope.Kind {
		case state.ScopeAllUnits:
			total += m.Effect.Amount
		case state.ScopeOneUnit:
			if m.Scope.UnitIndex == unitIndex {
				total += m.Effect.Amount
			}
		}
	}
	return total
}

// EffectiveUnitResistances unions any GrantResistances modifiers scoped
// to the unit (or all units) onto its base resistances, then strips any
// resistance named by a ResistancesRemoved modifier of matching scope.
func EffectiveUnitResistances(gs state.GameState, playerID string, unitIndex int, base elemental.Resistances) elemental.Resistances {
	res := base
	for _, m := range forPlayer(gs, playerID) {
		matches := m.Scope.Kind == state.ScopeAllUnits || (m.Scope.Kind == state.ScopeOneUnit && m.Scope.UnitIndex == unitIndex)
		if !matches {
			continue
		}
		switch m.Effect.Kind {
		case state.EffectGrantResistances:
			res = res.Union(m.Effect.Resistances)
		case state.EffectResistancesRemoved:
			if m.Effect.Resistances.Fire {
				res.Fire = false
			}
			if m.Effect.Resistances.Ice {
				res.Ice = false
			}
		}
	}
	return res
}

// EffectiveEnemyArmor computes an enemy's effective armor: base armor,
// adjusted by phase via any BaseArmorOverride (e.g. Elusive's
// phase-dependent armor), reduced by EnemyArmorReduction modifiers
// scoped to that enemy (or all
// enemies), plus the enemy's accumulated Defend bonus (read from
// CombatState.DefendBonuses by the combat package, not here — this
// function only applies modifier-sourced adjustments).
func EffectiveEnemyArmor(gs state.GameState, enemyInstanceID string, base int, phase state.CombatPhase) int {
	armor := base
	for _, m := range gs.ActiveModifiers {
		if m.Effect.Kind == state.EffectBaseArmorOverride {
			if !scopeMatchesEnemy(m.Scope, enemyInstanceID) {
				continue
			}
			if override, ok := m.Effect.ArmorByPhase[phase]; ok {
				armor = override
			}
		}
	}
	for _, m := range gs.ActiveModifiers {
		if m.Effect.Kind == state.EffectEnemyArmorReduction && scopeMatchesEnemy(m.Scope, enemyInstanceID) {
			armor -= m.Effect.Amount
		}
	}
	if armor < 0 {
		armor = 0
	}
	return armor
}

func scopeMatchesEnemy(scope state.ModifierScope, enemyInstanceID string) bool {
	switch scope.Kind {
	case state.ScopeAllEnemies:
		return true
	case state.ScopeOneEnemy:
		return scope.EnemyInstanceID == enemyInstanceID
	default:
		return false
	}
}

// EffectiveSidewaysValue returns the value a card yields when played
// sideways, honoring any SidewaysValue modifier (e.g. Tovak's wound
// cards played sideways for a different base value) whose ForWounds
// matches; the last matching modifier wins. usedSourceMana (the count of
// dice already taken from Source this turn) does not affect the result.
func EffectiveSidewaysValue(gs state.GameState, playerID string, forWounds bool, usedSourceMana int, base int) int {
	value := base
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind != state.EffectSidewaysValue {
			continue
		}
		if m.Effect.ForWounds != forWounds {
			continue
		}
		value = m.Effect.NewSidewaysValue
	}
	_ = usedSourceMana // reserved for scenario rules keying off Source usage
	return value
}

// IsAbilityNullified reports whether an AbilityNullified modifier
// targets the given enemy and ability tag.
func IsAbilityNullified(gs state.GameState, enemyInstanceID, ability string) bool {
	for _, m := range gs.ActiveModifiers {
		if m.Effect.Kind == state.EffectAbilityNullified && scopeMatchesEnemy(m.Scope, enemyInstanceID) && m.Effect.Ability == ability {
			return true
		}
	}
	return false
}

// DoesEnemyAttackThisCombat reports whether any AttackNullified modifier
// suppresses the enemy's attack entirely.
func DoesEnemyAttackThisCombat(gs state.GameState, enemyInstanceID string) bool {
	for _, m := range gs.ActiveModifiers {
		if m.Effect.Kind == state.EffectAttackNullified && scopeMatchesEnemy(m.Scope, enemyInstanceID) {
			return false
		}
	}
	return true
}

// LeadershipBonusOnce returns the once-per-combat Leadership-style bonus
// and the modifier id that would be consumed by applying it, or ok=false
// if none is available. Callers apply the bonus then remove the
// modifier (one_shot consumption) themselves via RemoveByID.
func LeadershipBonusOnce(gs state.GameState, playerID string) (bonus int, consumerModifierID string, ok bool) {
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind == state.EffectLeadershipBonus {
			return m.Effect.FameBonus, m.ID, true
		}
	}
	return 0, "", false
}

// IsRuleActive reports whether a scenario-specific named rule tag is
// currently active for a player (global scenario rules match regardless
// of the player argument).
func IsRuleActive(gs state.GameState, playerID string, ruleTag string) bool {
	for _, m := range gs.ActiveModifiers {
		if m.Effect.Kind != state.EffectRuleActive || m.Effect.RuleTag != ruleTag {
			continue
		}
		if m.Scope.Kind == state.ScopeGlobal {
			return true
		}
		if m.Scope.Kind == state.ScopeSelf && m.CreatedByPlayerID == playerID {
			return true
		}
	}
	return false
}

// InteractionBonus sums InteractionBonus modifiers (fame + reputation)
// applicable to a player's site interactions (conquer/liberate/plunder).
func InteractionBonus(gs state.GameState, playerID string) (fame, reputation int) {
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind == state.EffectInteractionBonus {
			fame += m.Effect.FameBonus
			reputation += m.Effect.ReputationBonus
		}
	}
	return fame, reputation
}

// RecruitDiscount sums RecruitDiscount modifiers. The discount is
// applied after all additions and the result is clamped to a
// nonnegative cost by the caller, never here — this
// function only reports the raw total discount.
func RecruitDiscount(gs state.GameState, playerID string) int {
	total := 0
	for _, m := range forPlayer(gs, playerID) {
		if m.Effect.Kind == state.EffectRecruitDiscount {
			total += m.Effect.RecruitDiscountAmount
		}
	}
	return total
}

// Add appends a new modifier, with its ID set to id, to GameState's
// active set and returns the next state.
func Add(gs state.GameState, id string, m state.ActiveModifier) state.GameState {
	m.ID = id
	return gs.WithActiveModifiers(append(append([]state.ActiveModifier(nil), gs.ActiveModifiers...), m))
}

// RemoveByID removes a single modifier by id (explicit removal, or
// one-shot consumption).
func RemoveByID(gs state.GameState, id string) state.GameState {
	var next []state.ActiveModifier
	for _, m := range gs.ActiveModifiers {
		if m.ID != id {
			next = append(next, m)
		}
	}
	return gs.WithActiveModifiers(next)
}

// ExpireTrigger names the event that can make a modifier's duration
// lapse.
type ExpireTrigger string

const (
	TriggerTurnEnd   ExpireTrigger = "turn_end"
	TriggerCombatEnd ExpireTrigger = "combat_end"
	TriggerRoundEnd  ExpireTrigger = "round_end"
	TriggerPhaseEnd  ExpireTrigger = "phase_end"
)

// Expire removes every active modifier whose duration lapses under the
// given trigger, for the given player (player-scoped durations only
// expire for their own player id) and, for TriggerPhaseEnd, the phase
// being exited. Returns the next state and the ids of removed modifiers
// (for ModifierExpired events), in modifier-id ascending order as the
// default tie-break for simultaneous expiry.
func Expire(gs state.GameState, trigger ExpireTrigger, playerID string, exitingPhase state.CombatPhase) (state.GameState, []string) {
	var kept []state.ActiveModifier
	var removedIDs []string
	for _, m := range gs.ActiveModifiers {
		if expires(m, trigger, playerID, exitingPhase) {
			removedIDs = append(removedIDs, m.ID)
			continue
		}
		kept = append(kept, m)
	}
	sortIDsAscending(removedIDs)
	return gs.WithActiveModifiers(kept), removedIDs
}

func expires(m state.ActiveModifier, trigger ExpireTrigger, playerID string, exitingPhase state.CombatPhase) bool {
	switch trigger {
	case TriggerTurnEnd:
		return m.Duration.Kind == state.DurationTurn && m.Duration.PlayerID == playerID
	case TriggerCombatEnd:
		return m.Duration.Kind == state.DurationCombat
	case TriggerRoundEnd:
		if m.Duration.Kind == state.DurationRound {
			return true
		}
		return m.Duration.Kind == state.DurationUntilNextTurn && m.Duration.PlayerID == playerID
	case TriggerPhaseEnd:
		return m.Duration.Kind == state.DurationPhase && m.Duration.Phase == exitingPhase
	default:
		return false
	}
}

func sortIDsAscending(ids []string) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
