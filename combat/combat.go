// Package combat implements the four-phase combat state machine:
// RangedSiege -> Block -> AssignDamage -> Attack, plus the damage/block
// arithmetic and the named ability interactions (Swift, Elusive, Defend,
// Cumbersome, Brutal, Heroes, Thugs) that hook into it.
//
// Modeled on the phase-transition-function style of a combat package
// that threads a CombatState through named functions rather than a
// generic state-machine library, and on a turn-scoped context pattern
// for carrying "whose turn/phase is this" alongside the state value.
package combat

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub012/elemental"
	"github.com/mage-knight-digital/MageKnight-sub012/event"
	"github.com/mage-knight-digital/MageKnight-sub012/modifier"
	"github.com/mage-knight-digital/MageKnight-sub012/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

// Start creates a CombatState and attaches it to gs.
func Start(gs state.GameState, enemies []state.CombatEnemy, atFortifiedSite bool, assaultOrigin *string) state.GameState {
	cs := state.NewCombatState(enemies, atFortifiedSite)
	cs.AssaultOrigin = assaultOrigin
	gs = gs.WithCombat(cs)
	return gs
}

// enemyByInstance finds a combat enemy by instance id.
func enemyByInstance(cs *state.CombatState, instanceID string) (int, *state.CombatEnemy, bool) {
	for i := range cs.Enemies {
		if cs.Enemies[i].InstanceID == instanceID {
			return i, &cs.Enemies[i], true
		}
	}
	return -1, nil, false
}

// effectiveEnemyAttack applies a Cumbersome reduction (funded by move
// points via PayCumbersome) to an enemy's base attack, floored at zero on
// its first nonzero component in Physical, Fire, Ice, ColdFire order.
// This runs before Swift's block-halving
// and Brutal's damage-doubling are applied elsewhere, matching the order
// those three abilities stack in.
func effectiveEnemyAttack(cs *state.CombatState, enemy state.CombatEnemy) elemental.Values {
	reduction := cs.CumbersomeReductions[enemy.InstanceID]
	if reduction <= 0 {
		return enemy.Attack
	}
	attack := enemy.Attack
	elems := [4]elemental.Element{elemental.Physical, elemental.Fire, elemental.Ice, elemental.ColdFire}
	for _, e := range elems {
		v := attack.Get(e)
		if v == 0 {
			continue
		}
		reduced := v - reduction
		if reduced < 0 {
			reduced = 0
		}
		return attack.With(e, reduced)
	}
	return attack
}

// PayCumbersome funds part of a Cumbersome enemy's attack reduction out of
// the player's move points, one point of reduction per move point spent.
func PayCumbersome(gs state.GameState, playerID, enemyInstanceID string, movePoints int) (state.GameState, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	_, enemy, ok := enemyByInstance(cs, enemyInstanceID)
	if !ok {
		return gs, rpgerr.New(rpgerr.CodeInvalidTarget, "unknown enemy instance")
	}
	if !enemy.HasAbility("cumbersome") {
		return gs, rpgerr.New(rpgerr.CodeNotAllowed, "enemy is not cumbersome")
	}
	player, _ := gs.PlayerByID(playerID)
	if player.MovePoints < movePoints {
		return gs, rpgerr.New(rpgerr.CodeResourceExhausted, "insufficient move points to pay cumbersome")
	}
	player.MovePoints -= movePoints
	gs = gs.WithPlayer(player)

	next := cs.Clone()
	next.CumbersomeReductions[enemyInstanceID] += movePoints
	return gs.WithCombat(next), nil
}

// AssignBlock commits amount of block, decomposed by element, against a
// specific enemy's incoming attack during the Block phase. It does not
// itself determine whether the block suffices, nor does it commit the
// block — that happens explicitly via DeclareBlock.
func AssignBlock(gs state.GameState, playerID, enemyInstanceID string, amount int, elem elemental.Element) (state.GameState, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	if cs.Phase != state.PhaseBlock {
		return gs, rpgerr.New(rpgerr.CodeWrongCombatPhase, "block can only be assigned during the block phase")
	}
	_, _, ok := enemyByInstance(cs, enemyInstanceID)
	if !ok {
		return gs, rpgerr.New(rpgerr.CodeInvalidTarget, "unknown enemy instance")
	}
	next := cs.Clone()
	cur := next.PendingBlock[enemyInstanceID]
	next.PendingBlock[enemyInstanceID] = cur.With(elem, cur.Get(elem)+amount)
	return gs.WithCombat(next), nil
}

// MarkSwiftBlock records that a Swift enemy's attack needs doubled
// block: IsEnemyBlocked halves the pending block of an enemy marked here.
func MarkSwiftBlock(gs state.GameState, enemyInstanceID string) state.GameState {
	next := gs.Combat.Clone()
	next.PendingSwiftBlock[enemyInstanceID] = true
	return gs.WithCombat(next)
}

// IsEnemyBlocked reports whether the player's pending block for an enemy
// is sufficient against that enemy's (Cumbersome-reduced) attack, honoring
// elemental efficacy and (if flagged) Swift's block-halving.
func IsEnemyBlocked(gs state.GameState, enemyInstanceID string, attack elemental.Values, resistances elemental.Resistances) bool {
	cs := gs.Combat
	pending := cs.PendingBlock[enemyInstanceID]
	if cs.PendingSwiftBlock[enemyInstanceID] {
		pending = elemental.Values{
			Physical: pending.Physical / 2,
			Fire:     pending.Fire / 2,
			Ice:      pending.Ice / 2,
			ColdFire: pending.ColdFire / 2,
		}
	}
	return elemental.AttackCovered(attack, resistances, pending)
}

// DeclareBlock commits the pending block accumulated via AssignBlock
// against the named enemy's own (Cumbersome-reduced) attack. If
// sufficient, the enemy is marked IsBlocked and the attack it contributes
// to the Block phase is recorded as blocked; ResolveDamage later skips a
// blocked enemy entirely. Insufficient block returns
// rpgerr.CodeInsufficientBlock without committing, so the player can add
// more block before ending the phase.
func DeclareBlock(gs state.GameState, playerID, enemyInstanceID string, resistances elemental.Resistances) (state.GameState, []event.Event, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, nil, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	if cs.Phase != state.PhaseBlock {
		return gs, nil, rpgerr.New(rpgerr.CodeWrongCombatPhase, "block can only be declared during the block phase")
	}
	idx, enemy, ok := enemyByInstance(cs, enemyInstanceID)
	if !ok {
		return gs, nil, rpgerr.New(rpgerr.CodeInvalidTarget, "unknown enemy instance")
	}
	if enemy.IsDefeated {
		return gs, nil, rpgerr.New(rpgerr.CodeInvalidTarget, "enemy already defeated")
	}
	attack := effectiveEnemyAttack(cs, *enemy)
	if !IsEnemyBlocked(gs, enemyInstanceID, attack, resistances) {
		return gs, nil, rpgerr.New(rpgerr.CodeInsufficientBlock, "pending block does not cover this enemy's attack",
			rpgerr.WithMeta("enemyInstanceId", enemyInstanceID))
	}
	next := cs.Clone()
	next.Enemies[idx].IsBlocked = true
	next.Enemies[idx].BlockedAttackIndices = append(next.Enemies[idx].BlockedAttackIndices, len(next.Enemies[idx].BlockedAttackIndices))
	events := []event.Event{{Type: event.BlockAssigned, PlayerID: playerID, EnemyInstanceID: enemyInstanceID}}
	return gs.WithCombat(next), events, nil
}

// AdvancePhase moves the combat to its next phase, applying the
// resets and auto-resolutions each transition requires:
//
//   - RangedSiege -> Block: fame is awarded for enemies already defeated
//     by ranged/siege attacks (summoned enemies award none), their
//     defeats are tallied into EnemiesDefeatedThisTurn, the player's
//     ranged/siege attack points are cleared, and any undefeated enemy
//     with the summon ability draws a token from the brown enemy deck
//     and hides behind it.
//   - Block -> AssignDamage: any uncommitted pending block is discarded,
//     and AllDamageBlockedThisPhase is computed from which enemies were
//     actually declared blocked.
//   - AssignDamage -> Attack: every summoned enemy, defeated or not, is
//     discarded and their summoners are un-hidden.
func AdvancePhase(gs state.GameState, playerID string) (state.GameState, []event.Event, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, nil, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	var events []event.Event
	next := cs.Clone()

	switch cs.Phase {
	case state.PhaseRangedSiege:
		gs, events = resolveRangedSiegeExit(gs, next, playerID)
		next = gs.Combat.Clone()
		next.Phase = state.PhaseBlock
	case state.PhaseBlock:
		next = resolveBlockExit(next)
		next.Phase = state.PhaseAssignDamage
	case state.PhaseAssignDamage:
		var summonEvents []event.Event
		next, summonEvents = resolveAssignDamageExit(next)
		events = append(events, summonEvents...)
		next.Phase = state.PhaseAttack
	case state.PhaseAttack:
		return gs, nil, rpgerr.New(rpgerr.CodeWrongCombatPhase, "combat already in its final phase; resolve it instead of advancing")
	}
	events = append(events, event.Event{Type: event.CombatPhaseChanged, PlayerID: playerID, CombatPhase: string(next.Phase)})
	gs = gs.WithCombat(next)

	var expiredIDs []string
	gs, expiredIDs = modifier.Expire(gs, modifier.TriggerPhaseEnd, playerID, cs.Phase)
	for _, id := range expiredIDs {
		events = append(events, event.Event{Type: event.ModifierExpired, PlayerID: playerID, SkillID: id})
	}
	return gs, events, nil
}

// resolveRangedSiegeExit awards fame for enemies defeated during the
// RangedSiege phase, clears the player's ranged/siege attack points, and
// resolves any pending summon abilities.
func resolveRangedSiegeExit(gs state.GameState, cs *state.CombatState, playerID string) (state.GameState, []event.Event) {
	var events []event.Event

	player, hasPlayer := gs.PlayerByID(playerID)
	for i := range cs.Enemies {
		e := &cs.Enemies[i]
		if !e.IsDefeated || e.FameAwarded {
			continue
		}
		e.FameAwarded = true
		if e.IsSummoned {
			continue // summoned enemies never award fame
		}
		if hasPlayer {
			player.Fame += e.FameValue
			player.EnemiesDefeatedThisTurn++
		}
		events = append(events, event.Event{Type: event.FameGained, PlayerID: playerID, Amount: e.FameValue})
	}
	if hasPlayer {
		player.CombatAccumulator = player.CombatAccumulator.ResetAttack()
		gs = gs.WithPlayer(player)
	}

	decks := gs.Decks
	for i := range cs.Enemies {
		e := &cs.Enemies[i]
		if e.IsDefeated || e.IsSummonerHidden || !e.HasAbility("summon") {
			continue
		}
		drawnID, nextDecks, ok := decks.DrawEnemyToken("brown")
		if !ok {
			continue
		}
		decks = nextDecks
		summonedID := fmt.Sprintf("summoned:%s:%d", e.InstanceID, i)
		cs.Enemies = append(cs.Enemies, state.CombatEnemy{
			DefID:              drawnID,
			InstanceID:         summonedID,
			IsSummoned:         true,
			SummonerInstanceID: e.InstanceID,
		})
		e.IsSummonerHidden = true
		events = append(events, event.Event{Type: event.EnemySummoned, PlayerID: playerID, EnemyInstanceID: summonedID})
	}
	gs = gs.WithDecks(decks)
	gs = gs.WithCombat(cs)
	return gs, events
}

// resolveBlockExit discards any uncommitted pending block and computes
// AllDamageBlockedThisPhase from which undefeated enemies were actually
// declared blocked.
func resolveBlockExit(cs *state.CombatState) *state.CombatState {
	cs.PendingBlock = map[string]elemental.Values{}
	cs.PendingSwiftBlock = map[string]bool{}

	allBlocked := true
	for _, e := range cs.Enemies {
		if e.IsDefeated {
			continue
		}
		if !e.IsBlocked {
			allBlocked = false
			break
		}
	}
	cs.AllDamageBlockedThisPhase = allBlocked
	return cs
}

// resolveAssignDamageExit discards every summoned enemy — summons never
// award fame and never carry into the Attack phase, defeated or not —
// and un-hides their summoners.
func resolveAssignDamageExit(cs *state.CombatState) (*state.CombatState, []event.Event) {
	var events []event.Event
	var kept []state.CombatEnemy
	for _, e := range cs.Enemies {
		if e.IsSummoned {
			events = append(events, event.Event{Type: event.EnemyDefeated, EnemyInstanceID: e.InstanceID, Victory: false})
			continue
		}
		kept = append(kept, e)
	}
	cs.Enemies = kept
	for i := range cs.Enemies {
		if !cs.Enemies[i].IsSummonerHidden {
			continue
		}
		stillHiding := false
		for _, e := range cs.Enemies {
			if e.IsSummoned && e.SummonerInstanceID == cs.Enemies[i].InstanceID {
				stillHiding = true
				break
			}
		}
		if !stillHiding {
			cs.Enemies[i].IsSummonerHidden = false
		}
	}
	return cs, events
}

// ResolveDamage assigns unblocked enemy attack damage to the player,
// applying Cumbersome's attack reduction and then Brutal's doubling.
// Wound cards are added to the player's hand; armor never reduces below
// zero from a single hit (it's simply a pass/fail check, not a subtracted
// resource).
func ResolveDamage(gs state.GameState, playerID string, enemyInstanceID string, armor int) (state.GameState, []event.Event, bool) {
	cs := gs.Combat
	_, enemy, ok := enemyByInstance(cs, enemyInstanceID)
	if !ok {
		return gs, nil, false
	}
	if enemy.IsBlocked {
		return gs, nil, false
	}
	attack := effectiveEnemyAttack(cs, *enemy)
	total := elemental.EffectiveAttack(elemental.Physical, attack.Physical, enemy.Resistance) +
		elemental.EffectiveAttack(elemental.Fire, attack.Fire, enemy.Resistance) +
		elemental.EffectiveAttack(elemental.Ice, attack.Ice, enemy.Resistance) +
		elemental.EffectiveAttack(elemental.ColdFire, attack.ColdFire, enemy.Resistance)
	if enemy.HasAbility("brutal") {
		total *= 2
	}

	player, _ := gs.PlayerByID(playerID)
	wounded := total > armor
	var events []event.Event
	if wounded {
		player.Hand = append(player.Hand, state.Card{ID: "wound"})
		player.WoundsReceivedThisTurn++
		events = append(events, event.Event{Type: event.DamageAssigned, PlayerID: playerID, EnemyInstanceID: enemyInstanceID, Amount: total})
	}
	gs = gs.WithPlayer(player)
	return gs, events, wounded
}

// Defend assigns an enemy's damage to a unit instead of the player,
// consuming the unit's Defend ability for the combat and adding its
// armor as a Defend bonus the enemy's effective armor check can read
// back via state.CombatState.DefendBonuses. If the unit carries the
// Thugs ability, PayThugsDamageInfluence must already have been called
// for it this combat.
func Defend(gs state.GameState, playerID string, unitInstanceID, enemyInstanceID string, unitArmor int, unitIsThugs bool) (state.GameState, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	if _, used := cs.UsedDefend[unitInstanceID]; used {
		return gs, rpgerr.New(rpgerr.CodeAlreadyActed, "unit has already defended this combat")
	}
	if unitIsThugs && !cs.PaidThugsDamageInfluence[unitInstanceID] {
		return gs, rpgerr.New(rpgerr.CodePrerequisiteNotMet, "thugs unit requires influence before it may defend")
	}
	next := cs.Clone()
	next.UsedDefend[unitInstanceID] = enemyInstanceID
	next.DefendBonuses[enemyInstanceID] += unitArmor
	return gs.WithCombat(next), nil
}

// PayHeroesAssaultInfluence pays the influence cost required to assault a
// fortified site whose garrison includes a Heroes-tagged enemy, enabling
// ranged attacks against it during the RangedSiege phase.
func PayHeroesAssaultInfluence(gs state.GameState, playerID string, cost int) (state.GameState, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	if cs.PaidHeroesAssaultInfluence {
		return gs, rpgerr.New(rpgerr.CodeAlreadyActed, "heroes assault influence already paid this combat")
	}
	player, _ := gs.PlayerByID(playerID)
	if player.InfluencePoints < cost {
		return gs, rpgerr.New(rpgerr.CodeResourceExhausted, "insufficient influence to assault heroes")
	}
	player.InfluencePoints -= cost
	gs = gs.WithPlayer(player)

	next := cs.Clone()
	next.PaidHeroesAssaultInfluence = true
	return gs.WithCombat(next), nil
}

// PayThugsDamageInfluence pays the influence cost required before a unit
// may be assigned a Thugs enemy's damage via Defend.
func PayThugsDamageInfluence(gs state.GameState, playerID, unitInstanceID string, cost int) (state.GameState, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	if cs.PaidThugsDamageInfluence[unitInstanceID] {
		return gs, rpgerr.New(rpgerr.CodeAlreadyActed, "thugs damage influence already paid for this unit")
	}
	player, _ := gs.PlayerByID(playerID)
	if player.InfluencePoints < cost {
		return gs, rpgerr.New(rpgerr.CodeResourceExhausted, "insufficient influence to pay thugs")
	}
	player.InfluencePoints -= cost
	gs = gs.WithPlayer(player)

	next := cs.Clone()
	next.PaidThugsDamageInfluence[unitInstanceID] = true
	return gs.WithCombat(next), nil
}

// AssignAttack accumulates amount of attack points of the given element
// against an enemy, to be committed by a later DeclareAttack. Like
// AssignBlock, this only records the allocation — it does not check
// sufficiency or mutate the enemy.
func AssignAttack(gs state.GameState, playerID, enemyInstanceID string, amount int, elem elemental.Element, attackType string) (state.GameState, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	if cs.Phase != state.PhaseRangedSiege && cs.Phase != state.PhaseAttack {
		return gs, rpgerr.New(rpgerr.CodeWrongCombatPhase, fmt.Sprintf("cannot attack during %s", cs.Phase))
	}
	if _, _, ok := enemyByInstance(cs, enemyInstanceID); !ok {
		return gs, rpgerr.New(rpgerr.CodeInvalidTarget, "unknown enemy instance")
	}
	if cs.Phase == state.PhaseRangedSiege && attackType != "ranged" && attackType != "siege" {
		return gs, rpgerr.New(rpgerr.CodeWrongCombatPhase, "only ranged/siege attacks are allowed before the block phase")
	}
	if cs.Phase == state.PhaseAttack {
		attackType = "normal"
	}

	next := cs.Clone()
	cur := next.PendingAttack[enemyInstanceID]
	next.PendingAttack[enemyInstanceID] = cur.With(elem, cur.Get(elem)+amount)
	next.PendingAttackType[enemyInstanceID] = attackType
	return gs.WithCombat(next), nil
}

// DeclareAttack commits the pending attack accumulated via AssignAttack
// against the named enemy, resolving whether it is defeated. Effective
// armor runs through modifier.EffectiveEnemyArmor (which applies
// Elusive's phase-dependent BaseArmorOverride and any EnemyArmorReduction
// modifiers) plus the enemy's accumulated Defend bonus. Ranged attacks
// against a fortified site during RangedSiege require
// PaidHeroesAssaultInfluence first.
func DeclareAttack(gs state.GameState, playerID, enemyInstanceID string) (state.GameState, []event.Event, error) {
	cs := gs.Combat
	if cs == nil {
		return gs, nil, rpgerr.New(rpgerr.CodeNotInCombat, "no active combat")
	}
	idx, enemy, ok := enemyByInstance(cs, enemyInstanceID)
	if !ok {
		return gs, nil, rpgerr.New(rpgerr.CodeInvalidTarget, "unknown enemy instance")
	}
	if enemy.IsDefeated {
		return gs, nil, rpgerr.New(rpgerr.CodeInvalidTarget, "enemy already defeated")
	}
	attackType := cs.PendingAttackType[enemyInstanceID]
	if attackType == "ranged" && cs.IsAtFortifiedSite && !cs.PaidHeroesAssaultInfluence {
		return gs, nil, rpgerr.New(rpgerr.CodeRangedAttackAllFortified, "ranged attacks cannot target a fortified site without paying the heroes assault influence",
			rpgerr.WithMeta("enemyInstanceId", enemyInstanceID))
	}

	pending := cs.PendingAttack[enemyInstanceID]
	armor := modifier.EffectiveEnemyArmor(gs, enemyInstanceID, enemy.Armor, cs.Phase) + cs.DefendBonuses[enemyInstanceID]
	effective := elemental.EffectiveAttack(elemental.Physical, pending.Physical, enemy.Resistance) +
		elemental.EffectiveAttack(elemental.Fire, pending.Fire, enemy.Resistance) +
		elemental.EffectiveAttack(elemental.Ice, pending.Ice, enemy.Resistance) +
		elemental.EffectiveAttack(elemental.ColdFire, pending.ColdFire, enemy.Resistance)
	defeated := effective >= armor

	next := cs.Clone()
	delete(next.PendingAttack, enemyInstanceID)
	delete(next.PendingAttackType, enemyInstanceID)
	var events []event.Event
	if defeated {
		next.Enemies[idx].IsDefeated = true
		events = append(events, event.Event{Type: event.EnemyDefeated, PlayerID: playerID, EnemyInstanceID: enemyInstanceID, Victory: true})
	} else {
		events = append(events, event.Event{Type: event.AttackFailed, PlayerID: playerID, EnemyInstanceID: enemyInstanceID})
	}
	next.AttacksThisPhase++
	return gs.WithCombat(next), events, nil
}

// End tears down the combat: expires combat-duration modifiers, clears
// the CombatState, and reports whether every enemy was defeated.
func End(gs state.GameState, playerID string) (state.GameState, []event.Event) {
	cs := gs.Combat
	if cs == nil {
		return gs, nil
	}
	allDefeated := !cs.AnyEnemyAlive()
	var events []event.Event
	var expiredIDs []string
	gs, expiredIDs = modifier.Expire(gs, modifier.TriggerCombatEnd, playerID, "")
	for _, id := range expiredIDs {
		events = append(events, event.Event{Type: event.ModifierExpired, PlayerID: playerID, SkillID: id})
	}
	events = append(events, event.Event{Type: event.CombatEnded, PlayerID: playerID, Victory: allDefeated})
	gs = gs.WithCombat(nil)
	return gs, events
}
