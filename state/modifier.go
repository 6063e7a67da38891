package state

import "github.com/mage-knight-digital/MageKnight-sub012/elemental"

// ModifierSourceKind classifies what placed a modifier.
type ModifierSourceKind string

const (
	SourceCard     ModifierSourceKind = "card"
	SourceSpell    ModifierSourceKind = "spell"
	SourceSkill    ModifierSourceKind = "skill"
	SourceArtifact ModifierSourceKind = "artifact"
	SourceUnit     ModifierSourceKind = "unit_ability"
	SourceTactic   ModifierSourceKind = "tactic"
	SourceScenario ModifierSourceKind = "scenario"
)

// ModifierSource identifies what placed a modifier.
type ModifierSource struct {
	Kind     ModifierSourceKind
	Ref      string // card/spell/skill/artifact/unit/tactic id
	PlayerID string // empty for scenario-sourced modifiers
}

// ModifierScopeKind is the discriminant of ModifierScope.
type ModifierScopeKind string

const (
	ScopeSelf      ModifierScopeKind = "self"
	ScopeOneUnit   ModifierScopeKind = "one_unit"
	ScopeAllUnits  ModifierScopeKind = "all_units"
	ScopeOneEnemy  ModifierScopeKind = "one_enemy"
	ScopeAllEnemies ModifierScopeKind = "all_enemies"
	ScopeGlobal    ModifierScopeKind = "global"
)

// ModifierScope is one of {self, one_unit(index), all_units,
// one_enemy(instance_id), all_enemies, global}.
type ModifierScope struct {
	Kind           ModifierScopeKind
	UnitIndex      int    // valid when Kind == ScopeOneUnit
	EnemyInstanceID string // valid when Kind == ScopeOneEnemy
}

// ModifierDurationKind is the discriminant of ModifierDuration.
type ModifierDurationKind string

const (
	DurationTurn           ModifierDurationKind = "turn"
	DurationCombat         ModifierDurationKind = "combat"
	DurationPhase          ModifierDurationKind = "phase"
	DurationRound          ModifierDurationKind = "round"
	DurationUntilNextTurn  ModifierDurationKind = "until_next_turn"
	DurationPersistent     ModifierDurationKind = "persistent"
	DurationOneShot        ModifierDurationKind = "one_shot"
)

// ModifierDuration is one of {turn(player_id), combat, phase(phase),
// round, until_next_turn(player_id), persistent, one_shot}.
type ModifierDuration struct {
	Kind     ModifierDurationKind
	PlayerID string      // valid when Kind is DurationTurn or DurationUntilNextTurn
	Phase    CombatPhase // valid when Kind == DurationPhase
}

// ModifierEffectKind is the discriminant of ModifierEffect.
type ModifierEffectKind string

const (
	EffectAttackBonus             ModifierEffectKind = "attack_bonus"
	EffectBlockBonus               ModifierEffectKind = "block_bonus"
	EffectUnitArmorBonus           ModifierEffectKind = "unit_armor_bonus"
	EffectUnitBlockBonus           ModifierEffectKind = "unit_block_bonus"
	EffectUnitAttackBonus          ModifierEffectKind = "unit_attack_bonus"
	EffectGrantResistances         ModifierEffectKind = "grant_resistances"
	EffectEnemyArmorReduction      ModifierEffectKind = "enemy_armor_reduction"
	EffectResistancesRemoved       ModifierEffectKind = "resistances_removed"
	EffectAbilityNullified         ModifierEffectKind = "ability_nullified"
	EffectAttackNullified          ModifierEffectKind = "attack_nullified"
	EffectBaseArmorOverride        ModifierEffectKind = "base_armor_override"
	EffectSidewaysValue            ModifierEffectKind = "sideways_value"
	EffectRuleActive               ModifierEffectKind = "rule_active"
	EffectInfluenceToBlockConversion ModifierEffectKind = "influence_to_block_conversion"
	EffectMoveToAttackConversion   ModifierEffectKind = "move_to_attack_conversion"
	EffectLeadershipBonus          ModifierEffectKind = "leadership_bonus"
	EffectBannerGloryFameTracking  ModifierEffectKind = "banner_glory_fame_tracking"
	EffectInteractionBonus         ModifierEffectKind = "interaction_bonus"
	EffectRecruitDiscount          ModifierEffectKind = "recruit_discount"
	EffectFameBonusPerSpellColor   ModifierEffectKind = "fame_bonus_per_spell_color"
)

// ModifierEffect is the modifier system's tagged-union payload. Only the fields relevant to Kind are populated.
type ModifierEffect struct {
	Kind ModifierEffectKind

	Amount  int               // AttackBonus, BlockBonus, armor/block/attack bonuses, EnemyArmorReduction
	Element elemental.Element // elemental-scoped bonuses

	Resistances elemental.Resistances // GrantResistances / ResistancesRemoved

	Ability string // AbilityNullified

	ArmorByPhase map[CombatPhase]int // BaseArmorOverride

	NewSidewaysValue int  // SidewaysValue
	ForWounds        bool // SidewaysValue: applies specifically to wound cards

	RuleTag string // RuleActive / scenario-specific tags

	ConversionRate int         // MoveToAttackConversion
	AttackType     string      // MoveToAttackConversion: "normal"|"ranged"|"siege"

	FameBonus       int // InteractionBonus, LeadershipBonus
	ReputationBonus int // InteractionBonus

	RecruitDiscountAmount int // RecruitDiscount

	SpellColorFameBonus map[CardColor]int // FameBonusPerSpellColor
}

// ActiveModifier is a single modifier overlay.
type ActiveModifier struct {
	ID             string
	Source         ModifierSource
	Duration       ModifierDuration
	Scope          ModifierScope
	Effect         ModifierEffect
	CreatedAtRound int
	CreatedByPlayerID string
}
