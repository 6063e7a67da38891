package state

import "github.com/mage-knight-digital/MageKnight-sub012/elemental"

// CombatPhase is one of the four combat state-machine phases.
type CombatPhase string

const (
	PhaseRangedSiege  CombatPhase = "ranged_siege"
	PhaseBlock        CombatPhase = "block"
	PhaseAssignDamage CombatPhase = "assign_damage"
	PhaseAttack       CombatPhase = "attack"
)

// CombatAccumulator carries a player's combat-phase arithmetic.
type CombatAccumulator struct {
	Attack struct {
		Normal, Ranged, Siege                      int
		NormalElements, RangedElements, SiegeElements elemental.Values
	}
	Block         int
	BlockElements elemental.Values

	AssignedBlock         int
	AssignedBlockElements elemental.Values
}

// ResetAttack zeroes the attack side of the accumulator — called at the
// RangedSiege -> Block transition, since ranged/siege points do not
// carry over into the Attack phase.
func (a CombatAccumulator) ResetAttack() CombatAccumulator {
	a.Attack.Normal, a.Attack.Ranged, a.Attack.Siege = 0, 0, 0
	a.Attack.NormalElements = elemental.Values{}
	a.Attack.RangedElements = elemental.Values{}
	a.Attack.SiegeElements = elemental.Values{}
	return a
}

// ResetBlock zeroes the block side of the accumulator.
func (a CombatAccumulator) ResetBlock() CombatAccumulator {
	a.Block = 0
	a.BlockElements = elemental.Values{}
	a.AssignedBlock = 0
	a.AssignedBlockElements = elemental.Values{}
	return a
}

// CombatEnemy is one enemy token participating in the active combat.
type CombatEnemy struct {
	DefID      string
	InstanceID string

	Attack     elemental.Values
	Armor      int
	Resistance elemental.Resistances
	Abilities  []string // "swift","brutal","cumbersome","summon","elusive","fortified-only","heroes","thugs"
	FameValue  int

	IsBlocked            bool
	BlockedAttackIndices []int
	IsDefeated           bool
	FameAwarded          bool

	IsSummoned         bool // discarded with no fame at AssignDamage->Attack
	SummonerInstanceID string
	IsSummonerHidden   bool
}

// HasAbility reports whether the enemy carries the named ability tag.
func (e CombatEnemy) HasAbility(tag string) bool {
	for _, a := range e.Abilities {
		if a == tag {
			return true
		}
	}
	return false
}

// CombatState is present iff a combat is active.
type CombatState struct {
	Phase   CombatPhase
	Enemies []CombatEnemy

	PendingBlock       map[string]elemental.Values // enemy instance id -> uncommitted allocation
	PendingSwiftBlock  map[string]bool
	PendingDamage      map[string]elemental.Values

	PendingAttack     map[string]elemental.Values // enemy instance id -> uncommitted attack allocation
	PendingAttackType map[string]string           // enemy instance id -> "ranged"/"siege"/"normal" of its pending attack

	CumbersomeReductions map[string]int // enemy instance id -> move points spent

	UsedDefend    map[string]string // defender unit instance id -> target enemy instance id
	DefendBonuses map[string]int    // target enemy instance id -> accumulated armor bonus

	PaidHeroesAssaultInfluence bool
	PaidThugsDamageInfluence   map[string]bool // unit instance id -> paid

	AllDamageBlockedThisPhase bool
	FameGained                int
	AttacksThisPhase          int

	IsAtFortifiedSite bool
	AssaultOrigin     *string // hex key, nil if not an assault
	UnitsAllowed      bool
}

// NewCombatState creates an empty combat ready for the RangedSiege
// phase.
func NewCombatState(enemies []CombatEnemy, atFortifiedSite bool) *CombatState {
	return &CombatState{
		Phase:                PhaseRangedSiege,
		Enemies:              enemies,
		PendingBlock:         map[string]elemental.Values{},
		PendingSwiftBlock:    map[string]bool{},
		PendingDamage:        map[string]elemental.Values{},
		PendingAttack:        map[string]elemental.Values{},
		PendingAttackType:    map[string]string{},
		CumbersomeReductions: map[string]int{},
		UsedDefend:           map[string]string{},
		DefendBonuses:        map[string]int{},
		PaidThugsDamageInfluence: map[string]bool{},
		IsAtFortifiedSite:    atFortifiedSite,
		UnitsAllowed:         true,
	}
}

// Clone deep-copies a CombatState for command snapshotting.
func (c *CombatState) Clone() *CombatState {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Enemies = make([]CombatEnemy, len(c.Enemies))
	for i, e := range c.Enemies {
		clone.Enemies[i] = e
		clone.Enemies[i].BlockedAttackIndices = append([]int(nil), e.BlockedAttackIndices...)
		clone.Enemies[i].Abilities = append([]string(nil), e.Abilities...)
	}
	clone.PendingBlock = cloneValuesMap(c.PendingBlock)
	clone.PendingDamage = cloneValuesMap(c.PendingDamage)
	clone.PendingAttack = cloneValuesMap(c.PendingAttack)
	clone.PendingSwiftBlock = make(map[string]bool, len(c.PendingSwiftBlock))
	for k, v := range c.PendingSwiftBlock {
		clone.PendingSwiftBlock[k] = v
	}
	clone.PendingAttackType = make(map[string]string, len(c.PendingAttackType))
	for k, v := range c.PendingAttackType {
		clone.PendingAttackType[k] = v
	}
	clone.CumbersomeReductions = make(map[string]int, len(c.CumbersomeReductions))
	for k, v := range c.CumbersomeReductions {
		clone.CumbersomeReductions[k] = v
	}
	clone.UsedDefend = make(map[string]string, len(c.UsedDefend))
	for k, v := range c.UsedDefend {
		clone.UsedDefend[k] = v
	}
	clone.DefendBonuses = make(map[string]int, len(c.DefendBonuses))
	for k, v := range c.DefendBonuses {
		clone.DefendBonuses[k] = v
	}
	clone.PaidThugsDamageInfluence = make(map[string]bool, len(c.PaidThugsDamageInfluence))
	for k, v := range c.PaidThugsDamageInfluence {
		clone.PaidThugsDamageInfluence[k] = v
	}
	if c.AssaultOrigin != nil {
		origin := *c.AssaultOrigin
		clone.AssaultOrigin = &origin
	}
	return &clone
}

func cloneValuesMap(m map[string]elemental.Values) map[string]elemental.Values {
	out := make(map[string]elemental.Values, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// AnyEnemyAlive reports whether at least one enemy in the combat has
// not been defeated.
func (c *CombatState) AnyEnemyAlive() bool {
	if c == nil {
		return false
	}
	for _, e := range c.Enemies {
		if !e.IsDefeated {
			return true
		}
	}
	return false
}
