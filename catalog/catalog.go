// Package catalog provides pure, in-memory lookup tables for static game
// content: cards, units, enemies, tiles, skills, tactics, and sites. A
// catalog miss is a logic bug, not a runtime error — validators are
// responsible for guaranteeing known ids before a command dereferences
// them, so MustGet panics and Get reports ok=false for callers that
// legitimately need to check.
//
// This package defines the table shapes only and holds no card/enemy
// content of its own. Modeled on a
// typed, string-keyed definition-id convention (distinct ref types per
// content kind, looked up from an in-memory registry).
package catalog

import "github.com/mage-knight-digital/MageKnight-sub012/elemental"

// CardColor is one of the four action-card colors.
type CardColor string

const (
	ColorRed   CardColor = "red"
	ColorBlue  CardColor = "blue"
	ColorGreen CardColor = "green"
	ColorWhite CardColor = "white"
)

// EffectTree is implemented by the effect package's tagged-union effect
// tree. Catalog references it only as an opaque attachment point to
// avoid an import cycle between catalog and effect; effect.Node
// implements this interface.
type EffectTree interface {
	// IsEffectNode is a marker method distinguishing effect.Node values.
	IsEffectNode()
}

// CardDef describes an action card's identity and its two effect
// branches.
type CardDef struct {
	ID        string
	Name      string
	Color     CardColor
	Basic     EffectTree
	Powered   EffectTree
	PoweredOf CardColor // mana color required to power this card
}

// UnitDef describes a recruitable unit.
type UnitDef struct {
	ID         string
	Name       string
	Level      string // "regular" or "elite"
	Armor      int
	Resistance elemental.Resistances
	Abilities  []string // ability tags, e.g. "defend", "swift"
	Cost       int       // influence cost in the unit offer
}

// EnemyDef describes an enemy token's fixed combat stats.
type EnemyDef struct {
	ID          string
	Name        string
	Color       string // "green"|"grey"|"red"|"purple"|"brown"|"white"
	Armor       int
	Attack      int
	AttackElem  elemental.Element
	Resistance  elemental.Resistances
	Abilities   []string // "swift","brutal","cumbersome","summon","elusive","fortified-only"
	FameOnKill  int
}

// TileDef describes a map tile's terrain layout. Terrain grid is kept
// abstract (a map from a local coordinate key to terrain name) since the
// concrete tile catalog is data, not design.
type TileDef struct {
	ID      string
	Terrain map[string]string
}

// SkillDef describes a unit/hero skill.
type SkillDef struct {
	ID          string
	Name        string
	OwnerHeroID string // empty for common skills
	Effect      EffectTree
	Cooldown    SkillCooldown
}

// SkillCooldown classifies how often a skill may be used.
type SkillCooldown string

const (
	CooldownNone          SkillCooldown = "none"
	CooldownOncePerTurn   SkillCooldown = "once_per_turn"
	CooldownOncePerRound  SkillCooldown = "once_per_round"
	CooldownOncePerCombat SkillCooldown = "once_per_combat"
	CooldownUntilNextTurn SkillCooldown = "until_next_turn"
)

// TacticDef describes a tactic card (day or night).
type TacticDef struct {
	ID       string
	Name     string
	IsNight  bool
	Effect   EffectTree
}

// SiteType classifies a map site.
type SiteType string

const (
	SiteKeep       SiteType = "keep"
	SiteMageTower  SiteType = "mage_tower"
	SiteCity       SiteType = "city"
	SiteVillage    SiteType = "village"
	SiteMonastery  SiteType = "monastery"
	SiteDungeon    SiteType = "dungeon"
	SiteTomb       SiteType = "tomb"
	SiteRefugeeCamp SiteType = "refugee_camp"
)

// SiteDef describes a conquerable/interactive site.
type SiteDef struct {
	ID         string
	Type       SiteType
	Fortified  bool
	GarrisonOf []string // enemy ids guarding the site, if any
}

// Catalog is the immutable collection of all static lookup tables for a
// game. A zero-value Catalog has nil tables; New returns one with empty,
// initialized tables and seeds no content.
type Catalog struct {
	Cards  map[string]CardDef
	Units  map[string]UnitDef
	Enemies map[string]EnemyDef
	Tiles  map[string]TileDef
	Skills map[string]SkillDef
	Tactics map[string]TacticDef
	Sites  map[string]SiteDef
}

// New creates an empty Catalog with initialized tables. Content is
// filled in by the caller, so the catalog type itself stays pure data
// plumbing.
func New() *Catalog {
	return &Catalog{
		Cards:   make(map[string]CardDef),
		Units:   make(map[string]UnitDef),
		Enemies: make(map[string]EnemyDef),
		Tiles:   make(map[string]TileDef),
		Skills:  make(map[string]SkillDef),
		Tactics: make(map[string]TacticDef),
		Sites:   make(map[string]SiteDef),
	}
}

// GetCard looks up a card by id.
func (c *Catalog) GetCard(id string) (CardDef, bool) {
	d, ok := c.Cards[id]
	return d, ok
}

// MustGetCard looks up a card by id, panicking on a miss. Only call this
// after a validator has already confirmed the id is known.
func (c *Catalog) MustGetCard(id string) CardDef {
	d, ok := c.Cards[id]
	if !ok {
		panic("catalog: unknown card id " + id)
	}
	return d
}

// GetUnit looks up a unit by id.
func (c *Catalog) GetUnit(id string) (UnitDef, bool) {
	d, ok := c.Units[id]
	return d, ok
}

// MustGetUnit looks up a unit by id, panicking on a miss.
func (c *Catalog) MustGetUnit(id string) UnitDef {
	d, ok := c.Units[id]
	if !ok {
		panic("catalog: unknown unit id " + id)
	}
	return d
}

// GetEnemy looks up an enemy definition by id.
func (c *Catalog) GetEnemy(id string) (EnemyDef, bool) {
	d, ok := c.Enemies[id]
	return d, ok
}

// MustGetEnemy looks up an enemy definition by id, panicking on a miss.
func (c *Catalog) MustGetEnemy(id string) EnemyDef {
	d, ok := c.Enemies[id]
	if !ok {
		panic("catalog: unknown enemy id " + id)
	}
	return d
}

// GetTile looks up a tile definition by id.
func (c *Catalog) GetTile(id string) (TileDef, bool) {
	d, ok := c.Tiles[id]
	return d, ok
}

// GetSkill looks up a skill definition by id.
func (c *Catalog) GetSkill(id string) (SkillDef, bool) {
	d, ok := c.Skills[id]
	return d, ok
}

// GetTactic looks up a tactic definition by id.
func (c *Catalog) GetTactic(id string) (TacticDef, bool) {
	d, ok := c.Tactics[id]
	return d, ok
}

// GetSite looks up a site definition by id.
func (c *Catalog) GetSite(id string) (SiteDef, bool) {
	d, ok := c.Sites[id]
	return d, ok
}
