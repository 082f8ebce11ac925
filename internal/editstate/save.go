// Package editstate holds the editable mirrors of the selected save or profile.
//
// A state is seeded from a LoadedFile when the file is selected and is the
// only place pending edits live. The authoritative model is untouched until
// MapSave or MapProfile writes the state onto a clone at commit time.
package editstate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/studiowebux/bl3edit/internal/types"
)

// SaveGeneral is the General tab of a save
type SaveGeneral struct {
	GUID     string
	Slot     int
	FileName string
	Header   types.HeaderType
}

// SaveCharacter is the Character tab of a save
type SaveCharacter struct {
	Name             string
	Level            int
	ExperiencePoints int32
	AbilityPoints    int32
	PlayerClass      types.PlayerClass
	Sdu              [types.SaveSduSlotCount]int32
	Ammo             [types.AmmoPoolCount]int32
	Gear             [types.GearSlotCount]bool
	HeadSkin         string
	CharacterSkin    string
	EchoTheme        string
}

// SaveCurrency is the Currency tab of a save
type SaveCurrency struct {
	Money   int32
	Eridium int32
}

// SaveVehicle is the Vehicle tab of a save
type SaveVehicle struct {
	Unlocked [types.VehicleUnlockCount]bool
}

// SaveState mirrors every editable field of a save
type SaveState struct {
	General   SaveGeneral
	Character SaveCharacter
	Inventory Items
	Currency  SaveCurrency
	Vehicle   SaveVehicle
}

// SeedSave copies the fields of a loaded save into a fresh state
func SeedSave(f types.LoadedFile) SaveState {
	if f.Save == nil {
		return SaveState{}
	}
	m := f.Save

	level, err := types.LevelForXP(m.Character.ExperiencePoints)
	if err != nil {
		level = 1
	}

	return SaveState{
		General: SaveGeneral{
			GUID:     m.GUID,
			Slot:     m.Slot,
			FileName: f.FileName,
			Header:   m.Header,
		},
		Character: SaveCharacter{
			Name:             m.Character.Name,
			Level:            level,
			ExperiencePoints: m.Character.ExperiencePoints,
			AbilityPoints:    m.Character.AbilityPoints,
			PlayerClass:      m.Character.PlayerClass,
			Sdu:              m.Character.Sdu,
			Ammo:             m.Character.Ammo,
			Gear:             m.Character.Gear,
			HeadSkin:         m.Character.HeadSkin,
			CharacterSkin:    m.Character.CharacterSkin,
			EchoTheme:        m.Character.EchoTheme,
		},
		Inventory: seedItems(m.Inventory),
		Currency: SaveCurrency{
			Money:   m.Currency.Money,
			Eridium: m.Currency.Eridium,
		},
		Vehicle: SaveVehicle{Unlocked: m.Vehicles},
	}
}

// SlotFileName is the file name the game uses for a save slot
func SlotFileName(slot int) string {
	return fmt.Sprintf("%x.sav", slot)
}

// SetSlot changes the slot and the output file name with it
func (s *SaveState) SetSlot(slot int) {
	s.General.Slot = slot
	s.General.FileName = SlotFileName(slot)
}

// GenerateGUID replaces the GUID with a random one
func (s *SaveState) GenerateGUID() {
	s.General.GUID = NewGUID()
}

// NewGUID returns a random GUID in the game's format: 32 upper-case hex digits
func NewGUID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// SetLevel sets the level and the experience required for it.
// Levels below 1 leave the experience at zero.
func (s *SaveState) SetLevel(level int) {
	s.Character.Level = level
	if level > 0 {
		s.Character.ExperiencePoints = types.RequiredXP(level)
	} else {
		s.Character.ExperiencePoints = 0
	}
}

// SetExperience sets the experience and the level it reaches
func (s *SaveState) SetExperience(xp int32) {
	s.Character.ExperiencePoints = xp
	level, err := types.LevelForXP(xp)
	if err != nil {
		level = 1
	}
	s.Character.Level = level
}

// MaxSdu raises every storage upgrade to its maximum
func (s *SaveState) MaxSdu() {
	for slot := types.SaveSduSlot(0); slot < types.SaveSduSlotCount; slot++ {
		s.Character.Sdu[slot] = slot.Maximum()
	}
}

// MaxAmmo fills every ammo pool
func (s *SaveState) MaxAmmo() {
	for pool := types.AmmoPool(0); pool < types.AmmoPoolCount; pool++ {
		s.Character.Ammo[pool] = pool.Maximum()
	}
}

func (s *SaveState) MaxMoney()   { s.Currency.Money = types.MaxCurrency }
func (s *SaveState) MaxEridium() { s.Currency.Eridium = types.MaxCurrency }

// MapSave validates s and writes it onto m. On error m is left unchanged.
func MapSave(s SaveState, m *types.SaveModel) error {
	if m == nil {
		return &types.UnexpectedVariantError{Want: "save"}
	}

	var v validator

	g := s.General
	if !g.Header.IsSave() {
		v.fail("general.header", "%s is not a save type", g.Header)
	}
	if !guidPattern.MatchString(g.GUID) {
		v.fail("general.guid", "must be 32 hexadecimal characters")
	}
	if g.Slot < 1 {
		v.fail("general.slot", "must be at least 1, got %d", g.Slot)
	}

	c := s.Character
	if strings.TrimSpace(c.Name) == "" {
		v.fail("character.name", "must not be empty")
	}
	if c.Level < 1 || c.Level > types.MaxLevel {
		v.fail("character.level", "must be between 1 and %d, got %d", types.MaxLevel, c.Level)
	}
	v.nonNegative("character.experience_points", c.ExperiencePoints)
	v.nonNegative("character.ability_points", c.AbilityPoints)
	if !c.PlayerClass.Valid() {
		v.fail("character.player_class", "unknown class %d", c.PlayerClass)
	}
	for slot := types.SaveSduSlot(0); slot < types.SaveSduSlotCount; slot++ {
		v.inRange("character.sdu."+fieldName(slot.String()), c.Sdu[slot], 0, slot.Maximum())
	}
	for pool := types.AmmoPool(0); pool < types.AmmoPoolCount; pool++ {
		v.inRange("character.ammo."+fieldName(pool.String()), c.Ammo[pool], 0, pool.Maximum())
	}
	if !types.InCatalog(types.HeadSkins, c.HeadSkin) {
		v.fail("character.head_skin", "unknown skin %q", c.HeadSkin)
	}
	if !types.InCatalog(types.CharacterSkins, c.CharacterSkin) {
		v.fail("character.character_skin", "unknown skin %q", c.CharacterSkin)
	}
	if !types.InCatalog(types.EchoThemes, c.EchoTheme) {
		v.fail("character.echo_theme", "unknown theme %q", c.EchoTheme)
	}

	v.items("inventory", s.Inventory.Entries)

	v.nonNegative("currency.money", s.Currency.Money)
	v.nonNegative("currency.eridium", s.Currency.Eridium)

	if err := v.err(); err != nil {
		return err
	}

	m.Header = g.Header
	m.GUID = strings.ToUpper(g.GUID)
	m.Slot = g.Slot
	m.Character = types.Character{
		Name:             strings.TrimSpace(c.Name),
		ExperiencePoints: c.ExperiencePoints,
		AbilityPoints:    c.AbilityPoints,
		PlayerClass:      c.PlayerClass,
		Sdu:              c.Sdu,
		Ammo:             c.Ammo,
		Gear:             c.Gear,
		HeadSkin:         c.HeadSkin,
		CharacterSkin:    c.CharacterSkin,
		EchoTheme:        c.EchoTheme,
	}
	m.Inventory = s.Inventory.models()
	m.Currency = types.Currency{Money: s.Currency.Money, Eridium: s.Currency.Eridium}
	m.Vehicles = s.Vehicle.Unlocked

	return nil
}

func fieldName(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}
