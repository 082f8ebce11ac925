package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/studiowebux/bl3edit/internal/editstate"
	"github.com/studiowebux/bl3edit/internal/types"
)

// Field names shared with validation errors. Array fields take an Index.
const (
	fieldGUID     = "general.guid"
	fieldSlot     = "general.slot"
	fieldFileName = "general.file_name"
	fieldHeader   = "general.header"

	fieldName          = "character.name"
	fieldLevel         = "character.level"
	fieldExperience    = "character.experience_points"
	fieldAbilityPoints = "character.ability_points"
	fieldPlayerClass   = "character.player_class"
	fieldHeadSkin      = "character.head_skin"
	fieldCharacterSkin = "character.character_skin"
	fieldEchoTheme     = "character.echo_theme"
	fieldSdu           = "character.sdu"
	fieldAmmo          = "character.ammo"
	fieldGear          = "character.gear"

	fieldInventory = "inventory"
	fieldBank      = "bank"

	fieldMoney   = "currency.money"
	fieldEridium = "currency.eridium"

	fieldVehicle = "vehicle.unlocked"

	fieldGuardianTokens  = "profile.guardian_tokens"
	fieldGuardianRewards = "profile.guardian_rewards"
	fieldScienceLevel    = "profile.science_level"
	fieldScienceTokens   = "profile.science_tokens"
	fieldSkinsUnlocked   = "profile.skins_unlocked"
	fieldBankSdu         = "profile.sdu.bank"
	fieldLostLootSdu     = "profile.sdu.lost_loot"

	fieldGoldenKeys  = "keys.golden"
	fieldDiamondKeys = "keys.diamond"
	fieldVaultKeys   = "keys.vault_card.keys"
	fieldVaultChests = "keys.vault_card.chests"
	fieldVaultCard   = "keys.vault_card"
)

// allIndexes addresses every element of an array field
const allIndexes = -1

func unsupported(e Edit) error {
	return fmt.Errorf("cannot apply %v to %s", e.Op, e.Field)
}

func (op EditOp) String() string {
	switch op {
	case OpStep:
		return "step"
	case OpSet:
		return "set"
	case OpToggle:
		return "toggle"
	case OpMax:
		return "max"
	case OpGenerate:
		return "generate"
	case OpImport:
		return "import"
	case OpRemove:
		return "remove"
	}
	return "edit"
}

// applySaveEdit routes an edit to the subtree its message targets
func applySaveEdit(s *editstate.SaveState, msg SaveEdit) error {
	e := msg.saveEdit()
	switch msg.(type) {
	case SaveGeneralEdit:
		return applySaveGeneral(s, e)
	case SaveCharacterEdit:
		return applySaveCharacter(s, e)
	case SaveInventoryEdit:
		return applyItems(&s.Inventory, e)
	case SaveCurrencyEdit:
		return applySaveCurrency(s, e)
	case SaveVehicleEdit:
		return applySaveVehicle(s, e)
	}
	return unsupported(e)
}

func applySaveGeneral(s *editstate.SaveState, e Edit) error {
	g := &s.General
	switch e.Field {
	case fieldGUID:
		switch e.Op {
		case OpGenerate:
			s.GenerateGUID()
			return nil
		case OpSet:
			g.GUID = strings.ToUpper(strings.TrimSpace(e.Text))
			return nil
		}
	case fieldSlot:
		slot := g.Slot
		switch e.Op {
		case OpStep:
			slot = max(slot+e.Delta, 1)
		case OpSet:
			n, err := strconv.Atoi(strings.TrimSpace(e.Text))
			if err != nil {
				return notANumber(e)
			}
			slot = n
		default:
			return unsupported(e)
		}
		s.SetSlot(slot)
		return nil
	case fieldFileName:
		if e.Op == OpSet {
			g.FileName = strings.TrimSpace(e.Text)
			return nil
		}
	case fieldHeader:
		if e.Op == OpStep {
			g.Header = cycle(types.SaveHeaderTypes, g.Header, e.Delta)
			return nil
		}
	}
	return unsupported(e)
}

func applySaveCharacter(s *editstate.SaveState, e Edit) error {
	c := &s.Character
	switch e.Field {
	case fieldName:
		if e.Op == OpSet {
			c.Name = e.Text
			return nil
		}
	case fieldLevel:
		switch e.Op {
		case OpStep:
			s.SetLevel(min(max(c.Level+e.Delta, 1), types.MaxLevel))
			return nil
		case OpSet:
			n, err := strconv.Atoi(strings.TrimSpace(e.Text))
			if err != nil {
				return notANumber(e)
			}
			s.SetLevel(n)
			return nil
		case OpMax:
			s.SetLevel(types.MaxLevel)
			return nil
		}
	case fieldExperience:
		xp := c.ExperiencePoints
		if err := numberEdit(&xp, e, types.RequiredXP(types.MaxLevel)); err != nil {
			return err
		}
		s.SetExperience(xp)
		return nil
	case fieldAbilityPoints:
		return numberEdit(&c.AbilityPoints, e, math.MaxInt32)
	case fieldPlayerClass:
		if e.Op == OpStep {
			c.PlayerClass = cycle(types.AllPlayerClasses, c.PlayerClass, e.Delta)
			return nil
		}
	case fieldHeadSkin:
		return catalogEdit(&c.HeadSkin, types.HeadSkins, e)
	case fieldCharacterSkin:
		return catalogEdit(&c.CharacterSkin, types.CharacterSkins, e)
	case fieldEchoTheme:
		return catalogEdit(&c.EchoTheme, types.EchoThemes, e)
	case fieldSdu:
		if e.Op == OpMax && e.Index == allIndexes {
			s.MaxSdu()
			return nil
		}
		slot := types.SaveSduSlot(e.Index)
		if !slot.Valid() {
			return badIndex(e)
		}
		return numberEdit(&c.Sdu[slot], e, slot.Maximum())
	case fieldAmmo:
		if e.Op == OpMax && e.Index == allIndexes {
			s.MaxAmmo()
			return nil
		}
		pool := types.AmmoPool(e.Index)
		if !pool.Valid() {
			return badIndex(e)
		}
		return numberEdit(&c.Ammo[pool], e, pool.Maximum())
	case fieldGear:
		if !types.GearSlot(e.Index).Valid() {
			return badIndex(e)
		}
		return toggleEdit(&c.Gear[e.Index], e)
	}
	return unsupported(e)
}

func applySaveCurrency(s *editstate.SaveState, e Edit) error {
	switch e.Field {
	case fieldMoney:
		return numberEdit(&s.Currency.Money, e, types.MaxCurrency)
	case fieldEridium:
		return numberEdit(&s.Currency.Eridium, e, types.MaxCurrency)
	}
	return unsupported(e)
}

func applySaveVehicle(s *editstate.SaveState, e Edit) error {
	if e.Field != fieldVehicle {
		return unsupported(e)
	}
	if e.Index == allIndexes && e.Op == OpMax {
		for i := range s.Vehicle.Unlocked {
			s.Vehicle.Unlocked[i] = true
		}
		return nil
	}
	if !types.VehicleUnlock(e.Index).Valid() {
		return badIndex(e)
	}
	return toggleEdit(&s.Vehicle.Unlocked[e.Index], e)
}

// applyProfileEdit routes an edit to the subtree its message targets
func applyProfileEdit(p *editstate.ProfileState, msg ProfileEdit) error {
	e := msg.profileEdit()
	switch msg.(type) {
	case ProfileGeneralEdit:
		return applyProfileGeneral(p, e)
	case ProfileProfileEdit:
		return applyProfileProfile(p, e)
	case ProfileKeysEdit:
		return applyProfileKeys(p, e)
	case ProfileBankEdit:
		return applyItems(&p.Bank, e)
	}
	return unsupported(e)
}

func applyProfileGeneral(p *editstate.ProfileState, e Edit) error {
	if e.Field == fieldHeader && e.Op == OpStep {
		p.General.Header = cycle(types.ProfileHeaderTypes, p.General.Header, e.Delta)
		return nil
	}
	return unsupported(e)
}

func applyProfileProfile(p *editstate.ProfileState, e Edit) error {
	pr := &p.Profile
	switch e.Field {
	case fieldGuardianTokens:
		return numberEdit(&pr.GuardianTokens, e, types.MaxGuardianTokens)
	case fieldGuardianRewards:
		if e.Op == OpMax && e.Index == allIndexes {
			p.MaxGuardianRewards()
			return nil
		}
		if !types.GuardianReward(e.Index).Valid() {
			return badIndex(e)
		}
		return numberEdit(&pr.GuardianRewards[e.Index], e, types.MaxGuardianTokens)
	case fieldScienceLevel:
		if e.Op == OpStep {
			pr.ScienceLevel = cycle(types.AllScienceLevels, pr.ScienceLevel, e.Delta)
			return nil
		}
	case fieldScienceTokens:
		return numberEdit(&pr.ScienceTokens, e, math.MaxInt32)
	case fieldSkinsUnlocked:
		if e.Op == OpMax && e.Index == allIndexes {
			for i := range pr.SkinsUnlocked {
				pr.SkinsUnlocked[i] = true
			}
			return nil
		}
		if !types.ProfileSkinType(e.Index).Valid() {
			return badIndex(e)
		}
		return toggleEdit(&pr.SkinsUnlocked[e.Index], e)
	case fieldBankSdu:
		if e.Op == OpMax && e.Index == allIndexes {
			p.MaxSdu()
			return nil
		}
		return numberEdit(&pr.BankSdu, e, types.ProfileSduBank.Maximum())
	case fieldLostLootSdu:
		return numberEdit(&pr.LostLootSdu, e, types.ProfileSduLostLoot.Maximum())
	}
	return unsupported(e)
}

func applyProfileKeys(p *editstate.ProfileState, e Edit) error {
	k := &p.Keys
	switch e.Field {
	case fieldGoldenKeys:
		return numberEdit(&k.Golden, e, types.MaxKeys)
	case fieldDiamondKeys:
		return numberEdit(&k.Diamond, e, types.MaxKeys)
	case fieldVaultCard:
		if e.Op == OpMax {
			return p.MaxVaultCard(e.Index)
		}
	case fieldVaultKeys, fieldVaultChests:
		if e.Index < 0 || e.Index >= types.VaultCardCount {
			return badIndex(e)
		}
		card := &k.VaultCards[e.Index]
		if e.Field == fieldVaultKeys {
			return numberEdit(&card.Keys, e, types.MaxKeys)
		}
		return numberEdit(&card.Chests, e, types.MaxKeys)
	}
	return unsupported(e)
}

func applyItems(items *editstate.Items, e Edit) error {
	switch e.Op {
	case OpImport:
		return items.Import(e.Text)
	case OpRemove:
		return items.Remove(e.Index)
	case OpStep:
		items.Move(e.Delta)
		return nil
	}
	return unsupported(e)
}

// numberEdit steps, sets or maximises an int32 field. Steps stay inside
// [0, limit]; typed values are stored as given and checked at commit.
func numberEdit(v *int32, e Edit, limit int32) error {
	switch e.Op {
	case OpStep:
		next := int64(*v) + int64(e.Delta)
		*v = int32(min(max(next, 0), int64(limit)))
	case OpSet:
		n, err := strconv.ParseInt(strings.TrimSpace(e.Text), 10, 32)
		if errors.Is(err, strconv.ErrRange) {
			return outOfRange(e, n)
		}
		if err != nil {
			return notANumber(e)
		}
		*v = int32(n)
	case OpMax:
		*v = limit
	default:
		return unsupported(e)
	}
	return nil
}

func toggleEdit(v *bool, e Edit) error {
	switch e.Op {
	case OpToggle:
		*v = !*v
	case OpMax:
		*v = true
	default:
		return unsupported(e)
	}
	return nil
}

func catalogEdit(v *string, catalog []string, e Edit) error {
	if e.Op != OpStep {
		return unsupported(e)
	}
	*v = cycle(catalog, *v, e.Delta)
	return nil
}

// cycle moves through options by delta, wrapping. A value not in options
// starts from the first entry.
func cycle[T comparable](options []T, current T, delta int) T {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			return options[wrap(i+delta, len(options))]
		}
	}
	return options[0]
}

func notANumber(e Edit) error {
	return &editstate.ValidationError{Field: e.Field, Message: fmt.Sprintf("%q is not a whole number", e.Text)}
}

// outOfRange reports a value past the int32 bound ParseInt clamped n to
func outOfRange(e Edit, n int64) error {
	if n > 0 {
		return &editstate.ValidationError{Field: e.Field, Message: fmt.Sprintf("must be at most %d", math.MaxInt32)}
	}
	return &editstate.ValidationError{Field: e.Field, Message: fmt.Sprintf("must be at least %d", math.MinInt32)}
}

func badIndex(e Edit) error {
	return fmt.Errorf("%s has no element %d", e.Field, e.Index)
}
