package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/studiowebux/bl3edit/internal/config"
	"github.com/studiowebux/bl3edit/internal/editstate"
	"github.com/studiowebux/bl3edit/internal/types"
)

type fieldKind int

const (
	fieldNumber fieldKind = iota
	fieldText
	fieldToggle
	fieldChoice
	fieldAction
	fieldItem
	fieldInfo
)

// field is one row of a tab. Rows are rebuilt from the editable state on
// every render, so they hold display values only.
type field struct {
	id    string
	index int
	label string
	kind  fieldKind
	value string
	// raw seeds the editor prompt
	raw string

	// step is the left/right increment of number fields
	step int
	// hasMax enables the max key
	hasMax bool
	// op is what enter does on an action row
	op EditOp
	// settings marks rows of the settings tab
	settings   bool
	settingsOp SettingsAction
	// errKey is the validation field name reported for this row
	errKey string
}

func number(id, label string, v int32, step int) field {
	s := strconv.FormatInt(int64(v), 10)
	return field{id: id, label: label, kind: fieldNumber, value: s, raw: s, step: step, errKey: id}
}

func bounded(f field) field {
	f.hasMax = true
	return f
}

func text(id, label, v string) field {
	return field{id: id, label: label, kind: fieldText, value: v, raw: v, errKey: id}
}

func toggle(id string, index int, label string, v bool) field {
	return field{id: id, index: index, label: label, kind: fieldToggle, value: checkbox(v)}
}

func choice(id, label string, v fmt.Stringer) field {
	return field{id: id, label: label, kind: fieldChoice, value: v.String(), errKey: id}
}

func action(id string, index int, label string, op EditOp) field {
	return field{id: id, index: index, label: label, kind: fieldAction, op: op}
}

func info(label, v string) field {
	return field{label: label, kind: fieldInfo, value: v}
}

type plain string

func (p plain) String() string { return string(p) }

func checkbox(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

// slug matches the per-element names used by validation errors
func slug(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

func saveFields(tab SaveTab, s *editstate.SaveState, cfg *config.Config) []field {
	switch tab {
	case SaveTabGeneral:
		return []field{
			text(fieldGUID, "GUID", s.General.GUID),
			action(fieldGUID, 0, "Generate new GUID", OpGenerate),
			number(fieldSlot, "Save slot", int32(s.General.Slot), 1),
			text(fieldFileName, "Output file", s.General.FileName),
			choice(fieldHeader, "Platform", s.General.Header),
		}

	case SaveTabCharacter:
		c := s.Character
		fields := []field{
			text(fieldName, "Name", c.Name),
			bounded(number(fieldLevel, "Level", int32(c.Level), 1)),
			number(fieldExperience, "Experience", c.ExperiencePoints, 1000),
			number(fieldAbilityPoints, "Ability points", c.AbilityPoints, 1),
			choice(fieldPlayerClass, "Class", c.PlayerClass),
			choice(fieldHeadSkin, "Head skin", plain(c.HeadSkin)),
			choice(fieldCharacterSkin, "Character skin", plain(c.CharacterSkin)),
			choice(fieldEchoTheme, "ECHO theme", plain(c.EchoTheme)),
		}
		for slot := types.SaveSduSlot(0); slot < types.SaveSduSlotCount; slot++ {
			f := bounded(number(fieldSdu, "SDU "+slot.String(), c.Sdu[slot], 1))
			f.index = int(slot)
			f.value = fmt.Sprintf("%s / %d", f.value, slot.Maximum())
			f.errKey = fieldSdu + "." + slug(slot.String())
			fields = append(fields, f)
		}
		fields = append(fields, action(fieldSdu, allIndexes, "Max all SDUs", OpMax))
		for pool := types.AmmoPool(0); pool < types.AmmoPoolCount; pool++ {
			f := bounded(number(fieldAmmo, "Ammo "+pool.String(), c.Ammo[pool], 10))
			f.index = int(pool)
			f.value = fmt.Sprintf("%s / %d", f.value, pool.Maximum())
			f.errKey = fieldAmmo + "." + slug(pool.String())
			fields = append(fields, f)
		}
		fields = append(fields, action(fieldAmmo, allIndexes, "Max all ammo", OpMax))
		for slot := types.GearSlot(0); slot < types.GearSlotCount; slot++ {
			fields = append(fields, toggle(fieldGear, int(slot), "Gear slot "+slot.String(), c.Gear[slot]))
		}
		return fields

	case SaveTabInventory:
		return itemFields(fieldInventory, "inventory", s.Inventory)

	case SaveTabCurrency:
		return []field{
			bounded(number(fieldMoney, "Money", s.Currency.Money, 1000)),
			bounded(number(fieldEridium, "Eridium", s.Currency.Eridium, 100)),
		}

	case SaveTabVehicle:
		fields := make([]field, 0, types.VehicleUnlockCount+1)
		for v := types.VehicleUnlock(0); v < types.VehicleUnlockCount; v++ {
			fields = append(fields, toggle(fieldVehicle, int(v), v.String(), s.Vehicle.Unlocked[v]))
		}
		return append(fields, action(fieldVehicle, allIndexes, "Unlock everything", OpMax))

	case SaveTabSettings:
		return settingsFields(cfg)
	}
	return nil
}

func profileFields(tab ProfileTab, p *editstate.ProfileState, cfg *config.Config) []field {
	switch tab {
	case ProfileTabGeneral:
		return []field{
			info("File", p.General.FileName),
			choice(fieldHeader, "Platform", p.General.Header),
		}

	case ProfileTabProfile:
		pr := p.Profile
		rank := editstate.GuardianRankFor(pr.GuardianRewards, pr.GuardianTokens)
		fields := []field{
			info("Guardian rank", strconv.FormatInt(int64(rank), 10)),
			number(fieldGuardianTokens, "Guardian tokens", pr.GuardianTokens, 1),
		}
		for r := types.GuardianReward(0); r < types.GuardianRewardCount; r++ {
			f := number(fieldGuardianRewards, "Reward "+r.String(), pr.GuardianRewards[r], 1)
			f.index = int(r)
			f.errKey = fieldGuardianRewards + "." + slug(r.String())
			fields = append(fields, f)
		}
		fields = append(fields,
			action(fieldGuardianRewards, allIndexes, "Max all rewards", OpMax),
			choice(fieldScienceLevel, "Science level", pr.ScienceLevel),
			number(fieldScienceTokens, "Science tokens", pr.ScienceTokens, 1),
		)
		for s := types.ProfileSkinType(0); s < types.ProfileSkinTypeCount; s++ {
			fields = append(fields, toggle(fieldSkinsUnlocked, int(s), "Unlock "+s.String(), pr.SkinsUnlocked[s]))
		}
		return append(fields,
			action(fieldSkinsUnlocked, allIndexes, "Unlock all skins", OpMax),
			bounded(number(fieldBankSdu, "Bank SDU", pr.BankSdu, 1)),
			bounded(number(fieldLostLootSdu, "Lost loot SDU", pr.LostLootSdu, 1)),
			action(fieldBankSdu, allIndexes, "Max both SDUs", OpMax),
		)

	case ProfileTabKeys:
		k := p.Keys
		fields := []field{
			bounded(number(fieldGoldenKeys, "Golden keys", k.Golden, 1)),
			bounded(number(fieldDiamondKeys, "Diamond keys", k.Diamond, 1)),
		}
		for i, card := range k.VaultCards {
			keys := bounded(number(fieldVaultKeys, fmt.Sprintf("Vault card %d keys", i+1), card.Keys, 1))
			keys.index = i
			keys.errKey = fmt.Sprintf("keys.vault_card_%d.keys", i+1)
			chests := bounded(number(fieldVaultChests, fmt.Sprintf("Vault card %d chests", i+1), card.Chests, 1))
			chests.index = i
			chests.errKey = fmt.Sprintf("keys.vault_card_%d.chests", i+1)
			fields = append(fields, keys, chests, action(fieldVaultCard, i, fmt.Sprintf("Max vault card %d", i+1), OpMax))
		}
		return fields

	case ProfileTabBank:
		return itemFields(fieldBank, "bank", p.Bank)

	case ProfileTabSettings:
		return settingsFields(cfg)
	}
	return nil
}

func itemFields(id, noun string, items editstate.Items) []field {
	fields := []field{action(id, 0, "Import item serial", OpImport)}
	for i, item := range items.Entries {
		label := item.Name
		if label == "" {
			label = fmt.Sprintf("Item %d", i+1)
		}
		if item.Level > 0 {
			label = fmt.Sprintf("%s (lvl %d)", label, item.Level)
		}
		fields = append(fields, field{
			id:     id,
			index:  i,
			label:  label,
			kind:   fieldItem,
			value:  abbreviate(item.Serial, 40),
			errKey: fmt.Sprintf("%s[%d].serial", noun, i),
		})
	}
	return fields
}

func settingsFields(cfg *config.Config) []field {
	if cfg == nil {
		return nil
	}
	setting := func(label string, op SettingsAction) field {
		return field{label: label, kind: fieldAction, settings: true, settingsOp: op}
	}
	return []field{
		info("Saves directory", cfg.SavesDir),
		setting("Open saves directory", OpenSavesDir),
		setting("Change saves directory", ChangeSavesDir),
		info("Backup directory", cfg.BackupDir),
		setting("Open backup directory", OpenBackupDir),
		setting("Change backup directory", ChangeBackupDir),
		info("Config directory", cfg.ConfigDir),
		setting("Open config directory", OpenConfigDir),
		{label: "UI scale", kind: fieldNumber, value: fmt.Sprintf("%.2f", cfg.UIScaleFactor), settings: true},
	}
}

// selectable reports whether the cursor may rest on the row
func (f field) selectable() bool {
	return f.kind != fieldInfo
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
