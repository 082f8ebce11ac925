package types

import (
	"fmt"
	"math"
)

const (
	// MaxLevel is the level cap of the current game version
	MaxLevel = 72

	// MaxCurrency is the largest money or eridium amount the game accepts
	MaxCurrency = math.MaxInt32

	// MaxGuardianTokens is the largest token count stored per reward
	MaxGuardianTokens = math.MaxInt32

	// MaxKeys is the largest count for any key or vault card counter
	MaxKeys = math.MaxInt32

	// VaultCardCount is the number of vault card seasons tracked by a profile
	VaultCardCount = 3
)

var requiredXP = func() [MaxLevel + 1]int32 {
	var table [MaxLevel + 1]int32
	for level := 2; level <= MaxLevel; level++ {
		table[level] = int32(math.Floor(60*math.Pow(float64(level), 2.8) - 60))
	}
	return table
}()

// RequiredXP returns the experience needed to reach level.
// Levels outside [1, MaxLevel] return 0.
func RequiredXP(level int) int32 {
	if level < 1 || level > MaxLevel {
		return 0
	}
	return requiredXP[level]
}

// LevelForXP returns the highest level whose requirement xp satisfies
func LevelForXP(xp int32) (int, error) {
	if xp < 0 {
		return 0, fmt.Errorf("experience points cannot be negative: %d", xp)
	}
	level := 1
	for l := 2; l <= MaxLevel; l++ {
		if xp < requiredXP[l] {
			break
		}
		level = l
	}
	return level, nil
}

// ProfileSduSlot is a storage deck upgrade stored in a profile
type ProfileSduSlot int

const (
	ProfileSduBank ProfileSduSlot = iota
	ProfileSduLostLoot
)

// Maximum returns the highest level for the slot
func (p ProfileSduSlot) Maximum() int32 {
	switch p {
	case ProfileSduBank:
		return 23
	case ProfileSduLostLoot:
		return 10
	default:
		return 0
	}
}

func (p ProfileSduSlot) String() string {
	switch p {
	case ProfileSduBank:
		return "Bank"
	case ProfileSduLostLoot:
		return "Lost Loot"
	default:
		return fmt.Sprintf("ProfileSduSlot(%d)", int(p))
	}
}

// Cosmetic catalogs for the per-character skin selectors
var (
	HeadSkins = []string{
		"Default", "Cyber Punk", "Hearts Desire", "Outlaw", "Steel Jaw", "Twin Peaks",
	}
	CharacterSkins = []string{
		"Default", "Burning Bright", "Cold Blooded", "Dark Matter", "Gold Rush", "Neon Nights",
	}
	EchoThemes = []string{
		"Default", "Bubblegum", "Hyperion", "Maliwan", "Tediore", "Vladof",
	}
)

// InCatalog reports whether value appears in catalog
func InCatalog(catalog []string, value string) bool {
	for _, v := range catalog {
		if v == value {
			return true
		}
	}
	return false
}
