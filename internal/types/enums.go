package types

import "fmt"

// PlayerClass is the character class of a save
type PlayerClass uint8

const (
	ClassBeastmaster PlayerClass = iota + 1
	ClassGunner
	ClassOperative
	ClassSiren
)

var playerClassNames = map[PlayerClass]string{
	ClassBeastmaster: "Beastmaster",
	ClassGunner:      "Gunner",
	ClassOperative:   "Operative",
	ClassSiren:       "Siren",
}

// AllPlayerClasses lists the selectable classes
var AllPlayerClasses = []PlayerClass{ClassBeastmaster, ClassGunner, ClassOperative, ClassSiren}

func (c PlayerClass) String() string {
	if name, ok := playerClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("PlayerClass(%d)", uint8(c))
}

// Valid reports whether c is a known class
func (c PlayerClass) Valid() bool {
	_, ok := playerClassNames[c]
	return ok
}

// SaveSduSlot is a storage deck upgrade slot stored in a save
type SaveSduSlot int

const (
	SduBackpack SaveSduSlot = iota
	SduSniper
	SduShotgun
	SduPistol
	SduGrenade
	SduSmg
	SduAssaultRifle
	SduHeavy
	SaveSduSlotCount
)

var saveSduSlotNames = [SaveSduSlotCount]string{
	"Backpack", "Sniper", "Shotgun", "Pistol", "Grenade", "SMG", "Assault Rifle", "Heavy",
}

// saveSduMaximum is the highest purchasable level per slot
var saveSduMaximum = [SaveSduSlotCount]int32{13, 13, 13, 13, 10, 13, 13, 13}

func (s SaveSduSlot) String() string {
	if s.Valid() {
		return saveSduSlotNames[s]
	}
	return fmt.Sprintf("SaveSduSlot(%d)", int(s))
}

// Valid reports whether s is a known slot
func (s SaveSduSlot) Valid() bool { return s >= 0 && s < SaveSduSlotCount }

// Maximum returns the highest level for the slot
func (s SaveSduSlot) Maximum() int32 {
	if !s.Valid() {
		return 0
	}
	return saveSduMaximum[s]
}

// AmmoPool is an ammunition pool stored in a save
type AmmoPool int

const (
	AmmoSniper AmmoPool = iota
	AmmoShotgun
	AmmoPistol
	AmmoGrenade
	AmmoSmg
	AmmoAssaultRifle
	AmmoHeavy
	AmmoPoolCount
)

var ammoPoolNames = [AmmoPoolCount]string{
	"Sniper", "Shotgun", "Pistol", "Grenade", "SMG", "Assault Rifle", "Heavy",
}

// ammoMaximum is the pool size with every ammo SDU purchased
var ammoMaximum = [AmmoPoolCount]int32{204, 280, 1200, 13, 1920, 1680, 51}

func (a AmmoPool) String() string {
	if a.Valid() {
		return ammoPoolNames[a]
	}
	return fmt.Sprintf("AmmoPool(%d)", int(a))
}

// Valid reports whether a is a known pool
func (a AmmoPool) Valid() bool { return a >= 0 && a < AmmoPoolCount }

// Maximum returns the largest amount the pool can hold
func (a AmmoPool) Maximum() int32 {
	if !a.Valid() {
		return 0
	}
	return ammoMaximum[a]
}

// GearSlot is an equipment slot that must be unlocked in a save
type GearSlot int

const (
	GearGrenade GearSlot = iota
	GearShield
	GearWeapon1
	GearWeapon2
	GearWeapon3
	GearWeapon4
	GearArtifact
	GearClassMod
	GearSlotCount
)

var gearSlotNames = [GearSlotCount]string{
	"Grenade", "Shield", "Weapon 1", "Weapon 2", "Weapon 3", "Weapon 4", "Artifact", "Class Mod",
}

func (g GearSlot) String() string {
	if g.Valid() {
		return gearSlotNames[g]
	}
	return fmt.Sprintf("GearSlot(%d)", int(g))
}

// Valid reports whether g is a known slot
func (g GearSlot) Valid() bool { return g >= 0 && g < GearSlotCount }

// VehicleUnlock is one unlockable vehicle category
type VehicleUnlock int

const (
	OutrunnerChassis VehicleUnlock = iota
	OutrunnerParts
	OutrunnerSkins
	JetbeastChassis
	JetbeastParts
	JetbeastSkins
	TechnicalChassis
	TechnicalParts
	TechnicalSkins
	CycloneChassis
	CycloneParts
	CycloneSkins
	VehicleUnlockCount
)

var vehicleUnlockNames = [VehicleUnlockCount]string{
	"Outrunner Chassis", "Outrunner Parts", "Outrunner Skins",
	"Jetbeast Chassis", "Jetbeast Parts", "Jetbeast Skins",
	"Technical Chassis", "Technical Parts", "Technical Skins",
	"Cyclone Chassis", "Cyclone Parts", "Cyclone Skins",
}

func (v VehicleUnlock) String() string {
	if v.Valid() {
		return vehicleUnlockNames[v]
	}
	return fmt.Sprintf("VehicleUnlock(%d)", int(v))
}

// Valid reports whether v is a known category
func (v VehicleUnlock) Valid() bool { return v >= 0 && v < VehicleUnlockCount }

// ProfileSkinType is a cosmetic category unlocked account-wide
type ProfileSkinType int

const (
	SkinCharacterSkins ProfileSkinType = iota
	SkinCharacterHeads
	SkinEchoThemes
	SkinEmotes
	SkinRoomDecorations
	SkinWeaponSkins
	SkinWeaponTrinkets
	ProfileSkinTypeCount
)

var profileSkinTypeNames = [ProfileSkinTypeCount]string{
	"Character Skins", "Character Heads", "Echo Themes", "Emotes",
	"Room Decorations", "Weapon Skins", "Weapon Trinkets",
}

func (p ProfileSkinType) String() string {
	if p.Valid() {
		return profileSkinTypeNames[p]
	}
	return fmt.Sprintf("ProfileSkinType(%d)", int(p))
}

// Valid reports whether p is a known category
func (p ProfileSkinType) Valid() bool { return p >= 0 && p < ProfileSkinTypeCount }

// GuardianReward is one of the guardian rank perks
type GuardianReward int

const (
	RewardAccuracy GuardianReward = iota
	RewardActionSkillCooldown
	RewardCriticalDamage
	RewardElementalDamage
	RewardFFYLDuration
	RewardFFYLMovementSpeed
	RewardGrenadeDamage
	RewardGunDamage
	RewardGunFireRate
	RewardMaxHealth
	RewardMeleeDamage
	RewardRarityRate
	RewardRecoilReduction
	RewardReloadSpeed
	RewardShieldCapacity
	RewardShieldRechargeDelay
	RewardShieldRechargeRate
	RewardVehicleDamage
	GuardianRewardCount
)

var guardianRewardNames = [GuardianRewardCount]string{
	"Accuracy", "Action Skill Cooldown", "Critical Damage", "Elemental Damage",
	"FFYL Duration", "FFYL Movement Speed", "Grenade Damage", "Gun Damage",
	"Gun Fire Rate", "Max Health", "Melee Damage", "Rarity Rate",
	"Recoil Reduction", "Reload Speed", "Shield Capacity", "Shield Recharge Delay",
	"Shield Recharge Rate", "Vehicle Damage",
}

func (g GuardianReward) String() string {
	if g.Valid() {
		return guardianRewardNames[g]
	}
	return fmt.Sprintf("GuardianReward(%d)", int(g))
}

// Valid reports whether g is a known reward
func (g GuardianReward) Valid() bool { return g >= 0 && g < GuardianRewardCount }

// ScienceLevel is the Borderlands Science progression tier
type ScienceLevel uint8

const (
	ScienceNone ScienceLevel = iota
	ScienceClaptrap
	ScienceNovice
	ScienceSkilled
	ScienceExpert
	ScienceMaster
	ScienceTruant
	ScienceTenured
	ScienceRockStar
	ScienceGenius
	ScienceMegaGenius
	scienceLevelEnd
)

var scienceLevelNames = [scienceLevelEnd]string{
	"None", "Claptrap", "Novice", "Skilled", "Expert", "Master",
	"Truant", "Tenured", "Rock Star", "Genius", "Mega Genius",
}

// AllScienceLevels lists the selectable tiers
var AllScienceLevels = func() []ScienceLevel {
	levels := make([]ScienceLevel, 0, scienceLevelEnd)
	for l := ScienceNone; l < scienceLevelEnd; l++ {
		levels = append(levels, l)
	}
	return levels
}()

func (s ScienceLevel) String() string {
	if s.Valid() {
		return scienceLevelNames[s]
	}
	return fmt.Sprintf("ScienceLevel(%d)", uint8(s))
}

// Valid reports whether s is a known tier
func (s ScienceLevel) Valid() bool { return s < scienceLevelEnd }
