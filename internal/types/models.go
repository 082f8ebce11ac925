package types

// Item is an inventory or bank entry. Serial is the base64 item code the game
// stores; Name and Level are informational only.
type Item struct {
	Serial string `json:"serial"`
	Name   string `json:"name,omitempty"`
	Level  int    `json:"level,omitempty"`
}

// GuardianRank holds account progression copied into profiles and saves
type GuardianRank struct {
	Rank    int32                      `json:"rank"`
	Tokens  int32                      `json:"tokens"`
	Rewards [GuardianRewardCount]int32 `json:"rewards"`
}

// Character is the per-save character block
type Character struct {
	Name             string                  `json:"name"`
	ExperiencePoints int32                   `json:"experience_points"`
	AbilityPoints    int32                   `json:"ability_points"`
	PlayerClass      PlayerClass             `json:"player_class"`
	Sdu              [SaveSduSlotCount]int32 `json:"sdu"`
	Ammo             [AmmoPoolCount]int32    `json:"ammo"`
	Gear             [GearSlotCount]bool     `json:"gear"`
	HeadSkin         string                  `json:"head_skin"`
	CharacterSkin    string                  `json:"character_skin"`
	EchoTheme        string                  `json:"echo_theme"`
}

// Currency is the money and eridium held by a character
type Currency struct {
	Money   int32 `json:"money"`
	Eridium int32 `json:"eridium"`
}

// SaveModel is the parsed form of a character save
type SaveModel struct {
	Header       HeaderType               `json:"header"`
	GUID         string                   `json:"guid"`
	Slot         int                      `json:"slot"`
	Character    Character                `json:"character"`
	Currency     Currency                 `json:"currency"`
	Vehicles     [VehicleUnlockCount]bool `json:"vehicles"`
	Inventory    []Item                   `json:"inventory"`
	GuardianRank GuardianRank             `json:"guardian_rank"`
}

// Clone returns a deep copy of s
func (s *SaveModel) Clone() *SaveModel {
	if s == nil {
		return nil
	}
	c := *s
	c.Inventory = cloneItems(s.Inventory)
	return &c
}

// VaultCard holds the key and chest counters of one vault card season
type VaultCard struct {
	Keys   int32 `json:"keys"`
	Chests int32 `json:"chests"`
}

// Keys are the account-wide key counters
type Keys struct {
	Golden     int32                     `json:"golden"`
	Diamond    int32                     `json:"diamond"`
	VaultCards [VaultCardCount]VaultCard `json:"vault_cards"`
}

// ProfileSdu holds the account-wide storage upgrades
type ProfileSdu struct {
	Bank     int32 `json:"bank"`
	LostLoot int32 `json:"lost_loot"`
}

// ProfileModel is the parsed form of a profile
type ProfileModel struct {
	Header        HeaderType                 `json:"header"`
	GuardianRank  GuardianRank               `json:"guardian_rank"`
	ScienceLevel  ScienceLevel               `json:"science_level"`
	ScienceTokens int32                      `json:"science_tokens"`
	SkinsUnlocked [ProfileSkinTypeCount]bool `json:"skins_unlocked"`
	Sdu           ProfileSdu                 `json:"sdu"`
	Keys          Keys                       `json:"keys"`
	Bank          []Item                     `json:"bank"`
}

// Clone returns a deep copy of p
func (p *ProfileModel) Clone() *ProfileModel {
	if p == nil {
		return nil
	}
	c := *p
	c.Bank = cloneItems(p.Bank)
	return &c
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
