package editstate

import (
	"fmt"
	"math"

	"github.com/studiowebux/bl3edit/internal/types"
)

// ProfileGeneral is the General tab of a profile
type ProfileGeneral struct {
	FileName string
	Header   types.HeaderType
}

// ProfileProfile is the Profile tab: guardian rank, science, skins and SDUs
type ProfileProfile struct {
	GuardianTokens  int32
	GuardianRewards [types.GuardianRewardCount]int32
	ScienceLevel    types.ScienceLevel
	ScienceTokens   int32
	SkinsUnlocked   [types.ProfileSkinTypeCount]bool
	BankSdu         int32
	LostLootSdu     int32
}

// ProfileKeys is the Keys tab
type ProfileKeys struct {
	Golden     int32
	Diamond    int32
	VaultCards [types.VaultCardCount]types.VaultCard
}

// ProfileState mirrors every editable field of a profile
type ProfileState struct {
	General ProfileGeneral
	Profile ProfileProfile
	Keys    ProfileKeys
	Bank    Items
}

// SeedProfile copies the fields of a loaded profile into a fresh state
func SeedProfile(f types.LoadedFile) ProfileState {
	if f.Profile == nil {
		return ProfileState{}
	}
	m := f.Profile

	return ProfileState{
		General: ProfileGeneral{FileName: f.FileName, Header: m.Header},
		Profile: ProfileProfile{
			GuardianTokens:  m.GuardianRank.Tokens,
			GuardianRewards: m.GuardianRank.Rewards,
			ScienceLevel:    m.ScienceLevel,
			ScienceTokens:   m.ScienceTokens,
			SkinsUnlocked:   m.SkinsUnlocked,
			BankSdu:         m.Sdu.Bank,
			LostLootSdu:     m.Sdu.LostLoot,
		},
		Keys: ProfileKeys{
			Golden:     m.Keys.Golden,
			Diamond:    m.Keys.Diamond,
			VaultCards: m.Keys.VaultCards,
		},
		Bank: seedItems(m.Bank),
	}
}

// MaxGuardianRewards sets every reward to the largest token count
func (p *ProfileState) MaxGuardianRewards() {
	for i := range p.Profile.GuardianRewards {
		p.Profile.GuardianRewards[i] = types.MaxGuardianTokens
	}
}

// MaxSdu raises both profile storage upgrades to their maximum
func (p *ProfileState) MaxSdu() {
	p.Profile.BankSdu = types.ProfileSduBank.Maximum()
	p.Profile.LostLootSdu = types.ProfileSduLostLoot.Maximum()
}

func (p *ProfileState) MaxGoldenKeys()  { p.Keys.Golden = types.MaxKeys }
func (p *ProfileState) MaxDiamondKeys() { p.Keys.Diamond = types.MaxKeys }

// MaxVaultCard fills the keys and chests of vault card season i (zero based)
func (p *ProfileState) MaxVaultCard(i int) error {
	if i < 0 || i >= types.VaultCardCount {
		return fmt.Errorf("no vault card %d", i+1)
	}
	p.Keys.VaultCards[i] = types.VaultCard{Keys: types.MaxKeys, Chests: types.MaxKeys}
	return nil
}

// GuardianRankFor is the rank the game shows for the given rewards and
// unspent tokens. It saturates at the largest int32.
func GuardianRankFor(rewards [types.GuardianRewardCount]int32, tokens int32) int32 {
	total := int64(tokens)
	for _, r := range rewards {
		total += int64(r)
	}
	if total > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(total)
}

// MapProfile validates p and writes it onto m. It reports whether the guardian
// rank changed and must be folded into every save. On error m is left unchanged.
func MapProfile(p ProfileState, m *types.ProfileModel) (bool, error) {
	if m == nil {
		return false, &types.UnexpectedVariantError{Want: "profile"}
	}

	var v validator

	if !p.General.Header.IsProfile() {
		v.fail("general.header", "%s is not a profile type", p.General.Header)
	}

	pr := p.Profile
	v.nonNegative("profile.guardian_tokens", pr.GuardianTokens)
	for r := types.GuardianReward(0); r < types.GuardianRewardCount; r++ {
		v.nonNegative("profile.guardian_rewards."+fieldName(r.String()), pr.GuardianRewards[r])
	}
	if !pr.ScienceLevel.Valid() {
		v.fail("profile.science_level", "unknown level %d", pr.ScienceLevel)
	}
	v.nonNegative("profile.science_tokens", pr.ScienceTokens)
	v.inRange("profile.sdu.bank", pr.BankSdu, 0, types.ProfileSduBank.Maximum())
	v.inRange("profile.sdu.lost_loot", pr.LostLootSdu, 0, types.ProfileSduLostLoot.Maximum())

	v.nonNegative("keys.golden", p.Keys.Golden)
	v.nonNegative("keys.diamond", p.Keys.Diamond)
	for i, card := range p.Keys.VaultCards {
		v.nonNegative(fmt.Sprintf("keys.vault_card_%d.keys", i+1), card.Keys)
		v.nonNegative(fmt.Sprintf("keys.vault_card_%d.chests", i+1), card.Chests)
	}

	v.items("bank", p.Bank.Entries)

	if err := v.err(); err != nil {
		return false, err
	}

	injection := pr.GuardianRewards != m.GuardianRank.Rewards || pr.GuardianTokens != m.GuardianRank.Tokens

	m.Header = p.General.Header
	m.GuardianRank = types.GuardianRank{
		Rank:    GuardianRankFor(pr.GuardianRewards, pr.GuardianTokens),
		Tokens:  pr.GuardianTokens,
		Rewards: pr.GuardianRewards,
	}
	m.ScienceLevel = pr.ScienceLevel
	m.ScienceTokens = pr.ScienceTokens
	m.SkinsUnlocked = pr.SkinsUnlocked
	m.Sdu = types.ProfileSdu{Bank: pr.BankSdu, LostLoot: pr.LostLootSdu}
	m.Keys = types.Keys{
		Golden:     p.Keys.Golden,
		Diamond:    p.Keys.Diamond,
		VaultCards: p.Keys.VaultCards,
	}
	m.Bank = p.Bank.models()

	return injection, nil
}
