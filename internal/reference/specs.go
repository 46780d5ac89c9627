package reference

import "strings"

// Class ids shared by the legacy and game-data APIs.
const (
	ClassWarrior     = 1
	ClassPaladin     = 2
	ClassHunter      = 3
	ClassRogue       = 4
	ClassPriest      = 5
	ClassDeathKnight = 6
	ClassShaman      = 7
	ClassMage        = 8
	ClassWarlock     = 9
	ClassMonk        = 10
	ClassDruid       = 11
	ClassDemonHunter = 12
)

// TalentLevels is the character level that unlocks each talent tier.
var TalentLevels = [7]int{15, 30, 45, 60, 75, 90, 100}

type Spec struct {
	Class int
	// Name is the specialization name as the game-data API reports it.
	Name          string
	Canonical     string
	Abbreviations []string
	Icon          string
}

var Specs = []Spec{
	{ClassDeathKnight, "혈기", "혈기 죽음의 기사", []string{"혈죽", "혈기죽", "blood"}, "spell_deathknight_bloodpresence"},
	{ClassDeathKnight, "냉기", "냉기 죽음의 기사", []string{"냉죽", "냉기죽"}, "spell_deathknight_frostpresence"},
	{ClassDeathKnight, "부정", "부정 죽음의 기사", []string{"부죽", "부정죽", "unholy"}, "spell_deathknight_unholypresence"},
	{ClassDemonHunter, "파멸", "파멸 악마사냥꾼", []string{"악딜", "파멸", "havoc"}, "ability_demonhunter_specdps"},
	{ClassDemonHunter, "복수", "복수 악마사냥꾼", []string{"악탱", "복수", "vengeance"}, "ability_demonhunter_spectank"},
	{ClassDruid, "조화", "조화 드루이드", []string{"조드", "조화", "balance"}, "spell_nature_starfall"},
	{ClassDruid, "야성", "야성 드루이드", []string{"야드", "야성", "feral"}, "ability_druid_catform"},
	{ClassDruid, "수호", "수호 드루이드", []string{"수드", "곰탱", "수호", "guardian"}, "ability_racial_bearform"},
	{ClassDruid, "회복", "회복 드루이드", []string{"회드", "회복"}, "spell_nature_healingtouch"},
	{ClassHunter, "야수", "야수 사냥꾼", []string{"야냥", "야수", "bm", "beastmastery"}, "ability_hunter_bestialdiscipline"},
	{ClassHunter, "사격", "사격 사냥꾼", []string{"격냥", "사격", "mm", "marksmanship"}, "ability_hunter_focusedaim"},
	{ClassHunter, "생존", "생존 사냥꾼", []string{"생냥", "생존", "survival"}, "ability_hunter_camouflage"},
	{ClassMage, "비전", "비전 마법사", []string{"비법", "비전", "arcane"}, "spell_holy_magicalsentry"},
	{ClassMage, "화염", "화염 마법사", []string{"화법", "화염", "fire"}, "spell_fire_firebolt02"},
	{ClassMage, "냉기", "냉기 마법사", []string{"냉법"}, "spell_frost_frostbolt02"},
	{ClassMonk, "양조", "양조 수도사", []string{"양조", "brewmaster"}, "spell_monk_brewmaster_spec"},
	{ClassMonk, "운무", "운무 수도사", []string{"운무", "mistweaver"}, "spell_monk_mistweaver_spec"},
	{ClassMonk, "풍운", "풍운 수도사", []string{"풍운", "windwalker"}, "spell_monk_windwalker_spec"},
	{ClassPaladin, "신성", "신성 성기사", []string{"신기"}, "spell_holy_holybolt"},
	{ClassPaladin, "보호", "보호 성기사", []string{"보기"}, "ability_paladin_shieldofthetemplar"},
	{ClassPaladin, "징벌", "징벌 성기사", []string{"징기", "징벌", "retribution"}, "spell_holy_auraoflight"},
	{ClassPriest, "수양", "수양 사제", []string{"수사", "수양", "discipline"}, "spell_holy_powerwordshield"},
	{ClassPriest, "신성", "신성 사제", []string{"신사"}, "spell_holy_guardianspirit"},
	{ClassPriest, "암흑", "암흑 사제", []string{"암사", "암흑", "shadow"}, "spell_shadow_shadowwordpain"},
	{ClassRogue, "암살", "암살 도적", []string{"암도", "암살", "assassination"}, "ability_rogue_deadlybrew"},
	{ClassRogue, "무법", "무법 도적", []string{"무도", "무법", "outlaw"}, "inv_sword_30"},
	{ClassRogue, "잠행", "잠행 도적", []string{"잠도", "잠행", "subtlety"}, "ability_stealth"},
	{ClassShaman, "정기", "정기 주술사", []string{"정술", "정기", "elemental"}, "spell_nature_lightning"},
	{ClassShaman, "고양", "고양 주술사", []string{"고술", "고양", "enhancement"}, "spell_shaman_improvedstormstrike"},
	{ClassShaman, "복원", "복원 주술사", []string{"복술", "복원"}, "spell_nature_magicimmunity"},
	{ClassWarlock, "고통", "고통 흑마법사", []string{"고흑", "고통", "affliction"}, "spell_shadow_deathcoil"},
	{ClassWarlock, "악마", "악마 흑마법사", []string{"악흑", "악마", "demonology"}, "spell_shadow_metamorphosis"},
	{ClassWarlock, "파괴", "파괴 흑마법사", []string{"파흑", "파괴", "destruction"}, "spell_shadow_rainoffire"},
	{ClassWarrior, "무기", "무기 전사", []string{"무전", "무기", "arms"}, "ability_warrior_savageblow"},
	{ClassWarrior, "분노", "분노 전사", []string{"분전", "분노", "fury"}, "ability_warrior_innerrage"},
	{ClassWarrior, "방어", "방어 전사", []string{"전탱", "방전", "방어"}, "ability_warrior_defensivestance"},
}

var specIndex = func() map[string]Spec {
	idx := make(map[string]Spec)
	for _, s := range Specs {
		idx[specKey(s.Canonical)] = s
		for _, a := range s.Abbreviations {
			idx[specKey(a)] = s
		}
	}
	return idx
}()

func specKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// LookupSpec resolves a canonical spec name or one of its abbreviations,
// ignoring case and whitespace.
func LookupSpec(s string) (Spec, bool) {
	spec, ok := specIndex[specKey(s)]
	return spec, ok
}
