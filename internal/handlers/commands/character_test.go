package commands

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/raider"
	"github.com/glotchimo/keystone/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, s string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return &v
}

// field returns the first field of res with the given name.
func field(res *display.Response, name string) (display.Field, bool) {
	for _, f := range res.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return display.Field{}, false
}

func requireFailure(t *testing.T, err error, typ utils.ErrorType, message string) utils.Failure {
	t.Helper()
	var f utils.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, typ, f.Type)
	if message != "" {
		assert.Equal(t, message, f.Message)
	}
	return f
}

const profileJSON = `{
	"name": "PandaBear",
	"class": 11,
	"race": 10,
	"faction": 1,
	"thumbnail": "azuremyst/1/2-avatar.jpg",
	"guild": {"name": "쐐기단"},
	"items": {
		"averageItemLevel": 425,
		"averageItemLevelEquipped": 423,
		"neck": {"itemLevel": 447, "azeriteItem": {"azeriteLevel": 61}}
	},
	"stats": {"crit": 20.5, "haste": 15, "mastery": 30.25, "versatilityDamageDoneBonus": 5},
	"progression": {"raids": [
		{"name": "오래된 레이드", "bosses": [{"name": "a", "normalKills": 1}]},
		{"name": "니얄로타", "bosses": [
			{"name": "x", "normalKills": 3, "heroicKills": 1},
			{"name": "y", "normalKills": 1}
		]}
	]}
}`

func TestCharacterNoWeeklyRecord(t *testing.T) {
	p := &fakeProgression{characters: map[string]*raider.Character{
		"PandaBear": scored("PandaBear", 1500),
	}}
	g := &fakeGameData{character: decode[blizzard.Character](t, profileJSON)}

	res, err := (&Character{}).Handle(context.Background(), deps(p, g, "PandaBear-Azuremyst"))
	require.NoError(t, err)

	f, ok := field(res, "이번주 쐐기 던전 최고기록")
	require.True(t, ok)
	assert.Equal(t, "기록 없음", f.Value)

	f, ok = field(res, "레이더 점수")
	require.True(t, ok)
	assert.Equal(t, "현재 시즌 **1500**점", f.Value)

	assert.Equal(t, "PandaBear-하늘빛 안개", res.Author.Name)
	assert.Equal(t, "<쐐기단>\n블러드 엘프 드루이드", res.Description)
	assert.Equal(t, blizzard.ThumbnailBase+"/azuremyst/1/2-avatar.jpg", res.Thumbnail)
}

func TestCharacterFields(t *testing.T) {
	p := &fakeProgression{characters: map[string]*raider.Character{
		"PandaBear": scored("PandaBear", 2100.5, raider.Run{Dungeon: "Atal'Dazar", MythicLevel: 15, KeystoneUpgrades: 2}),
	}}
	g := &fakeGameData{character: decode[blizzard.Character](t, profileJSON)}

	res, err := (&Character{}).Handle(context.Background(), deps(p, g, "PandaBear"))
	require.NoError(t, err)

	want := []struct{ name, value string }{
		{"아이템 레벨", "최대 425, 착용 **423**, 아제로스의 심장 61 (447)"},
		{"2차 스탯", "치명타 20.50%, 가속 15.00%, 특화 30.25%, 유연성 5.00%"},
		{"레이더 점수", "현재 시즌 **2100.5**점"},
		{"이번주 쐐기 던전 최고기록", "아탈다자르 15단 2단계 상승"},
		{"니얄로타 진행도", "일반 2/2, 영웅 1/2, 신화 0/2"},
	}
	for _, w := range want {
		f, ok := field(res, w.name)
		require.True(t, ok, w.name)
		assert.Equal(t, w.value, f.Value, w.name)
	}

	links, ok := field(res, "URL")
	require.True(t, ok)
	assert.False(t, links.Inline)
	assert.Contains(t, links.Value, "https://raider.io/characters/kr/hellscream/PandaBear")
	assert.Equal(t, "PandaBear-헬스크림", res.Author.Name)
}

func TestCharacterPartialFailure(t *testing.T) {
	t.Run("progression missing", func(t *testing.T) {
		p := &fakeProgression{characters: map[string]*raider.Character{}}
		g := &fakeGameData{character: decode[blizzard.Character](t, profileJSON)}

		res, err := (&Character{}).Handle(context.Background(), deps(p, g, "PandaBear-Azuremyst"))
		assert.Nil(t, res)
		requireFailure(t, err, utils.ErrNotFound, "플레이어를 찾을 수 없습니다.")
		assert.Equal(t, 1, g.calls)
	})

	t.Run("game data missing", func(t *testing.T) {
		p := &fakeProgression{characters: map[string]*raider.Character{"PandaBear": scored("PandaBear", 10)}}
		g := &fakeGameData{}

		res, err := (&Character{}).Handle(context.Background(), deps(p, g, "PandaBear-Azuremyst"))
		assert.Nil(t, res)
		requireFailure(t, err, utils.ErrNotFound, "플레이어를 찾을 수 없습니다.")
	})

	t.Run("transport failure", func(t *testing.T) {
		p := &fakeProgression{err: errTransport}
		g := &fakeGameData{character: decode[blizzard.Character](t, profileJSON)}

		_, err := (&Character{}).Handle(context.Background(), deps(p, g, "PandaBear-Azuremyst"))
		requireFailure(t, err, utils.ErrUnavailable, "")
	})
}

func TestCharacterArguments(t *testing.T) {
	p := &fakeProgression{}
	g := &fakeGameData{}

	_, err := (&Character{}).Handle(context.Background(), deps(p, g))
	f := requireFailure(t, err, utils.ErrBadInput, "명령어 뒤에 '(캐릭터 이름)-(서버 이름)'을 적어야 합니다.")
	assert.Equal(t, "!캐릭터 팬더곰-헬스크림", f.Usage)
	assert.Equal(t, "서버 이름을 명시하지 않으면 헬스크림 서버로 간주합니다.", f.Footer)

	_, err = (&Character{}).Handle(context.Background(), deps(p, g, "PandaBear-Nowhere"))
	requireFailure(t, err, utils.ErrBadInput, "존재하지 않는 서버 이름입니다.")

	_, err = (&Character{}).Handle(context.Background(), deps(p, g, "-Azshara"))
	requireFailure(t, err, utils.ErrBadInput, "명령어 뒤에 '(캐릭터 이름)-(서버 이름)'을 적어야 합니다.")

	assert.Zero(t, p.calls)
	assert.Zero(t, g.calls)
}

func TestCharacterLocalizedRealm(t *testing.T) {
	p := &fakeProgression{characters: map[string]*raider.Character{"팬더곰": scored("팬더곰", 1)}}
	g := &fakeGameData{character: decode[blizzard.Character](t, profileJSON)}

	res, err := (&Character{}).Handle(context.Background(), deps(p, g, "팬더곰-아즈샤라"))
	require.NoError(t, err)
	assert.Equal(t, "팬더곰-아즈샤라", res.Author.Name)
}
