package commands

import (
	"context"
	"testing"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/raider"
	"github.com/glotchimo/keystone/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterJSON = `{"members": [
	{"character": {"name": "Fifteen", "level": 120}},
	{"character": {"name": "Idle", "level": 120}},
	{"character": {"name": "Alt", "level": 110}},
	{"character": {"name": "Twelve", "level": 120}},
	{"character": {"name": "Gone", "level": 120}},
	{"character": {"name": "Fresh", "level": 120}},
	{"character": {"name": "Low", "level": 120}}
]}`

func TestWeekly(t *testing.T) {
	p := &fakeProgression{characters: map[string]*raider.Character{
		"Fifteen": scored("Fifteen", 1000, raider.Run{MythicLevel: 15}),
		"Idle":    scored("Idle", 500),
		"Alt":     scored("Alt", 900, raider.Run{MythicLevel: 20}),
		"Twelve":  scored("Twelve", 800, raider.Run{MythicLevel: 12}),
		"Fresh":   scored("Fresh", 0, raider.Run{MythicLevel: 5}),
		"Low":     scored("Low", 100, raider.Run{MythicLevel: 7}),
	}}
	g := &fakeGameData{
		roster: decode[blizzard.Roster](t, rosterJSON),
		period: &blizzard.Period{ID: 700, StartTimestamp: 1609459200000, EndTimestamp: 1609545600000},
	}

	res, err := (&Weekly{}).Handle(context.Background(), deps(p, g))
	require.NoError(t, err)

	assert.Equal(t, "이번주 길드원 쐐기 던전 현황", res.Title)
	assert.Equal(t, "2021-01-01 09:00 ~ 2021-01-02 09:00", res.Description)
	assert.Equal(t, "* 이번 시즌에 쐐기 던전을 간 적이 있는 캐릭터만 표시됩니다.", res.Footer)
	assert.Equal(t, []display.Field{
		{Name: "15단 이상", Value: "Fifteen(15)", Inline: true},
		{Name: "10단 이상", Value: "Twelve(12)", Inline: true},
		{Name: "10단 미만", Value: "Low(7)", Inline: true},
		{Name: "쐐기 간 적 없음", Value: "Idle", Inline: true},
	}, res.Fields)

	assert.Equal(t, 6, p.calls, "only max level members are looked up")
}

func TestClassifyWeekly(t *testing.T) {
	buckets := classifyWeekly([]*raider.Character{
		scored("A", 1, raider.Run{MythicLevel: 15}),
		nil,
		scored("B", 1),
		scored("C", 1, raider.Run{MythicLevel: 10}),
		scored("D", 1, raider.Run{MythicLevel: 16}),
	})

	assert.Equal(t, []string{"A(15)", "D(16)"}, buckets["15단 이상"])
	assert.Equal(t, []string{"C(10)"}, buckets["10단 이상"])
	assert.Empty(t, buckets["10단 미만"])
	assert.Equal(t, []string{"B"}, buckets["쐐기 간 적 없음"])
}

func TestWeeklyFailures(t *testing.T) {
	t.Run("roster unavailable", func(t *testing.T) {
		_, err := (&Weekly{}).Handle(context.Background(), deps(&fakeProgression{}, &fakeGameData{}))
		requireFailure(t, err, utils.ErrUnavailable, "길드원 목록을 불러오는 데 실패했습니다.")
	})

	t.Run("no max level members", func(t *testing.T) {
		g := &fakeGameData{roster: decode[blizzard.Roster](t, `{"members": [{"character": {"name": "Alt", "level": 60}}]}`)}
		_, err := (&Weekly{}).Handle(context.Background(), deps(&fakeProgression{}, g))
		requireFailure(t, err, utils.ErrNotFound, "길드원 중 120레벨 캐릭터가 없습니다.")
	})

	t.Run("period optional", func(t *testing.T) {
		p := &fakeProgression{characters: map[string]*raider.Character{"Fifteen": scored("Fifteen", 1, raider.Run{MythicLevel: 15})}}
		g := &fakeGameData{roster: decode[blizzard.Roster](t, rosterJSON)}

		res, err := (&Weekly{}).Handle(context.Background(), deps(p, g))
		require.NoError(t, err)
		assert.Empty(t, res.Description)
		assert.Len(t, res.Fields, 1)
	})
}
