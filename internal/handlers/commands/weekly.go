package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/raider"
	"github.com/glotchimo/keystone/internal/utils"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/iter"
)

const rosterConcurrency = 8

var weeklyBuckets = []string{"15단 이상", "10단 이상", "10단 미만", "쐐기 간 적 없음"}

type Weekly struct{}

func (w *Weekly) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:          "주차",
		Description:   "이번주 길드원들의 쐐기 던전 최고 기록을 보여줍니다.",
		HomeGuildOnly: true,
	}
}

func (w *Weekly) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	roster, err := dep.GameData.GuildMembers(ctx, dep.Settings.GuildRealm, dep.Settings.GuildName)
	if err != nil {
		return nil, utils.Failure{
			Type:    utils.ErrUnavailable,
			Message: "길드원 목록을 불러오는 데 실패했습니다.",
			Data:    map[string]any{"guild": dep.Settings.GuildName, "error": err.Error()},
		}
	}

	var members []string
	for _, m := range roster.Members {
		if m.Character.Level >= MaxLevel {
			members = append(members, m.Character.Name)
		}
	}
	if len(members) == 0 {
		return nil, utils.Failure{
			Type:    utils.ErrNotFound,
			Message: fmt.Sprintf("길드원 중 %d레벨 캐릭터가 없습니다.", MaxLevel),
		}
	}

	var (
		results []*raider.Character
		period  *blizzard.Period
		wg      conc.WaitGroup
	)
	wg.Go(func() { period, _ = dep.GameData.MythicKeystonePeriod(ctx) })
	wg.Go(func() {
		mapper := iter.Mapper[string, *raider.Character]{MaxGoroutines: rosterConcurrency}
		results = mapper.Map(members, func(name *string) *raider.Character {
			ch, err := dep.Progression.Character(ctx, dep.Settings.GuildRealm, *name)
			if err != nil {
				dep.Logger.Debug("skipping guild member", "name", *name, "error", err)
				return nil
			}
			return ch
		})
	})
	wg.Wait()

	buckets := classifyWeekly(results)

	r := display.New("이번주 길드원 쐐기 던전 현황", periodWindow(period))
	for _, b := range weeklyBuckets {
		if len(buckets[b]) > 0 {
			r.AddField(b, strings.Join(buckets[b], ", "), true)
		}
	}
	r.Footer = "* 이번 시즌에 쐐기 던전을 간 적이 있는 캐릭터만 표시됩니다."

	return r, nil
}

// classifyWeekly groups members that scored this season by their best key
// level of the week. Failed lookups are nil and skipped.
func classifyWeekly(members []*raider.Character) map[string][]string {
	buckets := make(map[string][]string, len(weeklyBuckets))
	for _, m := range members {
		if m == nil || m.Score() <= 0 {
			continue
		}

		run, ok := m.WeeklyBest()
		switch {
		case !ok:
			buckets[weeklyBuckets[3]] = append(buckets[weeklyBuckets[3]], m.Name)
		case run.MythicLevel >= 15:
			buckets[weeklyBuckets[0]] = append(buckets[weeklyBuckets[0]], fmt.Sprintf("%s(%d)", m.Name, run.MythicLevel))
		case run.MythicLevel >= 10:
			buckets[weeklyBuckets[1]] = append(buckets[weeklyBuckets[1]], fmt.Sprintf("%s(%d)", m.Name, run.MythicLevel))
		default:
			buckets[weeklyBuckets[2]] = append(buckets[weeklyBuckets[2]], fmt.Sprintf("%s(%d)", m.Name, run.MythicLevel))
		}
	}
	return buckets
}
