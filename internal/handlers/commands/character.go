package commands

import (
	"context"
	"fmt"
	"net/url"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/raider"
	"github.com/glotchimo/keystone/internal/utils"
	"github.com/sourcegraph/conc"
)

type Character struct{}

func (c *Character) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "캐릭터",
		Description: "캐릭터의 장비, 점수, 레이드 진행도를 보여줍니다.",
	}
}

func (c *Character) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	ref, err := resolveCharacter(dep, "!캐릭터 팬더곰-헬스크림")
	if err != nil {
		return nil, err
	}

	var (
		score      *raider.Character
		profile    *blizzard.Character
		scoreErr   error
		profileErr error
		wg         conc.WaitGroup
	)
	wg.Go(func() { score, scoreErr = dep.Progression.Character(ctx, ref.Realm, ref.Name) })
	wg.Go(func() { profile, profileErr = dep.GameData.Character(ctx, ref.Realm, ref.Name) })
	wg.Wait()

	if scoreErr != nil {
		return nil, characterFailure(scoreErr)
	}
	if profileErr != nil {
		return nil, characterFailure(profileErr)
	}

	r := &display.Response{Color: display.ColorBlue}
	if profile.Guild != nil {
		r.Description = fmt.Sprintf("<%s>\n%s %s",
			profile.Guild.Name,
			dep.Reference.Races.Name(profile.Race),
			dep.Reference.Classes.Name(profile.Class))
	}
	r.Thumbnail = fmt.Sprintf("%s/%s", blizzard.ThumbnailBase, profile.Thumbnail)
	r.Author = &display.Author{Name: ref.title(dep), IconURL: factionIcon(profile.Faction)}

	r.AddField("아이템 레벨", fmt.Sprintf("최대 %d, 착용 **%d**, 아제로스의 심장 %d (%d)",
		profile.Items.AverageItemLevel,
		profile.Items.AverageItemLevelEquipped,
		profile.Items.Neck.AzeriteItem.AzeriteLevel,
		profile.Items.Neck.ItemLevel), true)

	r.AddField("2차 스탯", fmt.Sprintf("치명타 %.2f%%, 가속 %.2f%%, 특화 %.2f%%, 유연성 %.2f%%",
		profile.Stats.Crit,
		profile.Stats.Haste,
		profile.Stats.Mastery,
		profile.Stats.Versatility), true)

	r.AddField("레이더 점수", fmt.Sprintf("현재 시즌 **%s**점", utils.FormatScore(score.Score())), true)
	r.AddField("이번주 쐐기 던전 최고기록", weeklyBest(dep, score), true)

	if raid, ok := profile.LatestRaid(); ok {
		r.AddField(fmt.Sprintf("%s 진행도", raid.Name), raidProgress(raid), true)
	}

	r.AddField("URL", characterLinks(dep, ref), false)

	return r, nil
}

func weeklyBest(dep handlers.Dependencies, ch *raider.Character) string {
	run, ok := ch.WeeklyBest()
	if !ok {
		return "기록 없음"
	}

	result, ok := keystoneResults[run.KeystoneUpgrades]
	if !ok {
		result = fmt.Sprintf("%d단계 상승", run.KeystoneUpgrades)
	}

	return fmt.Sprintf("%s %d단 %s", dep.Reference.Dungeon(run.Dungeon), run.MythicLevel, result)
}

// raidProgress counts bosses killed at least once per difficulty.
func raidProgress(raid blizzard.Raid) string {
	var normal, heroic, mythic int
	for _, b := range raid.Bosses {
		if b.NormalKills > 0 {
			normal++
		}
		if b.HeroicKills > 0 {
			heroic++
		}
		if b.MythicKills > 0 {
			mythic++
		}
	}

	total := len(raid.Bosses)
	return fmt.Sprintf("일반 %d/%d, 영웅 %d/%d, 신화 %d/%d", normal, total, heroic, total, mythic, total)
}

func characterLinks(dep handlers.Dependencies, ref characterRef) string {
	region := dep.Settings.Region
	name := url.PathEscape(ref.Name)

	return fmt.Sprintf("[전정실](%s) / [레이더](%s) / [WCL](%s)",
		fmt.Sprintf("https://worldofwarcraft.com/ko-kr/character/%s/%s/%s", region, ref.Realm, name),
		fmt.Sprintf("https://raider.io/characters/%s/%s/%s", region, ref.Realm, name),
		fmt.Sprintf("https://www.warcraftlogs.com/character/%s/%s/%s", region, url.PathEscape(dep.Reference.Realms.Name(ref.Realm)), name))
}
