package commands

import (
	"context"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/raider"
	"github.com/glotchimo/keystone/internal/utils"
	"github.com/sourcegraph/conc"
)

type Affixes struct{}

func (a *Affixes) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "어픽스",
		Description: "이번주 쐐기 던전 어픽스를 보여줍니다.",
	}
}

func (a *Affixes) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	var (
		affixes *raider.Affixes
		period  *blizzard.Period
		err     error
		wg      conc.WaitGroup
	)
	wg.Go(func() { affixes, err = dep.Progression.WeeklyAffixes(ctx) })
	wg.Go(func() { period, _ = dep.GameData.MythicKeystonePeriod(ctx) })
	wg.Wait()

	if err != nil {
		return nil, utils.Failure{
			Type:    utils.ErrUnavailable,
			Message: "이번주 쐐기 던전 어픽스 정보를 불러오는 데 실패했습니다.",
			Data:    map[string]any{"error": err.Error()},
		}
	}

	r := display.New("이번주 쐐기 던전 어픽스", periodWindow(period))
	r.Thumbnail = display.Icon(iconMythicKeystone)
	for _, affix := range affixes.Details {
		r.AddField(affix.Name, affix.Description, true)
	}

	return r, nil
}
