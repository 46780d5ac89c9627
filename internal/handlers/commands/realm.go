package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/models"
	"github.com/glotchimo/keystone/internal/utils"
)

const realmReset = "초기화"

// Realm shows or overrides the realm assumed for arguments without one.
type Realm struct{}

func (r *Realm) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "기본서버",
		Description: "서버 이름을 생략했을 때 사용할 기본 서버를 설정합니다.",
		AdminOnly:   true,
	}
}

func (r *Realm) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	if dep.Guild == nil || dep.Store == nil {
		return nil, settingsUnavailable()
	}

	if len(dep.Args) == 0 {
		res := display.New("기본 서버", dep.Reference.Realms.Name(dep.Settings.DefaultRealm))
		res.Footer = fmt.Sprintf("%s%s (서버 이름) 또는 %s%s %s", dep.Settings.Prefix, r.Metadata().Name, dep.Settings.Prefix, r.Metadata().Name, realmReset)
		return res, nil
	}

	arg := strings.Join(dep.Args, " ")

	var realm string
	if arg != realmReset {
		slug, ok := dep.Reference.Realms.Resolve(arg)
		if !ok {
			return nil, utils.Failure{
				Type:    utils.ErrBadInput,
				Message: "존재하지 않는 서버 이름입니다.",
				Usage:   fmt.Sprintf("%s%s 헬스크림", dep.Settings.Prefix, r.Metadata().Name),
				Data:    map[string]any{"realm": arg},
			}
		}
		realm = slug
	}

	guild, err := dep.Store.UpdateSettings(ctx, dep.Guild.ID, func(g *models.Guild) {
		g.Settings.DefaultRealm = realm
	})
	if err != nil {
		return nil, saveFailed(dep.Guild.ID, err)
	}

	if guild.Settings.DefaultRealm == "" {
		return display.New("기본 서버", "기본 서버 설정을 초기화했습니다."), nil
	}
	return display.New("기본 서버", fmt.Sprintf("기본 서버를 %s(으)로 설정했습니다.", dep.Reference.Realms.Name(guild.Settings.DefaultRealm))), nil
}
