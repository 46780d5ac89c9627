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

// Channel toggles whether the current channel is on the server's allow list.
type Channel struct{}

func (c *Channel) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "채널",
		Description: "현재 채널에서의 명령어 사용을 허용하거나 해제합니다.",
		AdminOnly:   true,
	}
}

func (c *Channel) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	if dep.Guild == nil || dep.Store == nil {
		return nil, settingsUnavailable()
	}

	var allowed bool
	guild, err := dep.Store.UpdateSettings(ctx, dep.Guild.ID, func(g *models.Guild) {
		allowed = g.ToggleChannel(dep.ChannelID)
	})
	if err != nil {
		return nil, saveFailed(dep.Guild.ID, err)
	}

	r := display.New("채널 설정", "")
	if allowed {
		r.Description = fmt.Sprintf("<#%s> 채널에서 명령어를 사용할 수 있습니다.", dep.ChannelID)
	} else {
		r.Description = fmt.Sprintf("<#%s> 채널을 허용 목록에서 제외했습니다.", dep.ChannelID)
	}

	if len(guild.Settings.ChannelIDs) == 0 {
		r.Footer = "허용 목록이 비어 있어 모든 채널에서 명령어를 사용할 수 있습니다."
		return r, nil
	}

	channels := make([]string, len(guild.Settings.ChannelIDs))
	for i, id := range guild.Settings.ChannelIDs {
		channels[i] = fmt.Sprintf("<#%s>", id)
	}
	r.AddField("허용된 채널", strings.Join(channels, ", "), false)

	return r, nil
}

func saveFailed(guildID string, err error) utils.Failure {
	return utils.Failure{
		Type:    utils.ErrInternal,
		Message: "서버 설정을 저장하지 못했습니다.",
		Data:    map[string]any{"guild": guildID, "error": err.Error()},
	}
}

func settingsUnavailable() utils.Failure {
	return utils.Failure{
		Type:    utils.ErrNotAllowed,
		Message: "서버 설정을 사용할 수 없습니다.",
		Footer:  "개인 메시지에서는 서버 설정 명령어를 사용할 수 없습니다.",
	}
}
