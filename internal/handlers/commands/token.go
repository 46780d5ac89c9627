package commands

import (
	"context"

	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/utils"
)

type Token struct{}

func (t *Token) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "토큰",
		Description: "WoW 토큰 시세를 보여줍니다.",
	}
}

func (t *Token) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	token, err := dep.GameData.TokenPrice(ctx)
	if err != nil {
		return nil, utils.Failure{
			Type:    utils.ErrUnavailable,
			Message: "토큰 가격 정보를 불러오는 데 실패했습니다.",
			Data:    map[string]any{"error": err.Error()},
		}
	}

	return display.New("한국 서버 토큰 시세", utils.FormatGold(token.Price)), nil
}
