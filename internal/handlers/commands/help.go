package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
)

type Help struct{}

func (h *Help) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "명령어",
		Description: "사용 가능한 명령어 목록을 보여줍니다.",
	}
}

func (h *Help) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	var lines []string
	for _, c := range dep.Commands {
		lines = append(lines, fmt.Sprintf("`%s%s` %s", dep.Settings.Prefix, c.Name, c.Description))
	}

	return display.New("사용 가능한 명령어", strings.Join(lines, "\n")), nil
}
