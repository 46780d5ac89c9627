package commands

import (
	"errors"
	"fmt"

	"github.com/glotchimo/keystone/internal/api"
	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/utils"
)

const (
	iconHorde          = "inv_bannerpvp_01"
	iconAlliance       = "inv_bannerpvp_02"
	iconMythicKeystone = "inv_relics_hourglass"
)

// MaxLevel is the level cap of the current expansion.
const MaxLevel = 120

var keystoneResults = map[int]string{
	0: "시간 초과",
	1: "1단계 상승",
	2: "2단계 상승",
	3: "3단계 상승",
}

type characterRef struct {
	Name  string
	Realm string
}

// resolveCharacter validates the "name-realm" argument and resolves the realm
// before any upstream call is made.
func resolveCharacter(dep handlers.Dependencies, example string) (characterRef, error) {
	if len(dep.Args) == 0 {
		return characterRef{}, usageFailure(dep, example)
	}

	name, realm := utils.ParseCharacterRef(dep.Args[0], dep.Settings.DefaultRealm)
	if name == "" {
		return characterRef{}, usageFailure(dep, example)
	}

	slug, ok := dep.Reference.Realms.Resolve(realm)
	if !ok {
		return characterRef{}, utils.Failure{
			Type:    utils.ErrBadInput,
			Message: "존재하지 않는 서버 이름입니다.",
			Data:    map[string]any{"realm": realm},
		}
	}

	return characterRef{Name: name, Realm: slug}, nil
}

func usageFailure(dep handlers.Dependencies, example string) utils.Failure {
	f := utils.Failure{
		Type:    utils.ErrBadInput,
		Message: "명령어 뒤에 '(캐릭터 이름)-(서버 이름)'을 적어야 합니다.",
		Usage:   example,
	}
	if dep.Reference.Realms.Exists(dep.Settings.DefaultRealm) {
		f.Footer = fmt.Sprintf("서버 이름을 명시하지 않으면 %s 서버로 간주합니다.", dep.Reference.Realms.Name(dep.Settings.DefaultRealm))
	}
	return f
}

// upstreamFailure classifies a failed lookup: a non-success answer means the
// entity does not exist, anything else means the upstream is unavailable.
func upstreamFailure(err error, notFound string) utils.Failure {
	if errors.Is(err, api.ErrStatus) {
		return utils.Failure{Type: utils.ErrNotFound, Message: notFound, Data: map[string]any{"error": err.Error()}}
	}
	return utils.Failure{
		Type:    utils.ErrUnavailable,
		Message: "외부 서비스에 연결하지 못했습니다. 잠시 후 다시 시도해주세요.",
		Data:    map[string]any{"error": err.Error()},
	}
}

func characterFailure(err error) utils.Failure {
	return upstreamFailure(err, "플레이어를 찾을 수 없습니다.")
}

func (c characterRef) title(dep handlers.Dependencies) string {
	return fmt.Sprintf("%s-%s", c.Name, dep.Reference.Realms.Name(c.Realm))
}

func factionIcon(faction int) string {
	if faction == blizzard.FactionHorde {
		return display.Icon(iconHorde)
	}
	return display.Icon(iconAlliance)
}

func periodWindow(p *blizzard.Period) string {
	if p == nil {
		return ""
	}
	return utils.FormatWindow(p.StartTimestamp, p.EndTimestamp)
}
