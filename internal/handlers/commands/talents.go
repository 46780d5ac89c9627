package commands

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/glotchimo/keystone/internal/reference"
	"github.com/glotchimo/keystone/internal/utils"
)

var (
	descriptionBreaks = regexp.MustCompile(`(\r\n)+|(\n\n)+`)
	abilityTokens     = regexp.MustCompile(`T\d+:\d+`)
)

const talentsUsage = "!특성 팬더곰-헬스크림 : 캐릭터의 각 전문화 특성을 확인합니다.\n" +
	"!특성 팬더곰-헬스크림 비법 : 캐릭터의 해당 전문화 특성을 확인합니다."

type Talents struct{}

func (t *Talents) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "특성",
		Description: "캐릭터의 전문화별 특성을 보여줍니다.",
	}
}

func (t *Talents) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	ref, err := resolveCharacter(dep, talentsUsage)
	if err != nil {
		return nil, err
	}

	var (
		spec    reference.Spec
		hasSpec bool
	)
	if len(dep.Args) > 1 {
		arg := strings.Join(dep.Args[1:], " ")
		spec, hasSpec = reference.LookupSpec(arg)
		if !hasSpec {
			return nil, utils.Failure{
				Type:    utils.ErrBadInput,
				Message: "등록되지 않은 전문화 이름입니다.",
				Data:    map[string]any{"spec": arg},
			}
		}
	}

	talents, err := dep.GameData.CharacterTalents(ctx, ref.Realm, ref.Name)
	if err != nil {
		return nil, characterFailure(err)
	}

	r := &display.Response{Color: display.ColorBlue}
	r.Author = &display.Author{Name: ref.title(dep), IconURL: factionIcon(talents.Faction)}

	if !hasSpec {
		for _, st := range talents.Specs {
			if st.Spec == nil {
				continue
			}
			tiers, complete := selectedTiers(st)
			if !complete {
				continue
			}

			name := st.Spec.Name
			if st.Selected {
				name += "*"
			}

			lines := make([]string, len(tiers))
			for i, talent := range tiers {
				lines[i] = fmt.Sprintf("[%d] %s", talent.Column+1, talent.Spell.Name)
			}
			r.AddField(name, strings.Join(lines, "\n"), true)
		}
		return r, nil
	}

	st, ok := specTalents(talents, spec)
	if !ok {
		return nil, utils.Failure{
			Type:    utils.ErrBadInput,
			Message: "캐릭터와 전문화가 일치하지 않습니다.",
			Data:    map[string]any{"spec": spec.Canonical, "class": talents.Class},
		}
	}

	tiers, complete := selectedTiers(st)
	if !complete {
		return nil, utils.Failure{
			Type:    utils.ErrNotFound,
			Message: "해당 캐릭터가 전문화의 모든 특성을 선택하지 않았습니다.",
			Data:    map[string]any{"spec": spec.Canonical},
		}
	}

	for i, talent := range tiers {
		r.AddField(
			fmt.Sprintf("[%d] %s", reference.TalentLevels[i], talent.Spell.Name),
			cleanDescription(talent.Spell.Description),
			true)
	}
	r.Thumbnail = display.Icon(spec.Icon)

	return r, nil
}

// specTalents finds the talent entry of a spec belonging to the character's
// class.
func specTalents(talents *blizzard.Talents, spec reference.Spec) (blizzard.SpecTalents, bool) {
	if talents.Class != spec.Class {
		return blizzard.SpecTalents{}, false
	}
	for _, st := range talents.Specs {
		if st.Spec != nil && st.Spec.Name == spec.Name {
			return st, true
		}
	}
	return blizzard.SpecTalents{}, false
}

// selectedTiers orders the chosen talents by tier. It reports false when any
// tier has no selection.
func selectedTiers(st blizzard.SpecTalents) ([len(reference.TalentLevels)]*blizzard.Talent, bool) {
	var tiers [len(reference.TalentLevels)]*blizzard.Talent
	for i := range st.Talents {
		talent := &st.Talents[i]
		if talent.Tier < 0 || talent.Tier >= len(tiers) {
			continue
		}
		tiers[talent.Tier] = talent
	}

	for _, talent := range tiers {
		if talent == nil {
			return tiers, false
		}
	}
	return tiers, true
}

func cleanDescription(s string) string {
	s = descriptionBreaks.ReplaceAllString(s, " ")
	return abilityTokens.ReplaceAllString(s, "")
}
