package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/glotchimo/keystone/internal/blizzard"
	"github.com/glotchimo/keystone/internal/display"
	"github.com/glotchimo/keystone/internal/handlers"
	"github.com/sourcegraph/conc"
)

// minPowerTier skips the generic inner rings of azerite armor.
const minPowerTier = 3

var azeriteSlots = map[string]bool{"HEAD": true, "SHOULDER": true, "CHEST": true}

var essenceLabels = [3]string{"주능력", "부차능력", "부차능력"}

type Azerite struct{}

func (a *Azerite) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "아제특성",
		Description: "착용한 아제라이트 장비의 특성과 정수를 보여줍니다.",
	}
}

type powerGroup struct {
	title  string
	powers []string
}

func (a *Azerite) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	ref, err := resolveCharacter(dep, "!아제특성 팬더곰-헬스크림")
	if err != nil {
		return nil, err
	}

	var (
		items    *blizzard.Equipment
		media    *blizzard.Media
		itemsErr error
		wg       conc.WaitGroup
	)
	wg.Go(func() { items, itemsErr = dep.GameData.CharacterItems(ctx, ref.Realm, ref.Name) })
	wg.Go(func() { media, _ = dep.GameData.CharacterMedia(ctx, ref.Realm, ref.Name) })
	wg.Wait()

	if itemsErr != nil {
		return nil, characterFailure(itemsErr)
	}

	groups, essences := azeriteSelections(items)

	r := display.New(ref.title(dep), "")
	if media != nil {
		r.Thumbnail = media.AvatarURL
	}

	var msg strings.Builder
	for slot, label := range essenceLabels {
		if e, ok := essences[slot]; ok {
			fmt.Fprintf(&msg, "**%s**: %s\n", label, e)
		}
	}
	r.AddField("아제라이트 정수", msg.String(), true)

	for _, g := range groups {
		r.AddField(g.title, strings.Join(g.powers, " / "), false)
	}

	return r, nil
}

// azeriteSelections collects selected powers of azerite armor in equipment
// order and the essences slotted in the neck, keyed by essence slot. Essence
// slots outside the known range are ignored.
func azeriteSelections(items *blizzard.Equipment) ([]powerGroup, map[int]string) {
	var groups []powerGroup
	essences := make(map[int]string)

	for _, item := range items.Items {
		if item.Azerite == nil {
			continue
		}

		switch {
		case azeriteSlots[item.Slot.Type]:
			g := powerGroup{title: fmt.Sprintf("%s (%d)", item.Slot.Name, item.Level.Value)}
			for _, p := range item.Azerite.Powers {
				if p.Tooltip == nil || p.Tier < minPowerTier {
					continue
				}
				g.powers = append(g.powers, p.Tooltip.Spell.Name)
			}
			groups = append(groups, g)

		case item.Slot.Type == "NECK":
			for _, e := range item.Azerite.Essences {
				if e.Essence == nil || e.Slot < 0 || e.Slot >= len(essenceLabels) {
					continue
				}
				essences[e.Slot] = fmt.Sprintf("%s %d등급", e.Essence.Name, e.Rank)
			}
		}
	}

	return groups, essences
}
