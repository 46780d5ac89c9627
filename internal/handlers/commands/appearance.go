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

// Jewelry and trinkets cannot be transmogrified.
var noTransmogSlots = map[string]bool{
	"NECK":      true,
	"FINGER_1":  true,
	"FINGER_2":  true,
	"TRINKET_1": true,
	"TRINKET_2": true,
}

const itemLinkBase = "https://ko.wowhead.com/item="

type Appearance struct{}

func (a *Appearance) Metadata() handlers.Metadata {
	return handlers.Metadata{
		Name:        "외형",
		Description: "캐릭터의 모습과 형상변환 정보를 보여줍니다.",
	}
}

func (a *Appearance) Handle(ctx context.Context, dep handlers.Dependencies) (*display.Response, error) {
	ref, err := resolveCharacter(dep, "!외형 팬더곰-헬스크림")
	if err != nil {
		return nil, err
	}

	var (
		media    *blizzard.Media
		items    *blizzard.Equipment
		mediaErr error
		wg       conc.WaitGroup
	)
	wg.Go(func() { media, mediaErr = dep.GameData.CharacterMedia(ctx, ref.Realm, ref.Name) })
	wg.Go(func() { items, _ = dep.GameData.CharacterItems(ctx, ref.Realm, ref.Name) })
	wg.Wait()

	if mediaErr != nil {
		return nil, characterFailure(mediaErr)
	}

	r := display.New(ref.title(dep), "")
	r.Image = media.RenderURL

	if items != nil {
		r.AddField("형상 정보", strings.Join(transmogs(items), "\n"), true)
	}

	return r, nil
}

// transmogs lists the appearance of every transmogrifiable slot. Slots shown
// with another item's appearance are marked with an asterisk.
func transmogs(items *blizzard.Equipment) []string {
	var lines []string
	for _, item := range items.Items {
		if noTransmogSlots[item.Slot.Type] {
			continue
		}

		if item.Transmog != nil {
			lines = append(lines, fmt.Sprintf("%s: [%s](%s%d) *",
				item.InventoryType.Name, item.Transmog.Item.Name, itemLinkBase, item.Transmog.Item.ID))
			continue
		}

		lines = append(lines, fmt.Sprintf("%s: [%s](%s%d)",
			item.InventoryType.Name, item.Name, itemLinkBase, item.Item.ID))
	}
	return lines
}
