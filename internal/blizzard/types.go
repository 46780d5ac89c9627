package blizzard

// FactionHorde is the legacy faction id of the Horde; everything else is
// treated as Alliance.
const FactionHorde = 1

type Named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type RaceIndex struct {
	Races []Named `json:"races"`
}

type ClassIndex struct {
	Classes []Named `json:"classes"`
}

type DungeonIndex struct {
	Dungeons []Named `json:"dungeons"`
}

type Realm struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type RealmIndex struct {
	Realms []Realm `json:"realms"`
}

type Character struct {
	Name      string `json:"name"`
	Realm     string `json:"realm"`
	Class     int    `json:"class"`
	Race      int    `json:"race"`
	Faction   int    `json:"faction"`
	Level     int    `json:"level"`
	Thumbnail string `json:"thumbnail"`
	Guild     *struct {
		Name string `json:"name"`
	} `json:"guild"`
	Items struct {
		AverageItemLevel         int `json:"averageItemLevel"`
		AverageItemLevelEquipped int `json:"averageItemLevelEquipped"`
		Neck                     struct {
			ItemLevel   int `json:"itemLevel"`
			AzeriteItem struct {
				AzeriteLevel int `json:"azeriteLevel"`
			} `json:"azeriteItem"`
		} `json:"neck"`
	} `json:"items"`
	Stats struct {
		Crit        float64 `json:"crit"`
		Haste       float64 `json:"haste"`
		Mastery     float64 `json:"mastery"`
		Versatility float64 `json:"versatilityDamageDoneBonus"`
	} `json:"stats"`
	Progression struct {
		Raids []Raid `json:"raids"`
	} `json:"progression"`
}

type Raid struct {
	Name   string `json:"name"`
	Bosses []Boss `json:"bosses"`
}

type Boss struct {
	Name        string `json:"name"`
	NormalKills int    `json:"normalKills"`
	HeroicKills int    `json:"heroicKills"`
	MythicKills int    `json:"mythicKills"`
}

// LatestRaid is the most recent raid tier of the progression list.
func (c *Character) LatestRaid() (Raid, bool) {
	if len(c.Progression.Raids) == 0 {
		return Raid{}, false
	}
	return c.Progression.Raids[len(c.Progression.Raids)-1], true
}

type Equipment struct {
	Items []EquippedItem `json:"equipped_items"`
}

type EquippedItem struct {
	Item struct {
		ID int `json:"id"`
	} `json:"item"`
	Slot struct {
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"slot"`
	Name          string `json:"name"`
	InventoryType struct {
		Name string `json:"name"`
	} `json:"inventory_type"`
	Level struct {
		Value int `json:"value"`
	} `json:"level"`
	Transmog *struct {
		Item Named `json:"item"`
	} `json:"transmog"`
	Azerite *AzeriteDetails `json:"azerite_details"`
}

type AzeriteDetails struct {
	Powers   []AzeritePower   `json:"selected_powers"`
	Essences []AzeriteEssence `json:"selected_essences"`
}

type AzeritePower struct {
	ID      int `json:"id"`
	Tier    int `json:"tier"`
	Tooltip *struct {
		Spell Named `json:"spell"`
	} `json:"spell_tooltip"`
}

type AzeriteEssence struct {
	Slot    int    `json:"slot"`
	Rank    int    `json:"rank"`
	Essence *Named `json:"essence"`
}

type Media struct {
	AvatarURL string `json:"avatar_url"`
	RenderURL string `json:"render_url"`
}

type Talents struct {
	Class   int           `json:"class"`
	Faction int           `json:"faction"`
	Specs   []SpecTalents `json:"talents"`
}

type SpecTalents struct {
	Selected bool `json:"selected"`
	Spec     *struct {
		Name string `json:"name"`
	} `json:"spec"`
	Talents []Talent `json:"talents"`
}

type Talent struct {
	Tier   int `json:"tier"`
	Column int `json:"column"`
	Spell  struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"spell"`
}

type Roster struct {
	Members []struct {
		Character struct {
			Name  string `json:"name"`
			Level int    `json:"level"`
		} `json:"character"`
	} `json:"members"`
}

type Period struct {
	ID             int   `json:"id"`
	StartTimestamp int64 `json:"start_timestamp"`
	EndTimestamp   int64 `json:"end_timestamp"`
}

type Token struct {
	Price int64 `json:"price"`
}
