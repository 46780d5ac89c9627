package raider

type Character struct {
	Name       string         `json:"name"`
	Realm      string         `json:"realm"`
	Class      string         `json:"class"`
	Seasons    []SeasonScores `json:"mythic_plus_scores_by_season"`
	WeeklyRuns []Run          `json:"mythic_plus_weekly_highest_level_runs"`
}

type SeasonScores struct {
	Season string `json:"season"`
	Scores struct {
		All float64 `json:"all"`
	} `json:"scores"`
}

type Run struct {
	Dungeon          string `json:"dungeon"`
	MythicLevel      int    `json:"mythic_level"`
	KeystoneUpgrades int    `json:"num_keystone_upgrades"`
}

// Score is the overall score of the current season.
func (c *Character) Score() float64 {
	if len(c.Seasons) == 0 {
		return 0
	}
	return c.Seasons[0].Scores.All
}

// WeeklyBest is the highest keystone run of the current week.
func (c *Character) WeeklyBest() (Run, bool) {
	if len(c.WeeklyRuns) == 0 {
		return Run{}, false
	}
	return c.WeeklyRuns[0], true
}

type Affixes struct {
	Title   string  `json:"title"`
	Details []Affix `json:"affix_details"`
}

type Affix struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
