package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ServerOffset is the fixed offset of the game server's clock from UTC.
const ServerOffset = 9 * time.Hour

const windowLayout = "2006-01-02 15:04"

// FormatTime renders a millisecond UNIX timestamp in server time.
func FormatTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Add(ServerOffset).Format(windowLayout)
}

// FormatWindow renders a start/end pair of millisecond UNIX timestamps as
// "YYYY-MM-DD HH:MM ~ YYYY-MM-DD HH:MM" in server time.
func FormatWindow(startMs, endMs int64) string {
	return fmt.Sprintf("%s ~ %s", FormatTime(startMs), FormatTime(endMs))
}

// FormatGold converts a copper amount into whole gold.
func FormatGold(copper int64) string {
	return fmt.Sprintf("%d골드", copper/10000)
}

// FormatScore drops the fraction of whole scores.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func FormatInvocation(prefix, name string, args []string) string {
	parts := append([]string{prefix + name}, args...)
	return strings.Join(parts, " ")
}
