// Package trade provides the core value objects for the settlement trade
// economy: settlements, cargo types, seasons, and the fixed lookup tables
// every engine shares.
package trade

import "fmt"

// Season is one of the four trading seasons. The literal strings are the
// wire/config form; anything else is a configuration error.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Seasons lists all seasons in calendar order.
var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// ParseSeason validates a season string.
func ParseSeason(s string) (Season, error) {
	switch Season(s) {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return Season(s), nil
	}
	return "", NewConfiguration(fmt.Sprintf("unknown season %q", s))
}

// Valid reports whether the season is one of the four known values.
func (s Season) Valid() bool {
	_, err := ParseSeason(string(s))
	return err == nil
}

// Index returns the season's position in calendar order (spring=0 .. winter=3),
// or -1 for an unknown season.
func (s Season) Index() int {
	for i, known := range Seasons {
		if s == known {
			return i
		}
	}
	return -1
}
