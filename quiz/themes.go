package quiz

// RacingTheme is one of the fixed directly user-chosen persona tags in the
// racing variant. It drives template selection and the remote AI generation
// prompt.
type RacingTheme string

const (
	ThemePitCrew RacingTheme = "pitcrew"
	ThemeMotoGP  RacingTheme = "motogp"
	ThemeF1      RacingTheme = "f1"
)

// RacingThemeOrder fixes the enumeration order for listings.
var RacingThemeOrder = []RacingTheme{ThemePitCrew, ThemeMotoGP, ThemeF1}

// RacingThemeInfo carries display data for one racing theme.
type RacingThemeInfo struct {
	Title       string
	Description string
}

var RacingThemes = map[RacingTheme]RacingThemeInfo{
	ThemePitCrew: {Title: "Pit Crew", Description: "Suit up with the fastest crew on the grid"},
	ThemeMotoGP:  {Title: "MotoGP", Description: "Lean into the apex in full race leathers"},
	ThemeF1:      {Title: "Formula 1", Description: "Take the wheel of a Grand Prix machine"},
}

// IsValidTheme reports whether the tag is one of the fixed set.
func IsValidTheme(tag string) bool {
	_, ok := RacingThemes[RacingTheme(tag)]
	return ok
}
