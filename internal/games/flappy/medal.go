package flappy

// Medal is the award tier shown on the result board.
type Medal int

const (
	MedalNone Medal = iota
	MedalSilver
	MedalGold
)

// String returns the display name of the medal.
func (m Medal) String() string {
	switch m {
	case MedalSilver:
		return "Silver"
	case MedalGold:
		return "Gold"
	default:
		return "None"
	}
}

// MedalFor maps a final score to its medal tier.
func MedalFor(score, silver, gold int) Medal {
	switch {
	case score >= gold:
		return MedalGold
	case score >= silver:
		return MedalSilver
	default:
		return MedalNone
	}
}
