package donation

// Badge recognizes a donor's cumulative contribution.
type Badge string

const (
	BadgeNewDonor     Badge = "New Donor"
	BadgeRegularDonor Badge = "Regular Donor"
	BadgeLifeSaver    Badge = "Life Saver"
	BadgeHero         Badge = "Hero"
)

// ComputeBadge maps a lifetime donation count to its badge tier. The tiers
// are a pure step function of the total, so a donor's badge can only move
// upwards as donations accumulate.
func ComputeBadge(total int) Badge {
	switch {
	case total >= 10:
		return BadgeHero
	case total >= 5:
		return BadgeLifeSaver
	case total >= 2:
		return BadgeRegularDonor
	default:
		return BadgeNewDonor
	}
}
