package domain

// OverflowTolerance absorbs sub-pixel rounding. It is fixed.
const OverflowTolerance = 1

const (
	errorThreshold   = 50
	warningThreshold = 20
)

// HasOverflow reports whether scroll exceeds offset by more than the tolerance.
func HasOverflow(scroll, offset int) bool {
	return scroll > offset+OverflowTolerance
}

// DirectionFor classifies the overflow axes. Both wins when both hold; the
// empty string means no overflow.
func DirectionFor(horizontal, vertical bool) string {
	switch {
	case horizontal && vertical:
		return DirectionBoth
	case horizontal:
		return DirectionHorizontal
	case vertical:
		return DirectionVertical
	default:
		return ""
	}
}

// SeverityFor maps an overflow amount in pixels to a severity. Thresholds are strict.
func SeverityFor(amount int) string {
	switch {
	case amount > errorThreshold:
		return SeverityError
	case amount > warningThreshold:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// SeverityRank orders severities: error > warning > info > unknown.
func SeverityRank(severity string) int {
	switch severity {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether severity is at or above threshold.
func AtLeast(severity, threshold string) bool {
	return SeverityRank(severity) >= SeverityRank(threshold)
}

// IsValidSeverity reports whether s is one of the three severities.
func IsValidSeverity(s string) bool {
	return SeverityRank(s) > 0
}
