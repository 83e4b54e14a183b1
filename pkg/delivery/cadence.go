package delivery

import "strings"

const (
	monthlyKeyword = "Monthly"
	weeklyKeyword  = "Weekly"
)

// Cadence is the billing cadence of a delivery record.
type Cadence int

const (
	PerVisit Cadence = iota
	Monthly
	Weekly
	// CadenceMax must remain at the end.
	CadenceMax
)

// Classify returns the cadence for a raw day list. The search is case
// sensitive and "Monthly" wins over "Weekly". Anything else, including a
// missing value, is billed per visit.
func Classify(days Cell) Cadence {
	switch {
	case !days.Valid:
		return PerVisit
	case strings.Contains(days.Value, monthlyKeyword):
		return Monthly
	case strings.Contains(days.Value, weeklyKeyword):
		return Weekly
	default:
		return PerVisit
	}
}

func (c Cadence) String() string {
	switch c {
	case PerVisit:
		return "per-visit"
	case Monthly:
		return "monthly"
	case Weekly:
		return "weekly"
	default:
		return "unknown"
	}
}
