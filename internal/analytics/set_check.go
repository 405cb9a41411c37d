package analytics

import "github.com/claude/liftlog/internal/models"

// SkipReason says why a set was excluded from aggregation. Exclusion is
// silent at the aggregate level, but each set's verdict is observable here.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipNotCompleted
	SkipZeroWeight
	SkipZeroReps
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipNotCompleted:
		return "not_completed"
	case SkipZeroWeight:
		return "zero_weight"
	case SkipZeroReps:
		return "zero_reps"
	default:
		return "unknown"
	}
}

// SetCheck is the verdict for a single set. Weight and Reps are only
// meaningful when Skip == SkipNone.
type SetCheck struct {
	Weight float64
	Reps   int
	Skip   SkipReason
}

// Valid reports whether the set participates in aggregation.
func (c SetCheck) Valid() bool { return c.Skip == SkipNone }

// CheckSet validates one set. Only completed sets with weight > 0 and
// reps > 0 count; everything else is skipped with a reason, never an error.
func CheckSet(s models.Set) SetCheck {
	if !s.Completed {
		return SetCheck{Skip: SkipNotCompleted}
	}
	w := float64(s.Weight)
	if w <= 0 {
		return SetCheck{Skip: SkipZeroWeight}
	}
	r := int(s.Reps)
	if r <= 0 {
		return SetCheck{Skip: SkipZeroReps}
	}
	return SetCheck{Weight: w, Reps: r}
}

// OneRepMax estimates the one-rep max via the Epley formula.
func OneRepMax(weight float64, reps int) float64 {
	return weight * (1 + float64(reps)/30)
}

// Volume is the total work in a set.
func Volume(weight float64, reps int) float64 {
	return weight * float64(reps)
}
