package watchlist

import (
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"

	"github.com/friendsofgo/errors"
)

// Threshold is one step of the escalation staircase: alert at the given
// severity once a catalyst is within Days of its completion date.
type Threshold struct {
	Days     int
	Severity model.Severity
}

// DefaultStaircase escalates as a catalyst approaches: first contact at
// 90 days out, critical inside a week.
var DefaultStaircase = []Threshold{
	{Days: 90, Severity: model.SeverityInfo},
	{Days: 30, Severity: model.SeverityInfo},
	{Days: 14, Severity: model.SeverityWarning},
	{Days: 7, Severity: model.SeverityCritical},
}

// Config holds watchlist evaluation tunables. Zero values fall back to
// defaults at construction.
type Config struct {
	Staircase          []Threshold
	StaircaseRetention time.Duration
	RedFlagDedupWindow time.Duration
	Horizon            time.Duration
}

// ValidateStaircase rejects malformed staircases before any sweep runs:
// it must be non-empty, strictly descending in days, with positive days
// and known severities.
func ValidateStaircase(staircase []Threshold) error {
	if len(staircase) == 0 {
		return errors.Wrap(ErrInvalidStaircase, "empty staircase")
	}

	prev := 0
	for i, th := range staircase {
		if th.Days <= 0 {
			return errors.Wrapf(ErrInvalidStaircase, "threshold %d has non-positive days %d", i, th.Days)
		}
		if i > 0 && th.Days >= prev {
			return errors.Wrapf(ErrInvalidStaircase, "threshold days must strictly descend, got %d after %d", th.Days, prev)
		}
		if !th.Severity.IsValid() {
			return errors.Wrapf(ErrInvalidStaircase, "threshold %d has unknown severity %q", i, th.Severity)
		}
		prev = th.Days
	}

	return nil
}
