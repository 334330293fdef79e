package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayout is the layout of the dates exchanged with the user and used in file names
const DateLayout = "2006-01-02"

var (
	// ErrInvalidRange is returned when the start date is after the end date
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalidStep is returned when the step is not strictly positive
	ErrInvalidStep = errors.New("invalid step")
)

// Interval is an inclusive range of calendar days [Start, End]
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) String() string {
	return i.Start.Format(DateLayout) + "/" + i.End.Format(DateLayout)
}

//go:generate go tool enumer -type StepPolicy -trimprefix Step -transform lower

// StepPolicy defines how an interval is cut into sub-intervals
type StepPolicy int

const (
	// StepMonthly advances by one calendar month. A sub-interval ends the day before the next one starts.
	StepMonthly StepPolicy = iota
	// StepFixed advances by a fixed number of days. A sub-interval ends on the day the next one starts.
	StepFixed
)

// Step is the increment between two consecutive sub-intervals
type Step struct {
	Policy StepPolicy
	Days   int // Only for StepFixed
}

// Monthly returns a one-calendar-month step
func Monthly() Step {
	return Step{Policy: StepMonthly}
}

// EveryDays returns a fixed step of n days
func EveryDays(n int) Step {
	return Step{Policy: StepFixed, Days: n}
}

func (s Step) String() string {
	if s.Policy == StepMonthly {
		return "month"
	}
	return fmt.Sprintf("%dd", s.Days)
}

// ParseStep parses "month" or "<N>d" (e.g. "15d")
func ParseStep(s string) (Step, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "month", "1m", StepMonthly.String():
		return Monthly(), nil
	}
	days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || !strings.HasSuffix(s, "d") {
		return Step{}, fmt.Errorf("%w: %q (expecting month or <N>d)", ErrInvalidStep, s)
	}
	if days <= 0 {
		return Step{}, fmt.Errorf("%w: %q must be strictly positive", ErrInvalidStep, s)
	}
	return EveryDays(days), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Step) UnmarshalText(text []byte) error {
	step, err := ParseStep(string(text))
	if err != nil {
		return err
	}
	*s = step
	return nil
}

// next returns the start of the sub-interval following the one starting at t
func (s Step) next(t time.Time) time.Time {
	if s.Policy == StepMonthly {
		return addMonths(t, 1)
	}
	return t.AddDate(0, 0, s.Days)
}

// PlanIntervals cuts [start, end] into consecutive sub-intervals, in chronological order.
// The end of the last sub-interval is clipped to end.
func PlanIntervals(start, end time.Time, step Step) ([]Interval, error) {
	start, end = Day(start), Day(end)
	if start.After(end) {
		return nil, fmt.Errorf("PlanIntervals: %w: %s > %s", ErrInvalidRange, start.Format(DateLayout), end.Format(DateLayout))
	}
	if step.Policy != StepMonthly && (step.Policy != StepFixed || step.Days <= 0) {
		return nil, fmt.Errorf("PlanIntervals: %w: %v", ErrInvalidStep, step)
	}

	var intervals []Interval
	for current := start; ; {
		next := step.next(current)
		subEnd := next
		if step.Policy == StepMonthly {
			subEnd = next.AddDate(0, 0, -1)
		}
		if !subEnd.Before(end) {
			return append(intervals, Interval{Start: current, End: end}), nil
		}
		intervals = append(intervals, Interval{Start: current, End: subEnd})
		current = next
	}
}

// addMonths adds n calendar months, clamping the day to the last day of the resulting month
// (Jan 31 + 1 month = Feb 28)
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date written in any common layout (2023-01-01, 2023/01/01, RFC3339...)
func ParseDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDate[%s]: %w", s, err)
	}
	return Day(t), nil
}
