// Package recur expands repeating events into their concrete occurrences.
// Rules are iCalendar RRULE strings parsed with teambition/rrule-go; the
// event's first interval is the rule's DTSTART and every occurrence keeps the
// first interval's length.
package recur

import (
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/schedule"
)

// MaxOccurrences caps how many occurrences a single event expands to.
// Rules without COUNT or UNTIL are bounded by the trip window, and this keeps
// a long trip with a very frequent rule from producing an unbounded list.
const MaxOccurrences = 500

// Normalize returns rule in the form it is stored and published in: trimmed,
// and without an "RRULE:" property prefix.
func Normalize(rule string) string {
	rule = strings.TrimSpace(rule)
	if len(rule) >= 6 && strings.EqualFold(rule[:6], "RRULE:") {
		rule = strings.TrimSpace(rule[6:])
	}
	return rule
}

// Validate reports whether rule is a usable recurrence rule.
// Rules repeating more often than daily are rejected: events are planned on
// calendar days and the timeline has minute precision.
func Validate(rule string) error {
	_, err := parse(rule)
	return err
}

// Expand returns ev's occurrences that start within window, in chronological
// order. The event's own first interval always counts, even if it starts
// before window does; a one-off event yields just that interval.
// The result is truncated to MaxOccurrences.
func Expand(ev domain.Event, window schedule.Interval) ([]domain.Occurrence, error) {
	if !ev.IsRecurring() {
		return []domain.Occurrence{{Event: ev, When: ev.When}}, nil
	}

	opt, err := parse(ev.Recurrence)
	if err != nil {
		return nil, err
	}
	opt.Dtstart = ev.When.Start()

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("recur.Expand: %w", err)
	}

	length := ev.When.Duration()
	from := window.Start()
	if first := ev.When.Start(); first.Before(from) {
		from = first
	}
	starts := r.Between(from, window.End(), true)
	if len(starts) > MaxOccurrences {
		starts = starts[:MaxOccurrences]
	}

	out := make([]domain.Occurrence, 0, len(starts))
	for _, s := range starts {
		when, err := schedule.IntervalOf(s, s.Add(length))
		if err != nil {
			return nil, fmt.Errorf("recur.Expand: %w", err)
		}
		out = append(out, domain.Occurrence{Event: ev, When: when})
	}
	return out, nil
}

// ExpandAll expands every event in events and concatenates the results.
func ExpandAll(events []domain.Event, window schedule.Interval) ([]domain.Occurrence, error) {
	var out []domain.Occurrence
	for _, ev := range events {
		occ, err := Expand(ev, window)
		if err != nil {
			return nil, fmt.Errorf("recur.ExpandAll: event %s: %w", ev.ID, err)
		}
		out = append(out, occ...)
	}
	return out, nil
}

func parse(rule string) (*rrule.ROption, error) {
	rule = Normalize(rule)
	if rule == "" {
		return nil, fmt.Errorf("%w: recurrence rule is empty", domain.ErrValidation)
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recurrence rule: %v", domain.ErrValidation, err)
	}
	switch opt.Freq {
	case rrule.HOURLY, rrule.MINUTELY, rrule.SECONDLY:
		return nil, fmt.Errorf("%w: recurrence must not repeat more often than daily", domain.ErrValidation)
	}
	return opt, nil
}
