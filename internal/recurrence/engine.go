// Package recurrence expands repeating class templates into concrete
// booking slots. The engine is purely computational; callers decide how
// generated slots are validated and persisted.
package recurrence

import (
	"errors"
	"time"
)

// Frequency represents supported recurrence intervals.
type Frequency int

const (
	// FrequencyUnspecified indicates the series frequency is not set.
	FrequencyUnspecified Frequency = iota
	// FrequencyDaily generates slots for each day within the range.
	FrequencyDaily
	// FrequencyWeekly generates slots for the selected weekdays.
	FrequencyWeekly
)

// Series describes a repeating slot configuration, typically a weekly
// group class that runs on fixed weekdays.
type Series struct {
	ID        string
	Frequency Frequency
	Weekdays  []time.Weekday
	StartsOn  time.Time
	EndsOn    *time.Time
}

// ExpandOptions defines optional range bounds for slot expansion.
type ExpandOptions struct {
	RangeStart *time.Time
	RangeEnd   *time.Time
}

// Slot represents a generated instance of a series.
type Slot struct {
	SeriesID string
	Start    time.Time
	End      time.Time
}

// Engine expands series definitions into concrete slots.
type Engine struct {
	location *time.Location
}

// NewEngine constructs an Engine that normalizes results to the provided
// business time zone. If loc is nil, UTC is used.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{location: loc}
}

// ErrInvalidFrequency indicates the series frequency is not supported.
var ErrInvalidFrequency = errors.New("recurrence: invalid frequency")

// ErrInvalidWindow indicates the expansion window is unbounded.
var ErrInvalidWindow = errors.New("recurrence: expansion window requires an end bound")

// ErrInvalidDuration indicates the template slot duration is invalid.
var ErrInvalidDuration = errors.New("recurrence: slot duration must be positive")

// Expand produces concrete slots within the configured window.
//
// The engine enforces the following semantics:
//   - All timestamps are normalized to the engine's time zone.
//   - The expansion window is bounded by the series EndsOn and the optional range end.
//   - Weekday selections are respected for weekly series; daily series may optionally
//     filter by weekdays when provided.
func (e *Engine) Expand(series Series, templateStart, templateEnd time.Time, opts ExpandOptions) ([]Slot, error) {
	loc := e.location
	if loc == nil {
		loc = time.UTC
	}

	templateStart = templateStart.In(loc)
	templateEnd = templateEnd.In(loc)
	if !templateEnd.After(templateStart) {
		return nil, ErrInvalidDuration
	}
	duration := templateEnd.Sub(templateStart)

	seriesStart := series.StartsOn.In(loc)
	var seriesEnd time.Time
	if series.EndsOn != nil {
		seriesEnd = series.EndsOn.In(loc)
	}

	var rangeStart time.Time
	if opts.RangeStart != nil {
		rangeStart = opts.RangeStart.In(loc)
	}
	var rangeEnd time.Time
	if opts.RangeEnd != nil {
		rangeEnd = opts.RangeEnd.In(loc)
	}

	// Determine the inclusive upper bound of the expansion window.
	var upperBound time.Time
	hasUpper := false
	if !seriesEnd.IsZero() {
		upperBound = seriesEnd
		hasUpper = true
	}
	if !rangeEnd.IsZero() {
		if !hasUpper || rangeEnd.Before(upperBound) {
			upperBound = rangeEnd
		}
		hasUpper = true
	}
	if !hasUpper {
		return nil, ErrInvalidWindow
	}

	// Determine the lower bound from which to begin evaluation.
	lowerBound := seriesStart
	if !rangeStart.IsZero() && rangeStart.After(lowerBound) {
		lowerBound = rangeStart
	}
	if lowerBound.After(upperBound) {
		return nil, nil
	}

	weekdaySet := make(map[time.Weekday]struct{}, len(series.Weekdays))
	for _, day := range series.Weekdays {
		weekdaySet[day] = struct{}{}
	}

	current := firstCandidate(seriesStart, lowerBound, templateStart, loc)
	slots := make([]Slot, 0)

	for !current.After(upperBound) {
		include, err := shouldInclude(series.Frequency, weekdaySet, current.Weekday())
		if err != nil {
			return nil, err
		}

		if include {
			slots = append(slots, Slot{
				SeriesID: series.ID,
				Start:    current,
				End:      current.Add(duration),
			})
		}

		current = current.Add(24 * time.Hour)
	}

	return slots, nil
}

func firstCandidate(seriesStart, lowerBound, template time.Time, loc *time.Location) time.Time {
	target := lowerBound
	if target.Before(seriesStart) {
		target = seriesStart
	}

	candidate := combineDateTime(target, template, loc)
	for candidate.Before(target) || candidate.Before(seriesStart) {
		candidate = candidate.Add(24 * time.Hour)
	}

	return candidate
}

func combineDateTime(dateSource, template time.Time, loc *time.Location) time.Time {
	y, m, d := dateSource.In(loc).Date()
	return time.Date(y, m, d, template.In(loc).Hour(), template.In(loc).Minute(), template.In(loc).Second(), template.In(loc).Nanosecond(), loc)
}

func shouldInclude(freq Frequency, weekdaySet map[time.Weekday]struct{}, day time.Weekday) (bool, error) {
	switch freq {
	case FrequencyDaily:
		if len(weekdaySet) == 0 {
			return true, nil
		}
		_, ok := weekdaySet[day]
		return ok, nil
	case FrequencyWeekly:
		if len(weekdaySet) == 0 {
			return false, nil
		}
		_, ok := weekdaySet[day]
		return ok, nil
	case FrequencyUnspecified:
		fallthrough
	default:
		return false, ErrInvalidFrequency
	}
}
