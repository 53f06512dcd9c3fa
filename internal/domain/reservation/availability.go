package reservation

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AvailabilityInput struct {
	SalonID    uint
	StaffID    uint
	ServiceIDs []uint
	Date       time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Busy interval of an existing capacity-reserving reservation.
type Interval struct {
	Start time.Time
	End   time.Time
}

// EffectiveWindows resolves which windows apply to a date: exception rows
// for that exact date replace every recurring row for its weekday.
// Exceptions are applied in the given order (creation order from the
// store), and a later row supersedes earlier ones: a Closed row wipes
// everything before it, an open row replaces any earlier row it overlaps.
// A date whose last applicable exception is Closed yields no windows.
func EffectiveWindows(all []models.AvailabilityWindow, date time.Time) []models.AvailabilityWindow {
	y, m, d := date.Date()

	var exceptions []models.AvailabilityWindow
	var recurring []models.AvailabilityWindow

	for _, w := range all {
		if w.IsException {
			if w.Date == nil {
				continue
			}
			ey, em, ed := w.Date.In(date.Location()).Date()
			if ey == y && em == m && ed == d {
				exceptions = append(exceptions, w)
			}
			continue
		}
		if w.Active && w.Weekday == int(date.Weekday()) {
			recurring = append(recurring, w)
		}
	}

	if len(exceptions) > 0 {
		var open []models.AvailabilityWindow
		for _, w := range exceptions {
			if w.Closed {
				open = nil
				continue
			}
			if w.StartTime == "" || w.EndTime == "" {
				continue
			}
			kept := make([]models.AvailabilityWindow, 0, len(open)+1)
			for _, prev := range open {
				// zero-padded "15:04" strings compare correctly
				if prev.StartTime < w.EndTime && prev.EndTime > w.StartTime {
					continue
				}
				kept = append(kept, prev)
			}
			open = append(kept, w)
		}
		return open
	}

	return recurring
}

// ComputeSlots generates the ordered candidate start times for one staff
// member on one date. Candidates step at the granularity from each window
// start while start+duration still fits the window, then drop anything
// overlapping a busy interval or starting before notBefore.
//
// Empty result means fully booked (or closed), not an error.
func ComputeSlots(
	windows []models.AvailabilityWindow,
	busy []Interval,
	date time.Time,
	duration time.Duration,
	granularity time.Duration,
	notBefore time.Time,
) []TimeSlot {

	if duration <= 0 || granularity <= 0 {
		return nil
	}

	loc := date.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	// Later windows override earlier ones on equal starts.
	starts := make(map[int64]time.Time)

	for _, w := range windows {
		winStart, ok1 := parseHM(w.StartTime)
		winEnd, ok2 := parseHM(w.EndTime)
		if !ok1 || !ok2 || !winStart.Before(winEnd) {
			continue
		}

		for cur := winStart; !cur.Add(duration).After(winEnd); cur = cur.Add(granularity) {
			if cur.Before(notBefore) {
				continue
			}

			slotStart := cur
			slotEnd := cur.Add(duration)

			conflict := false
			for _, b := range busy {
				if slotStart.Before(b.End) && slotEnd.After(b.Start) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}

			starts[slotStart.Unix()] = slotStart
		}
	}

	ordered := make([]time.Time, 0, len(starts))
	for _, s := range starts {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	slots := make([]TimeSlot, 0, len(ordered))
	for _, s := range ordered {
		slots = append(slots, TimeSlot{
			Start: s.Format("15:04"),
			End:   s.Add(duration).Format("15:04"),
		})
	}

	return slots
}

// WithinWindows reports whether [start, end) lies entirely inside one of
// the effective windows, regardless of existing reservations.
func WithinWindows(windows []models.AvailabilityWindow, start, end time.Time) bool {
	loc := start.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	for _, w := range windows {
		winStart, ok1 := parseHM(w.StartTime)
		winEnd, ok2 := parseHM(w.EndTime)
		if !ok1 || !ok2 {
			continue
		}
		if !start.Before(winStart) && !end.After(winEnd) {
			return true
		}
	}
	return false
}

// Contains reports whether a candidate start is in the computed set.
// Booking re-checks through this at the instant of writing.
func Contains(slots []TimeSlot, start time.Time) bool {
	hm := start.Format("15:04")
	for _, s := range slots {
		if s.Start == hm {
			return true
		}
	}
	return false
}
