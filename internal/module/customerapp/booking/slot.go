package booking

import (
	"net/http"
	"time"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/catalog"
	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

const (
	slotDayLayout  = "2006-01-02"
	slotTimeLayout = "15:04"
)

// Slot is one timetable entry for a branch on a given day.
type Slot struct {
	Time  string `json:"time"`
	Taken bool   `json:"taken"`
	Past  bool   `json:"past"`
}

// SlotKey identifies one bookable slot across branches. All times are UTC.
func SlotKey(day, hhmm, branch string) string {
	return day + "|" + hhmm + "|" + branch
}

// SlotStart resolves a day and timetable time into the slot's UTC start.
func SlotStart(day, hhmm string) (time.Time, error) {
	start, err := time.Parse(slotDayLayout+" "+slotTimeLayout, day+" "+hhmm)
	if err != nil {
		return time.Time{}, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "date or time slot is not in a recognized format")
	}

	return start, nil
}

// BuildSlots marks every timetable slot for one branch and day. A slot is
// taken when a non-cancelled booking already starts at it, and past when its
// start is not after now.
func BuildSlots(day string, existing []Booking, now time.Time) ([]Slot, error) {
	taken := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		if b.Status == StatusCancelled {
			continue
		}
		taken[b.StartAt.UTC().Format(slotTimeLayout)] = struct{}{}
	}

	slots := make([]Slot, 0, len(catalog.TimeSlots))
	for _, hhmm := range catalog.TimeSlots {
		start, err := SlotStart(day, hhmm)
		if err != nil {
			return nil, err
		}

		_, isTaken := taken[hhmm]
		slots = append(slots, Slot{
			Time:  hhmm,
			Taken: isTaken,
			Past:  !start.After(now),
		})
	}

	return slots, nil
}
