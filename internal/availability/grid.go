package availability

import (
	"fmt"
	"slices"
	"time"

	"github.com/inkhouse/tattoo-booking-backend/internal/booking"
)

// DefaultSlots is the studio's opening-hours grid. 13:00 is the lunch break.
var DefaultSlots = []string{"10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}

// Grid is the ordered list of daily slot start labels (zero-padded HH:mm, UTC).
type Grid []string

func DefaultGrid() Grid {
	return Grid(slices.Clone(DefaultSlots))
}

// ParseGrid validates labels and returns them sorted with duplicates removed.
func ParseGrid(labels []string) (Grid, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("slot grid is empty")
	}
	out := make(Grid, 0, len(labels))
	for _, l := range labels {
		t, err := time.Parse(booking.SlotLayout, l)
		if err != nil || t.Format(booking.SlotLayout) != l {
			return nil, fmt.Errorf("invalid slot %q: want zero-padded HH:mm", l)
		}
		out = append(out, l)
	}
	// Zero-padded labels sort chronologically as strings.
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (g Grid) Contains(label string) bool {
	return slices.Contains(g, label)
}

// At returns the UTC start time of label on day's date.
func (g Grid) At(day time.Time, label string) (time.Time, error) {
	t, err := time.Parse(booking.SlotLayout, label)
	if err != nil {
		return time.Time{}, err
	}
	start, _ := booking.DayBounds(day)
	return start.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}
