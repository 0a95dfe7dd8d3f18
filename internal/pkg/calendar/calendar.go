package calendar

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/teambition/rrule-go"
)

const dateLayout = "2006-01-02"

// Holiday is a non-working festival day.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Calendar decides which days of a month count as working days.
// Sundays and the first two Saturdays of every month are off, plus the injected holidays.
type Calendar struct {
	holidays map[string]string
}

func New(holidays []Holiday) *Calendar {
	c := &Calendar{holidays: make(map[string]string, len(holidays))}
	for _, h := range holidays {
		d, err := time.Parse(dateLayout, strings.TrimSpace(h.Date))
		if err != nil {
			continue
		}
		c.holidays[d.Format(dateLayout)] = h.Name
	}
	return c
}

// LoadFile reads a JSON array of holidays.
func LoadFile(path string) ([]Holiday, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var holidays []Holiday
	if err := json.Unmarshal(raw, &holidays); err != nil {
		return nil, fmt.Errorf("invalid holiday file %s: %w", path, err)
	}
	return holidays, nil
}

// ParseList parses "2025-01-26:Republic Day,2025-08-15" style lists.
func ParseList(s string) []Holiday {
	var holidays []Holiday
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		date, name, _ := strings.Cut(item, ":")
		holidays = append(holidays, Holiday{Date: strings.TrimSpace(date), Name: strings.TrimSpace(name)})
	}
	return holidays
}

func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[t.Format(dateLayout)]
	return ok
}

// Holidays lists the injected holidays that fall in the given month.
func (c *Calendar) Holidays(year int, month time.Month) []Holiday {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	var out []Holiday
	for date, name := range c.holidays {
		if strings.HasPrefix(date, prefix) {
			out = append(out, Holiday{Date: date, Name: name})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// OffDays returns every non-working date of the month keyed by date with the reason.
func (c *Calendar) OffDays(year int, month time.Month) (map[string]string, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	sundays, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.SU},
		Dtstart:   first,
		Until:     last,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build sunday rule: %w", err)
	}

	saturdays, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.MONTHLY,
		Byweekday: []rrule.Weekday{rrule.SA},
		Bysetpos:  []int{1, 2},
		Dtstart:   first,
		Until:     last,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build saturday rule: %w", err)
	}

	off := make(map[string]string)
	for _, h := range c.Holidays(year, month) {
		off[h.Date] = h.Name
	}
	for _, d := range saturdays.All() {
		off[d.Format(dateLayout)] = "Saturday off"
	}
	for _, d := range sundays.All() {
		off[d.Format(dateLayout)] = "Sunday"
	}
	return off, nil
}

// WorkingDays counts the working days of the month.
func (c *Calendar) WorkingDays(year int, month time.Month) (int, error) {
	off, err := c.OffDays(year, month)
	if err != nil {
		return 0, err
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	return days - len(off), nil
}

// IsWorkingDay reports whether t (by calendar date) is a working day.
func (c *Calendar) IsWorkingDay(t time.Time) (bool, error) {
	if c.IsHoliday(t) {
		return false, nil
	}
	off, err := c.OffDays(t.Year(), t.Month())
	if err != nil {
		return false, err
	}
	_, isOff := off[t.Format(dateLayout)]
	return !isOff, nil
}
