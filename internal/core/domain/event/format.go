package event

import (
	"fmt"
	"time"
)

// FormattedTime is the display form of an event start time in the schedule
// time zone.
type FormattedTime struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Full      string `json:"full"`
	FullDate  string `json:"fullDate"`
	DateKey   string `json:"dateKey"`
	Timestamp int64  `json:"timestamp"`
	ISO       string `json:"iso"`
}

var weekdaysVI = [...]string{"Chủ Nhật", "Thứ Hai", "Thứ Ba", "Thứ Tư", "Thứ Năm", "Thứ Sáu", "Thứ Bảy"}

// FormatTime renders startTime in loc. An unparseable startTime only fills ISO.
func FormatTime(startTime string, loc *time.Location) FormattedTime {
	t, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return FormattedTime{ISO: startTime}
	}
	local := t.In(loc)
	date := local.Format("02/01/2006")
	clock := local.Format("15:04")
	return FormattedTime{
		Date:      date,
		Time:      clock,
		Full:      date + " " + clock,
		FullDate:  fmt.Sprintf("%s, %d tháng %d, %d", weekdaysVI[local.Weekday()], local.Day(), int(local.Month()), local.Year()),
		DateKey:   date,
		Timestamp: t.UnixMilli(),
		ISO:       startTime,
	}
}

// View is an event decorated for display.
type View struct {
	Event
	FormattedTime FormattedTime `json:"formattedTime"`
	StateLabel    string        `json:"stateLabel"`
}

func NewView(e Event, loc *time.Location) View {
	return View{Event: e, FormattedTime: FormatTime(e.StartTime, loc), StateLabel: e.State.Label()}
}

// DayGroup holds the events of one display day.
type DayGroup struct {
	DateKey     string `json:"dateKey"`
	DisplayDate string `json:"displayDate"`
	Events      []View `json:"events"`
}

// GroupByDate buckets views by display day, preserving input order.
func GroupByDate(views []View) []DayGroup {
	idx := make(map[string]int)
	var groups []DayGroup
	for _, v := range views {
		i, ok := idx[v.FormattedTime.DateKey]
		if !ok {
			i = len(groups)
			idx[v.FormattedTime.DateKey] = i
			groups = append(groups, DayGroup{DateKey: v.FormattedTime.DateKey, DisplayDate: v.FormattedTime.FullDate})
		}
		groups[i].Events = append(groups[i].Events, v)
	}
	return groups
}
