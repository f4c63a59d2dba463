package content

import (
	"slices"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// Grouper accumulates items per date, keeping the order in which dates and
// items were first seen.
type Grouper struct {
	order  []string
	byDate map[string][]Item
}

func NewGrouper() *Grouper {
	return &Grouper{byDate: make(map[string][]Item)}
}

func (g *Grouper) Add(date string, item Item) {
	if _, ok := g.byDate[date]; !ok {
		g.order = append(g.order, date)
	}
	g.byDate[date] = append(g.byDate[date], item)
}

// AddSequence merges every collection of seq, appending to existing dates.
func (g *Grouper) AddSequence(seq Sequence) {
	for _, c := range seq {
		if _, ok := g.byDate[c.Date]; !ok {
			g.order = append(g.order, c.Date)
			g.byDate[c.Date] = nil
		}
		g.byDate[c.Date] = append(g.byDate[c.Date], c.Items...)
	}
}

func (g *Grouper) Len() int {
	return len(g.order)
}

// Sequence returns the grouped collections sorted most recent first.
func (g *Grouper) Sequence() Sequence {
	seq := make(Sequence, 0, len(g.order))
	for _, date := range g.order {
		items := make([]Item, len(g.byDate[date]))
		copy(items, g.byDate[date])
		seq = append(seq, DatedCollection{Date: date, Items: items})
	}
	SortDescending(seq)
	return seq
}

// SortDescending orders seq by parsed date, newest first. Unparseable dates
// sort after every valid one, ordered by their raw text.
func SortDescending(seq Sequence) {
	slices.SortStableFunc(seq, func(a, b DatedCollection) int {
		ta, errA := ParseDate(a.Date)
		tb, errB := ParseDate(b.Date)
		switch {
		case errA == nil && errB == nil:
			return tb.Compare(ta)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		default:
			return strings.Compare(b.Date, a.Date)
		}
	})
}

// ParseDate accepts a plain ISO date or a full RFC 3339 timestamp and
// returns the calendar day at UTC midnight.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(isoDateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
