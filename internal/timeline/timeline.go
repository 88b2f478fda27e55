// Package timeline is the registry of regulatory milestones and the pandemic
// interval used to annotate and partition yearly series.
package timeline

import (
	"sort"
	"strings"
	"time"
)

// Milestone is a named regulation entering into force.
type Milestone struct {
	Name string
	Date time.Time
}

// X is the fractional-year position of the milestone.
func (m Milestone) X() float64 {
	return FractionalYear(m.Date)
}

// Label is the milestone name with its year, e.g. "GDPR (2018)".
func (m Milestone) Label() string {
	return m.Name + " (" + m.Date.Format("2006") + ")"
}

// ShortName is the first word of the name in lower case, used in file names.
func (m Milestone) ShortName() string {
	fields := strings.Fields(m.Name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Interval is a bounded period drawn as a shaded band.
type Interval struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Span returns the fractional-year bounds of the interval.
func (iv Interval) Span() (start, end float64) {
	return FractionalYear(iv.Start), FractionalYear(iv.End)
}

// Timeline is an immutable set of milestones plus one shaded interval.
type Timeline struct {
	milestones []Milestone
	interval   Interval
}

// New builds a timeline with milestones ordered by date.
func New(interval Interval, milestones ...Milestone) Timeline {
	ms := make([]Milestone, len(milestones))
	copy(ms, milestones)
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].Date.Before(ms[j].Date)
	})
	return Timeline{milestones: ms, interval: interval}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// GDPR is the General Data Protection Regulation.
func GDPR() Milestone { return Milestone{Name: "GDPR", Date: date(2018, time.May, 25)} }

// DSA is the Digital Services Act.
func DSA() Milestone { return Milestone{Name: "DSA", Date: date(2022, time.November, 16)} }

// DMA is the Digital Markets Act.
func DMA() Milestone { return Milestone{Name: "DMA", Date: date(2023, time.May, 2)} }

// AIAct is the EU Artificial Intelligence Act.
func AIAct() Milestone { return Milestone{Name: "AI Act", Date: date(2025, time.February, 2)} }

// HB1181 is Texas House Bill 1181. It is not part of the EU timeline.
func HB1181() Milestone {
	return Milestone{Name: "House Bill 1181", Date: date(2023, time.September, 1)}
}

// Pandemic is the COVID-19 pandemic interval.
func Pandemic() Interval {
	return Interval{Name: "COVID-19 Pandemic", Start: date(2020, time.March, 11), End: date(2023, time.May, 1)}
}

// Default returns the EU digital regulation timeline.
func Default() Timeline {
	return New(Pandemic(), GDPR(), DSA(), DMA(), AIAct())
}

// Milestones returns a copy of every milestone in date order.
func (t Timeline) Milestones() []Milestone {
	out := make([]Milestone, len(t.milestones))
	copy(out, t.milestones)
	return out
}

// Interval returns the shaded interval.
func (t Timeline) Interval() Interval {
	return t.interval
}

// Since returns milestones whose year is at or after startYear.
func (t Timeline) Since(startYear int) []Milestone {
	var out []Milestone
	for _, m := range t.milestones {
		if m.Date.Year() >= startYear {
			out = append(out, m)
		}
	}
	return out
}

// Lookup finds a milestone by name.
func (t Timeline) Lookup(name string) (Milestone, bool) {
	for _, m := range t.milestones {
		if m.Name == name {
			return m, true
		}
	}
	return Milestone{}, false
}

// FractionalYear places a date between integer year ticks as
// year + (month-1)/12. The day of month is ignored.
func FractionalYear(t time.Time) float64 {
	return float64(t.Year()) + float64(t.Month()-1)/12
}
