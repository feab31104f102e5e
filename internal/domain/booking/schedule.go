package booking

import (
	"fmt"
	"time"
)

// Schedule is the fixed, ordered set of daily time labels ("HH:MM").
type Schedule struct {
	labels []string
	index  map[string]int
}

func NewSchedule(labels []string) (Schedule, error) {
	if len(labels) == 0 {
		return Schedule{}, fmt.Errorf("schedule: no time labels")
	}

	s := Schedule{
		labels: make([]string, 0, len(labels)),
		index:  make(map[string]int, len(labels)),
	}

	for i, l := range labels {
		if _, err := time.Parse("15:04", l); err != nil || len(l) != 5 {
			return Schedule{}, fmt.Errorf("schedule: invalid label %q", l)
		}
		if i > 0 && l <= labels[i-1] {
			return Schedule{}, fmt.Errorf("schedule: labels must be strictly ascending, got %q after %q", l, labels[i-1])
		}
		s.index[l] = i
		s.labels = append(s.labels, l)
	}

	return s, nil
}

func MustSchedule(labels []string) Schedule {
	s, err := NewSchedule(labels)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Schedule) Labels() []string {
	return append([]string(nil), s.labels...)
}

func (s Schedule) Contains(t string) bool {
	_, ok := s.index[t]
	return ok
}

// Next returns the label following t.
func (s Schedule) Next(t string) (string, bool) {
	i, ok := s.index[t]
	if !ok || i == len(s.labels)-1 {
		return "", false
	}
	return s.labels[i+1], true
}
