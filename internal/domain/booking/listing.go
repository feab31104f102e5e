package booking

import "sort"

// SortUpcoming orders by date then time, ascending.
func SortUpcoming(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Cell(), entries[j].Cell()
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return tieBreak(entries[i], entries[j])
	})
}

// SortHistory orders by date then time, descending.
func SortHistory(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Cell(), entries[j].Cell()
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.Time != b.Time {
			return a.Time > b.Time
		}
		return tieBreak(entries[i], entries[j])
	})
}

func tieBreak(a, b Entry) bool {
	if a.Cell().ProfID != b.Cell().ProfID {
		return a.Cell().ProfID < b.Cell().ProfID
	}
	return a.EntryID() < b.EntryID()
}

// Dedup keeps one record per pair, at the position of the first record met.
// The kept record is the one carrying Time2, so a pair always renders as
// "09:00+10:00" whichever half the ordering put first.
func Dedup(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	pos := make(map[string]int)

	for _, e := range entries {
		ap, ok := e.(*Appointment)
		if !ok || ap.PairID == "" {
			out = append(out, e)
			continue
		}

		if i, seen := pos[ap.PairID]; seen {
			if ap.Time2 != "" {
				out[i] = e
			}
			continue
		}

		pos[ap.PairID] = len(out)
		out = append(out, e)
	}

	return out
}

// SplitByDay separates records on or after today from past ones, each
// sorted and deduplicated.
func SplitByDay(entries []Entry, today string) (upcoming, history []Entry) {
	for _, e := range entries {
		if e.Cell().Date >= today {
			upcoming = append(upcoming, e)
		} else {
			history = append(history, e)
		}
	}

	SortUpcoming(upcoming)
	SortHistory(history)

	return Dedup(upcoming), Dedup(history)
}
