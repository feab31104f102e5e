package cache

import "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"

type wireEntry struct {
	Kind        booking.Kind         `json:"kind"`
	Appointment *booking.Appointment `json:"appointment,omitempty"`
	Block       *booking.Block       `json:"block,omitempty"`
}

func toWire(entries []booking.Entry) []wireEntry {
	out := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		switch v := e.(type) {
		case *booking.Appointment:
			out = append(out, wireEntry{Kind: booking.KindAppointment, Appointment: v})
		case *booking.Block:
			out = append(out, wireEntry{Kind: booking.KindBlock, Block: v})
		}
	}
	return out
}

func fromWire(wire []wireEntry) []booking.Entry {
	out := make([]booking.Entry, 0, len(wire))
	for _, w := range wire {
		switch {
		case w.Kind == booking.KindBlock && w.Block != nil:
			out = append(out, w.Block)
		case w.Appointment != nil:
			out = append(out, w.Appointment)
		}
	}
	return out
}
