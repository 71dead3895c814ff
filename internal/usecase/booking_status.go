package usecase

import "fleet-admin/internal/data/entity"

// bookingTransitions lists the statuses each status may move to. Statuses
// with no entry are terminal.
var bookingTransitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending:  {entity.BookingStatusAccepted, entity.BookingStatusCancelled, entity.BookingStatusNoDriver},
	entity.BookingStatusAccepted: {entity.BookingStatusStarted, entity.BookingStatusCancelled, entity.BookingStatusNoDriver},
	entity.BookingStatusStarted:  {entity.BookingStatusCompleted, entity.BookingStatusCancelled},
	entity.BookingStatusNoDriver: {entity.BookingStatusPending, entity.BookingStatusCancelled},
}

func CanTransition(from, to entity.BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s in one step
func AllowedTransitions(s entity.BookingStatus) []entity.BookingStatus {
	next := bookingTransitions[s]
	out := make([]entity.BookingStatus, len(next))
	copy(out, next)
	return out
}

func IsTerminal(s entity.BookingStatus) bool {
	return len(bookingTransitions[s]) == 0
}

func CanAssign(s entity.BookingStatus) bool {
	return s == entity.BookingStatusPending || s == entity.BookingStatusAccepted
}

func CanCancel(s entity.BookingStatus) bool {
	return CanTransition(s, entity.BookingStatusCancelled)
}

func CanEditFare(s entity.BookingStatus) bool {
	return s != entity.BookingStatusCompleted && s != entity.BookingStatusCancelled
}
