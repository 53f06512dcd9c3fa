package reservation

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusLate      Status = "late"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// BlockingStatuses are the statuses whose reservations reserve capacity.
// Pending joins the set only when the salon opts in (PendingBlocksSlots).
func BlockingStatuses(pendingBlocks bool) []Status {
	s := []Status{StatusConfirmed, StatusLate, StatusCompleted}
	if pendingBlocks {
		s = append(s, StatusPending)
	}
	return s
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusLate,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Transition table
// ===============================

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow, StatusLate},
	StatusLate:      {StatusConfirmed, StatusNoShow, StatusCompleted},
}

// CanTransition checks the edge from -> to, including the late-marking
// latch: once lateMarked is set, entering late again is always rejected.
func CanTransition(from, to Status, lateMarked bool) error {
	if to == StatusLate && lateMarked {
		return httperr.ErrTransition(string(from), string(to))
	}

	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrTransition(string(from), string(to))
}

func InitialStatus(autoConfirm bool) Status {
	if autoConfirm {
		return StatusConfirmed
	}
	return StatusPending
}
