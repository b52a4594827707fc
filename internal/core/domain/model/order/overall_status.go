package order

import (
	"fmt"
	"strings"

	"vendorhub/internal/pkg/errs"
)

// OverallStatus is the order-wide status derived from the vendor portions.
//
// The progression is monotonic:
//
//	PendingConfirmation -> Confirmed -> InProgress -> ReadyForPickup -> Completed
//
// A transition may skip forward but never go back. Cancelled is reachable from
// any non-terminal status. Completed and Cancelled are terminal and make the
// whole order not updatable.
type OverallStatus int

const (
	OverallUnknown OverallStatus = iota
	OverallPendingConfirmation
	OverallConfirmed
	OverallInProgress
	OverallReadyForPickup
	OverallCompleted
	OverallCancelled
)

func getOverallStatusStrings() map[OverallStatus]string {
	return map[OverallStatus]string{
		OverallUnknown:             "Unknown",
		OverallPendingConfirmation: "Pending Confirmation",
		OverallConfirmed:           "Confirmed",
		OverallInProgress:          "In Progress",
		OverallReadyForPickup:      "Ready for Pickup",
		OverallCompleted:           "Completed",
		OverallCancelled:           "Cancelled",
	}
}

// ActiveOverallStatuses are the statuses listed in a vendor's active orders.
func ActiveOverallStatuses() []OverallStatus {
	return []OverallStatus{
		OverallPendingConfirmation,
		OverallConfirmed,
		OverallInProgress,
		OverallReadyForPickup,
	}
}

// ParseOverallStatus accepts the display name case insensitively.
func ParseOverallStatus(s string) (OverallStatus, error) {
	needle := strings.TrimSpace(s)
	for status, name := range getOverallStatusStrings() {
		if status != OverallUnknown && strings.EqualFold(name, needle) {
			return status, nil
		}
	}
	return OverallUnknown, errs.NewValueIsInvalidErrorWithCause("overallStatus",
		fmt.Errorf("%q is not an order status", s))
}

func (s OverallStatus) Validate() error {
	if s <= OverallUnknown || s > OverallCancelled {
		return errs.NewValueIsInvalidErrorWithCause("overallStatus", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s OverallStatus) String() string {
	if str, ok := getOverallStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the order accepts no more updates.
func (s OverallStatus) IsTerminal() bool {
	return s == OverallCompleted || s == OverallCancelled
}

// IsActive reports whether the order belongs in a vendor's active list.
func (s OverallStatus) IsActive() bool {
	return s.Validate() == nil && !s.IsTerminal()
}

// ValidateUpdatable fails with errs.ErrInvalidTransition once the order is
// Completed or Cancelled.
func (s OverallStatus) ValidateUpdatable() error {
	if s.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause("order status", s.String(), s.String(),
			fmt.Errorf("order is %s and can no longer be updated", s))
	}
	return nil
}

// TransitionTo returns next when the move keeps the progression monotonic.
func (s OverallStatus) TransitionTo(next OverallStatus) (OverallStatus, error) {
	if err := next.Validate(); err != nil {
		return OverallUnknown, err
	}
	if err := s.ValidateUpdatable(); err != nil {
		return OverallUnknown, err
	}
	if next == OverallCancelled || next > s {
		return next, nil
	}
	return OverallUnknown, errs.NewInvalidTransitionError("order status", s.String(), next.String())
}
