package order

import (
	"fmt"
	"strings"

	"vendorhub/internal/pkg/errs"
)

// PortionStatus is the vendor-local fulfillment state of one portion.
//
// State transitions:
//
//	New ──┬──> Preparing ──> ReadyForPickup ──> PickedUp
//	      │
//	      └──> Cancelled
//
// PickedUp and Cancelled are terminal. Every other edge, including skipping a
// step (New -> ReadyForPickup), is rejected with errs.ErrInvalidTransition.
type PortionStatus int

const (
	// PortionUnknown catches uninitialized values.
	PortionUnknown PortionStatus = iota

	// PortionNew is the status every portion is created with.
	PortionNew

	// PortionPreparing means the vendor accepted the portion.
	PortionPreparing

	// PortionReadyForPickup means the goods wait for the courier or customer.
	PortionReadyForPickup

	// PortionPickedUp is terminal: pickup was confirmed.
	PortionPickedUp

	// PortionCancelled is terminal: the vendor rejected the portion.
	PortionCancelled
)

func getPortionStatusStrings() map[PortionStatus]string {
	return map[PortionStatus]string{
		PortionUnknown:        "Unknown",
		PortionNew:            "New",
		PortionPreparing:      "Preparing",
		PortionReadyForPickup: "Ready for Pickup",
		PortionPickedUp:       "Picked Up",
		PortionCancelled:      "Cancelled",
	}
}

// getPortionTransitions lists the legal edges of the portion state machine.
func getPortionTransitions() map[PortionStatus][]PortionStatus {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing edges
	return map[PortionStatus][]PortionStatus{
		PortionNew:            {PortionPreparing, PortionCancelled},
		PortionPreparing:      {PortionReadyForPickup},
		PortionReadyForPickup: {PortionPickedUp},
	}
}

// ParsePortionStatus accepts the display name ("Ready for Pickup") case
// insensitively, as submitted by the presentation layer.
func ParsePortionStatus(s string) (PortionStatus, error) {
	needle := strings.TrimSpace(s)
	for status, name := range getPortionStatusStrings() {
		if status != PortionUnknown && strings.EqualFold(name, needle) {
			return status, nil
		}
	}
	return PortionUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a portion status", s))
}

// Validate rejects PortionUnknown and out-of-range values.
func (s PortionStatus) Validate() error {
	if s <= PortionUnknown || s > PortionCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid portion status", s))
	}
	return nil
}

func (s PortionStatus) String() string {
	if str, ok := getPortionStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s PortionStatus) IsTerminal() bool {
	return s == PortionPickedUp || s == PortionCancelled
}

// CanTransitionTo checks the edge s -> next without performing it.
func (s PortionStatus) CanTransitionTo(next PortionStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	for _, allowed := range getPortionTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewInvalidTransitionError("portion status", s.String(), next.String())
}

// TransitionTo returns next when the edge is legal.
func (s PortionStatus) TransitionTo(next PortionStatus) (PortionStatus, error) {
	if err := s.CanTransitionTo(next); err != nil {
		return PortionUnknown, err
	}
	return next, nil
}

// Accept moves New -> Preparing.
func (s PortionStatus) Accept() (PortionStatus, error) {
	return s.TransitionTo(PortionPreparing)
}

// Reject moves New -> Cancelled.
func (s PortionStatus) Reject() (PortionStatus, error) {
	return s.TransitionTo(PortionCancelled)
}

// MarkReady moves Preparing -> Ready for Pickup.
func (s PortionStatus) MarkReady() (PortionStatus, error) {
	return s.TransitionTo(PortionReadyForPickup)
}

// ConfirmPickup moves Ready for Pickup -> Picked Up.
func (s PortionStatus) ConfirmPickup() (PortionStatus, error) {
	return s.TransitionTo(PortionPickedUp)
}
