package order

import (
	"fmt"
	"strings"

	"vendorhub/internal/pkg/errs"
)

// PaymentStatus is owned by the payment gateway integration. The fulfillment
// core stores and returns it but never changes it.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPaid
	PaymentPending
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "Unknown",
		PaymentPaid:    "Paid",
		PaymentPending: "Pending",
		PaymentFailed:  "Failed",
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	needle := strings.TrimSpace(s)
	for status, name := range getPaymentStatusStrings() {
		if status != PaymentUnknown && strings.EqualFold(name, needle) {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a payment status", s))
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
