package orderbookv1

import (
	"fmt"

	"github.com/muhammadchandra19/stockmarket/pkg/errors"
)

// FillFailure records an owner that could not be notified during a pass.
type FillFailure struct {
	Symbol  string
	OrderID string
	OwnerID string
	Side    Side
	Err     error
}

// PublishFailure records a clearing price that could not be published.
type PublishFailure struct {
	Symbol string
	Err    error
}

// PassReport is the result of one matching pass.
type PassReport struct {
	PassID          string
	Crossings       []Crossing
	Failures        []FillFailure
	PublishFailures []PublishFailure
}

// HasFailures reports whether any notification or publication failed.
func (r *PassReport) HasFailures() bool {
	return len(r.Failures) > 0 || len(r.PublishFailures) > 0
}

// Err folds the recorded failures into a single error, nil when the pass was clean.
func (r *PassReport) Err() error {
	if !r.HasFailures() {
		return nil
	}

	baseErr := errors.NewBaseError()
	for _, f := range r.Failures {
		baseErr.AddErrorDetails(errors.NewErrorDetailsWithObject(
			fmt.Sprintf("notify %s order %s: %v", f.Side, f.OrderID, f.Err),
			string(errors.ErrNotificationFailed),
			f.Symbol,
			f.OwnerID,
		))
	}
	for _, f := range r.PublishFailures {
		baseErr.AddErrorDetails(errors.NewErrorDetails(
			fmt.Sprintf("publish clearing price: %v", f.Err),
			string(errors.ErrPublishFailed),
			f.Symbol,
		))
	}

	return baseErr
}
