package domain

import "fmt"

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

type OrderAction string

const (
	ActionProcess  OrderAction = "process"
	ActionComplete OrderAction = "complete"
	ActionCancel   OrderAction = "cancel"
)

var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(raw); s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return s, nil
	}
	return "", &ValidationError{Field: "status", Message: fmt.Sprintf("invalid status %q", raw)}
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Target returns the status an action moves an order in status from to.
func (a OrderAction) Target(from OrderStatus) (OrderStatus, error) {
	var to OrderStatus
	switch a {
	case ActionProcess:
		to = StatusProcessing
	case ActionComplete:
		to = StatusCompleted
	case ActionCancel:
		to = StatusCancelled
	default:
		return "", fmt.Errorf("unknown order action %q", a)
	}
	if a == ActionProcess && from != StatusPending {
		return "", fmt.Errorf("%w: order cannot be processed at this stage", ErrInvalidTransition)
	}
	if a == ActionComplete && from != StatusProcessing {
		return "", fmt.Errorf("%w: order cannot be completed at this stage", ErrInvalidTransition)
	}
	if !CanTransition(from, to) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return to, nil
}
