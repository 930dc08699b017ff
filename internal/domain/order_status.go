package domain

import "errors"

// ErrInvalidTransition signals a status update that is not the single
// allowed forward step.
var ErrInvalidTransition = errors.New("invalid order status transition")

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDelivered  OrderStatus = "delivered"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:    {},
	OrderStatusInProgress: {},
	OrderStatusDelivered:  {},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}

// nextOrderStatus holds the single allowed forward step per status,
// delivered is terminal.
var nextOrderStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusInProgress,
	OrderStatusInProgress: OrderStatusDelivered,
}

// CanTransitionTo reports whether target is the immediate next status:
// pending -> in_progress -> delivered, no skipping, no reverting.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := nextOrderStatus[s]
	return ok && next == target
}
