package domain

import (
	"errors"
	"fmt"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusPaid           OrderStatus = "paid"
	StatusInProgress     OrderStatus = "inProgress"
	StatusOutForDelivery OrderStatus = "outForDelivery"
	StatusDelivered      OrderStatus = "delivered"
)

var ErrUnknownStatus = errors.New("unknown order status")

type StatusInfo struct {
	Value    OrderStatus `json:"value"`
	Label    string      `json:"label"`
	Progress int         `json:"progress"`
}

// orderStatuses is ordered by progress.
var orderStatuses = []StatusInfo{
	{Value: StatusPlaced, Label: "Placed", Progress: 0},
	{Value: StatusPaid, Label: "Awaiting Restaurant Confirmation", Progress: 25},
	{Value: StatusInProgress, Label: "In progress", Progress: 50},
	{Value: StatusOutForDelivery, Label: "Out for delivery", Progress: 75},
	{Value: StatusDelivered, Label: "Delivered", Progress: 100},
}

// Statuses returns the lifecycle stages in order.
func Statuses() []StatusInfo {
	out := make([]StatusInfo, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

func Describe(status OrderStatus) (StatusInfo, bool) {
	for _, info := range orderStatuses {
		if info.Value == status {
			return info, true
		}
	}
	return StatusInfo{}, false
}

func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if _, ok := Describe(status); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}
	return status, nil
}
