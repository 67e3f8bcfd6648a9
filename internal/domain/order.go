package domain

import "time"

// OrderSnapshot is the immutable capture handed to the formatter at checkout.
type OrderSnapshot struct {
	Lines       []CartLine
	Address     DeliveryAddress
	Total       Money
	SubmittedAt time.Time
}

// NewOrderSnapshot copies the cart lines so later cart mutations cannot leak in.
func NewOrderSnapshot(cart Cart, address DeliveryAddress, at time.Time) OrderSnapshot {
	lines := make([]CartLine, len(cart.Lines))
	for i, l := range cart.Lines {
		addOns := make([]MenuAddOn, len(l.AddOns))
		copy(addOns, l.AddOns)
		lines[i] = CartLine{Item: l.Item, AddOns: addOns, Quantity: l.Quantity}
	}

	return OrderSnapshot{
		Lines:       lines,
		Address:     address.Normalize(),
		Total:       cart.Total(),
		SubmittedAt: at,
	}
}
