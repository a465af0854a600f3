package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Checkout pricing rules.
var (
	FreeShippingAbove = decimal.NewFromInt(5000)
	ShippingFee       = decimal.NewFromInt(100)
	TaxRate           = decimal.RequireFromString("0.18")
)

// OrderSummary is the price breakdown of a cart at checkout.
type OrderSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// FreeShipping reports whether the shipping fee was waived.
func (s OrderSummary) FreeShipping() bool {
	return s.Shipping.IsZero()
}

// Summarize prices lines: shipping is waived when the subtotal exceeds 5000,
// tax is 18% of the subtotal. Amounts are rounded to 2 places.
func Summarize(lines []CartLine) OrderSummary {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.Subtotal()
	}
	sub := decimal.NewFromInt(subtotal)

	shipping := ShippingFee
	if sub.GreaterThan(FreeShippingAbove) {
		shipping = decimal.Zero
	}
	tax := sub.Mul(TaxRate).Round(2)

	return OrderSummary{
		Subtotal: sub,
		Shipping: shipping,
		Tax:      tax,
		Total:    sub.Add(shipping).Add(tax).Round(2),
	}
}

// CheckoutDetails is the shipping and payment form submitted at checkout.
type CheckoutDetails struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=7,max=20"`
	Address    string `json:"address" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	ZipCode    string `json:"zip_code" validate:"required,max=20"`
	CardNumber string `json:"card_number" validate:"required,numeric,min=12,max=19"`
	Expiry     string `json:"expiry" validate:"required,card_expiry"`
	CVV        string `json:"cvv" validate:"required,numeric,min=3,max=4"`
}

// Customer strips the payment fields from the details.
func (d CheckoutDetails) Customer() Customer {
	return Customer{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Address:   d.Address,
		City:      d.City,
		State:     d.State,
		ZipCode:   d.ZipCode,
	}
}

// Customer is the shipping contact recorded on an order. It never holds card data.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// Order is a placed (simulated) order.
type Order struct {
	ID       string       `json:"id"`
	Lines    []CartLine   `json:"lines"`
	Summary  OrderSummary `json:"summary"`
	Customer Customer     `json:"customer"`
	PlacedAt time.Time    `json:"placed_at"`
}

// OrderID formats the identifier of an order placed at t.
func OrderID(t time.Time) string {
	return fmt.Sprintf("ORD-%d", t.UnixMilli())
}
