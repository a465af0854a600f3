package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/domain"
)

func (c *cli) checkoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Price the cart and place an order",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "summary",
			Short: "Show subtotal, shipping, tax and total",
			Args:  cobra.NoArgs,
			RunE: c.run(func(cmd *cobra.Command, _ []string) error {
				printSummary(cmd.OutOrStdout(), c.core.Checkout.Summary())
				return nil
			}),
		},
		c.checkoutPlaceCmd(),
	)
	return cmd
}

func (c *cli) checkoutPlaceCmd() *cobra.Command {
	var d domain.CheckoutDetails

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an order for the cart contents and empty the cart",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			order, err := c.core.Checkout.PlaceOrder(cmd.Context(), d)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order %s\n", order.ID)
			printSummary(out, order.Summary)
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&d.FirstName, "first-name", "", "first name")
	f.StringVar(&d.LastName, "last-name", "", "last name")
	f.StringVar(&d.Email, "email", "", "email address")
	f.StringVar(&d.Phone, "phone", "", "phone number")
	f.StringVar(&d.Address, "address", "", "street address")
	f.StringVar(&d.City, "city", "", "city")
	f.StringVar(&d.State, "state", "", "state or region")
	f.StringVar(&d.ZipCode, "zip", "", "postal code")
	f.StringVar(&d.CardNumber, "card-number", "", "card number, digits only")
	f.StringVar(&d.Expiry, "expiry", "", "card expiry, MM/YY")
	f.StringVar(&d.CVV, "cvv", "", "card security code")
	return cmd
}

func printSummary(w io.Writer, s domain.OrderSummary) {
	shipping := s.Shipping.StringFixed(2)
	if s.FreeShipping() {
		shipping = "FREE"
	}
	fmt.Fprintf(w, "Subtotal: %s\n", s.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "Shipping: %s\n", shipping)
	fmt.Fprintf(w, "Tax:      %s\n", s.Tax.StringFixed(2))
	fmt.Fprintf(w, "Total:    %s\n", s.Total.StringFixed(2))
}
