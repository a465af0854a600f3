package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func (c *cli) cartCmd() *cobra.Command {
	show := c.run(func(cmd *cobra.Command, _ []string) error {
		return printCart(cmd.OutOrStdout(), c.core.Cart.Lines())
	})

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the cart",
		Args:  cobra.NoArgs,
		RunE:  show,
	}
	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show the cart", Args: cobra.NoArgs, RunE: show},
		c.cartAddCmd(),
		c.cartUpdateCmd(),
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a product from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: c.run(func(cmd *cobra.Command, args []string) error {
				id, err := parseProductID(args[0])
				if err != nil {
					return err
				}
				c.core.Cart.RemoveFromCart(cmd.Context(), id)
				return printCart(cmd.OutOrStdout(), c.core.Cart.Lines())
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: c.run(func(cmd *cobra.Command, _ []string) error {
				c.core.Cart.Clear(cmd.Context())
				return printCart(cmd.OutOrStdout(), c.core.Cart.Lines())
			}),
		},
	)
	return cmd
}

func (c *cli) cartAddCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a product to the cart, up to its stock",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			p, err := c.core.Catalog.Get(id)
			if err != nil {
				return err
			}
			added, err := service.AddWithinStock(cmd.Context(), c.core.Cart, p, quantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s\n", added, p.Name)
			return printCart(cmd.OutOrStdout(), c.core.Cart.Lines())
		}),
	}
	cmd.Flags().IntVar(&quantity, "qty", 1, "units to add")
	return cmd
}

func (c *cli) cartUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <quantity>",
		Short: "Set a line quantity; 0 removes the line",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseProductID(args[0])
			if err != nil {
				return err
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil || quantity < 0 {
				return apperrors.InvalidInput(fmt.Sprintf("invalid quantity %q", args[1]))
			}
			if p, err := c.core.Catalog.Get(id); err == nil {
				quantity = service.ClampToStock(p, quantity)
			}
			c.core.Cart.UpdateQuantity(cmd.Context(), id, quantity)
			return printCart(cmd.OutOrStdout(), c.core.Cart.Lines())
		}),
	}
}

func printCart(w io.Writer, lines []domain.CartLine) error {
	if len(lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return nil
	}

	var (
		count int
		total int64
	)
	tw := newTable(w, "ID", "NAME", "PRICE", "QTY", "SUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", l.ID, l.Name, l.Price, l.Quantity, l.Subtotal())
		count += l.Quantity
		total += l.Subtotal()
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nItems: %d  Total: %d\n", count, total)
	return nil
}
