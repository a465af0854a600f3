package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/domain"
)

func (c *cli) wishlistCmd() *cobra.Command {
	show := c.run(func(cmd *cobra.Command, _ []string) error {
		return printWishlist(cmd.OutOrStdout(), c.core.Wishlist.Items())
	})

	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show and edit the wishlist",
		Args:  cobra.NoArgs,
		RunE:  show,
	}
	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show the wishlist", Args: cobra.NoArgs, RunE: show},
		&cobra.Command{
			Use:   "add <id>",
			Short: "Save a product to the wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: c.withProduct(func(cmd *cobra.Command, p domain.Product) error {
				c.core.Wishlist.Add(cmd.Context(), p)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Add the product if absent, remove it otherwise",
			Args:  cobra.ExactArgs(1),
			RunE: c.withProduct(func(cmd *cobra.Command, p domain.Product) error {
				c.core.Wishlist.Toggle(cmd.Context(), p)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a product from the wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: c.run(func(cmd *cobra.Command, args []string) error {
				id, err := parseProductID(args[0])
				if err != nil {
					return err
				}
				c.core.Wishlist.Remove(cmd.Context(), id)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the wishlist",
			Args:  cobra.NoArgs,
			RunE: c.run(func(cmd *cobra.Command, _ []string) error {
				c.core.Wishlist.Clear(cmd.Context())
				return nil
			}),
		},
	)
	return cmd
}

// withProduct resolves the first argument to a catalog product before fn runs.
func (c *cli) withProduct(fn func(cmd *cobra.Command, p domain.Product) error) func(*cobra.Command, []string) error {
	return c.run(func(cmd *cobra.Command, args []string) error {
		id, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		p, err := c.core.Catalog.Get(id)
		if err != nil {
			return err
		}
		return fn(cmd, p)
	})
}

func printWishlist(w io.Writer, items []domain.Product) error {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your wishlist is empty")
		return nil
	}
	tw := newTable(w, "ID", "NAME", "PRICE", "STOCK")
	for _, p := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.ID, p.Name, p.Price, stockLabel(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d saved\n", len(items))
	return nil
}
