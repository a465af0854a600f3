package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME")
			for _, cat := range domain.Categories() {
				fmt.Fprintf(tw, "%s\t%s\n", cat.ID, cat.Name)
			}
			return tw.Flush()
		}),
	}
}

func (c *cli) productsCmd() *cobra.Command {
	var (
		search   string
		category string
		maxPrice int64
		page     int
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Search and filter the catalog",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, _ []string) error {
			criteria := domain.FilterCriteria{
				SearchTerm: strings.TrimSpace(search),
				Category:   domain.Category(strings.ToLower(category)),
				MaxPrice:   c.cfg.DefaultMaxPrice,
			}
			if cmd.Flags().Changed("max-price") {
				criteria.MaxPrice = maxPrice
			}
			if err := criteria.Validate(); err != nil {
				return err
			}

			v := catalog.NewView(c.core.Catalog, c.cfg.PageSize)
			v.SetCriteria(criteria)
			v.SetPage(page)
			return printBrowse(cmd.OutOrStdout(), v.Result())
		}),
	}

	cmd.Flags().StringVarP(&search, "query", "q", "", "match name or description, case-insensitive")
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryAll), "category id")
	cmd.Flags().Int64Var(&maxPrice, "max-price", domain.DefaultMaxPrice, "upper price bound, inclusive")
	cmd.Flags().IntVar(&page, "page", 1, "page number, clamped to the last page")
	return cmd
}

func (c *cli) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (#%d)\n", p.Name, p.ID)
			fmt.Fprintf(out, "Category: %s\n", p.Category.Name())
			if p.HasDiscount() {
				fmt.Fprintf(out, "Price:    %d (was %d, -%d%%)\n", p.Price, p.OriginalPrice, p.DiscountPercent())
			} else {
				fmt.Fprintf(out, "Price:    %d\n", p.Price)
			}
			fmt.Fprintf(out, "Rating:   %.1f (%d reviews)\n", p.Rating, p.Reviews)
			fmt.Fprintf(out, "Stock:    %s\n", stockLabel(p))
			if p.Description != "" {
				fmt.Fprintf(out, "\n%s\n", p.Description)
			}
			for _, f := range p.Features {
				fmt.Fprintf(out, "  - %s\n", f)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "In cart:     %d\n", c.core.Cart.Quantity(p.ID))
			fmt.Fprintf(out, "In wishlist: %t\n", c.core.Wishlist.IsInWishlist(p.ID))

			if related := c.core.Catalog.Related(p, catalog.DefaultRelatedLimit); len(related) > 0 {
				fmt.Fprintln(out, "\nRelated:")
				return printProducts(out, related)
			}
			return nil
		}),
	}
}

func printBrowse(w io.Writer, b catalog.Browse) error {
	if b.TotalItems == 0 {
		fmt.Fprintln(w, "No products found")
		return nil
	}
	if err := printProducts(w, b.Items); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nShowing %d-%d of %d products\n", b.FirstIndex, b.LastIndex, b.TotalItems)
	if b.TotalPages > 1 {
		labels := make([]string, len(b.PageNumbers))
		for i, l := range b.PageNumbers {
			labels[i] = l.String()
			if l.String() == strconv.Itoa(b.Page) {
				labels[i] = "[" + labels[i] + "]"
			}
		}
		fmt.Fprintf(w, "Page %d of %d: %s\n", b.Page, b.TotalPages, strings.Join(labels, " "))
	}
	return nil
}

func printProducts(w io.Writer, products []domain.Product) error {
	tw := newTable(w, "ID", "NAME", "CATEGORY", "PRICE", "STOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Category, p.Price, stockLabel(p))
	}
	return tw.Flush()
}

func stockLabel(p domain.Product) string {
	if !p.InStock || p.Stock <= 0 {
		return "out of stock"
	}
	return strconv.Itoa(p.Stock)
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func parseProductID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid product id %q", s))
	}
	return id, nil
}
