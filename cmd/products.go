package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/go-arrower/catalog"
	"github.com/go-arrower/catalog/product"
)

var ErrInvalidID = errors.New("invalid product id")

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "list",
		Short:                 "List all products",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: c.run(func(cmd *cobra.Command, _ []string, dc *catalog.Container) error {
			views, err := dc.GetAllProducts.H(cmd.Context(), product.GetAllProductsQuery{})
			if err != nil {
				return err //nolint:wrapcheck // error is shown to the user as is
			}

			for _, v := range views {
				if err := printJSON(cmd.OutOrStdout(), v); err != nil {
					return err
				}
			}

			return nil
		}),
	}
}

func (c *cli) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "get <id>",
		Short:                 "Show a product",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: c.run(func(cmd *cobra.Command, args []string, dc *catalog.Container) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			view, err := dc.GetProduct.H(cmd.Context(), product.GetProductQuery{ID: id})
			if err != nil {
				return err //nolint:wrapcheck // error is shown to the user as is
			}

			return printJSON(cmd.OutOrStdout(), view)
		}),
	}
}

func (c *cli) newAddCmd() *cobra.Command {
	var p product.Product

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new product",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, _ []string, dc *catalog.Container) error {
			added, err := dc.AddProduct.H(cmd.Context(), product.AddProductRequest{Product: p})
			if err != nil {
				return err //nolint:wrapcheck // error is shown to the user as is
			}

			return printJSON(cmd.OutOrStdout(), added)
		}),
	}

	productFlags(cmd, &p)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (c *cli) newUpdateCmd() *cobra.Command {
	var changes product.Product

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Long:  "Update a product. Only the given flags are changed, all other values are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string, dc *catalog.Container) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			found, err := dc.Repository.FindByID(cmd.Context(), id)
			if err != nil {
				return err //nolint:wrapcheck // error is shown to the user as is
			}

			if len(found) == 0 {
				return fmt.Errorf("%w: product %s", product.ErrEmptyResult, id)
			}

			p := found[0]
			flags := cmd.Flags()

			if flags.Changed("name") {
				p.Name = changes.Name
			}

			if flags.Changed("price") {
				p.Price = changes.Price
			}

			if flags.Changed("description") {
				p.Description = changes.Description
			}

			if flags.Changed("stock") {
				p.Stock = changes.Stock
			}

			view, err := dc.UpdateProduct.H(cmd.Context(), product.UpdateProductRequest{Product: p})
			if err != nil {
				return err //nolint:wrapcheck // error is shown to the user as is
			}

			return printJSON(cmd.OutOrStdout(), view)
		}),
	}

	productFlags(cmd, &changes)

	return cmd
}

func (c *cli) newDeleteCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Long:  "Delete a product. Deleting a product that does not exist succeeds, unless --strict is given.",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string, dc *catalog.Container) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if strict {
				if err = dc.RemoveProduct.H(cmd.Context(), product.RemoveProductCommand{ID: id}); err != nil {
					return err //nolint:wrapcheck // error is shown to the user as is
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Product "+id.String()+" deleted successfully")

				return err //nolint:wrapcheck // write to stdout
			}

			msg, err := dc.DeleteProduct.H(cmd.Context(), product.DeleteProductRequest{ID: id})
			if err != nil {
				return err //nolint:wrapcheck // error is shown to the user as is
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)

			return err //nolint:wrapcheck // write to stdout
		}),
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail if the product does not exist")

	return cmd
}

func productFlags(cmd *cobra.Command, p *product.Product) {
	cmd.Flags().StringVar(&p.Name, "name", "", "name of the product")
	cmd.Flags().Float64Var(&p.Price, "price", 0, "price of the product")
	cmd.Flags().StringVar(&p.Description, "description", "", "description of the product")
	cmd.Flags().IntVar(&p.Stock, "stock", 0, "number of products in stock")
}

func parseID(arg string) (product.ID, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidID, arg)
	}

	return product.ID(id), nil
}
