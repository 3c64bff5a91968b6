package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/go-arrower/catalog"
)

// ContainerFunc creates the dependencies a command works with.
type ContainerFunc func(ctx context.Context, conf *catalog.Config) (*catalog.Container, error)

type cli struct {
	newContainer ContainerFunc

	configFile   string
	store        string
	printMetrics bool
}

// NewCatalogCLI returns the root command of the product catalog with all its sub commands.
func NewCatalogCLI(newContainer ContainerFunc) *cobra.Command {
	c := &cli{newContainer: newContainer} //nolint:exhaustruct // flags are set by cobra

	rootCmd := &cobra.Command{
		Use:   "productctl",
		Short: "Manage the products of the catalog",
		Long: `productctl lists, adds, updates and deletes products.
Products are kept in memory, optionally persisted as json, or in PostgreSQL.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", "path to a config file")
	rootCmd.PersistentFlags().StringVar(&c.store, "store", "",
		fmt.Sprintf("store products in: %s or %s", catalog.StoreMemory, catalog.StorePostgres))
	rootCmd.PersistentFlags().BoolVar(&c.printMetrics, "metrics", false, "print the metrics of the command to stderr")

	rootCmd.AddCommand(Version("productctl"))
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newGetCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newDeleteCmd())

	return rootCmd
}

// Execute runs the catalog cli with the default dependencies.
func Execute() {
	if err := NewCatalogCLI(catalog.InitialiseDefaultDependencies).Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// run wraps a command, so it is called with its dependencies, which are shut down afterwards.
func (c *cli) run(fn func(cmd *cobra.Command, args []string, dc *catalog.Container) error) func(*cobra.Command, []string) error { //nolint:lll
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		conf, err := catalog.LoadConfig(c.configFile)
		if err != nil {
			return err //nolint:wrapcheck // error is shown to the user as is
		}

		if c.store != "" {
			conf.Store.Kind = c.store
		}

		dc, err := c.newContainer(ctx, &conf)
		if err != nil {
			return fmt.Errorf("could not initialise dependencies: %w", err)
		}

		err = fn(cmd, args, dc)

		if c.printMetrics {
			err = errors.Join(err, writeMetrics(cmd.ErrOrStderr(), dc))
		}

		return errors.Join(err, dc.Shutdown(ctx))
	}
}

func writeMetrics(w io.Writer, dc *catalog.Container) error {
	families, err := dc.MetricsRegistry.Gather()
	if err != nil {
		return fmt.Errorf("could not gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("could not write metrics: %w", err)
		}
	}

	return nil
}

// printJSON writes v as one line of json.
func printJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("could not encode output: %w", err)
	}

	return nil
}

// printError writes err in red, unless colours are disabled.
func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold).FprintlnFunc()
	red(w, "Error:", err)
}
