package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/distill/catalog"
)

const maxParallelValidations = 4

var validateCmd = &cobra.Command{
	Use:   "validate <catalog-dir>...",
	Short: "Check that catalog directories load without errors.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validate(cmd.Context(), cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validate loads every directory concurrently and prints one line per
// directory, in the order given.
func validate(ctx context.Context, out io.Writer, dirs []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	errs := make([]error, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelValidations)

	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			_, errs[i] = catalog.Load(dir)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for i, dir := range dirs {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s\n%v\n", dir, errs[i])

			continue
		}

		fmt.Fprintf(out, "ok   %s\n", dir)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d catalogs are invalid", failed, len(dirs))
	}

	return nil
}
