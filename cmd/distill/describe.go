package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sarchlab/distill/catalog"
)

var describeCmd = &cobra.Command{
	Use:   "describe <catalog-dir>",
	Short: "Print the molecules, recipes and tuning of a catalog.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(args[0])
		if err != nil {
			return err
		}

		describe(cmd.OutOrStdout(), cat)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func describe(out io.Writer, cat *catalog.Catalog) {
	fmt.Fprintf(out, "Molecules (%d)\n", cat.Molecules.Len())

	molecules := tablewriter.NewWriter(out)
	molecules.SetHeader([]string{"ID", "Charge", "Name", "IUPAC Name"})
	molecules.SetBorder(false)

	for _, id := range cat.Molecules.IDs() {
		m, _ := cat.Molecules.Resolve(id)
		molecules.Append([]string{
			m.FullID(),
			strconv.Itoa(m.Charge),
			m.Name,
			m.IUPACName,
		})
	}

	molecules.Render()

	fmt.Fprintf(out, "\nRecipes (%d)\n", cat.Recipes.Len())

	recipes := tablewriter.NewWriter(out)
	recipes.SetHeader([]string{"ID", "Input", "Heat", "Fractions"})
	recipes.SetBorder(false)
	recipes.SetAutoWrapText(false)

	for _, r := range cat.Recipes.All() {
		fractions := make([]string, 0, len(r.Results))
		for _, f := range r.Results {
			fractions = append(fractions, fmt.Sprintf("%d %s", f.Amount, f.Fluid))
		}

		recipes.Append([]string{
			r.ID,
			r.Input.Describe(),
			r.RequiredHeat.String(),
			strings.Join(fractions, ", "),
		})
	}

	recipes.Render()

	t := cat.Tuning
	fmt.Fprintf(out, "\nProcess interval %d, tank capacity %d, "+
		"transfer rate %d, tick limit %d\n",
		t.ProcessInterval, t.TankCapacity, t.TransferRate, t.TickLimit)
}
