package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/phanxgames/perimeter"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the expanded item positions without opening a window",
	Long: `Compute where every item lands when the menu is expanded, using the same
flags and configuration file as the demo, and print one row per item.`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	return opts.printLayout(cmd)
}

// printLayout writes the expanded positions to cmd's output.
func (o *demoFlags) printLayout(cmd *cobra.Command) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	anchor := o.anchorRect()
	positions := perimeter.Positions(cfg, perimeter.Expanded, anchor)

	out := cmd.OutOrStdout()
	c := anchor.Center()
	fmt.Fprintf(out, "anchor center (%.2f, %.2f), radius %.2f, step %.2f°\n",
		c.X, c.Y, perimeter.Radius(cfg, anchor), perimeter.AngleStep(cfg))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tANGLE\tX\tY")
	for i, p := range positions {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\n", i, perimeter.ItemAngle(cfg, i), p.X, p.Y)
	}
	return tw.Flush()
}
