package cmd

import (
	"fmt"

	"execfreq/internal/export"

	"github.com/spf13/cobra"
)

var showLimit int

var showCmd = &cobra.Command{
	Use:   "show <csv_file>",
	Short: "Display ranked results from an exported CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := export.ReadCSV(args[0])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No posts in file")
			return nil
		}
		n := showLimit
		if n > len(records) {
			n = len(records)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d results from %s\n", n, len(records), args[0])
		printRanked(cmd, records, showLimit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showLimit, "limit", 20, "number of results to show")
}
