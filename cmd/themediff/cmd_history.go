package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var historyFlags struct {
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded comparison runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "Max runs to show (0 = all)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("run history store is disabled (store_path: -)")
	}
	defer st.Close()

	runs, err := st.ListRuns(historyFlags.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"ID", "Created", "Entries", "Level", "Seed", "Jaccard", "Agree%", "Kappa", "Changes"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
	})
	for _, r := range runs {
		changes := r.Additions + r.Removals + r.Replacements
		w.AppendRow(table.Row{
			r.ID, r.CreatedAt, r.EntryCount,
			fmt.Sprintf("%.2f", r.VariationLevel), r.Seed,
			fmt.Sprintf("%.3f", r.MeanJaccard),
			fmt.Sprintf("%.1f", r.AgreementPct),
			fmt.Sprintf("%.3f", r.MeanKappa),
			changes,
		})
	}
	fmt.Println(w.Render())
	return nil
}
