package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Amr-9/crat/pkg/history"
)

// errHistoryDisabled is returned by history commands when --history is empty.
var errHistoryDisabled = errors.New("history is disabled (--history is empty)")

func openHistory() (*history.Store, error) {
	if cfg.HistoryPath == "" {
		return nil, errHistoryDisabled
	}
	return history.Open(cfg.HistoryPath)
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(limit)
			if err != nil {
				return err
			}
			console.History(records)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of records to show (0 for all)")
	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := store.Get(args[0])
			if err != nil {
				return err
			}
			console.HistoryRecord(r)
			return nil
		},
	}
}
