package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func resultsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show recent notification outcomes",
		Long:  `Prints the most recent entries from the local delivery log, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResults(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to show")
	return cmd
}

func runResults(cmd *cobra.Command, limit int) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := a.store.RecentResults(ctx, a.cfg.SpaceID, limit)
	if err != nil {
		return fmt.Errorf("failed to read delivery log: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No notification results recorded yet.")
		return nil
	}

	for _, rec := range records {
		status := "sent"
		detail := ""
		switch {
		case rec.Error != "":
			status = "failed"
			detail = rec.Error
		case rec.Skipped:
			status = "skipped"
			detail = rec.Reason
		}

		parts := []string{
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			string(rec.Kind),
			status,
		}
		if rec.VendorName != "" {
			parts = append(parts, rec.VendorName)
		}
		if detail != "" {
			parts = append(parts, detail)
		}

		cmd.Println(strings.Join(parts, "  "))
	}

	return nil
}
