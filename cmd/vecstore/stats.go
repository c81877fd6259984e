package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func statsCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print record store statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.service.Stats(ctx)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(map[string]any{
				"totalRecords":        stats.TotalRecords(),
				"uniqueDocumentCount": stats.UniqueDocumentCount(),
				"typeDistribution":    stats.TypeDistribution(),
				"dimensions":          stats.Dimensions(),
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
