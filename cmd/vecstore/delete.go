package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteCmd(envFile *string) *cobra.Command {
	var documentID string

	cmd := &cobra.Command{
		Use:   "delete [chunkID]",
		Short: "Delete a record by chunk ID, or every record of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (documentID == "") {
				return fmt.Errorf("specify either a chunk ID or --document")
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			if documentID != "" {
				count, err := a.service.DeleteByDocument(ctx, documentID)
				if err != nil {
					return err
				}
				fmt.Printf("deleted %d records for document %s\n", count, documentID)
				return nil
			}

			deleted, err := a.service.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Printf("no record for chunk %s\n", args[0])
				return nil
			}
			fmt.Printf("deleted chunk %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&documentID, "document", "", "Delete every record of this document ID")

	return cmd
}
