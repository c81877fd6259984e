package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/seekr-labs/vecstore/domain/vector"
	"github.com/spf13/cobra"
)

// searchResult is the JSON shape emitted per match.
type searchResult struct {
	ID         int64           `json:"id"`
	DocumentID string          `json:"documentId"`
	ChunkID    string          `json:"chunkId"`
	ChunkIndex int             `json:"chunkIndex"`
	Content    string          `json:"content,omitempty"`
	Metadata   vector.Metadata `json:"metadata"`
	Similarity float64         `json:"similarity"`
}

func searchCmd(envFile *string) *cobra.Command {
	var (
		queryFile    string
		limit        int
		threshold    float64
		documentID   string
		documentType string
		noContent    bool
	)

	cmd := &cobra.Command{
		Use:   "search --query-file <embedding.json>",
		Short: "Rank stored records against a query embedding",
		Long: `Rank stored records against a query embedding read from a JSON file
holding a single array of numbers. Results below the similarity threshold
are discarded; the rest are printed as JSON, best match first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(queryFile)
			if err != nil {
				return err
			}

			var query []float64
			if err := json.Unmarshal(data, &query); err != nil {
				return fmt.Errorf("parse %s: %w", queryFile, err)
			}

			options := []vector.SearchOption{vector.WithContent(!noContent)}
			if limit > 0 {
				options = append(options, vector.WithLimit(limit))
			}
			if cmd.Flags().Changed("threshold") {
				options = append(options, vector.WithThreshold(threshold))
			}
			if documentID != "" {
				options = append(options, vector.WithDocumentID(documentID))
			}
			if documentType != "" {
				options = append(options, vector.WithDocumentType(documentType))
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, *envFile)
			if err != nil {
				return err
			}
			defer a.Close()

			matches, err := a.service.Search(ctx, query, options...)
			if err != nil {
				return err
			}

			results := make([]searchResult, len(matches))
			for i, m := range matches {
				r := m.Record()
				results[i] = searchResult{
					ID:         r.ID(),
					DocumentID: r.DocumentID(),
					ChunkID:    r.ChunkID(),
					ChunkIndex: r.ChunkIndex(),
					Content:    r.Content(),
					Metadata:   r.Metadata(),
					Similarity: m.Similarity(),
				}
			}

			out, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&queryFile, "query-file", "", "Path to JSON file with the query embedding")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results (default: configured search limit)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum similarity cutoff (default: configured threshold)")
	cmd.Flags().StringVar(&documentID, "document-id", "", "Restrict candidates to one document")
	cmd.Flags().StringVar(&documentType, "document-type", "", "Restrict candidates by metadata documentType")
	cmd.Flags().BoolVar(&noContent, "no-content", false, "Omit fragment content from results")
	_ = cmd.MarkFlagRequired("query-file")

	return cmd
}
