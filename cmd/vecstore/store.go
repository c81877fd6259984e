package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/seekr-labs/vecstore/domain/vector"
	"github.com/spf13/cobra"
)

// inputRecord is the JSON shape accepted by the store command. Field names
// follow the persisted record wire contract.
type inputRecord struct {
	DocumentID string          `json:"documentId"`
	ChunkID    string          `json:"chunkId"`
	ChunkIndex int             `json:"chunkIndex"`
	Content    string          `json:"content"`
	Embedding  []float64       `json:"embedding"`
	Metadata   vector.Metadata `json:"metadata"`
}

func storeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "store <records.json>",
		Short: "Store embedding records from a JSON file",
		Long: `Store embedding records from a JSON file holding an array of records:

  [{"documentId": "...", "chunkId": "...", "chunkIndex": 0,
    "content": "...", "embedding": [...], "metadata": {...}}, ...]

Records without a chunkId are assigned a generated one. The batch is
validated up front: one bad embedding rejects the whole file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(cmd, *envFile, args[0])
		},
	}
}

func runStore(cmd *cobra.Command, envFile, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var inputs []inputRecord
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%s contains no records", path)
	}

	records := make([]vector.Record, len(inputs))
	for i, in := range inputs {
		chunkID := in.ChunkID
		if chunkID == "" {
			chunkID = uuid.NewString()
		}
		records[i] = vector.NewRecord(in.DocumentID, chunkID, in.ChunkIndex, in.Content, in.Embedding, in.Metadata)
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, envFile)
	if err != nil {
		return err
	}
	defer a.Close()

	stored, err := a.service.StoreBatch(ctx, records)
	if err != nil {
		return err
	}

	a.logger.Info("records stored", "count", len(stored))
	for _, r := range stored {
		fmt.Printf("%d\t%s\n", r.ID(), r.ChunkID())
	}
	return nil
}
