// Package cache provides the ephemeral record shadow keyed by chunk ID.
package cache

import (
	"encoding/json"

	"github.com/seekr-labs/vecstore/domain/vector"
)

// cacheRecord is the serialized record shape. Field names are the wire
// contract other collaborators depend on; do not rename them.
type cacheRecord struct {
	ID         int64           `json:"id"`
	DocumentID string          `json:"documentId"`
	ChunkID    string          `json:"chunkId"`
	ChunkIndex int             `json:"chunkIndex"`
	Content    string          `json:"content"`
	Embedding  []float64       `json:"embedding"`
	Metadata   vector.Metadata `json:"metadata"`
}

// encodeRecord serializes a record for cache storage.
func encodeRecord(r vector.Record) ([]byte, error) {
	return json.Marshal(cacheRecord{
		ID:         r.ID(),
		DocumentID: r.DocumentID(),
		ChunkID:    r.ChunkID(),
		ChunkIndex: r.ChunkIndex(),
		Content:    r.Content(),
		Embedding:  r.Embedding(),
		Metadata:   r.Metadata(),
	})
}

// decodeRecord deserializes a cached record payload.
func decodeRecord(data []byte) (vector.Record, error) {
	var cr cacheRecord
	if err := json.Unmarshal(data, &cr); err != nil {
		return vector.Record{}, err
	}
	return vector.ReconstructRecord(
		cr.ID,
		cr.DocumentID,
		cr.ChunkID,
		cr.ChunkIndex,
		cr.Content,
		cr.Embedding,
		cr.Metadata,
	), nil
}

// key builds the namespaced cache key for a chunk ID.
func key(prefix, chunkID string) string {
	return prefix + chunkID
}
