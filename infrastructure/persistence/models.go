// Package persistence provides the GORM-backed record store.
package persistence

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/seekr-labs/vecstore/domain/vector"
)

// Float64Slice is a custom type for JSON serialization of []float64.
type Float64Slice []float64

// Scan implements sql.Scanner for reading JSON from the database.
func (f *Float64Slice) Scan(value any) error {
	if value == nil {
		*f = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Float64Slice", value)
	}

	return json.Unmarshal(data, f)
}

// Value implements driver.Valuer for writing JSON to the database.
func (f Float64Slice) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// JSONMetadata is a custom type for JSON serialization of record metadata.
// Numeric values come back as float64 after a round trip, which is inherent
// to JSON columns.
type JSONMetadata map[string]any

// Scan implements sql.Scanner for reading JSON from the database.
func (m *JSONMetadata) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONMetadata", value)
	}

	return json.Unmarshal(data, m)
}

// Value implements driver.Valuer for writing JSON to the database.
func (m JSONMetadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// RecordModel represents an embedding record in the database.
type RecordModel struct {
	ID         int64        `gorm:"column:id;primaryKey;autoIncrement"`
	DocumentID string       `gorm:"column:document_id;index;size:255"`
	ChunkID    string       `gorm:"column:chunk_id;uniqueIndex;size:255"`
	ChunkIndex int          `gorm:"column:chunk_index"`
	Content    string       `gorm:"column:content;type:text"`
	Embedding  Float64Slice `gorm:"column:embedding;type:json"`
	Metadata   JSONMetadata `gorm:"column:metadata;type:json"`
}

// TableName returns the table name.
func (RecordModel) TableName() string {
	return "vector_records"
}

// RecordMapper maps between domain Record and persistence RecordModel.
type RecordMapper struct{}

// ToDomain converts a RecordModel to a domain Record.
func (m RecordMapper) ToDomain(e RecordModel) vector.Record {
	return vector.ReconstructRecord(
		e.ID,
		e.DocumentID,
		e.ChunkID,
		e.ChunkIndex,
		e.Content,
		[]float64(e.Embedding),
		vector.Metadata(e.Metadata),
	)
}

// ToModel converts a domain Record to a RecordModel.
func (m RecordMapper) ToModel(r vector.Record) RecordModel {
	return RecordModel{
		ID:         r.ID(),
		DocumentID: r.DocumentID(),
		ChunkID:    r.ChunkID(),
		ChunkIndex: r.ChunkIndex(),
		Content:    r.Content(),
		Embedding:  Float64Slice(r.Embedding()),
		Metadata:   JSONMetadata(r.Metadata()),
	}
}
