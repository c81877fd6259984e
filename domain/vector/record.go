// Package vector defines the embedding record domain model and the store
// and cache contracts it is persisted through.
package vector

import "time"

// Metadata keys stamped by the store on writes.
const (
	MetadataCreatedAt    = "createdAt"
	MetadataUpdatedAt    = "updatedAt"
	MetadataDimensions   = "dimensions"
	MetadataDocumentType = "documentType"
)

// Metadata is an open mapping of string keys to JSON-like scalar values.
// Individual keys are not typed; well-known keys are listed above.
type Metadata map[string]any

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	result := make(Metadata, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// DocumentType returns the documentType value, or "" if absent or not a string.
func (m Metadata) DocumentType() string {
	if t, ok := m[MetadataDocumentType].(string); ok {
		return t
	}
	return ""
}

// Record is one stored embedding unit: a document fragment, its position
// within the parent document, and its fixed-dimension embedding vector.
type Record struct {
	id         int64
	documentID string
	chunkID    string
	chunkIndex int
	content    string
	embedding  []float64
	metadata   Metadata
}

// NewRecord creates a Record ready for insertion. The storage identifier is
// assigned by the store on insert.
func NewRecord(documentID, chunkID string, chunkIndex int, content string, embedding []float64, metadata Metadata) Record {
	vec := make([]float64, len(embedding))
	copy(vec, embedding)
	return Record{
		documentID: documentID,
		chunkID:    chunkID,
		chunkIndex: chunkIndex,
		content:    content,
		embedding:  vec,
		metadata:   metadata.Clone(),
	}
}

// ReconstructRecord rebuilds a Record from persisted state, including its
// store-assigned identifier. Used by persistence mappers.
func ReconstructRecord(id int64, documentID, chunkID string, chunkIndex int, content string, embedding []float64, metadata Metadata) Record {
	r := NewRecord(documentID, chunkID, chunkIndex, content, embedding, metadata)
	r.id = id
	return r
}

// ID returns the store-assigned identifier (0 before insert).
func (r Record) ID() int64 { return r.id }

// DocumentID returns the parent document identifier.
func (r Record) DocumentID() string { return r.documentID }

// ChunkID returns the unique chunk identifier, the primary lookup key.
func (r Record) ChunkID() string { return r.chunkID }

// ChunkIndex returns the ordering position within the parent document.
func (r Record) ChunkIndex() int { return r.chunkIndex }

// Content returns the source text of the fragment.
func (r Record) Content() string { return r.content }

// Embedding returns the embedding vector (copy).
func (r Record) Embedding() []float64 {
	result := make([]float64, len(r.embedding))
	copy(result, r.embedding)
	return result
}

// Dimensions returns the embedding vector length.
func (r Record) Dimensions() int { return len(r.embedding) }

// Metadata returns the record metadata (copy).
func (r Record) Metadata() Metadata { return r.metadata.Clone() }

// WithID returns a copy of the record with the given identifier.
func (r Record) WithID(id int64) Record {
	r.id = id
	return r
}

// WithMetadata returns a copy of the record with the given metadata.
func (r Record) WithMetadata(metadata Metadata) Record {
	r.metadata = metadata.Clone()
	return r
}

// WithoutContent returns a copy of the record with the content field cleared.
// Used for score-only search results.
func (r Record) WithoutContent() Record {
	r.content = ""
	return r
}

// StampCreated returns a copy whose metadata carries the write timestamp and
// the embedding dimensionality. Called by the store at insert time.
func (r Record) StampCreated(now time.Time) Record {
	md := r.metadata.Clone()
	if md == nil {
		md = Metadata{}
	}
	md[MetadataCreatedAt] = now.UTC().Format(time.RFC3339Nano)
	md[MetadataDimensions] = len(r.embedding)
	r.metadata = md
	return r
}

// ScoredRecord pairs a record with its cosine similarity to a query.
type ScoredRecord struct {
	record     Record
	similarity float64
}

// NewScoredRecord creates a new ScoredRecord.
func NewScoredRecord(record Record, similarity float64) ScoredRecord {
	return ScoredRecord{
		record:     record,
		similarity: similarity,
	}
}

// Record returns the matched record.
func (s ScoredRecord) Record() Record { return s.record }

// Similarity returns the cosine similarity score.
func (s ScoredRecord) Similarity() float64 { return s.similarity }

// Stats summarises the contents of the record store.
type Stats struct {
	totalRecords        int64
	uniqueDocumentCount int
	typeDistribution    map[string]int64
	dimensions          int
}

// NewStats creates a new Stats.
func NewStats(totalRecords int64, uniqueDocumentCount int, typeDistribution map[string]int64, dimensions int) Stats {
	dist := make(map[string]int64, len(typeDistribution))
	for k, v := range typeDistribution {
		dist[k] = v
	}
	return Stats{
		totalRecords:        totalRecords,
		uniqueDocumentCount: uniqueDocumentCount,
		typeDistribution:    dist,
		dimensions:          dimensions,
	}
}

// TotalRecords returns the total number of stored records.
func (s Stats) TotalRecords() int64 { return s.totalRecords }

// UniqueDocumentCount returns the number of distinct document IDs.
func (s Stats) UniqueDocumentCount() int { return s.uniqueDocumentCount }

// TypeDistribution maps each distinct documentType value to its record count.
func (s Stats) TypeDistribution() map[string]int64 {
	result := make(map[string]int64, len(s.typeDistribution))
	for k, v := range s.typeDistribution {
		result[k] = v
	}
	return result
}

// Dimensions returns the configured embedding dimensionality.
func (s Stats) Dimensions() int { return s.dimensions }
