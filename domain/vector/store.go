package vector

import "context"

// CandidateFilter narrows the candidate set scanned by a similarity search.
// Zero values mean "no restriction".
type CandidateFilter struct {
	documentID   string
	documentType string
}

// NewCandidateFilter creates a CandidateFilter.
func NewCandidateFilter(documentID, documentType string) CandidateFilter {
	return CandidateFilter{
		documentID:   documentID,
		documentType: documentType,
	}
}

// DocumentID returns the document ID restriction, or "".
func (f CandidateFilter) DocumentID() string { return f.documentID }

// DocumentType returns the documentType restriction, or "".
func (f CandidateFilter) DocumentType() string { return f.documentType }

// RecordStore is the authoritative persistence contract for embedding records.
//
// Point lookups signal absence with ErrNotFound; mutations signal it with a
// false/zero result rather than an error. Any other failure is an engine
// failure and propagates verbatim.
type RecordStore interface {
	// Insert persists a single record, assigning its identifier and stamping
	// createdAt/dimensions into metadata. Fails with ErrDuplicateChunk when
	// the chunk ID is already stored.
	Insert(ctx context.Context, record Record) (Record, error)

	// InsertBatch persists records all-or-nothing: every embedding is
	// validated before anything is written, and persistence runs in a single
	// transaction.
	InsertBatch(ctx context.Context, records []Record) ([]Record, error)

	// GetByChunkID returns the record for a chunk ID, or ErrNotFound.
	GetByChunkID(ctx context.Context, chunkID string) (Record, error)

	// GetByDocumentID returns all records of a document in ascending
	// chunk index order.
	GetByDocumentID(ctx context.Context, documentID string) ([]Record, error)

	// UpdateMetadata replaces a record's metadata (stamping updatedAt) and
	// reports whether a record was actually modified.
	UpdateMetadata(ctx context.Context, chunkID string, metadata Metadata) (bool, error)

	// DeleteByChunkID removes one record, reporting whether it existed.
	DeleteByChunkID(ctx context.Context, chunkID string) (bool, error)

	// DeleteByDocumentID removes every record of a document, returning the
	// chunk IDs that were removed (captured before the delete for cache
	// invalidation) and the deletion count.
	DeleteByDocumentID(ctx context.Context, documentID string) ([]string, int64, error)

	// FindCandidates returns the full candidate set matching the filter,
	// in insertion order.
	FindCandidates(ctx context.Context, filter CandidateFilter) ([]Record, error)

	// CountAll returns the total number of stored records.
	CountAll(ctx context.Context) (int64, error)

	// DistinctDocumentIDs returns the set of distinct document IDs.
	DistinctDocumentIDs(ctx context.Context) ([]string, error)

	// CountByMetadataField maps each distinct value of a metadata field to
	// its record count. Records without the field are not counted.
	CountByMetadataField(ctx context.Context, field string) (map[string]int64, error)
}

// Cache is the ephemeral record shadow keyed by chunk ID. It is never
// authoritative: every entry is repopulatable from the RecordStore, expires
// after the configured TTL, and any failure here is reportable but must not
// fail the surrounding operation.
type Cache interface {
	// Lookup returns the cached record and true on a hit. An expired or
	// absent entry is a miss, not an error.
	Lookup(ctx context.Context, chunkID string) (Record, bool, error)

	// Populate stores a record under its chunk ID with the configured TTL.
	Populate(ctx context.Context, chunkID string, record Record) error

	// Invalidate removes a cached record. Removing an absent entry is not
	// an error.
	Invalidate(ctx context.Context, chunkID string) error
}
