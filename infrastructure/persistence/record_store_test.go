package persistence

import (
	"context"
	"testing"

	"github.com/seekr-labs/vecstore/domain/vector"
	"github.com/seekr-labs/vecstore/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a RecordStore over an in-memory SQLite database.
// Cannot use the testdb package here due to import cycle (testdb imports
// persistence).
func newTestStore(t *testing.T, dimensions int) RecordStore {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///:memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = db.Close() })
	return NewRecordStore(db, dimensions)
}

func testRecord(documentID, chunkID string, chunkIndex int, embedding []float64) vector.Record {
	return vector.NewRecord(documentID, chunkID, chunkIndex, "content of "+chunkID, embedding, vector.Metadata{
		vector.MetadataDocumentType: "article",
	})
}

func TestRecordStore_InsertAssignsIDAndStampsMetadata(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	stored, err := store.Insert(ctx, testRecord("doc-1", "doc-1:0", 0, []float64{1, 2, 3}))
	require.NoError(t, err)

	assert.NotZero(t, stored.ID())
	assert.Equal(t, "doc-1:0", stored.ChunkID())

	md := stored.Metadata()
	assert.NotEmpty(t, md[vector.MetadataCreatedAt])
	assert.EqualValues(t, 3, md[vector.MetadataDimensions])
	assert.Equal(t, "article", md.DocumentType())
}

func TestRecordStore_InsertRejectsWrongDimensions(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	_, err := store.Insert(ctx, testRecord("doc-1", "doc-1:0", 0, []float64{1, 2}))
	require.ErrorIs(t, err, vector.ErrInvalidDimensions)
	assert.Contains(t, err.Error(), "2 dimensions, expected 3")

	count, err := store.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordStore_InsertRejectsDuplicateChunkID(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	_, err := store.Insert(ctx, testRecord("doc-1", "doc-1:0", 0, []float64{1, 2, 3}))
	require.NoError(t, err)

	_, err = store.Insert(ctx, testRecord("doc-2", "doc-1:0", 5, []float64{4, 5, 6}))
	require.ErrorIs(t, err, vector.ErrDuplicateChunk)

	count, err := store.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRecordStore_InsertBatchAllOrNothing(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	records := []vector.Record{
		testRecord("doc-1", "doc-1:0", 0, []float64{1, 0, 0}),
		testRecord("doc-1", "doc-1:1", 1, []float64{0, 1}), // wrong length
		testRecord("doc-1", "doc-1:2", 2, []float64{0, 0, 1}),
	}

	_, err := store.InsertBatch(ctx, records)
	require.ErrorIs(t, err, vector.ErrInvalidDimensions)
	assert.Contains(t, err.Error(), "doc-1:1")

	count, err := store.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "a failed batch must persist nothing")
}

func TestRecordStore_InsertBatchPersistsAll(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	stored, err := store.InsertBatch(ctx, []vector.Record{
		testRecord("doc-1", "doc-1:0", 0, []float64{1, 0, 0}),
		testRecord("doc-1", "doc-1:1", 1, []float64{0, 1, 0}),
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)

	for _, r := range stored {
		assert.NotZero(t, r.ID())
		assert.NotEmpty(t, r.Metadata()[vector.MetadataCreatedAt])
	}

	count, err := store.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestRecordStore_GetByChunkID(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	stored, err := store.Insert(ctx, testRecord("doc-1", "doc-1:0", 0, []float64{1, 2, 3}))
	require.NoError(t, err)

	got, err := store.GetByChunkID(ctx, "doc-1:0")
	require.NoError(t, err)
	assert.Equal(t, stored.ID(), got.ID())
	assert.Equal(t, stored.Content(), got.Content())
	assert.Equal(t, []float64{1, 2, 3}, got.Embedding())

	_, err = store.GetByChunkID(ctx, "missing")
	require.ErrorIs(t, err, vector.ErrNotFound)
}

func TestRecordStore_GetByDocumentIDOrdersByChunkIndex(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	// Insert in reverse chunk order.
	for i := 2; i >= 0; i-- {
		_, err := store.Insert(ctx, testRecord("doc-1", chunkID("doc-1", i), i, []float64{1, 0, 0}))
		require.NoError(t, err)
	}
	_, err := store.Insert(ctx, testRecord("doc-2", "doc-2:0", 0, []float64{1, 0, 0}))
	require.NoError(t, err)

	records, err := store.GetByDocumentID(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, i, r.ChunkIndex())
	}
}

func chunkID(documentID string, index int) string {
	return documentID + ":" + string(rune('0'+index))
}

func TestRecordStore_UpdateMetadataReplacesAndStamps(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	_, err := store.Insert(ctx, testRecord("doc-1", "doc-1:0", 0, []float64{1, 2, 3}))
	require.NoError(t, err)

	modified, err := store.UpdateMetadata(ctx, "doc-1:0", vector.Metadata{"reviewed": true})
	require.NoError(t, err)
	assert.True(t, modified)

	got, err := store.GetByChunkID(ctx, "doc-1:0")
	require.NoError(t, err)

	md := got.Metadata()
	assert.Equal(t, true, md["reviewed"])
	assert.NotEmpty(t, md[vector.MetadataUpdatedAt])
	// Replace semantics: the old keys are gone.
	assert.NotContains(t, md, vector.MetadataDocumentType)
	assert.NotContains(t, md, vector.MetadataCreatedAt)
}

func TestRecordStore_UpdateMetadataMissingChunk(t *testing.T) {
	store := newTestStore(t, 3)

	modified, err := store.UpdateMetadata(context.Background(), "missing", vector.Metadata{"a": 1})
	require.NoError(t, err)
	assert.False(t, modified)
}

func TestRecordStore_DeleteByChunkID(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	_, err := store.Insert(ctx, testRecord("doc-1", "doc-1:0", 0, []float64{1, 2, 3}))
	require.NoError(t, err)

	deleted, err := store.DeleteByChunkID(ctx, "doc-1:0")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteByChunkID(ctx, "doc-1:0")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.GetByChunkID(ctx, "doc-1:0")
	require.ErrorIs(t, err, vector.ErrNotFound)
}

func TestRecordStore_DeleteByDocumentIDReturnsChunkIDsAndCount(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Insert(ctx, testRecord("doc-1", chunkID("doc-1", i), i, []float64{1, 0, 0}))
		require.NoError(t, err)
	}
	_, err := store.Insert(ctx, testRecord("doc-2", "doc-2:0", 0, []float64{1, 0, 0}))
	require.NoError(t, err)

	chunkIDs, count, err := store.DeleteByDocumentID(ctx, "doc-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.ElementsMatch(t, []string{"doc-1:0", "doc-1:1", "doc-1:2"}, chunkIDs)

	remaining, err := store.GetByDocumentID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	total, err := store.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestRecordStore_DeleteByDocumentIDMissingDocument(t *testing.T) {
	store := newTestStore(t, 3)

	chunkIDs, count, err := store.DeleteByDocumentID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, chunkIDs)
}

func TestRecordStore_DistinctDocumentIDs(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	_, err := store.InsertBatch(ctx, []vector.Record{
		testRecord("doc-1", "doc-1:0", 0, []float64{1, 0, 0}),
		testRecord("doc-1", "doc-1:1", 1, []float64{1, 0, 0}),
		testRecord("doc-2", "doc-2:0", 0, []float64{1, 0, 0}),
	})
	require.NoError(t, err)

	ids, err := store.DistinctDocumentIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"doc-1", "doc-2"}, ids)
}

func TestRecordStore_CountByMetadataField(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	insert := func(chunkID, docType string) {
		t.Helper()
		md := vector.Metadata{}
		if docType != "" {
			md[vector.MetadataDocumentType] = docType
		}
		_, err := store.Insert(ctx, vector.NewRecord("doc-1", chunkID, 0, "", []float64{1, 0, 0}, md))
		require.NoError(t, err)
	}

	insert("c1", "article")
	insert("c2", "article")
	insert("c3", "manual")
	insert("c4", "")

	counts, err := store.CountByMetadataField(ctx, vector.MetadataDocumentType)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"article": 2, "manual": 1}, counts)
}

func TestRecordStore_FindCandidates(t *testing.T) {
	store := newTestStore(t, 3)
	ctx := context.Background()

	mkRecord := func(documentID, chunkID, docType string) vector.Record {
		return vector.NewRecord(documentID, chunkID, 0, "", []float64{1, 0, 0}, vector.Metadata{
			vector.MetadataDocumentType: docType,
		})
	}

	_, err := store.InsertBatch(ctx, []vector.Record{
		mkRecord("doc-1", "c1", "article"),
		mkRecord("doc-1", "c2", "manual"),
		mkRecord("doc-2", "c3", "article"),
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		filter   vector.CandidateFilter
		expected []string
	}{
		{
			name:     "no filter returns everything in insertion order",
			filter:   vector.NewCandidateFilter("", ""),
			expected: []string{"c1", "c2", "c3"},
		},
		{
			name:     "document id filter",
			filter:   vector.NewCandidateFilter("doc-1", ""),
			expected: []string{"c1", "c2"},
		},
		{
			name:     "document type filter",
			filter:   vector.NewCandidateFilter("", "article"),
			expected: []string{"c1", "c3"},
		},
		{
			name:     "combined filter",
			filter:   vector.NewCandidateFilter("doc-1", "article"),
			expected: []string{"c1"},
		},
		{
			name:     "no match",
			filter:   vector.NewCandidateFilter("doc-3", ""),
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := store.FindCandidates(ctx, tt.filter)
			require.NoError(t, err)

			got := make([]string, len(candidates))
			for i, c := range candidates {
				got[i] = c.ChunkID()
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}
