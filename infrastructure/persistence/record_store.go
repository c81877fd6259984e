package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seekr-labs/vecstore/domain/vector"
	"github.com/seekr-labs/vecstore/internal/database"
	"gorm.io/gorm"
)

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 500

// RecordStore implements vector.RecordStore using GORM.
type RecordStore struct {
	db         database.Database
	mapper     RecordMapper
	dimensions int
}

// NewRecordStore creates a new RecordStore enforcing the given embedding
// dimensionality.
func NewRecordStore(db database.Database, dimensions int) RecordStore {
	return RecordStore{
		db:         db,
		mapper:     RecordMapper{},
		dimensions: dimensions,
	}
}

// AutoMigrate creates or updates the record table schema.
func AutoMigrate(db database.Database) error {
	return db.GORM().AutoMigrate(&RecordModel{})
}

// Insert persists a single record, stamping createdAt and dimensions into
// its metadata and returning the record with its assigned identifier.
func (s RecordStore) Insert(ctx context.Context, record vector.Record) (vector.Record, error) {
	if err := s.checkDimensions(record); err != nil {
		return vector.Record{}, err
	}

	model := s.mapper.ToModel(record.StampCreated(time.Now()))
	if err := s.db.Session(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return vector.Record{}, fmt.Errorf("%w: %s", vector.ErrDuplicateChunk, record.ChunkID())
		}
		return vector.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return s.mapper.ToDomain(model), nil
}

// InsertBatch persists records all-or-nothing. Every embedding is validated
// before anything is written; persistence runs in a single transaction so a
// mid-batch failure leaves no partial state.
func (s RecordStore) InsertBatch(ctx context.Context, records []vector.Record) ([]vector.Record, error) {
	if len(records) == 0 {
		return []vector.Record{}, nil
	}

	for _, r := range records {
		if err := s.checkDimensions(r); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	models := make([]RecordModel, len(records))
	for i, r := range records {
		models[i] = s.mapper.ToModel(r.StampCreated(now))
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, insertBatchSize).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: in batch of %d", vector.ErrDuplicateChunk, len(records))
		}
		return nil, fmt.Errorf("insert batch: %w", err)
	}

	stored := make([]vector.Record, len(models))
	for i, m := range models {
		stored[i] = s.mapper.ToDomain(m)
	}
	return stored, nil
}

// GetByChunkID returns the record for a chunk ID, or vector.ErrNotFound.
func (s RecordStore) GetByChunkID(ctx context.Context, chunkID string) (vector.Record, error) {
	var model RecordModel
	err := s.db.Session(ctx).Where("chunk_id = ?", chunkID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vector.Record{}, fmt.Errorf("%w: chunk %s", vector.ErrNotFound, chunkID)
		}
		return vector.Record{}, fmt.Errorf("get record %s: %w", chunkID, err)
	}
	return s.mapper.ToDomain(model), nil
}

// GetByDocumentID returns all records of a document ordered by chunk index.
func (s RecordStore) GetByDocumentID(ctx context.Context, documentID string) ([]vector.Record, error) {
	var models []RecordModel
	err := s.db.Session(ctx).
		Where("document_id = ?", documentID).
		Order("chunk_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("get records for document %s: %w", documentID, err)
	}

	records := make([]vector.Record, len(models))
	for i, m := range models {
		records[i] = s.mapper.ToDomain(m)
	}
	return records, nil
}

// UpdateMetadata replaces a record's metadata, stamping updatedAt. The new
// metadata fully replaces the old one. Reports whether a record was modified.
func (s RecordStore) UpdateMetadata(ctx context.Context, chunkID string, metadata vector.Metadata) (bool, error) {
	md := metadata.Clone()
	if md == nil {
		md = vector.Metadata{}
	}
	md[vector.MetadataUpdatedAt] = time.Now().UTC().Format(time.RFC3339Nano)

	result := s.db.Session(ctx).
		Model(&RecordModel{}).
		Where("chunk_id = ?", chunkID).
		Update("metadata", JSONMetadata(md))
	if result.Error != nil {
		return false, fmt.Errorf("update metadata for %s: %w", chunkID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteByChunkID removes one record, reporting whether it existed.
func (s RecordStore) DeleteByChunkID(ctx context.Context, chunkID string) (bool, error) {
	result := s.db.Session(ctx).Where("chunk_id = ?", chunkID).Delete(&RecordModel{})
	if result.Error != nil {
		return false, fmt.Errorf("delete record %s: %w", chunkID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteByDocumentID removes every record of a document. The affected chunk
// IDs are captured in the same transaction as the delete so the caller can
// invalidate exactly the entries that were removed.
func (s RecordStore) DeleteByDocumentID(ctx context.Context, documentID string) ([]string, int64, error) {
	var chunkIDs []string
	var count int64

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Model(&RecordModel{}).
			Where("document_id = ?", documentID).
			Pluck("chunk_id", &chunkIDs).Error; err != nil {
			return err
		}

		result := tx.Where("document_id = ?", documentID).Delete(&RecordModel{})
		if result.Error != nil {
			return result.Error
		}
		count = result.RowsAffected
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("delete records for document %s: %w", documentID, err)
	}
	return chunkIDs, count, nil
}

// FindCandidates returns the candidate set matching the filter in insertion
// order. The document ID restriction is pushed into SQL; the documentType
// restriction is applied against the metadata JSON in-process, which keeps
// the query portable across SQLite and PostgreSQL.
func (s RecordStore) FindCandidates(ctx context.Context, filter vector.CandidateFilter) ([]vector.Record, error) {
	db := s.db.Session(ctx).Model(&RecordModel{}).Order("id ASC")
	if filter.DocumentID() != "" {
		db = db.Where("document_id = ?", filter.DocumentID())
	}

	var models []RecordModel
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}

	records := make([]vector.Record, 0, len(models))
	for _, m := range models {
		record := s.mapper.ToDomain(m)
		if filter.DocumentType() != "" && record.Metadata().DocumentType() != filter.DocumentType() {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// CountAll returns the total number of stored records.
func (s RecordStore) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.Session(ctx).Model(&RecordModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// DistinctDocumentIDs returns the set of distinct document IDs.
func (s RecordStore) DistinctDocumentIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.Session(ctx).
		Model(&RecordModel{}).
		Distinct("document_id").
		Pluck("document_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("distinct document ids: %w", err)
	}
	return ids, nil
}

// CountByMetadataField maps each distinct value of a metadata field to its
// record count. Values are counted in-process because metadata lives in a
// JSON column whose extraction syntax differs between backends.
func (s RecordStore) CountByMetadataField(ctx context.Context, field string) (map[string]int64, error) {
	var metadatas []JSONMetadata
	err := s.db.Session(ctx).
		Model(&RecordModel{}).
		Pluck("metadata", &metadatas).Error
	if err != nil {
		return nil, fmt.Errorf("count by metadata field %s: %w", field, err)
	}

	counts := make(map[string]int64)
	for _, md := range metadatas {
		v, ok := md[field]
		if !ok || v == nil {
			continue
		}
		counts[fmt.Sprintf("%v", v)]++
	}
	return counts, nil
}

func (s RecordStore) checkDimensions(record vector.Record) error {
	if record.Dimensions() != s.dimensions {
		return &vector.DimensionError{
			ChunkID:  record.ChunkID(),
			Expected: s.dimensions,
			Actual:   record.Dimensions(),
		}
	}
	return nil
}
