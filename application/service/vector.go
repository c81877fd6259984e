// Package service provides application layer services that orchestrate
// domain operations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/seekr-labs/vecstore/domain/vector"
	"github.com/seekr-labs/vecstore/infrastructure/search"
	"github.com/seekr-labs/vecstore/internal/config"
)

// populateConcurrency bounds parallel cache writes after a batch insert.
const populateConcurrency = 8

// Vector orchestrates the record store and the cache: it validates embedding
// dimensions on every write, keeps the cache coherent around mutations, and
// runs the scan-score-filter-rank similarity query.
//
// Cache failures are never the caller's failure. Every cache error is
// reported through the logger and swallowed; only record store errors
// propagate. The two tiers are eventually consistent: a fetch racing a
// mutation may observe a stale cached value until the invalidation lands or
// the entry's TTL expires.
type Vector struct {
	store      vector.RecordStore
	cache      vector.Cache
	dimensions int
	threshold  float64
	limit      int
	logger     *slog.Logger
}

// NewVector creates a Vector service.
func NewVector(store vector.RecordStore, cache vector.Cache, cfg config.AppConfig, logger *slog.Logger) *Vector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Vector{
		store:      store,
		cache:      cache,
		dimensions: cfg.Dimensions(),
		threshold:  cfg.SimilarityThreshold(),
		limit:      cfg.SearchLimit(),
		logger:     logger,
	}
}

// Store validates and persists a single record, then populates the cache
// best-effort. Returns the stored record including its assigned identifier.
func (s *Vector) Store(ctx context.Context, record vector.Record) (vector.Record, error) {
	if err := s.checkDimensions(record.ChunkID(), record.Dimensions()); err != nil {
		return vector.Record{}, err
	}

	stored, err := s.store.Insert(ctx, record)
	if err != nil {
		return vector.Record{}, err
	}

	s.populate(ctx, stored)
	return stored, nil
}

// StoreBatch validates every record up front and persists them
// all-or-nothing, then populates the cache for each stored record. A cache
// failure for one record neither blocks the others nor fails the call.
func (s *Vector) StoreBatch(ctx context.Context, records []vector.Record) ([]vector.Record, error) {
	for _, r := range records {
		if err := s.checkDimensions(r.ChunkID(), r.Dimensions()); err != nil {
			return nil, err
		}
	}

	stored, err := s.store.InsertBatch(ctx, records)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(populateConcurrency)
	for _, r := range stored {
		r := r
		g.Go(func() error {
			s.populate(gctx, r)
			return nil
		})
	}
	_ = g.Wait()

	return stored, nil
}

// Fetch returns the record for a chunk ID, serving from the cache when
// possible and lazily repopulating it on a miss. A cache read error is
// treated as a miss.
func (s *Vector) Fetch(ctx context.Context, chunkID string) (vector.Record, error) {
	cached, hit, err := s.cache.Lookup(ctx, chunkID)
	if err != nil {
		s.logger.Warn("cache lookup failed, falling through to store", "chunk_id", chunkID, "error", err)
	} else if hit {
		return cached, nil
	}

	record, err := s.store.GetByChunkID(ctx, chunkID)
	if err != nil {
		return vector.Record{}, err
	}

	s.populate(ctx, record)
	return record, nil
}

// FetchByDocument returns all records of a document in ascending chunk index
// order, always reading the store directly.
func (s *Vector) FetchByDocument(ctx context.Context, documentID string) ([]vector.Record, error) {
	return s.store.GetByDocumentID(ctx, documentID)
}

// UpdateMetadata replaces a record's metadata and invalidates its cache
// entry, leaving the next fetch to repopulate lazily with fresh data.
// Returns false without side effects when no record matched.
func (s *Vector) UpdateMetadata(ctx context.Context, chunkID string, metadata vector.Metadata) (bool, error) {
	modified, err := s.store.UpdateMetadata(ctx, chunkID, metadata)
	if err != nil {
		return false, err
	}
	if modified {
		s.invalidate(ctx, chunkID)
	}
	return modified, nil
}

// Delete removes one record and invalidates its cache entry.
func (s *Vector) Delete(ctx context.Context, chunkID string) (bool, error) {
	deleted, err := s.store.DeleteByChunkID(ctx, chunkID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidate(ctx, chunkID)
	}
	return deleted, nil
}

// DeleteByDocument removes every record of a document and invalidates each
// cached entry. The returned count reflects the store's actual deletion
// count, independent of cache invalidation outcomes.
func (s *Vector) DeleteByDocument(ctx context.Context, documentID string) (int64, error) {
	chunkIDs, count, err := s.store.DeleteByDocumentID(ctx, documentID)
	if err != nil {
		return 0, err
	}
	for _, chunkID := range chunkIDs {
		s.invalidate(ctx, chunkID)
	}
	return count, nil
}

// Search scans the filtered candidate set, scores every candidate against
// the query embedding, discards scores below the threshold, and returns the
// top matches sorted by similarity descending. The cache plays no part: the
// candidate set is query-dependent, not point-lookup-dependent.
func (s *Vector) Search(ctx context.Context, queryEmbedding []float64, options ...vector.SearchOption) ([]vector.ScoredRecord, error) {
	if err := s.checkDimensions("", len(queryEmbedding)); err != nil {
		return nil, err
	}

	cfg := vector.NewSearchConfig(s.limit, s.threshold, options...)

	candidates, err := s.store.FindCandidates(ctx, cfg.Filter())
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	results := search.Rank(queryEmbedding, candidates, cfg.Threshold(), cfg.Limit())

	if !cfg.IncludeContent() {
		for i, r := range results {
			results[i] = vector.NewScoredRecord(r.Record().WithoutContent(), r.Similarity())
		}
	}
	return results, nil
}

// Stats aggregates store-wide statistics.
func (s *Vector) Stats(ctx context.Context) (vector.Stats, error) {
	total, err := s.store.CountAll(ctx)
	if err != nil {
		return vector.Stats{}, err
	}

	documentIDs, err := s.store.DistinctDocumentIDs(ctx)
	if err != nil {
		return vector.Stats{}, err
	}

	typeDistribution, err := s.store.CountByMetadataField(ctx, vector.MetadataDocumentType)
	if err != nil {
		return vector.Stats{}, err
	}

	return vector.NewStats(total, len(documentIDs), typeDistribution, s.dimensions), nil
}

// populate writes a record to the cache, reporting failures without
// propagating them.
func (s *Vector) populate(ctx context.Context, record vector.Record) {
	if err := s.cache.Populate(ctx, record.ChunkID(), record); err != nil {
		s.logger.Warn("cache populate failed", "chunk_id", record.ChunkID(), "error", err)
	}
}

// invalidate removes a cache entry, reporting failures without propagating
// them. A failed invalidation leaves a stale entry that expires with its TTL.
func (s *Vector) invalidate(ctx context.Context, chunkID string) {
	if err := s.cache.Invalidate(ctx, chunkID); err != nil {
		s.logger.Warn("cache invalidate failed", "chunk_id", chunkID, "error", err)
	}
}

func (s *Vector) checkDimensions(chunkID string, actual int) error {
	if actual != s.dimensions {
		return &vector.DimensionError{
			ChunkID:  chunkID,
			Expected: s.dimensions,
			Actual:   actual,
		}
	}
	return nil
}
