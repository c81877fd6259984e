package vector

// SearchOption configures a similarity search request.
type SearchOption func(*SearchConfig)

// SearchConfig holds resolved similarity search parameters. Defaults for
// limit and threshold come from service configuration; options override them
// per call.
type SearchConfig struct {
	limit          int
	threshold      float64
	documentID     string
	documentType   string
	includeContent bool
}

// NewSearchConfig creates a SearchConfig with the given defaults applied.
func NewSearchConfig(defaultLimit int, defaultThreshold float64, options ...SearchOption) SearchConfig {
	cfg := SearchConfig{
		limit:          defaultLimit,
		threshold:      defaultThreshold,
		includeContent: true,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// WithLimit sets the maximum number of results.
func WithLimit(n int) SearchOption {
	return func(c *SearchConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithThreshold overrides the minimum similarity cutoff for this call.
func WithThreshold(t float64) SearchOption {
	return func(c *SearchConfig) {
		if t >= -1 && t <= 1 {
			c.threshold = t
		}
	}
}

// WithDocumentID restricts candidates to one document.
func WithDocumentID(id string) SearchOption {
	return func(c *SearchConfig) {
		c.documentID = id
	}
}

// WithDocumentType restricts candidates by the metadata documentType value.
func WithDocumentType(t string) SearchOption {
	return func(c *SearchConfig) {
		c.documentType = t
	}
}

// WithContent controls whether result records carry their content field.
// Disabled gives score-only results.
func WithContent(include bool) SearchOption {
	return func(c *SearchConfig) {
		c.includeContent = include
	}
}

// Limit returns the maximum number of results.
func (c SearchConfig) Limit() int { return c.limit }

// Threshold returns the minimum similarity cutoff.
func (c SearchConfig) Threshold() float64 { return c.threshold }

// DocumentID returns the document ID restriction, or "".
func (c SearchConfig) DocumentID() string { return c.documentID }

// DocumentType returns the documentType restriction, or "".
func (c SearchConfig) DocumentType() string { return c.documentType }

// IncludeContent returns whether result records carry content.
func (c SearchConfig) IncludeContent() bool { return c.includeContent }

// Filter returns the candidate filter derived from this config.
func (c SearchConfig) Filter() CandidateFilter {
	return NewCandidateFilter(c.documentID, c.documentType)
}
