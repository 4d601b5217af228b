package feed

import (
	"github.com/aarondl/null/v8"
)

// ListOptions narrows the catalyst feed. Unset fields do not constrain
// the result.
type ListOptions struct {
	// CreatedSince keeps only records ingested at or after this instant.
	CreatedSince null.Time

	// Filter criteria mirroring model.SearchCriteria.
	Phase              null.String
	MinMarketCap       null.Float64
	MaxMarketCap       null.Float64
	IndicationContains null.String
	MinEnrollment      null.Int
	CompletionAfter    null.Time
	CompletionBefore   null.Time

	// RequireTicker drops records without a ticker (non-tradeable).
	RequireTicker bool
	// OrderByCompletion sorts by completion date ascending, nulls last.
	OrderByCompletion bool
}
