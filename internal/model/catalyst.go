package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Catalyst is a dated event (trial readout, regulatory decision) consumed
// from the upstream feed. Records without a ticker are never alertable.
type Catalyst struct {
	ID             string       `json:"id"`
	Ticker         null.String  `json:"ticker,omitempty"`
	Phase          null.String  `json:"phase,omitempty"`
	MarketCap      null.Float64 `json:"market_cap,omitempty"`
	Indication     null.String  `json:"indication,omitempty"`
	CompletionDate null.Time    `json:"completion_date,omitempty"`
	Enrollment     null.Int     `json:"enrollment,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// DaysUntil returns whole days from now until the completion date.
// The second return is false when no completion date is set.
func (c Catalyst) DaysUntil(now time.Time) (int, bool) {
	if !c.CompletionDate.Valid {
		return 0, false
	}
	days := int(c.CompletionDate.Time.Sub(now).Hours() / 24)
	return days, true
}

// Filing is the most recent financial filing metrics for a ticker,
// consumed read-only from the filing feed.
type Filing struct {
	Ticker              string       `json:"ticker"`
	FilingType          string       `json:"filing_type"`
	CashRunwayMonths    null.Float64 `json:"cash_runway_months,omitempty"`
	ClinicalHold        bool         `json:"clinical_hold"`
	CEODeparture        bool         `json:"ceo_departure"`
	GoingConcernWarning bool         `json:"going_concern_warning"`
	FiledAt             time.Time    `json:"filed_at"`
}
