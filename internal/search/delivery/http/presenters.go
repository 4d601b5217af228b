package http

import (
	"fmt"
	"time"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/model"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"

	"github.com/aarondl/null/v8"
)

type criteriaReq struct {
	Phase               *string  `json:"phase"`
	MinMarketCap        *float64 `json:"min_market_cap"`
	MaxMarketCap        *float64 `json:"max_market_cap"`
	TherapeuticArea     *string  `json:"therapeutic_area"`
	MinEnrollment       *int     `json:"min_enrollment"`
	CompletionDateStart *string  `json:"completion_date_start"`
	CompletionDateEnd   *string  `json:"completion_date_end"`
}

type createSearchReq struct {
	Name     string      `json:"name"`
	Criteria criteriaReq `json:"criteria"`
	Channels []string    `json:"channels"`
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: expected YYYY-MM-DD date", search.ErrInvalidSearch)
	}
	return t, nil
}

func (r createSearchReq) toInput() (search.CreateSearchInput, error) {
	criteria := model.SearchCriteria{
		Phase:           null.StringFromPtr(r.Criteria.Phase),
		MinMarketCap:    null.Float64FromPtr(r.Criteria.MinMarketCap),
		MaxMarketCap:    null.Float64FromPtr(r.Criteria.MaxMarketCap),
		TherapeuticArea: null.StringFromPtr(r.Criteria.TherapeuticArea),
		MinEnrollment:   null.IntFromPtr(r.Criteria.MinEnrollment),
	}

	if r.Criteria.CompletionDateStart != nil {
		t, err := parseDate(*r.Criteria.CompletionDateStart)
		if err != nil {
			return search.CreateSearchInput{}, err
		}
		criteria.CompletionDateStart = null.TimeFrom(t)
	}
	if r.Criteria.CompletionDateEnd != nil {
		t, err := parseDate(*r.Criteria.CompletionDateEnd)
		if err != nil {
			return search.CreateSearchInput{}, err
		}
		criteria.CompletionDateEnd = null.TimeFrom(t)
	}

	channels := make([]model.Channel, 0, len(r.Channels))
	for _, ch := range r.Channels {
		channels = append(channels, model.Channel(ch))
	}

	return search.CreateSearchInput{
		Name:     r.Name,
		Criteria: criteria,
		Channels: channels,
	}, nil
}

type searchItem struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Criteria    model.SearchCriteria `json:"criteria"`
	Channels    []model.Channel      `json:"channels"`
	LastChecked null.Time            `json:"last_checked,omitempty"`
	Active      bool                 `json:"active"`
	CreatedAt   string               `json:"created_at"`
}

func newSearchItem(s model.SavedSearch) searchItem {
	return searchItem{
		ID:          s.ID,
		Name:        s.Name,
		Criteria:    s.Criteria,
		Channels:    s.Channels,
		LastChecked: s.LastChecked,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

type listSearchesResp struct {
	Items []searchItem `json:"items"`
}

func newListSearchesResp(searches []model.SavedSearch) listSearchesResp {
	items := make([]searchItem, 0, len(searches))
	for _, s := range searches {
		items = append(items, newSearchItem(s))
	}
	return listSearchesResp{Items: items}
}
