package http

import (
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/errors"
	postgresPkg "github.com/UMwai/um-biotech-catalyst-radar/pkg/postgre"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/response"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/scope"

	"github.com/gin-gonic/gin"
)

// ListSearches returns the caller's saved searches, paused ones included.
// @Summary List saved searches
// @Tags Searches
// @Produce json
// @Success 200 {object} listSearchesResp
// @Router /searches [get]
func (h *Handler) ListSearches(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	searches, err := h.uc.ListSearches(ctx, sc)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newListSearchesResp(searches))
}

// DetailSearch returns one saved search by ID.
// @Summary Get a saved search
// @Tags Searches
// @Produce json
// @Param searchID path string true "Search ID"
// @Success 200 {object} searchItem
// @Failure 404 {object} response.Resp
// @Router /searches/{searchID} [get]
func (h *Handler) DetailSearch(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	searchID := c.Param("searchID")
	if !postgresPkg.IsValidUUID(searchID) {
		response.Error(c, errors.NewValidationError("searchID"))
		return
	}

	s, err := h.uc.DetailSearch(ctx, sc, searchID)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newSearchItem(s))
}

// CreateSearch creates a saved search for the caller. New searches
// start active with a null sweep cursor, so the first sweep evaluates
// the full feed.
// @Summary Create a saved search
// @Tags Searches
// @Accept json
// @Produce json
// @Param body body createSearchReq true "Saved search"
// @Success 200 {object} searchItem
// @Failure 400 {object} response.Resp
// @Router /searches [post]
func (h *Handler) CreateSearch(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var req createSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.search.delivery.http.CreateSearch.ShouldBindJSON: %v", err)
		response.Error(c, errors.NewValidationError("body"))
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	s, err := h.uc.CreateSearch(ctx, sc, input)
	if err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newSearchItem(s))
}

// PauseSearch deactivates a saved search without deleting it.
// @Summary Pause a saved search
// @Tags Searches
// @Param searchID path string true "Search ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /searches/{searchID}/pause [post]
func (h *Handler) PauseSearch(c *gin.Context) {
	h.setActive(c, false)
}

// ResumeSearch reactivates a paused saved search. The sweep cursor is
// preserved, so catalysts created while paused are evaluated on the
// next pass.
// @Summary Resume a saved search
// @Tags Searches
// @Param searchID path string true "Search ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /searches/{searchID}/resume [post]
func (h *Handler) ResumeSearch(c *gin.Context) {
	h.setActive(c, true)
}

func (h *Handler) setActive(c *gin.Context, active bool) {
	ctx := c.Request.Context()

	sc, err := scope.GetScopeFromContext(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	searchID := c.Param("searchID")
	if !postgresPkg.IsValidUUID(searchID) {
		response.Error(c, errors.NewValidationError("searchID"))
		return
	}

	if err := h.uc.SetActive(ctx, sc, searchID, active); err != nil {
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, nil)
}
