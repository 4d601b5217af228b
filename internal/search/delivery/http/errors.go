package http

import (
	"net/http"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/search"
	pkgErrors "github.com/UMwai/um-biotech-catalyst-radar/pkg/errors"

	"github.com/friendsofgo/errors"
)

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, search.ErrSearchNotFound):
		return pkgErrors.NewNotFoundHTTPError("Saved search not found")
	case errors.Is(err, search.ErrInvalidSearch):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error(), http.StatusBadRequest)
	default:
		return err
	}
}
