package http

import (
	"net/http"

	"github.com/UMwai/um-biotech-catalyst-radar/internal/alerting"
	pkgErrors "github.com/UMwai/um-biotech-catalyst-radar/pkg/errors"

	"github.com/friendsofgo/errors"
)

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, alerting.ErrAlertNotFound):
		return pkgErrors.NewNotFoundHTTPError("Alert not found")
	case errors.Is(err, alerting.ErrNotificationNotFound):
		return pkgErrors.NewNotFoundHTTPError("Notification not found")
	case errors.Is(err, alerting.ErrInvalidPreferences):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error(), http.StatusBadRequest)
	default:
		return err
	}
}
