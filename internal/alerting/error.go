package alerting

import "errors"

var (
	ErrAlertNotFound        = errors.New("alert not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoChannelDelivered   = errors.New("no channel delivered")
	ErrInvalidPreferences   = errors.New("invalid notification preferences")
)
