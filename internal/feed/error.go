package feed

import "errors"

var (
	ErrFilingNotFound = errors.New("no filing data for ticker")
)
