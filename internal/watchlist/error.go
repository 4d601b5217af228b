package watchlist

import "errors"

var ErrInvalidStaircase = errors.New("invalid threshold staircase")
