package types

import "errors"

var (
	ErrMissingConfig  = errors.New("required configuration is missing")
	ErrDeliveryFailed = errors.New("failed to deliver the cost report")
)
