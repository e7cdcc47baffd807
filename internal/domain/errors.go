package domain

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	// ErrMalformedResponse marks a successful remote exchange whose payload did not have
	// the expected shape. It is never retried.
	ErrMalformedResponse = errors.New("malformed response")

	ErrTransportExhausted = errors.New("album fetch retries exhausted")
	ErrDeliveryExhausted  = errors.New("message delivery retries exhausted")
)
