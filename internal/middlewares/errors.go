package middlewares

import "errors"

var (
	ErrMissingToken           = errors.New("authorization header is missing")
	ErrMalformedToken         = errors.New("authorization header must be 'Bearer <token>'")
	ErrIdempotencyKeyTooLong  = errors.New("idempotency key must be at most 255 characters")
	ErrIdempotencyKeyInUse    = errors.New("a request with this idempotency key is in progress, retry later")
	ErrIdempotencyUnavailable = errors.New("idempotency store is unavailable")
)
