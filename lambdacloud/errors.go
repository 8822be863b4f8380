package lambdacloud

import "errors"

var (
	ErrMissingToken   = errors.New("lambdacloud: api token is required")
	ErrInvalidRequest = errors.New("lambdacloud: invalid request")
)
