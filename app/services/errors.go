package services

import "errors"

// ErrRateLimited is returned when a submitter has exhausted their
// submission allowance for the current window.
var ErrRateLimited = errors.New("submission rate limit exceeded")
