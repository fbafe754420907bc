// internal/github/errors.go
package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// ErrorKind classifies a failed GitHub call.
type ErrorKind string

const (
	KindAuth      ErrorKind = "authentication"
	KindNotFound  ErrorKind = "not_found"
	KindRateLimit ErrorKind = "rate_limit"
	KindNetwork   ErrorKind = "network"
	KindUnknown   ErrorKind = "unknown"
)

// FetchError is returned for any non-success GitHub response or transport failure.
type FetchError struct {
	Kind       ErrorKind
	Resource   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github %s error for %s (status %d): %v", e.Kind, e.Resource, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("github %s error for %s: %v", e.Kind, e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func wrapError(err error, resource string) error {
	fe := &FetchError{Kind: KindUnknown, Resource: resource, Err: err}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse

	switch {
	case errors.As(err, &rateErr):
		fe.Kind = KindRateLimit
		fe.StatusCode = statusCode(rateErr.Response)
	case errors.As(err, &abuseErr):
		fe.Kind = KindRateLimit
		fe.StatusCode = statusCode(abuseErr.Response)
	case errors.As(err, &respErr):
		fe.StatusCode = statusCode(respErr.Response)
		switch fe.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			fe.Kind = KindAuth
		case http.StatusNotFound:
			fe.Kind = KindNotFound
		}
	default:
		fe.Kind = KindNetwork
	}

	return fe
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
