package llm

import "fmt"

// ClientError is the base error type for this package.
type ClientError struct {
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ProviderError is an error attributed to a completion provider.
type ProviderError struct {
	ClientError
	Provider   string
	StatusCode int
	Retryable  bool
	RetryAfter *float64 // seconds, from a Retry-After hint if present
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("[%s] %s (status=%d, retryable=%v)",
		e.Provider, e.Message, e.StatusCode, e.Retryable)
}

// AuthenticationError indicates invalid or missing credentials.
type AuthenticationError struct{ ProviderError }

// NotFoundError indicates an unknown model or endpoint. For local providers
// this usually means the model has not been pulled.
type NotFoundError struct{ ProviderError }

// InvalidRequestError indicates the provider rejected the request shape.
type InvalidRequestError struct{ ProviderError }

// RateLimitError indicates the provider throttled the request.
type RateLimitError struct{ ProviderError }

// ServerError indicates a provider-side failure.
type ServerError struct{ ProviderError }

// ConnectionError indicates the provider endpoint could not be reached.
// Local daemons restart often, so these are worth retrying.
type ConnectionError struct{ ClientError }

// RequestTimeoutError indicates the request exceeded its deadline.
type RequestTimeoutError struct{ ClientError }

// ConfigurationError indicates invalid client or provider configuration.
type ConfigurationError struct{ ClientError }

// AbortError indicates the operation was cancelled.
type AbortError struct{ ClientError }

// ErrorFromStatusCode converts an HTTP status code into the matching error
// type.
func ErrorFromStatusCode(statusCode int, message, provider string, retryAfter *float64) error {
	pe := ProviderError{
		ClientError: ClientError{Message: message},
		Provider:    provider,
		StatusCode:  statusCode,
	}
	switch statusCode {
	case 400, 422:
		return &InvalidRequestError{pe}
	case 401, 403:
		return &AuthenticationError{pe}
	case 404:
		return &NotFoundError{pe}
	case 408:
		return &RequestTimeoutError{ClientError: ClientError{Message: message}}
	case 429:
		pe.Retryable = true
		pe.RetryAfter = retryAfter
		return &RateLimitError{pe}
	case 500, 502, 503, 504:
		pe.Retryable = true
		return &ServerError{pe}
	default:
		pe.Retryable = true
		return &pe
	}
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch e := err.(type) {
	case *RateLimitError, *ServerError, *ConnectionError, *RequestTimeoutError:
		return true
	case *AuthenticationError, *NotFoundError, *InvalidRequestError,
		*ConfigurationError, *AbortError:
		return false
	case *ProviderError:
		return e.Retryable
	default:
		// Unknown errors default to retryable.
		return true
	}
}
