package translio

import "fmt"

// InvalidKeyError indicates a malformed record identity. The write is never
// partially applied.
type InvalidKeyError struct {
	Field string // which key component was empty/invalid
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid record key: empty %s", e.Field)
}

// StorageError indicates the underlying persistence is unavailable or
// rejected a write. It propagates to the caller; the engine never retries
// storage faults.
type StorageError struct {
	Op    string // the store operation that failed
	Cause error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error: %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("storage error: %s", e.Op)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation provider failure (API error, rate
// limit, malformed response).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the provider returned a different number of
// translations than requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}
