package scoring

import "fmt"

// Error covers every way a submission can fail: network failure,
// non-success HTTP status, a malformed response body, or a response whose
// length does not match the request. The whole submission is treated as
// failed; the caller may retry the same submission but the orchestrator
// never retries on its own.
type Error struct {
	Op     string // "predict_transaction", "predict_batch" or "predict_csv"
	Status int    // HTTP status when the server answered, 0 otherwise
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("scoring %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("scoring %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
