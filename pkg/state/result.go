package state

// Status is the lifecycle phase of an asynchronous result.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// Result holds the latest known outcome of an asynchronous operation.
// Exactly one of Value/Message is meaningful, selected by Status.
type Result[T any] struct {
	Status  Status
	Value   T
	Message string
}

func Idle[T any]() Result[T] {
	return Result[T]{Status: StatusIdle}
}

func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: v}
}

func Err[T any](message string) Result[T] {
	return Result[T]{Status: StatusError, Message: message}
}

func (r Result[T]) IsIdle() bool    { return r.Status == StatusIdle }
func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }
