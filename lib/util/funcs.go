package util

type EqualFunc[T any] func(l, r T) bool

type IdFunc[T any, ID comparable] func(T) ID

func Identity[T comparable](t T) T {
	return t
}

func Partial2R[A, B, R any](f func(A, B) R, b B) func(A) R {
	return func(a A) R {
		return f(a, b)
	}
}

func Partial2RE[A, B, R any](f func(A, B) (R, error), b B) func(A) (R, error) {
	return func(a A) (R, error) {
		return f(a, b)
	}
}
