package util

func ContainsFunc[S ~[]T, T any](list S, target T, eq EqualFunc[T]) bool {
	return IndexOfFunc(list, target, eq) >= 0
}

func IndexOfFunc[S ~[]T, T any](list S, target T, eq EqualFunc[T]) int {
	for i, el := range list {
		if eq(el, target) {
			return i
		}
	}
	return -1
}

// Find returns the first element matching pred, and whether there was one
func Find[S ~[]T, T any](list S, pred func(T) bool) (T, bool) {
	for _, t := range list {
		if pred(t) {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func Map[S ~[]T, T, U any](slice S, f func(T) U) []U {
	out := make([]U, len(slice))
	for i, t := range slice {
		out[i] = f(t)
	}
	return out
}

func Filter[S ~[]T, T any](slice S, pred func(T) bool) S {
	out := S{}
	for _, t := range slice {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

// EqualsFunc is true when both lists have the same length and
// are pairwise equal according to eq. Order matters.
func EqualsFunc[S ~[]T, T any](left, right S, eq EqualFunc[T]) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !eq(left[i], right[i]) {
			return false
		}
	}
	return true
}

// MapErr maps every item, stopping at the first error.
func MapErr[S ~[]T, T, U any](slice S, f func(T) (U, error)) ([]U, error) {
	out := make([]U, 0, len(slice))
	for _, t := range slice {
		u, err := f(t)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
