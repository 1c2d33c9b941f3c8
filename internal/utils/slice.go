package utils

// ReversedSlice returns a reversed copy of $s.
func ReversedSlice[T any](s []T) []T {
	reversed := make([]T, len(s))
	for i, e := range s {
		reversed[len(s)-1-i] = e
	}
	return reversed
}

func MapSlice[T any, U any](s []T, mapper func(e T) U) []U {
	result := make([]U, len(s))

	for i, e := range s {
		result[i] = mapper(e)
	}

	return result
}
