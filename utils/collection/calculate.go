package collection

type Number interface {
	int | int32 | int64 | float32 | float64
}

func SumBy[T any, N Number](s []T, valueSelector func(T) N) N {
	var result N
	for _, item := range s {
		value := valueSelector(item)
		result += value
	}
	return result
}

func MeanBy[T any, N Number](s []T, valueSelector func(T) N) float64 {
	if len(s) == 0 {
		return 0
	}
	return float64(SumBy(s, valueSelector)) / float64(len(s))
}

func CountBy[T any](s []T, predicate func(T) bool) int {
	count := 0
	for _, item := range s {
		if predicate(item) {
			count++
		}
	}
	return count
}
