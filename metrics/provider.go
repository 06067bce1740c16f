package metrics

// HeightSource answers the height of a row, or false when it has no opinion.
type HeightSource func(row int) (float64, bool)

// Chain evaluates sources in order and returns the first answer. Nil sources are
// skipped.
func Chain(sources ...HeightSource) HeightSource {
	return func(row int) (float64, bool) {
		for _, source := range sources {
			if source == nil {
				continue
			}
			if h, ok := source(row); ok {
				return h, true
			}
		}
		return 0, false
	}
}

// Fixed answers h for every row.
func Fixed(h float64) HeightSource {
	return func(int) (float64, bool) {
		return h, true
	}
}

// Explicit answers only for the rows present in heights.
func Explicit(heights map[int]float64) HeightSource {
	return func(row int) (float64, bool) {
		h, ok := heights[row]
		return h, ok
	}
}
