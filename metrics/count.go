package metrics

import "fmt"

// clampCount turns a negative row count into zero. Builds tagged
// virtualtabledebug panic instead, since a negative count is a caller bug.
func clampCount(n int) int {
	if n >= 0 {
		return n
	}
	if debugContracts {
		panic(fmt.Sprintf("metrics: negative row count %d", n))
	}
	return 0
}
