package analysis

import (
	"fmt"

	"github.com/san-kum/bifurcation/internal/dynamo"
)

// Linspace returns n evenly spaced values over [start, stop]. Both endpoints are
// included and the last value is exactly stop. n == 1 yields [start].
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: number of parameter points must be >= 0, got %d", dynamo.ErrInvalidConfig, n)
	}

	values := make([]float64, n)
	if n == 0 {
		return values, nil
	}
	values[0] = start
	if n == 1 {
		return values, nil
	}

	step := (stop - start) / float64(n-1)
	for i := 1; i < n-1; i++ {
		values[i] = start + float64(i)*step
	}
	values[n-1] = stop
	return values, nil
}
