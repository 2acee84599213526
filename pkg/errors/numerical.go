package errors

import (
	"math"
)

// CheckMatrix checks all values in a matrix for numerical instability. On
// the first row holding a NaN or Inf it returns a
// NumericalInstabilityError whose Row is that row's index and whose Values
// are that row's non-finite entries (at most 10). The iteration argument
// is not used.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols, iteration int) error {
	var unstableValues []float64
	row := -1

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstableValues = append(unstableValues, v)
				if len(unstableValues) >= 10 {
					// Limit the number of collected values for error message
					break
				}
			}
		}
		if len(unstableValues) > 0 {
			row = i
			break
		}
	}

	if len(unstableValues) > 0 {
		return NewNumericalInstabilityError(operation, unstableValues, row)
	}

	return nil
}
