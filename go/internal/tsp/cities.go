package tsp

import (
	"math/rand/v2"

	"github.com/mcdev12/minigames/go/internal/apperr"
)

const (
	minDistance = 50
	maxDistance = 100
)

// CityLabels names the cities in matrix order.
var CityLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// CityIndex returns the matrix index of label.
func CityIndex(label string) (int, bool) {
	for i, l := range CityLabels {
		if l == label {
			return i, true
		}
	}
	return -1, false
}

// GenerateMatrix returns a symmetric distance matrix with a zero diagonal
// and off-diagonal distances in [50, 100].
func GenerateMatrix(rng *rand.Rand) [][]int {
	n := len(CityLabels)
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := minDistance + rng.IntN(maxDistance-minDistance+1)
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m
}

// ValidateMatrix checks that m is square, symmetric, non-negative and has a zero diagonal.
func ValidateMatrix(m [][]int) error {
	n := len(m)
	if n == 0 {
		return apperr.Invalid("Distance matrix is empty")
	}
	for _, row := range m {
		if len(row) != n {
			return apperr.Invalid("Distance matrix must be square")
		}
	}
	for i, row := range m {
		if row[i] != 0 {
			return apperr.Invalid("Distance from a city to itself must be 0")
		}
		for j, d := range row {
			if d < 0 {
				return apperr.Invalid("Distances must be non-negative")
			}
			if m[j][i] != d {
				return apperr.Invalid("Distance matrix must be symmetric")
			}
		}
	}
	return nil
}
