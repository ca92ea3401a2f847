// Package grid holds the small helpers the game engine needs to address and
// copy cells, draw random positions and format the round clock.
package grid

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

const keySeparator = "-"

// EncodeKey returns the "x-y" key used to track visited cells
func EncodeKey(x, y int) string {
	return strconv.Itoa(x) + keySeparator + strconv.Itoa(y)
}

// DecodeKey reverses EncodeKey
func DecodeKey(key string) (x, y int, err error) {
	parts := strings.Split(key, keySeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed cell key %q", key)
	}

	if x, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("malformed cell key %q: %w", key, err)
	}
	if y, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("malformed cell key %q: %w", key, err)
	}
	return x, y, nil
}

// CopyMatrix returns a deep copy of a row-major matrix
func CopyMatrix[T any](matrix [][]T) [][]T {
	if matrix == nil {
		return nil
	}

	out := make([][]T, len(matrix))
	for i, row := range matrix {
		out[i] = make([]T, len(row))
		copy(out[i], row)
	}
	return out
}

// RandomInt returns a random integer in [min, max). max must be greater than min.
func RandomInt(r *rand.Rand, min, max int) int {
	return r.Intn(max-min) + min
}

// FormatTime renders seconds as MM:SS. Negative durations render as 00:00.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
