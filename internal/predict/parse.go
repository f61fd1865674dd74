package predict

import (
	"fmt"
	"regexp"
	"strconv"
)

// ageRegexp matches the first contiguous decimal number in the response.
// There is no sign handling: ages are always non-negative magnitudes.
var ageRegexp = regexp.MustCompile(`\d+\.?\d*`)

// ParseAge extracts the predicted age from a raw model response. It returns
// an error wrapping ErrNoAgeInResponse when the response contains no number.
func ParseAge(raw string) (float64, error) {
	match := ageRegexp.FindString(raw)
	if match == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoAgeInResponse, raw)
	}

	age, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoAgeInResponse, raw)
	}
	return age, nil
}
