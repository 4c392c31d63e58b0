package models

import (
	"fmt"
	"strings"
)

// NormalizeCountry uppercases an ISO 3166-1 alpha-2 code and rejects
// anything that is not two ASCII letters.
func NormalizeCountry(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 2 || c[0] < 'A' || c[0] > 'Z' || c[1] < 'A' || c[1] > 'Z' {
		return "", fmt.Errorf("invalid country code %q", code)
	}
	return c, nil
}
