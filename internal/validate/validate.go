package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Indian-style pincode: six digits, leading digit 1-9
	rePincode = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Pincode trims and checks the 6-digit postal code format. Range and
// directory checks belong to the delivery resolver, not here.
func Pincode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePincode.MatchString(s)
}

// ID validates a simple resource identifier (product ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Loaded parses the pagination cursor (items already loaded). Bad or missing
// values start from the beginning.
func Loaded(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
