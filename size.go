package bench

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var sizeRE = regexp.MustCompile(`(?i)^\s*([0-9]+)\s*([kmg]?b?)\s*$`)

// ParseSize parses a size such as "64mb" or "512k" and returns its value in
// bytes. The empty string means no limit and yields zero.
func ParseSize(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	m := sizeRE.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	var shift uint
	switch strings.TrimSuffix(strings.ToLower(m[2]), "b") {
	case "k":
		shift = 10
	case "m":
		shift = 20
	case "g":
		shift = 30
	}
	if v > math.MaxInt64>>shift {
		return 0, fmt.Errorf("size %q out of range", s)
	}
	return v << shift, nil
}
