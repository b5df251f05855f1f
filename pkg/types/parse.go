package types

import "strings"

// ParseBool interprets the boolean literal forms accepted across input rows
// and remote data: true/false, yes/no, y/n, 1/0, case-insensitively.
// Unparseable or absent values are false. This is the single boolean parser
// for the whole system so normalizer and merger can never drift apart.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}

// CanonicalSpeed reduces a link speed literal to a canonical comparable form:
// "25GB", "25 Gbps", and "25g" all become "25g". The numeric prefix is kept
// verbatim; recognized unit suffixes collapse to a single letter. Literals
// with no recognized unit are returned lowercased with spaces removed, so
// comparison still behaves sanely for unexpected vendor strings.
func CanonicalSpeed(s string) string {
	compact := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
	if compact == "" {
		return ""
	}

	i := 0
	for i < len(compact) && (compact[i] >= '0' && compact[i] <= '9' || compact[i] == '.') {
		i++
	}
	num, unit := compact[:i], compact[i:]
	if num == "" {
		return compact
	}

	switch unit {
	case "g", "gb", "gbit", "gbps", "gbit/s", "gb/s":
		return num + "g"
	case "m", "mb", "mbit", "mbps", "mbit/s", "mb/s":
		return num + "m"
	case "t", "tb", "tbit", "tbps":
		return num + "t"
	case "":
		return num
	default:
		return compact
	}
}

// SpeedEqual compares two speed literals in canonical form.
func SpeedEqual(a, b string) bool {
	return CanonicalSpeed(a) == CanonicalSpeed(b)
}
