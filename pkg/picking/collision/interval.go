package collision

// InInterval reports whether v lies in the closed interval [lo, hi].
func InInterval(v, lo, hi float32) bool {
	return lo <= v && v <= hi
}

// MinOpt returns the smaller of two optional values.
// If only one is present it is returned; if neither is, ok is false.
func MinOpt(a float32, aOK bool, b float32, bOK bool) (float32, bool) {
	switch {
	case aOK && bOK:
		if b < a {
			return b, true
		}
		return a, true
	case aOK:
		return a, true
	case bOK:
		return b, true
	}

	return 0, false
}

// MaxOpt returns the larger of two optional values, with the same presence rules as MinOpt.
func MaxOpt(a float32, aOK bool, b float32, bOK bool) (float32, bool) {
	switch {
	case aOK && bOK:
		if b > a {
			return b, true
		}
		return a, true
	case aOK:
		return a, true
	case bOK:
		return b, true
	}

	return 0, false
}
