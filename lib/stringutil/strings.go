package stringutil

// Empty returns true if any of the values is an empty string.
func Empty(vals ...string) bool {
	for _, val := range vals {
		if val == "" {
			return true
		}
	}

	return false
}
