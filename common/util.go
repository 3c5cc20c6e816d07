package common

// UniqueStrings returns values with duplicates and empty strings removed.  The
// first occurrence of each value keeps its position.
func UniqueStrings(values ...[]string) []string {
	seen := make(map[string]struct{})

	var out []string
	for _, list := range values {
		for _, v := range list {
			if v == "" {
				continue
			}

			if _, ok := seen[v]; ok {
				continue
			}

			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}
