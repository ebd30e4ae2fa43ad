package nargs

func notEmpty(strings ...string) []string {
	n := make([]string, 0, len(strings))
	for _, s := range strings {
		if s != "" {
			n = append(n, s)
		}
	}
	return n
}
