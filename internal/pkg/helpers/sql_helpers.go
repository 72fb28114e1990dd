package helpers

// NonNilStrings keeps text[] columns from being written as NULL.
func NonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
