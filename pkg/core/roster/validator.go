package roster

// ValidateRoster validates the final roster against all provided criteria.
// An empty slice indicates the roster is valid.
func ValidateRoster(roster *Roster, vctx ValidationContext, criteria []Criterion) []ValidationError {
	var errors []ValidationError

	for _, criterion := range criteria {
		errors = append(errors, criterion.ValidateRoster(roster, vctx)...)
	}

	return errors
}

// HasBlockingErrors returns true if any validation error is not advisory
func HasBlockingErrors(errors []ValidationError) bool {
	for _, err := range errors {
		if !err.Advisory {
			return true
		}
	}
	return false
}
