package parsing

// Reconcile merges a parsed value with a pre-existing one.
// Precedence is parsed, then existing, then nil.
func Reconcile[T any](parsed, existing *T) *T {
	if parsed != nil {
		return parsed
	}
	return existing
}
