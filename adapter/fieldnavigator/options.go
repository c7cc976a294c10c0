package fieldnavigator

// WithMaxDepth sets the traversal recursion limit. Branches deeper than the
// limit contribute no leaves.
func WithMaxDepth(d int) Option {
	return func(fn *FieldNavigator) {
		fn.maxDepth = d
	}
}

// Option configures navigator behavior through the functional options
// pattern.
type Option func(*FieldNavigator)
