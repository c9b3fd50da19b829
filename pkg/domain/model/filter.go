package model

// ActionFilter selects actions for listing, counting and sampling
type ActionFilter struct {
	// ApprovedOnly restricts the selection to approved actions
	ApprovedOnly bool
	// For holds audience tags matched with OR semantics. Empty means no tag constraint.
	For []string
}

// NewForFilter normalizes raw query values. Empty strings and repeated values
// are dropped, so a bare `for=` behaves as if no tag filter was given.
func NewForFilter(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasTagFilter reports whether the filter constrains audience tags
func (f ActionFilter) HasTagFilter() bool {
	return len(f.For) > 0
}

// Matches reports whether the action satisfies the filter
func (f ActionFilter) Matches(a *Action) bool {
	if f.ApprovedOnly && !a.Approved {
		return false
	}
	if !f.HasTagFilter() {
		return true
	}
	for _, tag := range a.For {
		for _, want := range f.For {
			if tag == want {
				return true
			}
		}
	}
	return false
}
