package model

// IDSet is an ordered set of user IDs. Insertion order is kept for stable
// output but carries no meaning; an ID never appears twice.
type IDSet []UserID

// NewIDSet builds a set from ids, dropping duplicates and empty IDs
func NewIDSet(ids ...UserID) IDSet {
	set := make(IDSet, 0, len(ids))
	for _, id := range ids {
		set = set.Add(id)
	}
	return set
}

// Contains reports whether id is a member
func (s IDSet) Contains(id UserID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add returns a set that includes id. The receiver is not modified.
func (s IDSet) Add(id UserID) IDSet {
	if id == "" || s.Contains(id) {
		return s.clone()
	}
	return append(s.clone(), id)
}

// Remove returns a set without id. The receiver is not modified.
func (s IDSet) Remove(id UserID) IDSet {
	out := make(IDSet, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Toggle flips membership of actor. It returns the new set and whether the
// actor was removed (true) or added (false).
func (s IDSet) Toggle(actor UserID) (IDSet, bool) {
	if s.Contains(actor) {
		return s.Remove(actor), true
	}
	return s.Add(actor), false
}

// Strings returns the members as plain strings
func (s IDSet) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

// IDSetFromStrings converts persisted string slices back into a set
func IDSetFromStrings(ids []string) IDSet {
	set := make(IDSet, 0, len(ids))
	for _, id := range ids {
		set = set.Add(UserID(id))
	}
	return set
}

func (s IDSet) clone() IDSet {
	out := make(IDSet, len(s), len(s)+1)
	copy(out, s)
	return out
}
