package quiz

import "sort"

// ChoiceSet is an unordered set of choice letters. Operations are total: any
// letter can be toggled in or out regardless of the current contents.
type ChoiceSet map[string]struct{}

// NewChoiceSet builds a set from the given letters.
func NewChoiceSet(letters ...string) ChoiceSet {
	set := make(ChoiceSet, len(letters))
	for _, letter := range letters {
		set[letter] = struct{}{}
	}
	return set
}

// Contains reports whether the letter is in the set.
func (s ChoiceSet) Contains(letter string) bool {
	_, ok := s[letter]
	return ok
}

// IsEmpty reports whether the set has no members.
func (s ChoiceSet) IsEmpty() bool {
	return len(s) == 0
}

// Toggle removes the letter when present, otherwise adds it.
func (s ChoiceSet) Toggle(letter string) {
	if s.Contains(letter) {
		delete(s, letter)
		return
	}
	s[letter] = struct{}{}
}

// ReplaceWith empties the set and leaves exactly the given letter.
func (s ChoiceSet) ReplaceWith(letter string) {
	for member := range s {
		delete(s, member)
	}
	s[letter] = struct{}{}
}

// Letters returns the members in sorted order.
func (s ChoiceSet) Letters() []string {
	letters := make([]string, 0, len(s))
	for letter := range s {
		letters = append(letters, letter)
	}
	sort.Strings(letters)
	return letters
}

// Equal reports membership equality with another set.
func (s ChoiceSet) Equal(other ChoiceSet) bool {
	if len(s) != len(other) {
		return false
	}
	for letter := range s {
		if !other.Contains(letter) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s ChoiceSet) Clone() ChoiceSet {
	clone := make(ChoiceSet, len(s))
	for letter := range s {
		clone[letter] = struct{}{}
	}
	return clone
}
