// Package cycle picks which stored day the status bar shows next.
package cycle

// State is the rotating position persisted between invocations
type State struct {
	Index int
}

// Select returns the index of the file to show out of n files and the state
// to persist for the next invocation. ok is false when there is nothing to show.
func Select(n int, st State) (index int, next State, ok bool) {
	if n <= 0 {
		return 0, st, false
	}
	idx := st.Index
	if idx < 0 {
		idx = 0
	}
	index = idx % n
	return index, State{Index: (index + 1) % n}, true
}
