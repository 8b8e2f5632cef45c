package framework

// Capabilities is a list of strings representing optional features of an automation engine
// driver, such as whether it can issue API requests or launch a particular browser variant. The
// meanings of these strings are defined by the engine package.
type Capabilities []string

// Has returns true if the specified string appears in the list.
func (cs Capabilities) Has(name string) bool {
	for _, c := range cs {
		if c == name {
			return true
		}
	}
	return false
}

// HasAll returns true if every one of the specified strings appears in the list.
func (cs Capabilities) HasAll(names ...string) bool {
	for _, n := range names {
		if !cs.Has(n) {
			return false
		}
	}
	return true
}
