package form

import "sort"

// Capabilities is the set of permissions the operator of a form holds.
type Capabilities map[string]struct{}

func NewCapabilities(perms ...string) Capabilities {
	c := Capabilities{}
	for _, p := range perms {
		if p != "" {
			c[p] = struct{}{}
		}
	}
	return c
}

// Has reports whether perm is held. The empty permission is always held.
func (c Capabilities) Has(perm string) bool {
	if perm == "" {
		return true
	}
	_, ok := c[perm]
	return ok
}

func (c Capabilities) List() []string {
	out := make([]string, 0, len(c))
	for p := range c {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
