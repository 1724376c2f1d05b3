package core

import "fmt"

// Identifiers hands out small integer names the way GL does: 0 is never
// returned, released names are reused first.
type Identifiers struct {
	owners []interface{}
}

func NewIdentifiers() *Identifiers {
	// slot 0 is reserved as the invalid name
	return &Identifiers{owners: make([]interface{}, 1, 64)}
}

func (ids *Identifiers) Acquire(owner interface{}) uint32 {
	for i := 1; i < len(ids.owners); i++ {
		// Existing free spot. Take it.
		if ids.owners[i] == nil {
			ids.owners[i] = owner
			return uint32(i)
		}
	}
	ids.owners = append(ids.owners, owner)
	return uint32(len(ids.owners) - 1)
}

func (ids *Identifiers) Release(id uint32) error {
	if id == 0 || int(id) >= len(ids.owners) {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d)", id, len(ids.owners)-1)
	}
	if ids.owners[id] == nil {
		return fmt.Errorf("identifier release: id '%d' is not in use", id)
	}
	ids.owners[id] = nil
	return nil
}

// Owner returns what acquired id, or nil.
func (ids *Identifiers) Owner(id uint32) interface{} {
	if int(id) >= len(ids.owners) {
		return nil
	}
	return ids.owners[id]
}

// Live counts the names currently in use.
func (ids *Identifiers) Live() int {
	n := 0
	for i := 1; i < len(ids.owners); i++ {
		if ids.owners[i] != nil {
			n++
		}
	}
	return n
}
