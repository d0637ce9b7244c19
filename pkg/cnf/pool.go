package cnf

import (
	"fmt"
)

// Role distinguishes the families of propositional variables used by the
// encoding.
type Role int

const (
	// RoleInput is the original value on a channel.
	RoleInput Role = iota
	// RoleMin is the minimum output of a comparator.
	RoleMin
	// RoleMax is the maximum output of a comparator.
	RoleMax
	// RoleUnsorted marks an adjacent output pair that is out of order.
	RoleUnsorted
	// RoleFirstRun marks an adjacent out-of-order pair within the first
	// input run of a merger.
	RoleFirstRun
	// RoleSecondRun is RoleFirstRun for the second run.
	RoleSecondRun
)

var roleNames = map[Role]string{
	RoleInput:     "input",
	RoleMin:       "min",
	RoleMax:       "max",
	RoleUnsorted:  "unsorted",
	RoleFirstRun:  "first-run",
	RoleSecondRun: "second-run",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Key identifies a variable by role and index. The index is a channel
// for RoleInput, a comparator position for RoleMin and RoleMax, and an
// output position for the sortedness roles.
type Key struct {
	Role  Role
	Index int
}

func (k Key) String() string {
	return fmt.Sprintf("%s[%d]", k.Role, k.Index)
}

// LookupError is returned when a variable identifier that the pool never
// issued is resolved. It means the formula and the pool disagree.
type LookupError struct {
	ID int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("variable %d was never issued by the pool", e.ID)
}

// Pool hands out positive variable identifiers for keys, in first-seen
// order starting at 1, and resolves identifiers back to keys. A Pool
// belongs to a single encoding and is not safe for concurrent use.
type Pool struct {
	ids  map[Key]int
	keys []Key
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{ids: make(map[Key]int)}
}

// ID returns the identifier of key, allocating one if key is new.
func (p *Pool) ID(key Key) int {
	if id, ok := p.ids[key]; ok {
		return id
	}
	p.keys = append(p.keys, key)
	id := len(p.keys)
	p.ids[key] = id
	return id
}

// Object returns the key that id was issued for.
func (p *Pool) Object(id int) (Key, error) {
	if id < 1 || id > len(p.keys) {
		return Key{}, &LookupError{ID: id}
	}
	return p.keys[id-1], nil
}

// Len returns the number of identifiers issued so far, which is also the
// largest one.
func (p *Pool) Len() int {
	return len(p.keys)
}
