// Package requirement provides the explicit requirement table: a mapping
// from operation identifier to the policy requirements declared for it,
// populated at startup and looked up by the guard per request.
package requirement

import (
	"fmt"
	"sync"

	"github.com/xraph/aegis"
	"github.com/xraph/aegis/id"
)

// entry is one registered operation: its requirement list plus the
// requirement set ID stamped at registration, used to correlate audit
// records with the table revision that produced them.
type entry struct {
	id   id.RequirementID
	reqs []aegis.Requirement
}

// Registry maps operation identifiers to their declared requirements.
// Registration normally finishes before the process starts serving;
// lookups are safe from any number of goroutines.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]entry
}

// NewRegistry creates an empty requirement registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]entry)}
}

// Register declares the requirements for an operation. Every requirement is
// validated: unknown actions, subjects, or dynamic reference roots are
// configuration errors and are rejected here rather than surfacing as a
// silent runtime no-match. Registering the same operation twice is an error.
func (r *Registry) Register(operation string, reqs ...aegis.Requirement) error {
	if operation == "" {
		return fmt.Errorf("requirement: operation identifier is empty")
	}
	for i, req := range reqs {
		if err := req.Validate(); err != nil {
			return fmt.Errorf("requirement: operation %q entry %d: %w", operation, i, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[operation]; exists {
		return fmt.Errorf("%w: %q", aegis.ErrDuplicateOperation, operation)
	}
	r.ops[operation] = entry{
		id:   id.NewRequirementID(),
		reqs: append([]aegis.Requirement(nil), reqs...),
	}
	return nil
}

// MustRegister is like Register but panics on error. Use for static tables
// wired at process start, where a malformed table should fail startup.
func (r *Registry) MustRegister(operation string, reqs ...aegis.Requirement) {
	if err := r.Register(operation, reqs...); err != nil {
		panic(err)
	}
}

// Requirements returns the requirement list for an operation. The returned
// slice must not be mutated. Implements aegis.RequirementSource.
func (r *Registry) Requirements(operation string) ([]aegis.Requirement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.ops[operation]
	return e.reqs, ok
}

// ID returns the requirement set ID stamped when the operation was
// registered.
func (r *Registry) ID(operation string) (id.RequirementID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.ops[operation]
	return e.id, ok
}

// Operations returns the registered operation identifiers.
func (r *Registry) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ops))
	for op := range r.ops {
		out = append(out, op)
	}
	return out
}
