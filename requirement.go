package aegis

import "fmt"

// Requirement is a policy requirement declared on an operation at
// registration time. Condition values may be literals or dynamic references
// ("$"-prefixed dot paths such as "$params.id") resolved against the
// RequestContext when the operation is invoked. Multiple requirements on one
// operation are ANDed.
type Requirement struct {
	Action     Action         `json:"action"`
	Subject    Subject        `json:"subject"`
	Conditions map[string]any `json:"conditions,omitempty"`
}

// Validate checks the requirement's enums and dynamic reference roots.
// It is called at registration time so configuration mistakes fail startup
// rather than silently denying at request time.
func (r Requirement) Validate() error {
	if !r.Action.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, r.Action)
	}
	if !r.Subject.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSubject, r.Subject)
	}
	for key, v := range r.Conditions {
		path, ok := DynamicRef(v)
		if !ok {
			continue
		}
		if !ValidRefRoot(path) {
			return fmt.Errorf("%w: condition %q references %q", ErrUnknownReferenceRoot, key, path)
		}
	}
	return nil
}

// RequirementSource looks up the requirements declared for an operation.
// The requirement package provides the standard registry implementation.
type RequirementSource interface {
	Requirements(operation string) ([]Requirement, bool)
}
