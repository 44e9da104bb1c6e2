package api

// RequirementPayload is one declared policy requirement.
type RequirementPayload struct {
	Action     string         `json:"action" description:"Action name"`
	Subject    string         `json:"subject" description:"Subject type"`
	Conditions map[string]any `json:"conditions,omitempty" description:"Literal values or $-prefixed dynamic references"`
}

// PrincipalPayload identifies the authenticated principal.
type PrincipalPayload struct {
	ID                string `json:"id" description:"Principal identifier"`
	RoleName          string `json:"role_name,omitempty" description:"Role name"`
	StoredPermissions any    `json:"stored_permissions,omitempty" description:"Raw permission list from the principal's role record"`
}

// RequestContextPayload carries the request-time values dynamic references
// resolve against. User is omitted for anonymous requests.
type RequestContextPayload struct {
	User   *PrincipalPayload `json:"user,omitempty" description:"Authenticated principal"`
	Params map[string]string `json:"params,omitempty" description:"Route parameters"`
	Query  map[string]string `json:"query,omitempty" description:"Query parameters"`
	Body   map[string]any    `json:"body,omitempty" description:"Request body values"`
}

// DecideRequest is the request body for an inline authorization decision.
type DecideRequest struct {
	Requirements []RequirementPayload  `json:"requirements" description:"Requirements to evaluate (ANDed)"`
	Context      RequestContextPayload `json:"context" description:"Request context"`
}

// DecideOperationRequest decides a registered operation.
type DecideOperationRequest struct {
	Operation string                `path:"operation" description:"Registered operation identifier"`
	Context   RequestContextPayload `json:"context" description:"Request context"`
}
