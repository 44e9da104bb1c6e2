// Package aegis provides an attribute-based authorization decision engine.
//
// Aegis decides whether a principal may perform an action on a subject type,
// given the candidate resource's attributes. Routes declare policy
// requirements whose conditions may reference request-time values (dynamic
// references such as "$params.id"); the guard resolves those references,
// composes the principal's ability, and returns an allow/deny decision.
//
//	g, err := aegis.New()
//	outcome := g.Decide(ctx, []aegis.Requirement{
//	    {Action: aegis.ActionUpdate, Subject: aegis.SubjectUser,
//	     Conditions: map[string]any{"id": "$params.id"}},
//	}, &aegis.RequestContext{
//	    User:   &aegis.Principal{ID: "u1", RoleName: "user"},
//	    Params: map[string]string{"id": "u1"},
//	})
package aegis

// Action identifies what the principal wants to do. The set is closed;
// ActionManage is the wildcard matching every action.
type Action string

const (
	ActionCreate   Action = "create"
	ActionRead     Action = "read"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionManage   Action = "manage"
	ActionApprove  Action = "approve"
	ActionModerate Action = "moderate"
	ActionUpload   Action = "upload"
	ActionDownload Action = "download"
	ActionComment  Action = "comment"
	ActionRate     Action = "rate"
	ActionBookmark Action = "bookmark"
	ActionShare    Action = "share"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage,
		ActionApprove, ActionModerate, ActionUpload, ActionDownload,
		ActionComment, ActionRate, ActionBookmark, ActionShare:
		return true
	}
	return false
}

// Subject identifies the kind of resource being authorized against. The set
// is closed; SubjectAll is the wildcard matching every subject.
type Subject string

const (
	SubjectUser          Subject = "User"
	SubjectDocument      Subject = "Document"
	SubjectFile          Subject = "File"
	SubjectCategory      Subject = "Category"
	SubjectComment       Subject = "Comment"
	SubjectRating        Subject = "Rating"
	SubjectBookmark      Subject = "Bookmark"
	SubjectNotification  Subject = "Notification"
	SubjectSystemSetting Subject = "SystemSetting"
	SubjectAll           Subject = "all"
)

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	switch s {
	case SubjectUser, SubjectDocument, SubjectFile, SubjectCategory,
		SubjectComment, SubjectRating, SubjectBookmark,
		SubjectNotification, SubjectSystemSetting, SubjectAll:
		return true
	}
	return false
}

// Rule is a single additive grant: the principal may perform Action on
// Subject, optionally restricted to instances whose attributes equal every
// entry in Conditions. Rules only grant; there are no deny rules.
type Rule struct {
	Action     Action         `json:"action"`
	Subject    Subject        `json:"subject"`
	Conditions map[string]any `json:"conditions,omitempty"`
}

// Principal is the already-authenticated actor. StoredPermissions carries the
// raw permission list from the principal's role record as decoded by the
// caller's store; the ability builder validates its shape and skips malformed
// data rather than failing the decision.
type Principal struct {
	ID                string `json:"id"`
	RoleName          string `json:"role_name"`
	StoredPermissions any    `json:"stored_permissions,omitempty"`
}

// ResourceInstance is the attribute bag of the record being authorized
// against, supplied by the caller.
type ResourceInstance map[string]any

// RequestContext is the read-only view of the current request used to
// resolve dynamic references. User is nil for anonymous requests.
type RequestContext struct {
	User   *Principal        `json:"user,omitempty"`
	Params map[string]string `json:"params,omitempty"`
	Query  map[string]string `json:"query,omitempty"`
	Body   map[string]any    `json:"body,omitempty"`
}

// Decision is the authorization outcome.
type Decision string

const (
	// DecisionAllowed means every declared requirement passed.
	DecisionAllowed Decision = "allowed"

	// DecisionDeniedUnauthenticated means requirements were declared but no
	// principal was present.
	DecisionDeniedUnauthenticated Decision = "denied_unauthenticated"

	// DecisionDeniedForbidden means a principal was present but some
	// requirement was not satisfied by any rule.
	DecisionDeniedForbidden Decision = "denied_forbidden"
)

// Outcome is the result of a guard decision.
type Outcome struct {
	Allowed    bool        `json:"allowed"`
	Decision   Decision    `json:"decision"`
	Reason     string      `json:"reason,omitempty"`
	MatchedBy  []MatchInfo `json:"matched_by,omitempty"`
	EvalTimeNs int64       `json:"eval_time_ns"`
}

// MatchInfo describes which rule satisfied a requirement.
type MatchInfo struct {
	Source string `json:"source"` // "baseline", "stored", "role"
	Detail string `json:"detail,omitempty"`
}
