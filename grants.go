package aegis

// GrantFunc produces the extra rules a role confers, scoped to the given
// principal id for owner-style conditions.
type GrantFunc func(principalID string) []Rule

// GrantTable maps a role name to its grant function. Roles absent from the
// table confer no extra rules; an unknown role name is not an error.
type GrantTable map[string]GrantFunc

// Role names recognized by the default grant table.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// DefaultGrants returns the built-in role grant table. The table is read-only
// after engine construction; override it with WithGrants.
func DefaultGrants() GrantTable {
	return GrantTable{
		RoleAdmin:     adminGrants,
		RoleModerator: moderatorGrants,
		RoleUser:      userGrants,
	}
}

func adminGrants(_ string) []Rule {
	return []Rule{
		{Action: ActionManage, Subject: SubjectAll},
	}
}

func moderatorGrants(_ string) []Rule {
	return []Rule{
		{Action: ActionRead, Subject: SubjectAll},
		{Action: ActionUpdate, Subject: SubjectDocument},
		{Action: ActionApprove, Subject: SubjectDocument},
		{Action: ActionModerate, Subject: SubjectComment},
		{Action: ActionModerate, Subject: SubjectUser},
	}
}

func userGrants(principalID string) []Rule {
	me := principalID
	return []Rule{
		{Action: ActionUpdate, Subject: SubjectUser,
			Conditions: map[string]any{"id": me}},

		{Action: ActionCreate, Subject: SubjectDocument},
		{Action: ActionUpdate, Subject: SubjectDocument,
			Conditions: map[string]any{"uploaderId": me}},
		{Action: ActionDelete, Subject: SubjectDocument,
			Conditions: map[string]any{"uploaderId": me}},

		{Action: ActionUpload, Subject: SubjectFile},
		{Action: ActionUpdate, Subject: SubjectFile,
			Conditions: map[string]any{"uploaderId": me}},
		{Action: ActionDelete, Subject: SubjectFile,
			Conditions: map[string]any{"uploaderId": me}},
		{Action: ActionDownload, Subject: SubjectFile,
			Conditions: map[string]any{"uploaderId": me}},
		{Action: ActionDownload, Subject: SubjectFile,
			Conditions: map[string]any{"isPublic": true, "isApproved": true}},

		{Action: ActionCreate, Subject: SubjectComment},
		{Action: ActionUpdate, Subject: SubjectComment,
			Conditions: map[string]any{"authorId": me}},
		{Action: ActionDelete, Subject: SubjectComment,
			Conditions: map[string]any{"authorId": me}},

		{Action: ActionCreate, Subject: SubjectRating},
		{Action: ActionUpdate, Subject: SubjectRating,
			Conditions: map[string]any{"userId": me}},
		{Action: ActionDelete, Subject: SubjectRating,
			Conditions: map[string]any{"userId": me}},

		{Action: ActionCreate, Subject: SubjectBookmark},
		{Action: ActionDelete, Subject: SubjectBookmark,
			Conditions: map[string]any{"userId": me}},

		{Action: ActionRead, Subject: SubjectNotification,
			Conditions: map[string]any{"userId": me}},
		{Action: ActionDelete, Subject: SubjectNotification,
			Conditions: map[string]any{"userId": me}},
	}
}
