package aegis

import "strings"

// undefinedValue is the sentinel produced for a dynamic reference whose path
// does not resolve. It is a distinct type so it can never compare equal to a
// real attribute value; the matcher treats it as "this rule does not apply".
type undefinedValue struct{}

// Undefined is the non-matching sentinel for unresolved dynamic references.
var Undefined any = undefinedValue{}

func isUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// Reference roots permitted in dynamic references.
const (
	RefRootUser   = "user"
	RefRootParams = "params"
	RefRootQuery  = "query"
	RefRootBody   = "body"
)

// DynamicRef reports whether v is a dynamic reference ("$"-prefixed string)
// and returns its dot-separated path.
func DynamicRef(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, "$") {
		return "", false
	}
	return strings.TrimPrefix(s, "$"), true
}

// ValidRefRoot reports whether the first segment of path is a permitted
// reference root. Registration rejects anything else so a typo surfaces at
// startup instead of as a silent runtime no-match.
func ValidRefRoot(path string) bool {
	root, _, _ := strings.Cut(path, ".")
	switch root {
	case RefRootUser, RefRootParams, RefRootQuery, RefRootBody:
		return true
	}
	return false
}

// ResolveConditions materializes dynamic references in conditions against
// rctx. Literal values pass through unchanged; an unresolvable path yields
// Undefined. The resolver performs no I/O and never fails.
func ResolveConditions(conditions map[string]any, rctx *RequestContext) map[string]any {
	if len(conditions) == 0 {
		return nil
	}
	resolved := make(map[string]any, len(conditions))
	for k, v := range conditions {
		path, ok := DynamicRef(v)
		if !ok {
			resolved[k] = v
			continue
		}
		resolved[k] = resolvePath(path, rctx)
	}
	return resolved
}

func resolvePath(path string, rctx *RequestContext) any {
	if rctx == nil {
		return Undefined
	}
	root, rest, _ := strings.Cut(path, ".")
	switch root {
	case RefRootUser:
		return resolvePrincipalField(rctx.User, rest)
	case RefRootParams:
		return lookupString(rctx.Params, rest)
	case RefRootQuery:
		return lookupString(rctx.Query, rest)
	case RefRootBody:
		return walkMap(rctx.Body, rest)
	}
	return Undefined
}

func resolvePrincipalField(p *Principal, field string) any {
	if p == nil {
		return Undefined
	}
	switch field {
	case "id":
		return p.ID
	case "roleName":
		return p.RoleName
	}
	return Undefined
}

func lookupString(m map[string]string, key string) any {
	if key == "" {
		return Undefined
	}
	v, ok := m[key]
	if !ok {
		return Undefined
	}
	return v
}

// walkMap follows a dot path through nested body maps.
func walkMap(m map[string]any, path string) any {
	if path == "" {
		return Undefined
	}
	var cur any = m
	for _, seg := range strings.Split(path, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return Undefined
		}
		cur, ok = node[seg]
		if !ok {
			return Undefined
		}
	}
	return cur
}
