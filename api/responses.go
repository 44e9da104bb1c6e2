package api

// DecideResponse is the response for an authorization decision.
type DecideResponse struct {
	Allowed    bool        `json:"allowed" description:"Whether the request is allowed"`
	Decision   string      `json:"decision" description:"Decision code"`
	Reason     string      `json:"reason,omitempty" description:"Human-readable reason"`
	MatchedBy  []MatchInfo `json:"matched_by,omitempty" description:"Rules that satisfied each requirement"`
	EvalTimeNs int64       `json:"eval_time_ns" description:"Evaluation time in nanoseconds"`
}

// MatchInfo identifies a matched rule.
type MatchInfo struct {
	Source string `json:"source" description:"Rule source (baseline, stored, role)"`
	Detail string `json:"detail,omitempty" description:"Match detail"`
}
