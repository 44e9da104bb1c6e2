package aegis

// Config holds configuration for the Guard.
type Config struct {
	// Baseline is the rule set granted to every request, including
	// anonymous ones. Defaults to public-document and category reads.
	Baseline []Rule `json:"baseline,omitempty"`
}

// DefaultConfig returns a Config with the standard baseline.
func DefaultConfig() Config {
	return Config{
		Baseline: []Rule{
			{Action: ActionRead, Subject: SubjectDocument,
				Conditions: map[string]any{"isPublic": true}},
			{Action: ActionRead, Subject: SubjectCategory},
		},
	}
}
