package output

// DetectOutput is the JSON document written by the detect command.
type DetectOutput struct {
	RunID       string             `json:"run_id"`
	Locale      string             `json:"locale"`
	Summary     DetectSummary      `json:"summary"`
	Instances   []PatternInstance  `json:"instances"`
	Diagnostics []DetectDiagnostic `json:"diagnostics"`
}

// DetectSummary counts what a run found.
type DetectSummary struct {
	Files       int            `json:"files"`
	Instances   int            `json:"instances"`
	Diagnostics int            `json:"diagnostics"`
	ByPattern   map[string]int `json:"by_pattern"`
	DurationMS  int64          `json:"duration_ms"`
}

// PatternInstance is one detected occurrence.
type PatternInstance struct {
	PatternID string `json:"pattern_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	TypeName  string `json:"type,omitempty"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
}

// DetectDiagnostic is a non-fatal problem reported by a run.
type DetectDiagnostic struct {
	Kind      string `json:"kind"`
	Path      string `json:"path"`
	PatternID string `json:"pattern_id,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	Message   string `json:"message"`
}

// PatternsOutput is the JSON document written by the patterns command.
type PatternsOutput struct {
	Locale   string        `json:"locale"`
	Patterns []PatternInfo `json:"patterns"`
	Count    int           `json:"count"`
}

// PatternInfo describes one cataloged pattern.
type PatternInfo struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Group          string   `json:"group"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Source         string   `json:"source,omitempty"`
	AdditionalInfo []string `json:"additional_info,omitempty"`
}

// HistoryOutput is the JSON document written by the history command when
// listing runs.
type HistoryOutput struct {
	Runs  []RunInfo `json:"runs"`
	Count int       `json:"count"`
}

// RunInfo describes one recorded detection run.
type RunInfo struct {
	ID          string         `json:"id"`
	Root        string         `json:"root"`
	Locale      string         `json:"locale"`
	StartedAt   string         `json:"started_at"`
	Files       int            `json:"files"`
	Instances   int            `json:"instances"`
	Diagnostics int            `json:"diagnostics"`
	DurationMS  int64          `json:"duration_ms"`
	ByPattern   map[string]int `json:"by_pattern,omitempty"`
}
