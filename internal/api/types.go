package api

// StatusView is the renderable daemon status.
type StatusView struct {
	Running       bool   `json:"running"`
	PID           int    `json:"pid"`
	LockFilePath  string `json:"lock_file_path"`
	JournalDBPath string `json:"journal_db_path"`
	Phase         string `json:"phase"`
	JobID         string `json:"job_id,omitempty"`
}

// JournalView is the renderable action journal slot.
type JournalView struct {
	Kind        string   `json:"kind"`
	JobID       string   `json:"job_id,omitempty"`
	ClosedCount int      `json:"closed_count"`
	GroupCount  int      `json:"group_count"`
	ClosedURLs  []string `json:"closed_urls,omitempty"`
	Rationale   string   `json:"rationale,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// CheckView is the renderable outcome of one preflight check.
type CheckView struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}
