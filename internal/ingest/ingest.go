package ingest

// FileResult is the per-file ingest outcome.
type FileResult struct {
	Path        string `json:"path"`
	ReportID    string `json:"report_id,omitempty"`
	RecordCount int    `json:"record_count"`
	Err         string `json:"err,omitempty"`
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned   uint32 `json:"scanned"`
	Matched   uint32 `json:"matched"`
	Succeeded uint32 `json:"succeeded"`
	Failed    uint32 `json:"failed"`
}
