package model

// ScanSummary is the terminal payload of a completed scan.
type ScanSummary struct {
	Target           string          `json:"target"`
	ScannedCount     int             `json:"scanned_count"`
	RelevantFindings int             `json:"relevant_findings"`
	ExecutionTime    string          `json:"execution_time"`
	Data             []PaperFindings `json:"data"`
}
