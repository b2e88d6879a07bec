package entities

// QualityStatus is the verdict for one checked file
type QualityStatus string

const (
	StatusPass QualityStatus = "PASS"
	StatusWarn QualityStatus = "WARN"
	StatusFail QualityStatus = "FAIL"
)

// FileQuality is the outcome of checking one snapshot file
type FileQuality struct {
	Table   Table         `json:"table"`
	Records int           `json:"records"`
	Columns int           `json:"columns"`
	Issues  []string      `json:"issues"`
	Status  QualityStatus `json:"status"`
}

// File returns the checked file name
func (q FileQuality) File() string {
	return q.Table.FileName()
}

// AddIssue records a finding and downgrades a passing file to WARN
func (q *FileQuality) AddIssue(issue string) {
	q.Issues = append(q.Issues, issue)
	if q.Status == StatusPass {
		q.Status = StatusWarn
	}
}
