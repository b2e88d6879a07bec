package dto

import (
	"time"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// QualityReport is the outcome of checking one snapshot directory
type QualityReport struct {
	Dir       string                 `json:"dir"`
	CheckedAt time.Time              `json:"checked_at"`
	Files     []entities.FileQuality `json:"files"`
}

// QualityIssue is one (file, issue) pair of a report
type QualityIssue struct {
	File  string `json:"file"`
	Issue string `json:"issue"`
}

// NewQualityReport creates a report for the checked files
func NewQualityReport(dir string, files []entities.FileQuality, checkedAt time.Time) *QualityReport {
	return &QualityReport{Dir: dir, CheckedAt: checkedAt, Files: files}
}

// TotalRecords sums the data rows of every file
func (r *QualityReport) TotalRecords() int {
	total := 0
	for _, f := range r.Files {
		total += f.Records
	}
	return total
}

// TotalIssues counts the findings across every file
func (r *QualityReport) TotalIssues() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Issues)
	}
	return total
}

// Issues flattens the findings in file order
func (r *QualityReport) Issues() []QualityIssue {
	var issues []QualityIssue
	for _, f := range r.Files {
		for _, issue := range f.Issues {
			issues = append(issues, QualityIssue{File: f.File(), Issue: issue})
		}
	}
	return issues
}

// Score is 100 minus ten points per issue per file, floored at zero
func (r *QualityReport) Score() float64 {
	if len(r.Files) == 0 {
		return 0
	}
	score := 100 - float64(r.TotalIssues())/float64(len(r.Files))*10
	if score < 0 {
		return 0
	}
	return score
}

// Passed reports whether every file passed
func (r *QualityReport) Passed() bool {
	for _, f := range r.Files {
		if f.Status != entities.StatusPass {
			return false
		}
	}
	return true
}

// HasFailures reports whether any file is FAIL
func (r *QualityReport) HasFailures() bool {
	for _, f := range r.Files {
		if f.Status == entities.StatusFail {
			return true
		}
	}
	return false
}

// Status returns the status of a table, or FAIL when it was not checked
func (r *QualityReport) Status(table entities.Table) entities.QualityStatus {
	for _, f := range r.Files {
		if f.Table == table {
			return f.Status
		}
	}
	return entities.StatusFail
}
