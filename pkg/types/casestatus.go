// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentDownloadError is stored in DocumentFilename when the case
// document could not be retrieved.
const DocumentDownloadError = "Download Error"

// CaseStatus holds the fields extracted from a TSDR case status response.
// Every field except CaseID may be empty when the source XML lacks the
// corresponding element.
type CaseStatus struct {
	// CaseID is the caller-supplied identifier (e.g. "97890330").
	CaseID string `json:"case_id" yaml:"case_id"`

	ApplicationNumber string `json:"application_number,omitempty" yaml:"application_number,omitempty"`
	ApplicationDate   string `json:"application_date,omitempty" yaml:"application_date,omitempty"`
	FilingPlace       string `json:"filing_place,omitempty" yaml:"filing_place,omitempty"`
	StatusCode        string `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	StatusDate        string `json:"status_date,omitempty" yaml:"status_date,omitempty"`
	MarkVerbalElement string `json:"mark_verbal_element,omitempty" yaml:"mark_verbal_element,omitempty"`
	ImageFileName     string `json:"image_file_name,omitempty" yaml:"image_file_name,omitempty"`
	ApplicantName     string `json:"applicant_name,omitempty" yaml:"applicant_name,omitempty"`
	StatusDescription string `json:"status_description,omitempty" yaml:"status_description,omitempty"`

	// DocumentFilename is the downloaded PDF path, or DocumentDownloadError.
	DocumentFilename string `json:"document_filename,omitempty" yaml:"document_filename,omitempty"`
}

// caseStatusColumns is the header order used for tabular output.
var caseStatusColumns = []string{
	"case_id",
	"application_number",
	"application_date",
	"filing_place",
	"status_code",
	"status_date",
	"mark_verbal_element",
	"image_file_name",
	"applicant_name",
	"status_description",
	"document_filename",
}

// CaseStatusColumns returns the column names in output order.
func CaseStatusColumns() []string {
	out := make([]string, len(caseStatusColumns))
	copy(out, caseStatusColumns)
	return out
}

// fields returns pointers to the record fields in column order.
func (c *CaseStatus) fields() []*string {
	return []*string{
		&c.CaseID,
		&c.ApplicationNumber,
		&c.ApplicationDate,
		&c.FilingPlace,
		&c.StatusCode,
		&c.StatusDate,
		&c.MarkVerbalElement,
		&c.ImageFileName,
		&c.ApplicantName,
		&c.StatusDescription,
		&c.DocumentFilename,
	}
}

// Values returns the field values in CaseStatusColumns order.
func (c CaseStatus) Values() []string {
	ptrs := c.fields()
	out := make([]string, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}

// CaseStatusFromRow rebuilds a record from a header row and a data row.
// Unknown headers are ignored; missing cells leave the field empty.
func CaseStatusFromRow(header, row []string) CaseStatus {
	var c CaseStatus
	index := make(map[string]int, len(caseStatusColumns))
	for i, name := range caseStatusColumns {
		index[name] = i
	}
	ptrs := c.fields()
	for col, name := range header {
		i, ok := index[name]
		if !ok || col >= len(row) {
			continue
		}
		*ptrs[i] = row[col]
	}
	return c
}
