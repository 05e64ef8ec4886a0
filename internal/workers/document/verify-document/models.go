package verifydocument

// Input represents the job variables identifying an uploaded document.
type Input struct {
	ApplicationID string `json:"applicationId"`
	DocumentID    string `json:"documentId"`
	DocumentType  string `json:"documentType"`
	FileName      string `json:"fileName"`
	FileSize      int64  `json:"fileSize"`
}

// Output is written back to the process with the verification verdict.
type Output struct {
	ApplicationID string `json:"applicationId"`
	DocumentID    string `json:"documentId"`
	Verdict       string `json:"verdict"`
	Reason        string `json:"reason,omitempty"`
}

// Verdicts reported back to the process. The verification service's raw
// labels are normalized onto this set.
const (
	VerdictVerified   = "verified"
	VerdictSuspicious = "suspicious"
	VerdictInvalid    = "invalid"
)

type verificationRequest struct {
	DocumentType string `json:"documentType"`
	FileName     string `json:"fileName"`
	FileSize     int64  `json:"fileSize"`
}

type verificationResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}
