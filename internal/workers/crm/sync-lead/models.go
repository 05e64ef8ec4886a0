package synclead

// Input represents the job variables for pushing a lead update to the
// agency CRM.
type Input struct {
	ApplicationID string `json:"applicationId"`
	AgentID       string `json:"agentId"`
	LeadID        string `json:"leadId,omitempty"`
	StudentName   string `json:"studentName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Country       string `json:"country,omitempty"`
	Status        string `json:"status,omitempty"`
}

// Output is written back to the process with the CRM-side lead ID.
type Output struct {
	ApplicationID string `json:"applicationId"`
	LeadID        string `json:"leadId"`
	Stage         string `json:"stage"`
	Created       bool   `json:"created"`
}
