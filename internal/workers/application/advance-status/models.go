package advancestatus

// Input represents the job variables for a status advancement request.
type Input struct {
	ApplicationID string `json:"applicationId"`
	TargetStatus  string `json:"targetStatus"`
	ActorID       string `json:"actorId,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// Output is written back to the process after a successful transition.
type Output struct {
	ApplicationID  string   `json:"applicationId"`
	PreviousStatus string   `json:"previousStatus"`
	Status         string   `json:"status"`
	StatusLabel    string   `json:"statusLabel"`
	Progress       int      `json:"progress"`
	Terminal       bool     `json:"terminal"`
	NextStatuses   []string `json:"nextStatuses"`
}
