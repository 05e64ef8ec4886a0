package sendnotification

// Input represents the job variables describing a lifecycle notification.
type Input struct {
	ApplicationID string `json:"applicationId"`
	RecipientID   string `json:"recipientId"`
	Event         string `json:"event"`
	Status        string `json:"status,omitempty"`
	Channel       string `json:"channel,omitempty"`
}

// Output is written back to the process after the notification is sent.
type Output struct {
	ApplicationID string `json:"applicationId"`
	RecipientID   string `json:"recipientId"`
	Channel       string `json:"channel"`
	MessageID     string `json:"messageId,omitempty"`
	Sent          bool   `json:"sent"`
}
