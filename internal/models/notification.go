package models

// NotificationTemplate is the rendered subject and body for one lifecycle
// event.
type NotificationTemplate struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
