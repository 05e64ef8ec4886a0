package checkprofilecompletion

// Input represents the job variables identifying whose profile to check.
type Input struct {
	UserID string `json:"userId"`
}

// Output is written back to the process with the completion verdict.
type Output struct {
	UserID            string   `json:"userId"`
	Role              string   `json:"role"`
	CompletionPercent int      `json:"completionPercent"`
	Complete          bool     `json:"complete"`
	CompletedFields   int      `json:"completedFields"`
	TotalFields       int      `json:"totalFields"`
	MissingFields     []string `json:"missingFields,omitempty"`
}
