package models

type Application struct {
	ID             string                 `json:"id"`
	StudentID      string                 `json:"studentId"`
	AgentID        string                 `json:"agentId,omitempty"`
	UniversityID   string                 `json:"universityId"`
	ProgramID      string                 `json:"programId"`
	IntakeTerm     string                 `json:"intakeTerm,omitempty"`
	Status         ApplicationStatus      `json:"status"`
	CompositeScore int                    `json:"compositeScore,omitempty"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
	CreatedAt      string                 `json:"createdAt"`
	UpdatedAt      string                 `json:"updatedAt"`
}

type ApplicationPayload struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Academics    Academics    `json:"academics"`
	Statement    *Statement   `json:"statement,omitempty"`
	Documents    []Document   `json:"documents,omitempty"`
}

type PersonalInfo struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Nationality    string `json:"nationality,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	Address        string `json:"address,omitempty"`
}

type Academics struct {
	HighestQualification string  `json:"highestQualification"`
	GPA                  float64 `json:"gpa,omitempty"`
	EnglishTest          string  `json:"englishTest,omitempty"`
	EnglishScore         float64 `json:"englishScore,omitempty"`
}

type Statement struct {
	Text      string `json:"text,omitempty"`
	WordCount int    `json:"wordCount,omitempty"`
}

type Document struct {
	ID           string `json:"id,omitempty"`
	DocumentType string `json:"documentType"`
	FileName     string `json:"fileName"`
	FileSize     int64  `json:"fileSize"`
	Verification string `json:"verification,omitempty"`
}
