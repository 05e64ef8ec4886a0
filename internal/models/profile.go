package models

// ProfileRole distinguishes which role-specific field set applies to a
// profile.
type ProfileRole string

const (
	RoleStudent ProfileRole = "student"
	RoleAgent   ProfileRole = "agent"
)

// Profile carries the fields counted by the profile-completion
// calculator. Basic fields apply to every role; the remainder depend on
// the role.
type Profile struct {
	UserID string      `json:"userId"`
	Role   ProfileRole `json:"role"`

	// Basic fields (all roles)
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`

	// Student-specific
	DateOfBirth      string           `json:"dateOfBirth,omitempty"`
	Nationality      string           `json:"nationality,omitempty"`
	PassportNumber   string           `json:"passportNumber,omitempty"`
	Address          string           `json:"address,omitempty"`
	EducationHistory []EducationEntry `json:"educationHistory,omitempty"`

	// Agent-specific
	CompanyName          string `json:"companyName,omitempty"`
	VerificationDocument string `json:"verificationDocument,omitempty"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	StartYear   int    `json:"startYear,omitempty"`
	EndYear     int    `json:"endYear,omitempty"`
}
