package models

type QueryType string

const (
	QueryTypeApplicationDetails    QueryType = "application_details"
	QueryTypeApplicationReviews    QueryType = "application_reviews"
	QueryTypeStudentApplications   QueryType = "student_applications"
	QueryTypeUniversityScoringConf QueryType = "university_scoring_config"
	QueryTypeUserProfile           QueryType = "user_profile"
)
