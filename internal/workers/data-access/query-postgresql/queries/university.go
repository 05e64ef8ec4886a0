package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

func UniversityScoringConfig(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	universityID, ok := params["universityId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id string
	var academics, english, statement, visa int

	err := db.QueryRowContext(ctx, `
		SELECT university_id, academics_weight, english_weight, statement_weight, visa_weight
		FROM scoring_configs
		WHERE university_id = $1`, universityID).Scan(
		&id, &academics, &english, &statement, &visa,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"universityId":       id,
		"academics":          academics,
		"englishProficiency": english,
		"statementQuality":   statement,
		"visaRisk":           visa,
		"weightSum":          academics + english + statement + visa,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func UserProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	userID, ok := params["userId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, role, name, email, phone, country string
	var avatarURL, dateOfBirth, nationality, passportNumber, address sql.NullString
	var companyName, verificationDocument sql.NullString
	var education []byte

	err := db.QueryRowContext(ctx, `
		SELECT user_id, role, name, email, phone, country, avatar_url,
		       date_of_birth, nationality, passport_number, address, education_history,
		       company_name, verification_document
		FROM profiles
		WHERE user_id = $1`, userID).Scan(
		&id, &role, &name, &email, &phone, &country, &avatarURL,
		&dateOfBirth, &nationality, &passportNumber, &address, &education,
		&companyName, &verificationDocument,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"userId":               id,
		"role":                 role,
		"name":                 name,
		"email":                email,
		"phone":                phone,
		"country":              country,
		"avatarUrl":            avatarURL.String,
		"dateOfBirth":          dateOfBirth.String,
		"nationality":          nationality.String,
		"passportNumber":       passportNumber.String,
		"address":              address.String,
		"companyName":          companyName.String,
		"verificationDocument": verificationDocument.String,
	}

	if len(education) > 0 {
		var decoded []map[string]interface{}
		if err := json.Unmarshal(education, &decoded); err == nil {
			result["educationHistory"] = decoded
		}
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}
