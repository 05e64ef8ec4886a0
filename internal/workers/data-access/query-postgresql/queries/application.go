package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"admissions-workers/internal/models"
)

func ApplicationDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	applicationID, ok := params["applicationId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, studentID, universityID, programID, status, createdAt, updatedAt string
	var agentID, intakeTerm sql.NullString
	var compositeScore sql.NullInt64
	var payload []byte

	err := db.QueryRowContext(ctx, `
		SELECT id, student_id, agent_id, university_id, program_id, intake_term,
		       status, composite_score, payload, created_at, updated_at
		FROM applications
		WHERE id = $1`, applicationID).Scan(
		&id, &studentID, &agentID, &universityID, &programID, &intakeTerm,
		&status, &compositeScore, &payload, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	appStatus := models.ApplicationStatus(status)

	result := map[string]interface{}{
		"id":             id,
		"studentId":      studentID,
		"agentId":        agentID.String,
		"universityId":   universityID,
		"programId":      programID,
		"intakeTerm":     intakeTerm.String,
		"status":         status,
		"statusLabel":    appStatus.Label(),
		"progress":       appStatus.Progress(),
		"terminal":       appStatus.IsTerminal(),
		"compositeScore": compositeScore.Int64,
		"createdAt":      createdAt,
		"updatedAt":      updatedAt,
	}

	if len(payload) > 0 {
		var decoded map[string]interface{}
		if err := json.Unmarshal(payload, &decoded); err == nil {
			result["payload"] = decoded
		}
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func ApplicationReviews(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	applicationID, ok := params["applicationId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, stage, reviewer_id, scores, total, feedback, decision, created_at, updated_at
		FROM application_reviews
		WHERE application_id = $1
		ORDER BY created_at DESC`, applicationID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	reviews := make([]map[string]interface{}, 0)
	for rows.Next() {
		var id, stage, reviewerID, decision, createdAt, updatedAt string
		var total int
		var scores, feedback []byte

		if err := rows.Scan(&id, &stage, &reviewerID, &scores, &total,
			&feedback, &decision, &createdAt, &updatedAt); err != nil {
			return nil, 0, 0, err
		}

		review := map[string]interface{}{
			"id":         id,
			"stage":      stage,
			"reviewerId": reviewerID,
			"total":      total,
			"decision":   decision,
			"createdAt":  createdAt,
			"updatedAt":  updatedAt,
		}

		var decodedScores models.ReviewScores
		if err := json.Unmarshal(scores, &decodedScores); err == nil {
			review["scores"] = decodedScores
		}
		var decodedFeedback models.ReviewFeedback
		if err := json.Unmarshal(feedback, &decodedFeedback); err == nil {
			review["feedback"] = decodedFeedback
		}

		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return reviews, len(reviews), execTime, nil
}

func StudentApplications(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	studentID, ok := params["studentId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, university_id, program_id, intake_term, status, created_at
		FROM applications
		WHERE student_id = $1
		ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	applications := make([]map[string]interface{}, 0)
	for rows.Next() {
		var app models.Application
		var intakeTerm sql.NullString

		if err := rows.Scan(&app.ID, &app.UniversityID, &app.ProgramID, &intakeTerm,
			&app.Status, &app.CreatedAt); err != nil {
			return nil, 0, 0, err
		}
		app.StudentID = studentID
		app.IntakeTerm = intakeTerm.String

		applications = append(applications, map[string]interface{}{
			"id":           app.ID,
			"universityId": app.UniversityID,
			"programId":    app.ProgramID,
			"intakeTerm":   app.IntakeTerm,
			"status":       string(app.Status),
			"statusLabel":  app.Status.Label(),
			"progress":     app.Status.Progress(),
			"createdAt":    app.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return applications, len(applications), execTime, nil
}
