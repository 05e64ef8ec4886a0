package checkprofilecompletion

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-profile-completion"
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "PROFILE_NOT_FOUND"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.fetchProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	completed, missing := countFields(profile)
	total := completed + len(missing)
	percent := completionPercent(completed, total)

	h.logger.Info("profile completion calculated", map[string]interface{}{
		"userId":            input.UserID,
		"role":              string(profile.Role),
		"completionPercent": percent,
		"missingFields":     missing,
	})

	return &Output{
		UserID:            input.UserID,
		Role:              string(profile.Role),
		CompletionPercent: percent,
		Complete:          percent == 100,
		CompletedFields:   completed,
		TotalFields:       total,
		MissingFields:     missing,
	}, nil
}

// countFields walks the role's field set in display order and splits it
// into completed and missing. Every field counts the same.
func countFields(p *models.Profile) (completed int, missing []string) {
	type field struct {
		name  string
		empty bool
	}

	fields := []field{
		{"name", p.Name == ""},
		{"email", p.Email == ""},
		{"phone", p.Phone == ""},
		{"country", p.Country == ""},
		{"avatarUrl", p.AvatarURL == ""},
	}

	switch p.Role {
	case models.RoleStudent:
		fields = append(fields,
			field{"dateOfBirth", p.DateOfBirth == ""},
			field{"nationality", p.Nationality == ""},
			field{"passportNumber", p.PassportNumber == ""},
			field{"address", p.Address == ""},
			field{"educationHistory", len(p.EducationHistory) == 0},
		)
	case models.RoleAgent:
		fields = append(fields,
			field{"companyName", p.CompanyName == ""},
			field{"verificationDocument", p.VerificationDocument == ""},
		)
	}

	for _, f := range fields {
		if f.empty {
			missing = append(missing, f.name)
		} else {
			completed++
		}
	}
	return completed, missing
}

// completionPercent rounds half-up to the nearest whole percent.
func completionPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func (h *Handler) fetchProfile(ctx context.Context, userID string) (*models.Profile, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT user_id, role, name, email, phone, country, avatar_url,
		       date_of_birth, nationality, passport_number, address, education_history,
		       company_name, verification_document
		FROM profiles
		WHERE user_id = $1`, userID)

	var p models.Profile
	var education []byte
	// Optional profile columns hold NULL until the user fills them in.
	var phone, country, avatarURL, dateOfBirth, nationality sql.NullString
	var passportNumber, address, companyName, verificationDocument sql.NullString
	err := row.Scan(&p.UserID, &p.Role, &p.Name, &p.Email, &phone, &country,
		&avatarURL, &dateOfBirth, &nationality, &passportNumber,
		&address, &education, &companyName, &verificationDocument)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewProfileNotFoundError(userID)
		}
		return nil, errors.NewQueryExecutionFailedError(string(models.QueryTypeUserProfile), err)
	}

	p.Phone = phone.String
	p.Country = country.String
	p.AvatarURL = avatarURL.String
	p.DateOfBirth = dateOfBirth.String
	p.Nationality = nationality.String
	p.PassportNumber = passportNumber.String
	p.Address = address.String
	p.CompanyName = companyName.String
	p.VerificationDocument = verificationDocument.String

	if len(education) > 0 {
		if err := json.Unmarshal(education, &p.EducationHistory); err != nil {
			return nil, errors.NewQueryExecutionFailedError(string(models.QueryTypeUserProfile), err)
		}
	}

	return &p, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
