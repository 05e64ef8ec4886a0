package sendnotification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-notification"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// EmailSender sends lifecycle emails. Satisfied by the SES client wrapper.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender sends lifecycle texts. Satisfied by the SNS client wrapper.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config *Config
	db     *sql.DB
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, email EmailSender, sms SMSSender, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		email:  email,
		sms:    sms,
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
		errorCode := "NOTIFICATION_SEND_FAILED"
		if stdErr, ok := err.(*errors.StandardError); ok {
			errorCode = string(stdErr.Code)
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	channel := input.Channel
	if channel == "" {
		channel = ChannelEmail
	}
	if channel != ChannelEmail && channel != ChannelSMS {
		return nil, errors.NewApplicationValidationFailedError(
			fmt.Sprintf("unknown notification channel: %s", channel))
	}

	name, email, phone, err := h.recipientContact(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}

	tmpl := renderTemplate(input, name)

	var messageID string
	switch channel {
	case ChannelEmail:
		if email == "" {
			return nil, errors.NewNotificationSendFailedError(channel,
				fmt.Errorf("recipient %s has no email address", input.RecipientID))
		}
		messageID, err = h.sendEmail(ctx, email, tmpl)
	case ChannelSMS:
		if phone == "" {
			return nil, errors.NewNotificationSendFailedError(channel,
				fmt.Errorf("recipient %s has no phone number", input.RecipientID))
		}
		messageID, err = h.sendSMS(ctx, phone, tmpl)
	}
	if err != nil {
		return nil, errors.NewNotificationSendFailedError(channel, err)
	}

	h.logger.Info("notification sent", map[string]interface{}{
		"applicationId": input.ApplicationID,
		"recipientId":   input.RecipientID,
		"event":         input.Event,
		"channel":       channel,
		"messageId":     messageID,
	})

	return &Output{
		ApplicationID: input.ApplicationID,
		RecipientID:   input.RecipientID,
		Channel:       channel,
		MessageID:     messageID,
		Sent:          true,
	}, nil
}

// renderTemplate picks the subject and body for the lifecycle event. An
// unrecognized event falls back to a generic update message.
func renderTemplate(input *Input, recipientName string) models.NotificationTemplate {
	greeting := "Hello"
	if recipientName != "" {
		greeting = "Hello " + recipientName
	}

	statusLabel := models.ApplicationStatus(input.Status).Label()

	switch input.Event {
	case "status_changed":
		return models.NotificationTemplate{
			Type:    input.Event,
			Subject: fmt.Sprintf("Application update: %s", statusLabel),
			Body: fmt.Sprintf("%s,\n\nYour application %s has moved to %s.",
				greeting, input.ApplicationID, statusLabel),
		}
	case "offer_issued":
		return models.NotificationTemplate{
			Type:    input.Event,
			Subject: "You have received an offer",
			Body: fmt.Sprintf("%s,\n\nAn offer has been issued for application %s: %s.",
				greeting, input.ApplicationID, statusLabel),
		}
	case "review_recorded":
		return models.NotificationTemplate{
			Type:    input.Event,
			Subject: "Your application has been reviewed",
			Body: fmt.Sprintf("%s,\n\nApplication %s has completed a review stage.",
				greeting, input.ApplicationID),
		}
	default:
		return models.NotificationTemplate{
			Type:    "generic_update",
			Subject: "Application update",
			Body: fmt.Sprintf("%s,\n\nThere is an update on application %s.",
				greeting, input.ApplicationID),
		}
	}
}

func (h *Handler) recipientContact(ctx context.Context, userID string) (name, email, phone string, err error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT name, email, phone
		FROM profiles
		WHERE user_id = $1`, userID)

	if err := row.Scan(&name, &email, &phone); err != nil {
		if err == sql.ErrNoRows {
			return "", "", "", errors.NewProfileNotFoundError(userID)
		}
		return "", "", "", errors.NewQueryExecutionFailedError(string(models.QueryTypeUserProfile), err)
	}
	return name, email, phone, nil
}

func (h *Handler) sendEmail(ctx context.Context, to string, tmpl models.NotificationTemplate) (string, error) {
	out, err := h.email.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(h.config.SenderEmail),
		Destination: &sestypes.Destination{ToAddresses: []string{to}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(tmpl.Subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(tmpl.Body)},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

func (h *Handler) sendSMS(ctx context.Context, to string, tmpl models.NotificationTemplate) (string, error) {
	out, err := h.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(tmpl.Subject + "\n" + tmpl.Body),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
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
