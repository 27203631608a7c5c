package notifylead

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"autostream-assistant/internal/common/crm"
	"autostream-assistant/internal/common/logger"
	"autostream-assistant/internal/models"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type CRMService interface {
	CreateLead(ctx context.Context, lead *crm.Lead) (string, error)
}

// Handler fans a freshly captured lead out to the CRM, the sales inbox and
// an SNS topic. Every channel is fire and forget: a failure is logged and
// the remaining channels still run, the capture itself never fails.
type Handler struct {
	config    *Config
	crmClient CRMService
	sesClient SESService
	snsClient SNSService
	logger    logger.Logger
}

func NewHandler(config *Config, crmClient CRMService, log logger.Logger) (*Handler, error) {
	h := &Handler{
		config:    config,
		crmClient: crmClient,
		logger:    log.WithFields(map[string]interface{}{"component": "notify-lead"}),
	}

	if config.EmailEnabled || config.SNSEnabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		h.sesClient = ses.NewFromConfig(awsCfg)
		h.snsClient = sns.NewFromConfig(awsCfg)
	}

	return h, nil
}

// NewHandlerWithClients injects pre-built service clients, used in tests.
func NewHandlerWithClients(config *Config, crmClient CRMService, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		crmClient: crmClient,
		sesClient: sesClient,
		snsClient: snsClient,
		logger:    log.WithFields(map[string]interface{}{"component": "notify-lead"}),
	}
}

func (h *Handler) Notify(ctx context.Context, record *models.LeadRecord) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	if h.crmClient != nil {
		crmID, err := h.crmClient.CreateLead(ctx, &crm.Lead{
			Name:           record.Name,
			Email:          record.Email,
			Platform:       record.Platform,
			InterestedPlan: record.InterestedPlan,
			Source:         "assistant",
		})
		if err != nil {
			h.logger.Error("CRM lead submission failed", map[string]interface{}{
				"leadId": record.ID,
				"error":  err.Error(),
			})
		} else {
			h.logger.Info("lead submitted to CRM", map[string]interface{}{
				"leadId": record.ID,
				"crmId":  crmID,
			})
		}
	}

	if h.config.EmailEnabled && h.sesClient != nil {
		if err := h.sendEmail(ctx, record); err != nil {
			h.logger.Error("sales email send failed", map[string]interface{}{
				"leadId": record.ID,
				"error":  err.Error(),
			})
		}
	}

	if h.config.SNSEnabled && h.snsClient != nil {
		if err := h.publish(ctx, record); err != nil {
			h.logger.Error("SNS publish failed", map[string]interface{}{
				"leadId": record.ID,
				"error":  err.Error(),
			})
		}
	}
}

func (h *Handler) sendEmail(ctx context.Context, record *models.LeadRecord) error {
	subject := fmt.Sprintf("New lead: %s (%s)", record.Name, record.InterestedPlan)
	body := fmt.Sprintf(
		"Name: %s\nEmail: %s\nPlatform: %s\nInterested plan: %s\nCaptured at: %s",
		record.Name, record.Email, record.Platform, record.InterestedPlan,
		record.CreatedAt.Format("2006-01-02 15:04:05 UTC"),
	)

	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{h.config.SalesEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) publish(ctx context.Context, record *models.LeadRecord) error {
	message := fmt.Sprintf("New lead captured: %s <%s> on %s, interested in %s",
		record.Name, record.Email, record.Platform, record.InterestedPlan)

	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(h.config.TopicARN),
		Message:  aws.String(message),
	})
	return err
}
