// internal/assistant/notify-lead/handler_test.go
package notifylead

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"

	"autostream-assistant/internal/common/crm"
	"autostream-assistant/internal/common/logger"
	"autostream-assistant/internal/models"
)

type fakeCRM struct {
	leads []*crm.Lead
	err   error
}

func (f *fakeCRM) CreateLead(_ context.Context, lead *crm.Lead) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.leads = append(f.leads, lead)
	return "crm-001", nil
}

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &ses.SendEmailOutput{}, nil
}

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &sns.PublishOutput{}, nil
}

func testRecord() *models.LeadRecord {
	return &models.LeadRecord{
		ID:             "lead-001",
		Name:           "Jane",
		Email:          "jane@x.com",
		Platform:       "YouTube",
		InterestedPlan: "Pro Plan",
		CreatedAt:      time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func testConfig() *Config {
	return &Config{
		EmailEnabled: true,
		FromEmail:    "assistant@autostream.io",
		SalesEmail:   "sales@autostream.io",
		SNSEnabled:   true,
		TopicARN:     "arn:aws:sns:us-east-1:000000000000:leads",
		Timeout:      5 * time.Second,
	}
}

func TestNotify_AllChannels(t *testing.T) {
	crmClient := &fakeCRM{}
	sesClient := &fakeSES{}
	snsClient := &fakeSNS{}

	h := NewHandlerWithClients(testConfig(), crmClient, sesClient, snsClient, logger.NewTestLogger(t))
	h.Notify(context.Background(), testRecord())

	assert.Len(t, crmClient.leads, 1)
	assert.Equal(t, "jane@x.com", crmClient.leads[0].Email)
	assert.Equal(t, "assistant", crmClient.leads[0].Source)

	assert.Len(t, sesClient.inputs, 1)
	assert.Equal(t, []string{"sales@autostream.io"}, sesClient.inputs[0].Destination.ToAddresses)
	assert.Contains(t, *sesClient.inputs[0].Message.Subject.Data, "Jane")

	assert.Len(t, snsClient.inputs, 1)
	assert.Contains(t, *snsClient.inputs[0].Message, "Pro Plan")
}

func TestNotify_CRMFailureDoesNotBlockOtherChannels(t *testing.T) {
	crmClient := &fakeCRM{err: errors.New("CRM unavailable")}
	sesClient := &fakeSES{}
	snsClient := &fakeSNS{}

	h := NewHandlerWithClients(testConfig(), crmClient, sesClient, snsClient, logger.NewTestLogger(t))
	h.Notify(context.Background(), testRecord())

	assert.Len(t, sesClient.inputs, 1)
	assert.Len(t, snsClient.inputs, 1)
}

func TestNotify_DisabledChannelsSkipped(t *testing.T) {
	crmClient := &fakeCRM{}
	sesClient := &fakeSES{}
	snsClient := &fakeSNS{}

	config := testConfig()
	config.EmailEnabled = false
	config.SNSEnabled = false

	h := NewHandlerWithClients(config, crmClient, sesClient, snsClient, logger.NewTestLogger(t))
	h.Notify(context.Background(), testRecord())

	assert.Len(t, crmClient.leads, 1)
	assert.Empty(t, sesClient.inputs)
	assert.Empty(t, snsClient.inputs)
}

func TestNotify_EveryChannelFailingStillReturns(t *testing.T) {
	h := NewHandlerWithClients(
		testConfig(),
		&fakeCRM{err: errors.New("down")},
		&fakeSES{err: errors.New("down")},
		&fakeSNS{err: errors.New("down")},
		logger.NewTestLogger(t),
	)

	// Must not panic or propagate anything.
	h.Notify(context.Background(), testRecord())
}
