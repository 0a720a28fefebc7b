// internal/workers/application/send-notification/handler_test.go
package sendnotification

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"visa-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
	Calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	m.Calls = append(m.Calls, input)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, input)
	}
	return &ses.SendEmailOutput{}, nil
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
	Calls       []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	m.Calls = append(m.Calls, input)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, input)
	}
	return &sns.PublishOutput{}, nil
}

func createTestConfig() *Config {
	return &Config{
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "noreply@visaassist.example",
		SMSSenderID:  "VISAASSIST",
		AWSRegion:    "eu-west-1",
		Timeout:      30 * time.Second,
	}
}

func createTestInput(notificationType string) *Input {
	return &Input{
		RecipientID:      "applicant-001",
		RecipientType:    RecipientTypeApplicant,
		NotificationType: notificationType,
		ApplicationID:    "app-001",
		ServiceTier:      "premium",
		Metadata: map[string]interface{}{
			"destination": "schengen",
		},
	}
}

func newTestHandler(t *testing.T, config *Config, db *sql.DB, sesMock SESService, snsMock SNSService) *Handler {
	return &Handler{
		config:      config,
		db:          db,
		logger:      logger.NewTestLogger(t),
		sesClient:   sesMock,
		snsClient:   snsMock,
		templateMap: notificationTemplates(),
	}
}

func expectContactLookup(mock sqlmock.Sqlmock, table, id, email, phone string) {
	mock.ExpectQuery(`SELECT email, phone FROM ` + table).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).AddRow(email, phone))
}

func TestHandler_Execute_EmailAndSMS(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectContactLookup(mock, "applicants", "applicant-001", "traveler@example.com", "+33123456789")

	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	handler := newTestHandler(t, createTestConfig(), db, sesMock, snsMock)

	output, err := handler.Execute(context.Background(), createTestInput(TypeApplicationSubmitted))

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.NotEmpty(t, output.NotificationID)
	assert.NotEmpty(t, output.SentAt)
	assert.Len(t, sesMock.Calls, 1)
	assert.Len(t, snsMock.Calls, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_NoSMSBelowPremiumTier(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectContactLookup(mock, "applicants", "applicant-001", "traveler@example.com", "+33123456789")

	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	handler := newTestHandler(t, createTestConfig(), db, sesMock, snsMock)

	input := createTestInput(TypeApplicationSubmitted)
	input.ServiceTier = "standard"

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Len(t, sesMock.Calls, 1)
	assert.Empty(t, snsMock.Calls)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CaseOfficerRecipient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectContactLookup(mock, "case_officers", "officer-007", "officer@visaassist.example", "")

	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	handler := newTestHandler(t, createTestConfig(), db, sesMock, snsMock)

	input := createTestInput(TypeApplicationReceived)
	input.RecipientID = "officer-007"
	input.RecipientType = RecipientTypeCaseOfficer

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Len(t, sesMock.Calls, 1)
	assert.Empty(t, snsMock.Calls)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_RecipientNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT email, phone FROM applicants`).
		WithArgs("missing-001").
		WillReturnError(sql.ErrNoRows)

	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	handler := newTestHandler(t, createTestConfig(), db, sesMock, snsMock)

	input := createTestInput(TypeApplicationSubmitted)
	input.RecipientID = "missing-001"

	output, err := handler.Execute(context.Background(), input)

	// The process must not stall on a missing recipient.
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Empty(t, sesMock.Calls)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InvalidRecipientType(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	handler := newTestHandler(t, createTestConfig(), db, &MockSESService{}, &MockSNSService{})

	input := createTestInput(TypeApplicationSubmitted)
	input.RecipientType = "embassy"

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
}

func TestHandler_Execute_UnknownTemplate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectContactLookup(mock, "applicants", "applicant-001", "traveler@example.com", "")

	handler := newTestHandler(t, createTestConfig(), db, &MockSESService{}, &MockSNSService{})

	input := createTestInput("application_archived")

	output, err := handler.Execute(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrNotificationSendFailed)
}

func TestHandler_Execute_EmailFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectContactLookup(mock, "applicants", "applicant-001", "traveler@example.com", "+33123456789")

	sesMock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
			return nil, errors.New("ses unavailable")
		},
	}
	handler := newTestHandler(t, createTestConfig(), db, sesMock, &MockSNSService{})

	output, err := handler.Execute(context.Background(), createTestInput(TypeApplicationSubmitted))

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, output.Status)
}

func TestHandler_Execute_ChannelsDisabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectContactLookup(mock, "applicants", "applicant-001", "traveler@example.com", "+33123456789")

	config := createTestConfig()
	config.EmailEnabled = false
	config.SMSEnabled = false

	sesMock := &MockSESService{}
	snsMock := &MockSNSService{}
	handler := newTestHandler(t, config, db, sesMock, snsMock)

	output, err := handler.Execute(context.Background(), createTestInput(TypeApplicationSubmitted))

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Empty(t, sesMock.Calls)
	assert.Empty(t, snsMock.Calls)
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		data map[string]interface{}
		want string
	}{
		{
			name: "substitutes known placeholders",
			tmpl: "Application {{applicationId}} ({{serviceTier}})",
			data: map[string]interface{}{"applicationId": "app-1", "serviceTier": "premium"},
			want: "Application app-1 (premium)",
		},
		{
			name: "strips unresolved placeholders",
			tmpl: "Hello {{name}}, ref {{missing}} done",
			data: map[string]interface{}{"name": "Ada"},
			want: "Hello Ada, ref  done",
		},
		{
			name: "non-string values are formatted",
			tmpl: "count={{n}}",
			data: map[string]interface{}{"n": 3},
			want: "count=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderTemplate(tt.tmpl, tt.data))
		})
	}
}
