// internal/notify/notifier_test.go
package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alignment-engine/internal/common/logger"
)

type fakeEmail struct {
	sent []*ses.SendEmailInput
	err  error
}

func (f *fakeEmail) SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, input)
	return &ses.SendEmailOutput{}, nil
}

type fakeTopic struct {
	published []*sns.PublishInput
	err       error
}

func (f *fakeTopic) Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.published = append(f.published, input)
	return &sns.PublishOutput{}, nil
}

func testSummary() RunSummary {
	return RunSummary{
		StartedAt:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Duration:     42 * time.Minute,
		CompanyCount: 500,
		Outcomes: []PersonaOutcome{
			{Persona: "progressive-globalist", GenerationID: "gen-1", Duration: 5 * time.Minute},
			{Persona: "conservative-nationalist", Err: errors.New("narrative endpoint down")},
		},
	}
}

func TestRunCompleted(t *testing.T) {
	email := &fakeEmail{}
	n := New(&Config{
		EmailEnabled: true,
		FromEmail:    "engine@example.com",
		ToEmail:      "ops@example.com",
	}, email, nil, logger.NewTestLogger(t))

	n.RunCompleted(context.Background(), testSummary())

	require.Len(t, email.sent, 1)
	input := email.sent[0]
	assert.Equal(t, "engine@example.com", *input.Source)
	assert.Equal(t, []string{"ops@example.com"}, input.Destination.ToAddresses)
	assert.Contains(t, *input.Message.Subject.Data, "1/2 personas succeeded")

	body := *input.Message.Body.Text.Data
	assert.Contains(t, body, "progressive-globalist")
	assert.Contains(t, body, "FAILED  conservative-nationalist")
	assert.Contains(t, body, "Companies: 500")
}

func TestRunCompletedDisabled(t *testing.T) {
	email := &fakeEmail{}
	n := New(&Config{EmailEnabled: false}, email, nil, logger.NewTestLogger(t))

	n.RunCompleted(context.Background(), testSummary())
	assert.Empty(t, email.sent)
}

func TestRunCompletedSendFailureIsSwallowed(t *testing.T) {
	email := &fakeEmail{err: errors.New("ses throttled")}
	n := New(&Config{EmailEnabled: true, ToEmail: "ops@example.com"}, email, nil, logger.NewTestLogger(t))

	// must not panic or propagate
	n.RunCompleted(context.Background(), testSummary())
}

func TestRunFailed(t *testing.T) {
	topic := &fakeTopic{}
	n := New(&Config{
		SNSEnabled: true,
		TopicARN:   "arn:aws:sns:us-east-1:123456789012:ranking-alerts",
	}, nil, topic, logger.NewTestLogger(t))

	n.RunFailed(context.Background(), "socialist-nationalist", errors.New("redis unreachable"))

	require.Len(t, topic.published, 1)
	input := topic.published[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:ranking-alerts", *input.TopicArn)
	assert.Contains(t, *input.Message, "socialist-nationalist")
	assert.Contains(t, *input.Message, "redis unreachable")
}

func TestRunFailedDisabled(t *testing.T) {
	topic := &fakeTopic{}
	n := New(&Config{SNSEnabled: false}, nil, topic, logger.NewTestLogger(t))

	n.RunFailed(context.Background(), "socialist-nationalist", errors.New("boom"))
	assert.Empty(t, topic.published)
}
