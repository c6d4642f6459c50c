// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"alignment-engine/internal/common/logger"
)

// EmailSender and TopicPublisher are the AWS surfaces the notifier needs,
// kept narrow for mocking.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type TopicPublisher interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

// Config controls which notification channels are active.
type Config struct {
	EmailEnabled bool
	FromEmail    string
	ToEmail      string
	SNSEnabled   bool
	TopicARN     string
}

// PersonaOutcome is the per-persona result line in a run summary.
type PersonaOutcome struct {
	Persona      string
	GenerationID string
	Duration     time.Duration
	Err          error
}

// RunSummary describes one full ranking generation pass.
type RunSummary struct {
	StartedAt    time.Time
	Duration     time.Duration
	CompanyCount int
	Outcomes     []PersonaOutcome
}

// Notifier sends run summaries over SES and failure alerts over SNS. Both
// channels are best effort: a notification failure is logged and swallowed,
// it never affects the ranking run.
type Notifier struct {
	config *Config
	email  EmailSender
	topic  TopicPublisher
	logger logger.Logger
}

func New(config *Config, email EmailSender, topic TopicPublisher, log logger.Logger) *Notifier {
	return &Notifier{
		config: config,
		email:  email,
		topic:  topic,
		logger: log.WithFields(map[string]interface{}{"component": "notifier"}),
	}
}

// RunCompleted emails the per-persona summary of a finished generation pass.
func (n *Notifier) RunCompleted(ctx context.Context, summary RunSummary) {
	if !n.config.EmailEnabled || n.email == nil {
		return
	}

	failures := 0
	for _, o := range summary.Outcomes {
		if o.Err != nil {
			failures++
		}
	}

	subject := fmt.Sprintf("Ranking generation completed: %d/%d personas succeeded",
		len(summary.Outcomes)-failures, len(summary.Outcomes))

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.config.ToEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(buildSummaryBody(summary))},
			},
		},
		Source: aws.String(n.config.FromEmail),
	})
	if err != nil {
		n.logger.Warn("failed to send run summary email", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	n.logger.Info("run summary email sent", map[string]interface{}{
		"personas": len(summary.Outcomes),
		"failures": failures,
	})
}

// RunFailed publishes a failure alert for one persona to the SNS topic.
func (n *Notifier) RunFailed(ctx context.Context, personaName string, runErr error) {
	if !n.config.SNSEnabled || n.topic == nil {
		return
	}

	message := fmt.Sprintf("Ranking generation failed for persona %s: %v", personaName, runErr)

	_, err := n.topic.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.config.TopicARN),
		Subject:  aws.String("Ranking generation failure"),
		Message:  aws.String(message),
	})
	if err != nil {
		n.logger.Warn("failed to publish failure alert", map[string]interface{}{
			"persona": personaName,
			"error":   err.Error(),
		})
		return
	}

	n.logger.Info("failure alert published", map[string]interface{}{
		"persona": personaName,
	})
}

func buildSummaryBody(summary RunSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ranking generation run\n")
	fmt.Fprintf(&b, "Started:   %s\n", summary.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration:  %s\n", summary.Duration.Round(time.Second))
	fmt.Fprintf(&b, "Companies: %d\n\n", summary.CompanyCount)

	for _, o := range summary.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(&b, "FAILED  %-26s %v\n", o.Persona, o.Err)
			continue
		}
		fmt.Fprintf(&b, "OK      %-26s generation %s in %s\n",
			o.Persona, o.GenerationID, o.Duration.Round(time.Second))
	}

	return b.String()
}
