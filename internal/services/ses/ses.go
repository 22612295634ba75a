// Package ses provides email notification services via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	appConfig "portfolio-analytics-engine/internal/config"
	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/utils"
)

// Service handles SES email operations
type Service struct {
	client    *ses.Client
	fromEmail string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
	ReplyTo  string
}

// RiskDigestParams contains data for a payment risk alert digest email
type RiskDigestParams struct {
	Recipient    string
	OrgName      string
	Flagged      []RiskEntry
	TotalScored  int
	DashboardURL string
}

// RiskEntry is one flagged tenant in the digest
type RiskEntry struct {
	TenantName         string
	UnitLabel          string
	RiskScore          float64
	RiskLevel          string
	OutstandingBalance float64
	Recommendation     string
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service
func NewService(ctx context.Context) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	appCfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	client := ses.NewFromConfig(cfg)

	return &Service{
		client:    client,
		fromEmail: appCfg.SESSenderEmail,
	}, nil
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if params.ReplyTo != "" {
		input.ReplyToAddresses = []string{params.ReplyTo}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.GetLogger().Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendRiskDigest sends a digest of tenants flagged at high or critical
// payment risk.
func (s *Service) SendRiskDigest(ctx context.Context, params RiskDigestParams) (*SendEmailResult, error) {
	htmlBody, err := s.renderRiskDigestHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	textBody := s.renderRiskDigestText(params)

	subject := fmt.Sprintf("Payment risk alert: %d tenant(s) flagged in %s", len(params.Flagged), params.OrgName)

	return s.SendEmail(ctx, EmailParams{
		To:       params.Recipient,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
}

// BuildRiskDigestParams assembles digest params from a risk report,
// keeping only tenants in the high and critical bands. Balances are
// converted from cents for display.
func BuildRiskDigestParams(recipient, orgName, dashboardURL string, report *models.RiskReport) RiskDigestParams {
	flagged := make([]RiskEntry, 0)

	for _, score := range report.Scores {
		if score.RiskLevel != models.RiskLevelHigh && score.RiskLevel != models.RiskLevelCritical {
			continue
		}

		flagged = append(flagged, RiskEntry{
			TenantName:         score.TenantName,
			UnitLabel:          score.UnitLabel,
			RiskScore:          score.RiskScore,
			RiskLevel:          string(score.RiskLevel),
			OutstandingBalance: float64(score.OutstandingBalance) / 100,
			Recommendation:     score.Recommendation,
		})
	}

	return RiskDigestParams{
		Recipient:    recipient,
		OrgName:      orgName,
		Flagged:      flagged,
		TotalScored:  len(report.Scores),
		DashboardURL: dashboardURL,
	}
}

// renderRiskDigestHTML renders the HTML email template
func (s *Service) renderRiskDigestHTML(params RiskDigestParams) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #e53e3e 0%, #c53030 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .tenant-card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .tenant-card h3 { margin: 0 0 10px 0; color: #c53030; }
        .tenant-card .unit { color: #666; font-size: 14px; margin-bottom: 10px; }
        .tenant-card .detail-label { font-size: 12px; color: #999; }
        .tenant-card .detail-value { font-weight: bold; color: #333; }
        .level-badge { display: inline-block; background: #c53030; color: white; padding: 5px 12px; border-radius: 20px; font-weight: bold; text-transform: uppercase; }
        .cta-button { display: inline-block; background: #c53030; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; margin-top: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Payment Risk Alert</h1>
        <p>{{len .Flagged}} of {{.TotalScored}} scored tenants in {{.OrgName}} need attention</p>
    </div>
    <div class="content">
        {{range .Flagged}}
        <div class="tenant-card">
            <h3>{{.TenantName}}</h3>
            <p class="unit">Unit {{.UnitLabel}}</p>
            <div class="detail-item">
                <div class="detail-label">Risk Score</div>
                <div class="detail-value">{{printf "%.0f" .RiskScore}} <span class="level-badge">{{.RiskLevel}}</span></div>
            </div>
            <div class="detail-item">
                <div class="detail-label">Outstanding Balance</div>
                <div class="detail-value">${{printf "%.2f" .OutstandingBalance}}</div>
            </div>
            <p>{{.Recommendation}}</p>
        </div>
        {{end}}

        {{if .DashboardURL}}
        <div style="text-align: center;">
            <a href="{{.DashboardURL}}" class="cta-button">Open Risk Dashboard</a>
        </div>
        {{end}}
    </div>
    <div class="footer">
        <p>This email was sent by Portfolio Analytics Engine</p>
    </div>
</body>
</html>`

	t, err := template.New("risk_digest").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderRiskDigestText renders plain text version
func (s *Service) renderRiskDigestText(params RiskDigestParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Payment risk alert for %s\n\n", params.OrgName))
	buf.WriteString(fmt.Sprintf("%d of %d scored tenants are at high or critical risk.\n\n", len(params.Flagged), params.TotalScored))

	for i, entry := range params.Flagged {
		buf.WriteString(fmt.Sprintf("%d. %s (Unit %s)\n", i+1, entry.TenantName, entry.UnitLabel))
		buf.WriteString(fmt.Sprintf("   Risk Score: %.0f (%s)\n", entry.RiskScore, entry.RiskLevel))
		buf.WriteString(fmt.Sprintf("   Outstanding Balance: $%.2f\n", entry.OutstandingBalance))
		buf.WriteString(fmt.Sprintf("   %s\n\n", entry.Recommendation))
	}

	if params.DashboardURL != "" {
		buf.WriteString(fmt.Sprintf("Open the risk dashboard: %s\n\n", params.DashboardURL))
	}

	buf.WriteString("Portfolio Analytics Engine\n")

	return buf.String()
}
