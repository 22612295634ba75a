// Package handlers provides HTTP handlers for the portfolio analytics engine.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	appConfig "portfolio-analytics-engine/internal/config"
	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/services/analytics"
	"portfolio-analytics-engine/internal/services/database"
	"portfolio-analytics-engine/internal/services/rentadvisor"
	sesService "portfolio-analytics-engine/internal/services/ses"
	"portfolio-analytics-engine/internal/utils"
)

// AnalyticsTriggerHandler runs the scoring pipeline for one organization on
// demand, typically invoked by a scheduler or workflow engine.
type AnalyticsTriggerHandler struct {
	db       *database.DB
	service  *analytics.Service
	config   *appConfig.Config
	notifier *sesService.Service
}

// NewAnalyticsTriggerHandler creates a new analytics trigger handler.
func NewAnalyticsTriggerHandler(ctx context.Context) (*AnalyticsTriggerHandler, error) {
	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	service := analytics.NewService(
		database.NewSnapshotRepository(db),
		rentadvisor.NewClient(cfg),
	)

	notifier, err := sesService.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create SES service: %w", err)
	}

	return &AnalyticsTriggerHandler{
		db:       db,
		service:  service,
		config:   cfg,
		notifier: notifier,
	}, nil
}

// TriggerRequest is the request body for an analytics run.
type TriggerRequest struct {
	OrgID       int64  `json:"org_id"`
	OrgName     string `json:"org_name,omitempty"`
	HorizonDays int    `json:"horizon_days,omitempty"`
	SendDigest  bool   `json:"send_digest,omitempty"`
}

// TriggerResponse is the response for an analytics run.
type TriggerResponse struct {
	Message    string            `json:"message"`
	OrgID      int64             `json:"org_id"`
	Dashboard  *models.Dashboard `json:"dashboard"`
	DigestSent bool              `json:"digest_sent"`
}

// Handle processes API Gateway requests to run the scoring pipeline.
func (h *AnalyticsTriggerHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()

	// CORS headers
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
		"Content-Type":                 "application/json",
	}

	// Handle CORS preflight
	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	var req TriggerRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(headers, http.StatusBadRequest, "Invalid JSON in request body")
	}

	if req.OrgID <= 0 {
		return errorResponse(headers, http.StatusBadRequest, "Missing required field: org_id")
	}

	horizon := req.HorizonDays
	if horizon <= 0 {
		horizon = h.config.RenewalHorizonDays
	}

	today := time.Now().UTC()

	dashboard, err := h.service.Dashboard(ctx, req.OrgID, today, horizon)
	if err != nil {
		logger.Error("Analytics run failed",
			zap.Int64("org_id", req.OrgID),
			zap.Error(err),
		)
		return errorResponse(headers, http.StatusBadGateway, "Analytics run failed: "+err.Error())
	}

	digestSent := false
	if req.SendDigest && h.config.RiskAlertRecipient != "" {
		params := sesService.BuildRiskDigestParams(h.config.RiskAlertRecipient, req.OrgName, "", dashboard.Risk)
		if len(params.Flagged) > 0 {
			if _, err := h.notifier.SendRiskDigest(ctx, params); err != nil {
				logger.Warn("Failed to send risk digest", zap.Error(err))
			} else {
				digestSent = true
			}
		}
	}

	response := TriggerResponse{
		Message:    "Analytics run complete",
		OrgID:      req.OrgID,
		Dashboard:  dashboard,
		DigestSent: digestSent,
	}

	body, _ := json.Marshal(response)

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// Close cleans up resources.
func (h *AnalyticsTriggerHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
