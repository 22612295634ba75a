// Package handlers provides HTTP handlers for the portfolio analytics engine.
package handlers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appConfig "portfolio-analytics-engine/internal/config"
	"portfolio-analytics-engine/internal/services/database"
	s3service "portfolio-analytics-engine/internal/services/s3"
	"portfolio-analytics-engine/internal/utils"
)

// RentRollProcessorHandler handles S3 events for rent-roll CSV processing.
type RentRollProcessorHandler struct {
	storage      *s3service.Service
	db           *database.DB
	rentRollRepo *database.RentRollRepository
}

// NewRentRollProcessorHandler creates a new rent-roll processor handler.
func NewRentRollProcessorHandler() (*RentRollProcessorHandler, error) {
	storage, err := s3service.NewService(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 service: %w", err)
	}

	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &RentRollProcessorHandler{
		storage:      storage,
		db:           db,
		rentRollRepo: database.NewRentRollRepository(db),
	}, nil
}

// RentRollProcessResult is the result of processing a rent-roll CSV file.
type RentRollProcessResult struct {
	Message  string   `json:"message"`
	BatchID  string   `json:"batch_id"`
	Inserted int      `json:"inserted"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Handle processes S3 events for uploaded rent-roll CSV files.
func (h *RentRollProcessorHandler) Handle(ctx context.Context, s3Event events.S3Event) (RentRollProcessResult, error) {
	logger := utils.GetLogger()

	if len(s3Event.Records) == 0 {
		return RentRollProcessResult{Message: "No records to process"}, nil
	}

	record := s3Event.Records[0]
	bucket := record.S3.Bucket.Name
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return RentRollProcessResult{}, fmt.Errorf("failed to decode S3 key: %w", err)
	}

	logger.Info("Processing rent-roll file",
		zap.String("bucket", bucket),
		zap.String("key", key))

	data, err := h.storage.DownloadFile(ctx, key)
	if err != nil {
		logger.Error("Failed to download CSV", zap.Error(err))
		return RentRollProcessResult{}, fmt.Errorf("failed to download CSV: %w", err)
	}
	csvContent := string(data)
	if csvContent == "" {
		return RentRollProcessResult{}, fmt.Errorf("CSV file is empty: %s", key)
	}

	batchID := uuid.New().String()

	parser := utils.NewCSVParser()
	entries, parseErrors := parser.ParseScheduleEntries(csvContent, batchID)

	if len(entries) == 0 {
		errMsgs := make([]string, len(parseErrors))
		for i, e := range parseErrors {
			errMsgs[i] = e.Error()
		}
		return RentRollProcessResult{
			Message: "No valid schedule rows found in CSV",
			BatchID: batchID,
			Errors:  errMsgs,
		}, nil
	}

	logger.Info("Parsed rent-roll CSV",
		zap.String("batchID", batchID),
		zap.Int("validRows", len(entries)),
		zap.Int("parseErrors", len(parseErrors)))

	result, err := h.rentRollRepo.BulkInsert(ctx, entries)
	if err != nil {
		logger.Error("Failed to insert schedule rows", zap.Error(err))
		return RentRollProcessResult{}, fmt.Errorf("failed to insert schedule rows: %w", err)
	}

	logger.Info("Inserted schedule rows",
		zap.String("batchID", batchID),
		zap.Int("inserted", result.InsertedCount),
		zap.Int("failed", result.FailedCount))

	// Archive processed file
	if err := h.storage.ArchiveFile(ctx, key); err != nil {
		logger.Warn("Failed to archive file", zap.Error(err))
	}

	// Combine parse errors with insert errors
	allErrors := make([]string, 0)
	for _, e := range parseErrors {
		allErrors = append(allErrors, e.Error())
	}
	allErrors = append(allErrors, result.Errors...)

	// Limit errors in response
	if len(allErrors) > 10 {
		allErrors = allErrors[:10]
	}

	return RentRollProcessResult{
		Message:  "Rent-roll processed successfully",
		BatchID:  batchID,
		Inserted: result.InsertedCount,
		Failed:   result.FailedCount + len(parseErrors),
		Errors:   allErrors,
	}, nil
}

// Close cleans up resources.
func (h *RentRollProcessorHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
