// Analytics Trigger Lambda entry point
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"portfolio-analytics-engine/internal/handlers"
	"portfolio-analytics-engine/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger("info")
	defer utils.Sync()

	// Create handler
	handler, err := handlers.NewAnalyticsTriggerHandler(context.Background())
	if err != nil {
		panic("Failed to create handler: " + err.Error())
	}

	// Start Lambda
	lambda.Start(handler.Handle)
}
