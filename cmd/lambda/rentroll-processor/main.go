// Rent-Roll CSV Processor Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"portfolio-analytics-engine/internal/handlers"
	"portfolio-analytics-engine/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger("info")
	defer utils.Sync()

	// Create handler
	handler, err := handlers.NewRentRollProcessorHandler()
	if err != nil {
		panic("Failed to create handler: " + err.Error())
	}

	// Start Lambda
	lambda.Start(handler.Handle)
}
