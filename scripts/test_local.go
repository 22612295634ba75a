//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"portfolio-analytics-engine/internal/config"
	"portfolio-analytics-engine/internal/services/analytics"
	"portfolio-analytics-engine/internal/services/database"
	"portfolio-analytics-engine/internal/services/rentadvisor"
	"portfolio-analytics-engine/internal/utils"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("=== Portfolio Analytics Engine - Local Test ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to database
	db, err := database.New(cfg)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	fmt.Println("✅ Connected to database")

	// Parse sample rent-roll CSV
	fmt.Println()
	fmt.Println("📖 Parsing sample rent-roll CSV...")

	csvContent, err := os.ReadFile("data/sample_rentroll.csv")
	if err != nil {
		fmt.Printf("❌ Failed to read CSV: %v\n", err)
		os.Exit(1)
	}

	batchID := uuid.New().String()
	parser := utils.NewCSVParser()
	entries, parseErrors := parser.ParseScheduleEntries(string(csvContent), batchID)
	if len(parseErrors) > 0 {
		fmt.Printf("⚠️  CSV parsing errors: %v\n", parseErrors)
	}
	fmt.Printf("✅ Parsed %d schedule rows from CSV\n", len(entries))

	// Insert schedule rows into database
	fmt.Println()
	fmt.Println("📥 Inserting schedule rows into database...")

	rentRollRepo := database.NewRentRollRepository(db)
	result, err := rentRollRepo.BulkInsert(ctx, entries)
	if err != nil {
		fmt.Printf("❌ Bulk insert failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Inserted %d rows (%d failed)\n", result.InsertedCount, result.FailedCount)

	// Run the analytics pipeline for org 1
	fmt.Println()
	fmt.Println("🎯 Running portfolio analytics...")

	service := analytics.NewService(
		database.NewSnapshotRepository(db),
		rentadvisor.NewClient(cfg),
	)

	today := time.Now().UTC()
	dashboard, err := service.Dashboard(ctx, 1, today, cfg.RenewalHorizonDays)
	if err != nil {
		fmt.Printf("❌ Analytics run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("🏥 Portfolio Health: %.1f (%s)\n", dashboard.Health.HealthScore, dashboard.Health.HealthLevel)
	fmt.Printf("   Occupancy:  %.1f%%\n", dashboard.Health.OccupancyRate)
	fmt.Printf("   Collection: %.1f%%\n", dashboard.Health.CollectionRate)
	for _, rec := range dashboard.Health.Recommendations {
		fmt.Printf("   💡 %s\n", rec)
	}

	fmt.Println()
	fmt.Printf("⚠️  Tenant Risk Scores (%d scored, %d skipped):\n", len(dashboard.Risk.Scores), dashboard.Risk.Skipped)
	for _, score := range dashboard.Risk.Scores {
		fmt.Printf("   %s [%s] score=%.0f on-time=%.0f%%\n", score.TenantName, score.RiskLevel, score.RiskScore, score.OnTimePercentage)
	}

	fmt.Println()
	fmt.Printf("🔄 Renewal Opportunities: %d\n", len(dashboard.Renewals))
	for _, opp := range dashboard.Renewals {
		fmt.Printf("   %s unit %s expires in %d days [%s] prob=%d%%\n",
			opp.TenantName, opp.UnitLabel, opp.DaysUntilExpiry, opp.Priority, opp.RenewalProbability)
	}

	// Summary
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════")
	fmt.Println("              TEST COMPLETE")
	fmt.Println("═══════════════════════════════════════════")
}
