// Package analytics implements the portfolio risk and health scoring engine.
//
// Three independent, stateless scorers transform an organization's record
// snapshot into decision-support outputs: per-tenant payment risk scores,
// an aggregate portfolio health score, and ranked lease renewal
// opportunities. Every entry point takes the current date explicitly so
// results are a pure function of the snapshot.
package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/utils"
)

// defaultAdvisorParallelism bounds concurrent rent advisor calls within one
// renewal ranking run.
const defaultAdvisorParallelism = 4

// SnapshotProvider returns the full record set for one organization.
// Rows belonging to other organizations must never appear.
type SnapshotProvider interface {
	GetOrgSnapshot(ctx context.Context, orgID int64) (*models.Snapshot, error)
}

// RentAdvisor suggests a market rent for a property. A (nil, nil) return
// means the advisor has no recommendation; errors must propagate.
type RentAdvisor interface {
	SuggestRent(ctx context.Context, propertyID, orgID int64) (*models.RentSuggestion, error)
}

// Service wires the scorers to their collaborators. It holds no state
// between invocations; every call is a full recompute over a fresh
// snapshot.
type Service struct {
	snapshots          SnapshotProvider
	advisor            RentAdvisor
	advisorParallelism int
}

// NewService creates a new analytics service.
func NewService(snapshots SnapshotProvider, advisor RentAdvisor) *Service {
	return &Service{
		snapshots:          snapshots,
		advisor:            advisor,
		advisorParallelism: defaultAdvisorParallelism,
	}
}

// TenantRiskScores computes payment risk scores for every active lease in
// the organization, sorted descending by score.
func (s *Service) TenantRiskScores(ctx context.Context, orgID int64, today time.Time) (*models.RiskReport, error) {
	snapshot, err := s.snapshots.GetOrgSnapshot(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	report := ScoreAllTenants(snapshot, today)

	utils.GetLogger().Info("Tenant risk scoring complete",
		zap.Int64("org_id", orgID),
		zap.Int("scored", len(report.Scores)),
		zap.Int("skipped", report.Skipped),
	)

	return report, nil
}

// PortfolioHealth computes the aggregate health score for the organization.
func (s *Service) PortfolioHealth(ctx context.Context, orgID int64, today time.Time) (*models.PortfolioHealth, error) {
	snapshot, err := s.snapshots.GetOrgSnapshot(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	health := ScoreHealth(snapshot, today)

	utils.GetLogger().Info("Portfolio health scoring complete",
		zap.Int64("org_id", orgID),
		zap.Float64("health_score", health.HealthScore),
		zap.String("health_level", string(health.HealthLevel)),
	)

	return health, nil
}

// Dashboard runs all three scorers concurrently against the same
// organization and composes their outputs. Any scorer failure fails the
// whole call; partial dashboards are not produced.
func (s *Service) Dashboard(ctx context.Context, orgID int64, today time.Time, horizonDays int) (*models.Dashboard, error) {
	dashboard := &models.Dashboard{}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		health, err := s.PortfolioHealth(groupCtx, orgID, today)
		if err != nil {
			return err
		}
		dashboard.Health = health
		return nil
	})

	group.Go(func() error {
		report, err := s.TenantRiskScores(groupCtx, orgID, today)
		if err != nil {
			return err
		}
		dashboard.Risk = report
		return nil
	})

	group.Go(func() error {
		renewals, err := s.RenewalOpportunities(groupCtx, orgID, today, horizonDays)
		if err != nil {
			return err
		}
		dashboard.Renewals = renewals
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return dashboard, nil
}
