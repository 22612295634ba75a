package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/services/analytics"
)

func TestDashboard_ComposesAllThreeScorers(t *testing.T) {
	today := day(2026, 6, 15)
	service := analytics.NewService(
		&fakeSnapshots{snapshot: renewalSnapshot(today)},
		&fakeAdvisor{},
	)

	dashboard, err := service.Dashboard(context.Background(), 1, today, 90)

	require.NoError(t, err)
	require.NotNil(t, dashboard.Health)
	require.NotNil(t, dashboard.Risk)
	require.NotNil(t, dashboard.Renewals)

	assert.Len(t, dashboard.Risk.Scores, 3, "All three active leases should be risk scored")
	assert.Len(t, dashboard.Renewals, 2, "Only leases inside the horizon rank for renewal")
	assert.Equal(t, 3, dashboard.Health.Metrics.OccupiedUnits)
}

func TestDashboard_SnapshotErrorFailsWholeCall(t *testing.T) {
	snapshotErr := errors.New("connection refused")
	service := analytics.NewService(&fakeSnapshots{err: snapshotErr}, &fakeAdvisor{})

	dashboard, err := service.Dashboard(context.Background(), 1, day(2026, 6, 15), 90)

	require.Error(t, err)
	assert.ErrorIs(t, err, snapshotErr)
	assert.Nil(t, dashboard, "Partial dashboards must not be produced")
}

func TestDashboard_AdvisorErrorFailsWholeCall(t *testing.T) {
	today := day(2026, 6, 15)
	advisorErr := errors.New("advisor unavailable")
	service := analytics.NewService(
		&fakeSnapshots{snapshot: renewalSnapshot(today)},
		&fakeAdvisor{err: advisorErr},
	)

	dashboard, err := service.Dashboard(context.Background(), 1, today, 90)

	require.Error(t, err)
	assert.ErrorIs(t, err, advisorErr)
	assert.Nil(t, dashboard)
}

func TestTenantRiskScores_ReportsSkipCount(t *testing.T) {
	today := day(2026, 6, 15)
	snapshot := renewalSnapshot(today)
	snapshot.Tenants = snapshot.Tenants[1:] // tenant 10 unresolvable

	service := analytics.NewService(&fakeSnapshots{snapshot: snapshot}, &fakeAdvisor{})

	report, err := service.TenantRiskScores(context.Background(), 1, today)

	require.NoError(t, err)
	assert.Len(t, report.Scores, 2)
	assert.Equal(t, 1, report.Skipped)
}

func TestPortfolioHealth_EmptyOrganization(t *testing.T) {
	service := analytics.NewService(
		&fakeSnapshots{snapshot: &models.Snapshot{OrgID: 1}},
		&fakeAdvisor{},
	)

	health, err := service.PortfolioHealth(context.Background(), 1, day(2026, 6, 15))

	require.NoError(t, err)
	assert.Equal(t, 0.0, health.OccupancyRate)
	assert.Equal(t, 100.0, health.CollectionRate)
}
