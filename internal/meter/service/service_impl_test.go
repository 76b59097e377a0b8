package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	batterydomain "github.com/fieldops/meterwatch/internal/battery/domain"
	batteryrepo "github.com/fieldops/meterwatch/internal/battery/repository"
	"github.com/fieldops/meterwatch/internal/clock"
	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	historyrepo "github.com/fieldops/meterwatch/internal/history/repository"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	meterrepo "github.com/fieldops/meterwatch/internal/meter/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	svc     meterdomain.Service
	clock   *clock.FakeClock
	node    *snowflake.Node
	history historydomain.Repository
	battery batterydomain.Battery
}

func setupTest(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&fielddomain.Field{},
		&batterydomain.Battery{},
		&meterdomain.Meter{},
		&historydomain.Entry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(now)

	field := fielddomain.Field{ID: node.Generate(), Name: "North Field", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(&field).Error)

	battery := batterydomain.Battery{ID: node.Generate(), FieldID: field.ID, Name: "Battery 1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(&battery).Error)

	histRepo := historyrepo.Provide()

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clk,
		Repo:        meterrepo.Provide(),
		BatteryRepo: batteryrepo.Provide(),
		HistoryRepo: histRepo,
	})

	return &testEnv{
		db:      db,
		svc:     svc,
		clock:   clk,
		node:    node,
		history: histRepo,
		battery: battery,
	}
}

func strptr(s string) *string { return &s }

func TestCreateComputesNextInspection(t *testing.T) {
	env := setupTest(t, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	resp, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID:    env.battery.ID.String(),
		Name:         "Sales Meter",
		Frequency:    "Monthly",
		LastTestDate: "2024-01-31",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.LastTestDate)
	assert.Equal(t, "2024-01-31", *resp.LastTestDate)
	// Jan 31 plus one month clamps to the end of February.
	require.NotNil(t, resp.NextInspection)
	assert.Equal(t, "2024-02-29", *resp.NextInspection)
}

func TestCreateWithoutDateHasNoNextInspection(t *testing.T) {
	env := setupTest(t, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	resp, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID: env.battery.ID.String(),
		Name:      "New Meter",
		Frequency: "Quarterly",
	})
	require.NoError(t, err)

	assert.Nil(t, resp.LastTestDate)
	assert.Nil(t, resp.NextInspection)
}

func TestCreateRequiresExistingBattery(t *testing.T) {
	env := setupTest(t, time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID: env.node.Generate().String(),
		Name:      "Orphan",
	})
	assert.ErrorIs(t, err, meterdomain.ErrInvalidBattery)
}

func TestMarkTestedWithoutSample(t *testing.T) {
	env := setupTest(t, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID: env.battery.ID.String(),
		Name:      "Check Meter",
		H2SPPM:    strptr("4"),
		Frequency: "Annual",
	})
	require.NoError(t, err)

	resp, err := env.svc.MarkTested(ctx, meterdomain.MarkTestedRequest{ID: created.ID})
	require.NoError(t, err)

	require.NotNil(t, resp.LastTestDate)
	assert.Equal(t, "2024-01-01", *resp.LastTestDate)
	require.NotNil(t, resp.NextInspection)
	assert.Equal(t, "2025-01-01", *resp.NextInspection)

	// No new sample keeps the stored reading.
	require.NotNil(t, resp.H2SPPM)
	assert.Equal(t, "4", *resp.H2SPPM)

	meterID, err := meterdomain.ParseID(created.ID)
	require.NoError(t, err)
	entries, err := env.history.ListByMeter(ctx, env.db, meterID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, historydomain.ViaMarkTested, entry.CreatedVia)
	assert.Nil(t, entry.H2SPPM)
	require.NotNil(t, entry.Notes)
	assert.Equal(t, "Marked tested (no H2S sample)", *entry.Notes)
}

func TestMarkTestedWithSampleReasonAndNote(t *testing.T) {
	env := setupTest(t, time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID: env.battery.ID.String(),
		Name:      "Inlet Meter",
		Frequency: "Quarterly",
	})
	require.NoError(t, err)

	resp, err := env.svc.MarkTested(ctx, meterdomain.MarkTestedRequest{
		ID:     created.ID,
		H2SPPM: "12",
		Reason: "No flow",
		Note:   "recheck next week",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.H2SPPM)
	assert.Equal(t, "12", *resp.H2SPPM)
	require.NotNil(t, resp.NextInspection)
	assert.Equal(t, "2024-09-15", *resp.NextInspection)

	meterID, err := meterdomain.ParseID(created.ID)
	require.NoError(t, err)
	entries, err := env.history.ListByMeter(ctx, env.db, meterID)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	require.NotNil(t, entry.H2SPPM)
	assert.Equal(t, "12", *entry.H2SPPM)
	require.NotNil(t, entry.Notes)
	assert.Equal(t, "No flow — recheck next week", *entry.Notes)
}

func TestMarkTestedPlaceholderReasonIgnored(t *testing.T) {
	env := setupTest(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID: env.battery.ID.String(),
		Name:      "Meter A",
		Frequency: "Monthly",
	})
	require.NoError(t, err)

	_, err = env.svc.MarkTested(ctx, meterdomain.MarkTestedRequest{
		ID:     created.ID,
		Reason: "—",
		Note:   "witnessed by operator",
	})
	require.NoError(t, err)

	meterID, err := meterdomain.ParseID(created.ID)
	require.NoError(t, err)
	entries, err := env.history.ListByMeter(ctx, env.db, meterID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, "witnessed by operator", *entries[0].Notes)
}

func TestUpdateRecomputesSchedule(t *testing.T) {
	env := setupTest(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID:    env.battery.ID.String(),
		Name:         "Meter B",
		Frequency:    "Monthly",
		LastTestDate: "2024-04-15",
	})
	require.NoError(t, err)
	require.NotNil(t, created.NextInspection)
	assert.Equal(t, "2024-05-15", *created.NextInspection)

	updated, err := env.svc.Update(ctx, meterdomain.UpdateRequest{
		ID:        created.ID,
		Frequency: strptr("Semiannual"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.NextInspection)
	assert.Equal(t, "2024-10-15", *updated.NextInspection)

	// Out of Service drops off the schedule entirely.
	parked, err := env.svc.Update(ctx, meterdomain.UpdateRequest{
		ID:        created.ID,
		Frequency: strptr("Out of Service"),
	})
	require.NoError(t, err)
	assert.Nil(t, parked.NextInspection)
}

func TestUpdateWithLogHistoryWritesEditEntry(t *testing.T) {
	env := setupTest(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID: env.battery.ID.String(),
		Name:      "Meter C",
		Frequency: "Monthly",
	})
	require.NoError(t, err)

	_, err = env.svc.Update(ctx, meterdomain.UpdateRequest{
		ID:          created.ID,
		H2SPPM:      strptr("7"),
		LogHistory:  true,
		HistoryNote: strptr("plate changed out"),
	})
	require.NoError(t, err)

	meterID, err := meterdomain.ParseID(created.ID)
	require.NoError(t, err)
	entries, err := env.history.ListByMeter(ctx, env.db, meterID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, historydomain.ViaEdit, entries[0].CreatedVia)
	require.NotNil(t, entries[0].Notes)
	assert.Equal(t, "plate changed out", *entries[0].Notes)
}

func TestDeleteRemovesHistory(t *testing.T) {
	env := setupTest(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID: env.battery.ID.String(),
		Name:      "Meter D",
		Frequency: "Monthly",
	})
	require.NoError(t, err)

	_, err = env.svc.MarkTested(ctx, meterdomain.MarkTestedRequest{ID: created.ID})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, created.ID))

	meterID, err := meterdomain.ParseID(created.ID)
	require.NoError(t, err)
	entries, err := env.history.ListByMeter(ctx, env.db, meterID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = env.svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, meterdomain.ErrNotFound)
}

func TestH2SStaysOpaqueText(t *testing.T) {
	env := setupTest(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := env.svc.Create(ctx, meterdomain.CreateRequest{
		BatteryID: env.battery.ID.String(),
		Name:      "Sour Meter",
		H2SPPM:    strptr("<1 trace"),
		Frequency: "Monthly",
	})
	require.NoError(t, err)

	got, err := env.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.H2SPPM)
	assert.Equal(t, "<1 trace", *got.H2SPPM)
}
