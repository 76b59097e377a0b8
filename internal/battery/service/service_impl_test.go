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
	fieldrepo "github.com/fieldops/meterwatch/internal/field/repository"
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
	svc     batterydomain.Service
	node    *snowflake.Node
	fields  fielddomain.Repository
	meters  meterdomain.Repository
	history historydomain.Repository
	field   fielddomain.Field
}

func setupTest(t *testing.T) *testEnv {
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

	now := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	clk := clock.NewFakeClock(now)

	field := fielddomain.Field{ID: node.Generate(), Name: "South Field", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(&field).Error)

	fieldRepo := fieldrepo.Provide()
	meterRepo := meterrepo.Provide()
	histRepo := historyrepo.Provide()

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clk,
		Repo:        batteryrepo.Provide(),
		FieldRepo:   fieldRepo,
		MeterRepo:   meterRepo,
		HistoryRepo: histRepo,
	})

	return &testEnv{
		db:      db,
		svc:     svc,
		node:    node,
		fields:  fieldRepo,
		meters:  meterRepo,
		history: histRepo,
		field:   field,
	}
}

func TestCreateRequiresExistingField(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.svc.Create(ctx, batterydomain.CreateRequest{
		FieldID: env.node.Generate().String(),
		Name:    "Orphan Battery",
	})
	assert.ErrorIs(t, err, batterydomain.ErrInvalidField)
}

func TestDeleteCascadesToMetersAndHistory(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, batterydomain.CreateRequest{
		FieldID: env.field.ID.String(),
		Name:    "Battery 7",
	})
	require.NoError(t, err)

	batteryID, err := batterydomain.ParseID(created.ID)
	require.NoError(t, err)

	now := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	meter := meterdomain.Meter{
		ID:        env.node.Generate(),
		BatteryID: batteryID,
		Name:      "Meter X",
		Frequency: "Monthly",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, env.meters.Insert(ctx, env.db, &meter))

	note := "routine test"
	entry := historydomain.Entry{
		ID:         env.node.Generate(),
		MeterID:    meter.ID,
		EventDate:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Notes:      &note,
		CreatedVia: historydomain.ViaManual,
		CreatedAt:  now,
	}
	require.NoError(t, env.history.Insert(ctx, env.db, &entry))

	require.NoError(t, env.svc.Delete(ctx, created.ID))

	gone, err := env.meters.FindByID(ctx, env.db, meter.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	entries, err := env.history.ListByMeter(ctx, env.db, meter.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The parent field is untouched.
	parent, err := env.fields.FindByID(ctx, env.db, env.field.ID)
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, "South Field", parent.Name)
}

func TestUpdateRename(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, batterydomain.CreateRequest{
		FieldID: env.field.ID.String(),
		Name:    "Battery 2",
	})
	require.NoError(t, err)

	name := "Battery 2B"
	updated, err := env.svc.Update(ctx, batterydomain.UpdateRequest{
		ID:   created.ID,
		Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Battery 2B", updated.Name)

	blank := "   "
	_, err = env.svc.Update(ctx, batterydomain.UpdateRequest{
		ID:   created.ID,
		Name: &blank,
	})
	assert.ErrorIs(t, err, batterydomain.ErrInvalidName)
}
