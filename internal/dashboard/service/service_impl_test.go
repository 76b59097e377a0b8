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
	dashboarddomain "github.com/fieldops/meterwatch/internal/dashboard/domain"
	fielddomain "github.com/fieldops/meterwatch/internal/field/domain"
	fieldrepo "github.com/fieldops/meterwatch/internal/field/repository"
	historydomain "github.com/fieldops/meterwatch/internal/history/domain"
	meterdomain "github.com/fieldops/meterwatch/internal/meter/domain"
	meterrepo "github.com/fieldops/meterwatch/internal/meter/repository"
	"github.com/fieldops/meterwatch/internal/schedule"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db   *gorm.DB
	svc  dashboarddomain.Service
	node *snowflake.Node
}

// Wednesday 2024-06-12; the week runs Monday 06-10 through Sunday 06-16.
var testNow = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

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

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Clock:       clock.NewFakeClock(testNow),
		FieldRepo:   fieldrepo.Provide(),
		BatteryRepo: batteryrepo.Provide(),
		MeterRepo:   meterrepo.Provide(),
	})

	return &testEnv{db: db, svc: svc, node: node}
}

func (env *testEnv) seedMeter(t *testing.T, batteryID snowflake.ID, name, frequency string, next *time.Time) {
	t.Helper()
	m := meterdomain.Meter{
		ID:             env.node.Generate(),
		BatteryID:      batteryID,
		Name:           name,
		Frequency:      frequency,
		NextInspection: next,
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
	}
	if next != nil {
		last := schedule.AddMonths(*next, -1)
		m.LastTestDate = &last
	}
	require.NoError(t, env.db.Create(&m).Error)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDuePartitionsWeek(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	field := fielddomain.Field{ID: env.node.Generate(), Name: "West Field", CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, env.db.Create(&field).Error)
	battery := batterydomain.Battery{ID: env.node.Generate(), FieldID: field.ID, Name: "Battery 3", CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, env.db.Create(&battery).Error)

	env.seedMeter(t, battery.ID, "Overdue Meter", "Monthly", dayPtr(2024, 6, 3))
	env.seedMeter(t, battery.ID, "Due Meter", "Monthly", dayPtr(2024, 6, 14))
	env.seedMeter(t, battery.ID, "Future Meter", "Monthly", dayPtr(2024, 7, 1))
	env.seedMeter(t, battery.ID, "Parked Meter", "Out of Service", nil)
	env.seedMeter(t, battery.ID, "Unscheduled Meter", "Quarterly", nil)

	view, err := env.svc.Due(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", view.WeekStart)
	assert.Equal(t, "2024-06-16", view.WeekEnd)

	require.Len(t, view.Overdue, 1)
	assert.Equal(t, "Overdue Meter", view.Overdue[0].MeterName)
	assert.Equal(t, "Battery 3", view.Overdue[0].BatteryName)
	assert.Equal(t, "West Field", view.Overdue[0].FieldName)

	require.Len(t, view.DueWeek, 1)
	assert.Equal(t, "Due Meter", view.DueWeek[0].MeterName)
}

func TestHomeBuildsTree(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	field := fielddomain.Field{ID: env.node.Generate(), Name: "East Field", CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, env.db.Create(&field).Error)
	emptyField := fielddomain.Field{ID: env.node.Generate(), Name: "Idle Field", CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, env.db.Create(&emptyField).Error)

	battery := batterydomain.Battery{ID: env.node.Generate(), FieldID: field.ID, Name: "Battery 9", CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, env.db.Create(&battery).Error)

	env.seedMeter(t, battery.ID, "Tree Meter", "Monthly", dayPtr(2024, 6, 20))

	view, err := env.svc.Home(ctx)
	require.NoError(t, err)

	require.Len(t, view.Fields, 2)

	var east, idle *dashboarddomain.FieldNode
	for i := range view.Fields {
		switch view.Fields[i].Name {
		case "East Field":
			east = &view.Fields[i]
		case "Idle Field":
			idle = &view.Fields[i]
		}
	}
	require.NotNil(t, east)
	require.NotNil(t, idle)

	require.Len(t, east.Batteries, 1)
	require.Len(t, east.Batteries[0].Meters, 1)
	meter := east.Batteries[0].Meters[0]
	assert.Equal(t, "Tree Meter", meter.Name)
	require.NotNil(t, meter.NextInspection)
	assert.Equal(t, "2024-06-20", *meter.NextInspection)

	// Empty fields come back with empty, not nil, children.
	assert.NotNil(t, idle.Batteries)
	assert.Empty(t, idle.Batteries)
}
