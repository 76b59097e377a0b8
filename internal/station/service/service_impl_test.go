package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fieldops/meterwatch/internal/clock"
	stationdomain "github.com/fieldops/meterwatch/internal/station/domain"
	stationrepo "github.com/fieldops/meterwatch/internal/station/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) stationdomain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&stationdomain.Meter{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 8, 1, 7, 0, 0, 0, time.UTC)),
		Repo:  stationrepo.Provide(),
	})
}

func strptr(s string) *string { return &s }

func TestCreateDefaultsBlankName(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, stationdomain.CreateRequest{
		Station:   stationdomain.StationEagleville,
		MeterName: "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Unnamed", resp.MeterName)
}

func TestCreateRejectsUnknownStation(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, stationdomain.CreateRequest{
		Station:   "Midland",
		MeterName: "Meter",
	})
	assert.ErrorIs(t, err, stationdomain.ErrInvalidStation)
}

func TestUpdateOverwritesEverySubmittedValue(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, stationdomain.CreateRequest{
		Station:   stationdomain.StationEagleford,
		MeterName: "Original",
		FlowCalID: strptr("FC-1"),
		TestDate:  "2024-01-10",
		Notes:     strptr("old note"),
	})
	require.NoError(t, err)

	// A blank meter name keeps the stored one; everything else overwrites,
	// including clearing fields the form left empty.
	updated, err := svc.Update(ctx, stationdomain.UpdateRequest{
		ID:        created.ID,
		Station:   stationdomain.StationEagleford,
		MeterName: "",
		FlowCalID: strptr("FC-2"),
		TestDate:  "",
	})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.MeterName)
	require.NotNil(t, updated.FlowCalID)
	assert.Equal(t, "FC-2", *updated.FlowCalID)
	assert.Nil(t, updated.TestDate)
	assert.Nil(t, updated.Notes)
}

func TestListByStationOrdersByName(t *testing.T) {
	svc := setupTest(t)
	ctx := context.Background()

	for _, name := range []string{"Zulu", "Alpha", "Mike"} {
		_, err := svc.Create(ctx, stationdomain.CreateRequest{
			Station:   stationdomain.StationEagleville,
			MeterName: name,
		})
		require.NoError(t, err)
	}

	items, err := svc.ListByStation(ctx, stationdomain.StationEagleville)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Alpha", items[0].MeterName)
	assert.Equal(t, "Mike", items[1].MeterName)
	assert.Equal(t, "Zulu", items[2].MeterName)
}

func TestDeleteUnknownID(t *testing.T) {
	svc := setupTest(t)
	err := svc.Delete(context.Background(), "12345")
	assert.ErrorIs(t, err, stationdomain.ErrNotFound)
}
