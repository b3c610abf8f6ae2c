package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"device-inventory/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestDatabaseSink_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "inventory.db"),
	})
	require.NoError(t, err)

	sink := NewDatabaseSink(db)
	t.Cleanup(func() { _ = sink.Close() })
	require.NoError(t, sink.Migrate(context.Background()))

	require.NoError(t, sink.Export(context.Background(), sampleReport()))
	require.NoError(t, sink.Export(context.Background(), sampleReport()))

	var count int64
	require.NoError(t, db.Model(&DeviceSnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(4), count, "one row per device per pass")

	var conflicting DeviceSnapshot
	require.NoError(t, db.Where("mac_address = ?", "AA:BB:CC:00:11:22").First(&conflicting).Error)
	assert.True(t, conflicting.Conflicts)
	assert.JSONEq(t, `{"ip_mismatch":{"dhcp_ip":"10.0.0.5","arp_ip":"10.0.0.9"}}`, conflicting.ConflictDetails)
	assert.Equal(t, sampleReport().PassID, conflicting.PassID)
}

func TestDatabaseSink_InsertError(t *testing.T) {
	db, mock := setupMockDB(t)
	sink := NewDatabaseSink(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `device_snapshots`").WillReturnError(errors.New("table is read only"))
	mock.ExpectRollback()

	err := sink.Export(context.Background(), sampleReport())

	assert.ErrorContains(t, err, "failed to insert snapshots")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseSink_EmptyReport(t *testing.T) {
	db, mock := setupMockDB(t)
	sink := NewDatabaseSink(db)

	report := sampleReport()
	report.Devices = nil

	assert.NoError(t, sink.Export(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRows(t *testing.T) {
	rows, err := SnapshotRows(sampleReport())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "10.0.0.6", rows[1].IPAddress)
	assert.Empty(t, rows[1].ConflictDetails)
	assert.Equal(t, sampleReport().CompletedAt, rows[0].CapturedAt)
	assert.Equal(t, "device_snapshots", DeviceSnapshot{}.TableName())
}
