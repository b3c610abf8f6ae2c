package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"device-inventory/core/reconcile"

	"gorm.io/gorm"
)

// DeviceSnapshot is one device as seen by one pass.
type DeviceSnapshot struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	PassID          string    `gorm:"column:pass_id;size:36;index"`
	CapturedAt      time.Time `gorm:"column:captured_at;index"`
	IPAddress       string    `gorm:"column:ip_address;size:64"`
	MACAddress      string    `gorm:"column:mac_address;size:32;index"`
	Hostname        string    `gorm:"column:hostname;size:255"`
	DHCPStatus      string    `gorm:"column:dhcp_status;size:32"`
	DHCPServer      string    `gorm:"column:dhcp_server;size:64"`
	StaticLease     bool      `gorm:"column:static_lease"`
	Interface       string    `gorm:"column:interface;size:64"`
	ARPStatus       string    `gorm:"column:arp_status;size:32"`
	Bridge          string    `gorm:"column:bridge;size:64"`
	BridgeInterface string    `gorm:"column:bridge_interface;size:64"`
	OnBridge        bool      `gorm:"column:on_bridge"`
	Conflicts       bool      `gorm:"column:conflicts;index"`
	ConflictDetails string    `gorm:"column:conflict_details;type:text"`
}

// TableName overrides the table name used by DeviceSnapshot.
func (DeviceSnapshot) TableName() string {
	return "device_snapshots"
}

// DatabaseSink stores one row per device per pass.
type DatabaseSink struct {
	db        *gorm.DB
	batchSize int
}

// NewDatabaseSink creates a database sink. Call Migrate before the first export.
func NewDatabaseSink(db *gorm.DB) *DatabaseSink {
	return &DatabaseSink{db: db, batchSize: 100}
}

// Migrate creates or updates the snapshot table.
func (s *DatabaseSink) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&DeviceSnapshot{}); err != nil {
		return fmt.Errorf("failed to migrate device_snapshots: %w", err)
	}
	return nil
}

// Name returns the sink name.
func (s *DatabaseSink) Name() string { return SinkDatabase }

// Export inserts the report's devices.
func (s *DatabaseSink) Export(ctx context.Context, report *reconcile.Report) error {
	rows, err := SnapshotRows(report)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, s.batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert snapshots: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *DatabaseSink) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SnapshotRows converts a report into database rows.
func SnapshotRows(report *reconcile.Report) ([]DeviceSnapshot, error) {
	captured := report.CompletedAt
	if captured.IsZero() {
		captured = time.Now()
	}

	rows := make([]DeviceSnapshot, 0, len(report.Devices))
	for _, d := range report.Devices {
		details := ""
		if len(d.ConflictDetails) > 0 {
			data, err := json.Marshal(d.ConflictDetails)
			if err != nil {
				return nil, fmt.Errorf("failed to encode conflict details: %w", err)
			}
			details = string(data)
		}
		rows = append(rows, DeviceSnapshot{
			PassID:          report.PassID,
			CapturedAt:      captured,
			IPAddress:       d.IPAddress,
			MACAddress:      d.MACAddress,
			Hostname:        d.Hostname,
			DHCPStatus:      d.DHCPStatus,
			DHCPServer:      d.DHCPServer,
			StaticLease:     d.StaticLease,
			Interface:       d.Interface,
			ARPStatus:       d.ARPStatus,
			Bridge:          d.Bridge,
			BridgeInterface: d.BridgeInterface,
			OnBridge:        d.OnBridge,
			Conflicts:       d.Conflicts,
			ConflictDetails: details,
		})
	}
	return rows, nil
}
