package schema

import (
	"fmt"

	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/faers"
	"gorm.io/gorm"
)

// Model returns the GORM model of a derived table.
func Model(id faers.TableID) any {
	switch id {
	case faers.ReportsID:
		return &Report{}
	case faers.PatientsID:
		return &Patient{}
	case faers.SymptomsID:
		return &Symptom{}
	case faers.DrugsID:
		return &Drug{}
	}
	return nil
}

// Migrate creates or updates the four tables under the names set in
// the warehouse config.
func Migrate(db *gorm.DB, cfg config.WarehouseConfig) error {
	for _, t := range faers.Tables() {
		name := cfg.TableName(t.ID)
		if err := db.Table(name).AutoMigrate(Model(t.ID)); err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
	}
	return nil
}
