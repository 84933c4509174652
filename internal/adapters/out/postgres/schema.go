package postgres

import (
	"fulfillment/internal/adapters/out/postgres/cashclosingrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, in truncation order.
var Tables = []string{"cash_closing_details", "cash_closings", "delivery_trackings", "orders"}

// Migrate creates or alters the schema to match the persistence models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&trackingrepo.TrackingDTO{},
		&cashclosingrepo.CashClosingDTO{},
		&cashclosingrepo.DetailDTO{},
	)
}
