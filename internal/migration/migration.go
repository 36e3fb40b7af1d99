package migration

import (
	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
	productdomain "github.com/smallretail/legacy-api/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migration",
	fx.Invoke(Run),
)

// Run applies the schema. Order matters: order_items references both tables.
func Run(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&productdomain.Product{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	)
	if err != nil {
		return err
	}

	log.Info("schema migrated")
	return nil
}
