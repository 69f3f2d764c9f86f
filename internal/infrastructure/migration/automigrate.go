package migration

import (
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
)

// Models lists every persistence model, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.SubscriptionModel{},
		&models.ProjectModel{},
		&models.ProjectImageModel{},
		&models.GeneratedVideoModel{},
		&models.ProcessedWebhookEventModel{},
	}
}
