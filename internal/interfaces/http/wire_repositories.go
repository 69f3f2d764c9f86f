package http

import (
	"gorm.io/gorm"

	"github.com/reelpop-inc/reelpop/internal/domain/billing"
	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/repository"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	subscriptionRepo subscription.Repository
	usageRepo        subscription.UsageRepository
	projectRepo      generation.ProjectRepository
	imageRepo        generation.ProjectImageRepository
	videoRepo        generation.GeneratedVideoRepository
	eventRepo        billing.ProcessedEventRepository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		subscriptionRepo: repository.NewSubscriptionRepository(db, log),
		usageRepo:        repository.NewUsageRepository(db, log),
		projectRepo:      repository.NewProjectRepository(db, log),
		imageRepo:        repository.NewProjectImageRepository(db, log),
		videoRepo:        repository.NewGeneratedVideoRepository(db, log),
		eventRepo:        repository.NewProcessedEventRepository(db, log),
	}
}
