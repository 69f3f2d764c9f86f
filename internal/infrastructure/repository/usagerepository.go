package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	subvo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
	"github.com/reelpop-inc/reelpop/internal/shared/biztime"
	"github.com/reelpop-inc/reelpop/internal/shared/constants"
	"github.com/reelpop-inc/reelpop/internal/shared/db"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

// UsageRepositoryImpl performs every counter change as a single server-side
// statement so concurrent requests never lose updates.
type UsageRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUsageRepository(db *gorm.DB, logger logger.Interface) subscription.UsageRepository {
	return &UsageRepositoryImpl{db: db, logger: logger}
}

func (r *UsageRepositoryImpl) IncrementVideoCount(ctx context.Context, userID string) error {
	err := db.Conn(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"monthly_video_count": gorm.Expr("monthly_video_count + 1"),
			"updated_at":          biztime.NowUTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to increment video count", "user_id", userID, "error", err)
		return fmt.Errorf("failed to increment video count: %w", err)
	}
	return nil
}

func (r *UsageRepositoryImpl) DecrementVideoCount(ctx context.Context, userID string) error {
	err := db.Conn(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND monthly_video_count > 0", userID).
		Updates(map[string]any{
			"monthly_video_count": gorm.Expr("monthly_video_count - 1"),
			"updated_at":          biztime.NowUTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to decrement video count", "user_id", userID, "error", err)
		return fmt.Errorf("failed to decrement video count: %w", err)
	}
	return nil
}

func (r *UsageRepositoryImpl) TryIncrementVideoCount(ctx context.Context, userID string, plan string, limit int) (bool, error) {
	result := db.Conn(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND plan = ? AND monthly_video_count < ?", userID, plan, limit).
		Updates(map[string]any{
			"monthly_video_count": gorm.Expr("monthly_video_count + 1"),
			"updated_at":          biztime.NowUTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to reserve video slot", "user_id", userID, "plan", plan, "error", result.Error)
		return false, fmt.Errorf("failed to reserve video slot: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// TryReserveFreeVideo enforces the free quota on the derived video count.
// Holds cover reservations whose video rows are still being written, and the
// hold_count term makes concurrent reservations serialize on the row.
// MySQL applies SET assignments left to right, so hold_count must be assigned
// before hold_expires_at; gorm orders map keys alphabetically.
func (r *UsageRepositoryImpl) TryReserveFreeVideo(ctx context.Context, userID string, limit int, hold time.Duration) (bool, error) {
	conn := db.Conn(ctx, r.db)
	now := biztime.NowUTC()
	liveHolds := gorm.Expr("CASE WHEN hold_expires_at IS NOT NULL AND hold_expires_at > ? THEN hold_count ELSE 0 END", now)

	result := conn.Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND plan = ?", userID, subvo.PlanFree.String()).
		Where("(?) + ? < ?", r.activeVideos(conn, userID).Select("COUNT(*)"), liveHolds, limit).
		Updates(map[string]any{
			"hold_count":          gorm.Expr("? + 1", liveHolds),
			"hold_expires_at":     now.Add(hold),
			"monthly_video_count": gorm.Expr("(?) + 1", r.activeVideos(conn, userID).Select("COUNT(*)")),
			"updated_at":          now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to reserve free video slot", "user_id", userID, "error", result.Error)
		return false, fmt.Errorf("failed to reserve free video slot: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *UsageRepositoryImpl) ReleaseFreeHold(ctx context.Context, userID string) error {
	err := db.Conn(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("user_id = ? AND hold_count > 0", userID).
		Updates(map[string]any{
			"hold_count": gorm.Expr("hold_count - 1"),
			"updated_at": biztime.NowUTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to release free video hold", "user_id", userID, "error", err)
		return fmt.Errorf("failed to release free video hold: %w", err)
	}
	return nil
}

func (r *UsageRepositoryImpl) CountActiveVideos(ctx context.Context, userID string) (int, error) {
	var count int64
	if err := r.activeVideos(db.Conn(ctx, r.db), userID).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count videos", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return int(count), nil
}

func (r *UsageRepositoryImpl) ResetVideoCount(ctx context.Context, stripeSubscriptionID string) error {
	result := db.Conn(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		Updates(map[string]any{
			"monthly_video_count": 0,
			"updated_at":          biztime.NowUTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to reset video count", "stripe_subscription_id", stripeSubscriptionID, "error", result.Error)
		return fmt.Errorf("failed to reset video count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("no subscription matched renewal", "stripe_subscription_id", stripeSubscriptionID)
	}
	return nil
}

func (r *UsageRepositoryImpl) SyncVideoCountFromVideos(ctx context.Context, userID string) error {
	conn := db.Conn(ctx, r.db)
	err := conn.Model(&models.SubscriptionModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"monthly_video_count": r.activeVideos(conn, userID).Select("COUNT(*)"),
			"updated_at":          biztime.NowUTC(),
		}).Error
	if err != nil {
		r.logger.Errorw("failed to sync video count", "user_id", userID, "error", err)
		return fmt.Errorf("failed to sync video count: %w", err)
	}
	return nil
}

// activeVideos selects the user's videos that occupy a quota slot.
func (r *UsageRepositoryImpl) activeVideos(conn *gorm.DB, userID string) *gorm.DB {
	statuses := make([]string, 0, len(valueobjects.QuotaCountedVideoStatuses))
	for _, s := range valueobjects.QuotaCountedVideoStatuses {
		statuses = append(statuses, s.String())
	}
	return conn.Session(&gorm.Session{NewDB: true}).
		Table(constants.TableGeneratedVideos+" AS gv").
		Joins("JOIN "+constants.TableProjects+" AS p ON p.id = gv.project_id").
		Where("p.user_id = ? AND gv.status IN ?", userID, statuses)
}
