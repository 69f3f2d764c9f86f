package models

import (
	"time"

	"github.com/reelpop-inc/reelpop/internal/shared/constants"
)

// SubscriptionModel is the persistence model for per-user billing records.
// HoldCount counts free-plan reservations whose video rows are not written
// yet; holds stop counting once HoldExpiresAt passes.
type SubscriptionModel struct {
	ID                   uint    `gorm:"primarykey"`
	UserID               string  `gorm:"uniqueIndex;not null;size:64"`
	Plan                 string  `gorm:"not null;size:20"`
	Status               string  `gorm:"not null;size:20"`
	StripeCustomerID     *string `gorm:"size:255;index"`
	StripeSubscriptionID *string `gorm:"size:255;index"`
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	MonthlyVideoCount    int  `gorm:"not null"`
	CancelAtPeriodEnd    bool `gorm:"not null"`
	HoldCount            int  `gorm:"not null;default:0"`
	HoldExpiresAt        *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
