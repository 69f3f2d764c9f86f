package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelpop-inc/reelpop/internal/domain/generation"
	genvo "github.com/reelpop-inc/reelpop/internal/domain/generation/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/domain/subscription"
	subvo "github.com/reelpop-inc/reelpop/internal/domain/subscription/valueobjects"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/persistence/models"
)

func TestSubscriptionMapper_RejectsUnknownPlan(t *testing.T) {
	m := NewSubscriptionMapper()
	_, err := m.ToEntity(&models.SubscriptionModel{ID: 1, UserID: "u", Plan: "gold", Status: "active"})
	assert.ErrorIs(t, err, subscription.ErrInvalidPlan)

	entity, err := m.ToEntity(nil)
	assert.NoError(t, err)
	assert.Nil(t, entity)
}

func TestSubscriptionMapper_ToModel(t *testing.T) {
	sub, err := subscription.NewFreeSubscription("user-1")
	require.NoError(t, err)

	model := NewSubscriptionMapper().ToModel(sub)
	assert.Equal(t, "user-1", model.UserID)
	assert.Equal(t, subvo.PlanFree.String(), model.Plan)
	assert.Nil(t, model.StripeCustomerID)
}

func TestProjectMapper_EmptyProductFieldsAreNull(t *testing.T) {
	p, err := generation.NewProject("u", genvo.TemplateShowcase, generation.ProductDetails{Name: "Mug"})
	require.NoError(t, err)

	model := NewProjectMapper().ToModel(p)
	require.NotNil(t, model.ProductName)
	assert.Equal(t, "Mug", *model.ProductName)
	assert.Nil(t, model.ProductPrice)
	assert.Nil(t, model.Catchphrase)
}

func TestGeneratedVideoMapper_SnapshotRoundTrip(t *testing.T) {
	v, err := generation.NewGeneratedVideo("p", "task-1", generation.VideoSpec{Resolution: "1080p"})
	require.NoError(t, err)
	v.RecordSnapshot("processing", 40, "")

	m := NewGeneratedVideoMapper()
	model, err := m.ToModel(v)
	require.NoError(t, err)
	assert.Contains(t, string(model.ProviderPayload), `"progress":40`)
	assert.Nil(t, model.VideoURL)

	model.ID = 9
	back, err := m.ToEntity(model)
	require.NoError(t, err)
	assert.Equal(t, uint(9), back.ID())
	require.NotNil(t, back.Snapshot())
	assert.Equal(t, 40, back.Snapshot().Progress)
	assert.Equal(t, "processing", back.Snapshot().Status)
	assert.WithinDuration(t, time.Now(), back.Snapshot().ObservedAt, time.Minute)
}
