package seedance

import (
	"fmt"
	"time"

	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/kvstore"
	"github.com/reelpop-inc/reelpop/internal/shared/config"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

// NewGateway picks the real provider or the mock. Outside production a
// missing API key falls back to the mock; in production it is an error.
func NewGateway(cfg config.GenerationConfig, production bool, store kvstore.Store, log logger.Interface) (gateway.Gateway, error) {
	if cfg.UseMock {
		log.Infow("using mock video generation gateway")
		return NewMockGateway(store, log), nil
	}
	if cfg.APIKey == "" {
		if production {
			return nil, fmt.Errorf("generation.api_key is required in production")
		}
		log.Warnw("generation.api_key not set, using mock video generation gateway")
		return NewMockGateway(store, log), nil
	}
	return NewClient(cfg.BaseURL, cfg.APIKey, cfg.Model, time.Duration(cfg.RequestTimeout)*time.Second, log), nil
}
