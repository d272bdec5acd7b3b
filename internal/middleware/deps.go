package middleware

import (
	"go.uber.org/zap"

	"github.com/keshon/suggestions/pkg/throttle"
)

// Deps are the shared services the default chain needs.
type Deps struct {
	Logger       *zap.Logger
	GuildLimiter *throttle.GuildLimiter
}
