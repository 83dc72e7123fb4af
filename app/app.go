package app

import (
	"github.com/go-chi/oauth"

	"github.com/Gauri-theanalyst/quick-insight-pulse/analytics"
	"github.com/Gauri-theanalyst/quick-insight-pulse/config"
	"github.com/Gauri-theanalyst/quick-insight-pulse/store"
)

type App struct {
	*store.Store
	*analytics.Engine
	*oauth.BearerServer
	config.Config
}
