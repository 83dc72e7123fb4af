package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/Gauri-theanalyst/quick-insight-pulse/analytics"
	"github.com/Gauri-theanalyst/quick-insight-pulse/app"
	"github.com/Gauri-theanalyst/quick-insight-pulse/config"
	"github.com/Gauri-theanalyst/quick-insight-pulse/database"
	"github.com/Gauri-theanalyst/quick-insight-pulse/httpx"
	"github.com/Gauri-theanalyst/quick-insight-pulse/log"
	"github.com/Gauri-theanalyst/quick-insight-pulse/routes"
	"github.com/Gauri-theanalyst/quick-insight-pulse/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	st := store.New(db)

	app := app.App{
		Store:        st,
		Engine:       analytics.New(st),
		BearerServer: httpx.NewBearerServer(cfg),
		Config:       cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
