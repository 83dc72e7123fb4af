package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Gauri-theanalyst/quick-insight-pulse/app"
	"github.com/Gauri-theanalyst/quick-insight-pulse/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))
	root.Handle("/*", spaFileServer("public"))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/surveys/{id}", PublicGetSurvey(app))
	api.Post("/surveys/{id}/responses", PublicSubmitSurvey(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		// CRUD survey
		r.Post("/surveys", CreateSurvey(app))
		r.Get("/surveys", ListSurveys(app))
		r.Get("/surveys/{id}", GetSurveyById(app))
		r.Put("/surveys/{id}", UpdateSurvey(app))
		r.Patch("/surveys/{id}/active", SetSurveyActive(app))
		r.Delete("/surveys/{id}", DeleteSurvey(app))

		r.Get("/surveys/{id}/responses", GetSurveyResponses(app))
		r.Get("/surveys/{id}/analytics", GetSurveyAnalytics(app))
		r.Get("/surveys/{id}/export", ExportSurveyCSV(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

// spaFileServer serves static files, falling back to index.html for paths
// that do not match a file, so share links like /survey/{id} resolve to
// the single page app.
func spaFileServer(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, err := filepath.Abs(r.URL.Path)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		_, err = os.Stat(filepath.Join(dir, path))
		if os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}
