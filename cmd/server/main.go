package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/touka-study/touka-entry/internal/api"
	"github.com/touka-study/touka-entry/internal/db"
	"github.com/touka-study/touka-entry/internal/middleware"
	"github.com/touka-study/touka-entry/internal/recognition"
	"github.com/touka-study/touka-entry/internal/services"
	"github.com/touka-study/touka-entry/internal/source"
	"github.com/touka-study/touka-entry/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	addr := utils.SafeEnv("TOUKA_ADDR", ":8080")
	dbPath := utils.SafeEnv("TOUKA_DB", "touka.db")

	store, err := db.Open(dbPath)
	if err != nil {
		log.Fatalf("open settings store: %v", err)
	}
	defer store.Close()

	settings := services.NewSettingsService(store)
	form := services.NewFormService()
	records := services.NewRecordService()
	export := services.NewExportService(records)
	recognize := services.NewRecognitionService(
		recognition.NewTesseractEngine(utils.SafeEnv("TOUKA_TESSERACT_LANG", "jpn")),
		recognition.NewGeminiClient(utils.SafeEnv("TOUKA_GEMINI_ENDPOINT", "")),
		settings,
		form,
	)

	mux := http.NewServeMux()
	api.NewRouter(api.Config{
		Settings:  settings,
		Source:    source.NewManager(),
		Form:      form,
		Records:   records,
		Export:    export,
		Recognize: recognize,
	}).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"name":   "Touka Entry API",
			"locale": locale,
			"msg":    utils.T(locale, "health.ok"),
		})
	})

	// The entry UI is plain static files served by the same binary.
	if staticDir := utils.SafeEnv("TOUKA_STATIC_DIR", ""); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.SecureHeaders(middleware.CORS(middleware.NoStore(middleware.LocaleMiddleware(mux))))

	log.Printf("Touka entry server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
