package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/auth"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/blob"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/catalog"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/clients"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/config"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/export"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/foodselection"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealgen"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/mealplans"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/nutrition"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage/memory"
	"github.com/Wolfsquad9/nutrition-coach-bot-sub000/internal/storage/postgres"
)

// appStorage is implemented by both the memory and Postgres backends.
type appStorage interface {
	storage.Storage
	GetFoodSelectionsStorage() storage.FoodSelectionsStorage
	GetNutritionTargetsStorage() storage.NutritionTargetsStorage
	GetMealPlansStorage() storage.MealPlansStorage
}

// Server is the HTTP API.
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        appStorage
	exportStore    blob.Store
	catalog        *catalog.Catalog
	authMiddleware *auth.Middleware
}

// New builds the server with storage and export store chosen from cfg.
func New(cfg *config.Config) *Server {
	s := &Server{
		config:  cfg,
		mux:     http.NewServeMux(),
		catalog: catalog.Default(),
	}

	s.initStorage()
	s.initExportStore()

	s.routes()
	return s
}

// newWithStorage is used by tests to inject backends.
func newWithStorage(cfg *config.Config, st appStorage, exportStore blob.Store) *Server {
	s := &Server{
		config:      cfg,
		mux:         http.NewServeMux(),
		storage:     st,
		exportStore: exportStore,
		catalog:     catalog.Default(),
	}
	s.routes()
	return s
}

// initStorage picks Postgres when DATABASE_URL is set and reachable,
// memory otherwise.
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("INFO storage: using in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("INFO storage: connecting to PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("WARN storage: PostgreSQL connection failed: %v", err)
		log.Println("WARN storage: fallback to in-memory storage")
		s.storage = memory.New()
		return
	}
	log.Println("INFO storage: PostgreSQL connected")
	s.storage = pgStorage
}

func (s *Server) initExportStore() {
	log.Printf("INFO blob: initializing export store (BLOB_MODE=%s)", s.config.Blob.Mode)
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: failed to initialize export store: %v", err)
	}
	log.Printf("INFO blob: export mode: %s", mode)
	s.exportStore = store
}

func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Clients API
	clientsHandler := clients.NewHandler(clients.NewService(s.storage))
	s.mux.HandleFunc("GET /v1/clients", clientsHandler.HandleList)
	s.mux.HandleFunc("POST /v1/clients", clientsHandler.HandleCreate)
	s.mux.HandleFunc("GET /v1/clients/{id}", clientsHandler.HandleGet)
	s.mux.HandleFunc("PATCH /v1/clients/{id}", clientsHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /v1/clients/{id}", clientsHandler.HandleDelete)

	// Food selection API
	selectionService := foodselection.NewService(
		s.storage,
		s.storage.GetFoodSelectionsStorage(),
		s.catalog,
		s.config.Plan.MaxSelectedFoods,
	)
	selectionHandler := foodselection.NewHandler(selectionService)

	// GET /v1/food/catalog - reference ingredients with derived roles
	s.mux.HandleFunc("GET /v1/food/catalog", selectionHandler.HandleCatalog)
	s.mux.HandleFunc("GET /v1/food/selection", selectionHandler.HandleGetSelection)
	s.mux.HandleFunc("PUT /v1/food/selection", selectionHandler.HandlePutSelection)

	// Nutrition Targets API
	nutritionService := nutrition.NewService(s.storage, s.storage.GetNutritionTargetsStorage())
	nutritionHandler := nutrition.NewHandler(nutritionService)
	s.mux.HandleFunc("GET /v1/nutrition/targets", nutritionHandler.HandleGetTargets)
	s.mux.HandleFunc("PUT /v1/nutrition/targets", nutritionHandler.HandleUpsertTargets)

	// Meal Plans API
	mealPlansService := mealplans.NewService(
		s.storage,
		s.storage.GetMealPlansStorage(),
		selectionService,
		nutritionService,
		mealgen.NewGenerator(s.catalog),
		export.NewService(s.exportStore, s.config.Blob.S3.PresignTTLSeconds, log.Default()),
		s.config.Plan,
		log.Default(),
	)
	mealPlansHandler := mealplans.NewHandler(mealPlansService)

	// POST /v1/meal/plan/generate - runs the engine, own per-coach budget
	s.mux.Handle("POST /v1/meal/plan/generate", generateRateLimit(s.config.Plan, http.HandlerFunc(mealPlansHandler.HandleGenerate)))
	s.mux.HandleFunc("GET /v1/meal/plan", mealPlansHandler.HandleGet)
	s.mux.HandleFunc("DELETE /v1/meal/plan", mealPlansHandler.HandleDelete)
	s.mux.HandleFunc("GET /v1/meal/plan/grocery", mealPlansHandler.HandleGrocery)
	s.mux.HandleFunc("GET /v1/meal/plan/versions", mealPlansHandler.HandleVersions)
	s.mux.HandleFunc("GET /v1/meal/plan/export", mealPlansHandler.HandleExport)
	s.mux.HandleFunc("GET /v1/meal/today", mealPlansHandler.HandleGetToday)
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler returns the router wrapped in the middleware chain
// (outermost first): CORS → Rate Limit → Auth → Router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthEnabled() {
		handler = s.authMiddleware.Wrap(handler)
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start listens on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("INFO server: listening on http://localhost%s", addr)
	log.Printf("INFO server: health check http://localhost%s/healthz", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close releases storage resources.
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
