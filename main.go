package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Spraytower/internal/auth"
	"Spraytower/internal/calc/premium/batch"
	"Spraytower/internal/calc/premium/importer"
	"Spraytower/internal/calc/premium/optimize"
	"Spraytower/internal/calc/premium/recommend"
	"Spraytower/internal/calc/props"
	"Spraytower/internal/calc/report"
	"Spraytower/internal/calc/spraytower"
	"Spraytower/internal/config"
	"Spraytower/internal/history"
	"Spraytower/internal/repo"

	"github.com/gorilla/mux"
	"github.com/lmittmann/tint"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB, cfg config.Config) {
	userRepo := repo.NewPostgresUserDB(db)
	authEnv := &auth.Authenv{JWTkey: cfg.TokenKey, Repo: userRepo}
	recorder := &history.Recorder{Store: userRepo}

	calc := spraytower.New(props.Default()).WithDefaults(spraytower.Settings{
		UnitSystem: cfg.UnitSystem,
		Framework:  cfg.Framework,
	})

	limiter := auth.NewIPRateLimiter(1, 3)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	towerH := spraytower.NewHandler(calc, recorder)
	optimizeH := &optimize.Handler{Eval: calc, MaxIterations: cfg.MaxIterations, Saver: recorder}
	reportH := &report.Handler{Calculator: calc, MaxIterations: cfg.MaxIterations}
	batchH := &batch.Handler{Calc: calc}
	importH := &importer.Handler{Calc: calc}
	nozzleH := &recommend.Handler{Lib: calc.Library()}
	historyH := &history.Handler{Store: userRepo}

	secureApi.HandleFunc("/tools/spraytower/calc", towerH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/spraytower/optimize", optimizeH.Optimize).Methods("POST")
	secureApi.HandleFunc("/tools/spraytower/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/tools-premium/spraytower/batch", batchH.SprayTower).Methods("POST")
	secureApi.HandleFunc("/tools-premium/spraytower/import", importH.SprayTower).Methods("POST")
	secureApi.HandleFunc("/tools-premium/nozzle/recommend", nozzleH.Nozzle).Methods("POST")

	secureApi.HandleFunc("/designs", historyH.List).Methods("GET")
	secureApi.HandleFunc("/designs/{id:[0-9]+}", historyH.Get).Methods("GET")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: "15:04:05",
	})))
	if err := cfg.RequireServer(); err != nil {
		slog.Error("configuration", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := auth.InitDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := repo.NewPostgresUserDB(db).Migrate(ctx); err != nil {
		slog.Error("database migration", "err", err)
		os.Exit(1)
	}

	mux := mux.NewRouter()
	HandleList(mux, db, cfg)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("starting server", "addr", cfg.Addr, "tls", cfg.TLSCert != "")
		var err error
		if cfg.TLSCert != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "err", err)
	}
	wg.Wait()
	slog.Info("server stopped")
}
