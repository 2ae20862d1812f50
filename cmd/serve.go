package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/Vasu1712/scenecast/internal/api/assets"
	"github.com/Vasu1712/scenecast/internal/api/campaigns"
	"github.com/Vasu1712/scenecast/internal/api/scenes"
	"github.com/Vasu1712/scenecast/internal/catalog"
	"github.com/Vasu1712/scenecast/internal/config"
	"github.com/Vasu1712/scenecast/internal/layout"
	"github.com/Vasu1712/scenecast/internal/logger"
	"github.com/Vasu1712/scenecast/internal/middleware"
	"github.com/Vasu1712/scenecast/internal/stage"
	"github.com/Vasu1712/scenecast/internal/storage/file"
	"github.com/Vasu1712/scenecast/internal/storage/memory"
	"github.com/Vasu1712/scenecast/internal/storage/postgres"
	"github.com/Vasu1712/scenecast/internal/storage/valkey"
	"github.com/Vasu1712/scenecast/internal/ws"
)

const (
	portRetryDelay  = 250 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

func serve(ctx context.Context, flagPort string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	port, explicit := resolvePort(flagPort, cfg.Port, log)

	persister, closePersister, err := openPersister(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePersister()

	for _, dir := range []string{"characters", "backgrounds", "tracks/audio", "tracks/video"} {
		if err := os.MkdirAll(filepath.Join(cfg.UploadsDir, filepath.FromSlash(dir)), 0o755); err != nil {
			return fmt.Errorf("create uploads dir: %w", err)
		}
	}

	layouts := layout.Default()
	store, err := catalog.Open(ctx, persister, layouts.All(), log)
	if err != nil {
		return err
	}

	hub := ws.NewHub(log)
	st := stage.New(store, layouts, hub, log)
	store.OnChange(func(snap *catalog.Snapshot) {
		hub.Publish(stage.EventLibraryUpdate, snap.View())
		st.CatalogChanged(snap)
	})

	router := newRouter(cfg, st, store, hub, log)
	handler := middleware.RequestLogger(log)(middleware.CORS(cfg.AllowedOrigin)(router))

	ln, err := listen(ctx, port, explicit, cfg.MaxPortRetries, log)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		log.Info("scenecast listening", "url", fmt.Sprintf("http://localhost:%d", ln.Addr().(*net.TCPAddr).Port))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openPersister(ctx context.Context, cfg config.Config) (catalog.Persister, func(), error) {
	switch cfg.LibraryBackend {
	case config.BackendMemory:
		return memory.NewLibraryStore(nil), func() {}, nil
	case config.BackendValkey:
		s, err := valkey.NewLibraryStore(ctx, cfg.ValkeyAddr, cfg.ValkeyKey)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendPostgres:
		s, err := postgres.NewLibraryStore(ctx, cfg.PostgresDSN, cfg.PostgresKey)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := file.NewLibraryStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

func newRouter(cfg config.Config, st *stage.Stage, store *catalog.Store, hub *ws.Hub, log *logger.Logger) *mux.Router {
	r := mux.NewRouter()

	scenes.RegisterSceneRoutes(r, &scenes.SceneHandler{
		Stage:   st,
		Catalog: store,
		Hub:     hub,
		Upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin(cfg.AllowedOrigin),
		},
		Log: log.With("component", "scenes"),
	})
	assets.RegisterAssetRoutes(r, &assets.AssetHandler{
		Store:      store,
		UploadsDir: cfg.UploadsDir,
		Log:        log.With("component", "assets"),
	})
	campaigns.RegisterCampaignRoutes(r, &campaigns.CampaignHandler{
		Store: store,
		Log:   log.With("component", "campaigns"),
	})

	page := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(cfg.PublicDir, name))
		}
	}
	r.HandleFunc("/viewer", page("index.html")).Methods(http.MethodGet)
	r.HandleFunc("/admin", page("admin.html")).Methods(http.MethodGet)
	r.HandleFunc("/admin/assets", page("admin-assets.html")).Methods(http.MethodGet)
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.PublicDir)))
	return r
}

func checkOrigin(allowed string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return allowed == "*" || origin == "" || origin == allowed
	}
}

// resolvePort applies --port, then PORT, then the default. Invalid values are
// skipped with a warning. explicit is true when either source supplied a port.
func resolvePort(flagValue, envValue string, log *logger.Logger) (port int, explicit bool) {
	for _, candidate := range []struct{ source, value string }{
		{"--port", flagValue},
		{"PORT", envValue},
	} {
		p, err := config.ParsePort(candidate.value)
		if err != nil {
			log.Warn("ignoring invalid port", "source", candidate.source, "error", err)
			continue
		}
		if p != 0 {
			return p, true
		}
	}
	return config.DefaultPort, false
}

// listen binds port. When the port was not explicitly requested and is busy it
// tries the following ports, up to maxRetries more.
func listen(ctx context.Context, port int, explicit bool, maxRetries int, log *logger.Logger) (net.Listener, error) {
	for attempt := 0; ; attempt++ {
		addr := fmt.Sprintf(":%d", port+attempt)
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			return ln, nil
		}
		if !errors.Is(err, syscall.EADDRINUSE) || explicit || attempt >= maxRetries {
			return nil, fmt.Errorf("listen on %s: %w", addr, err)
		}
		log.Warn("port in use, trying the next one", "port", port+attempt, "next", port+attempt+1)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(portRetryDelay):
		}
	}
}
