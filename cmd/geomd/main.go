package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"voxelgeom.dev/internal/catalogs"
	"voxelgeom.dev/internal/persistence/indexdb"
	"voxelgeom.dev/internal/transport/ws"
	"voxelgeom.dev/internal/tuning"
)

func main() {
	var (
		cfgPath   = flag.String("config", "./configs/geomd.yaml", "path to geomd.yaml")
		addr      = flag.String("addr", "", "http listen address (overrides config)")
		configDir = flag.String("configs", "", "config directory (overrides config)")
		disableDB = flag.Bool("disable_db", false, "skip the definition index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[geomd] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := tuning.Load(*cfgPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load config: %v", err)
		}
		logger.Printf("config not found (%s); using defaults", *cfgPath)
		cfg = tuning.Defaults()
	}
	if strings.TrimSpace(*addr) != "" {
		cfg.ListenAddr = *addr
	}
	if strings.TrimSpace(*configDir) != "" {
		cfg.ConfigDir = *configDir
	}

	schemaPath := filepath.Join(cfg.SchemasDir, "nodedef.schema.json")
	if err := catalogs.ValidateSchema(cfg.ConfigDir, schemaPath); err != nil {
		logger.Fatalf("validate content: %v", err)
	}
	cat, err := catalogs.Load(cfg.ConfigDir)
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}
	logger.Printf("catalog: %d nodes, palette %s", len(cat.Palette), cat.PaletteDigest[:12])

	if !*disableDB {
		idx, err := indexdb.OpenSQLite(cfg.IndexDB)
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		if err := idx.IndexCatalog(context.Background(), cat); err != nil {
			logger.Fatalf("index catalog: %v", err)
		}
		_ = idx.Close()
		logger.Printf("indexed catalog into %s", cfg.IndexDB)
	}

	srv, err := ws.NewServer(cat, cfg.SchemasDir, logger)
	if err != nil {
		logger.Fatalf("ws server: %v", err)
	}
	srv.ReadTimeout = time.Duration(cfg.ReadTimeoutSec) * time.Second
	srv.WriteTimeout = time.Duration(cfg.WriteTimeoutSec) * time.Second

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", srv.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	go func() {
		logger.Printf("listening on %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	logger.Println("bye")
}
