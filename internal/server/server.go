// Package server is the web frontend: a search form, the rewritten report
// pages and the sequence-retrieval endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/zdk123/sequenceserver/internal/blast"
	"github.com/zdk123/sequenceserver/internal/config"
	"github.com/zdk123/sequenceserver/internal/database"
	"github.com/zdk123/sequenceserver/internal/report"
	"github.com/zdk123/sequenceserver/internal/store"
)

type webServer struct {
	cfg       config.File
	databases []database.Database
	runner    blast.Runner
	fetcher   blast.Fetcher
	store     *store.Store
	// resolver holds the hyperlink strategy tiers; installations may swap
	// in their own override functions ahead of the built-in link.
	resolver report.Resolver
}

func Run(ctx context.Context, cfg config.File) error {
	dbs, err := database.Scan(cfg.DatabaseDir)
	if err != nil {
		return err
	}
	if len(dbs) == 0 {
		return fmt.Errorf("no BLAST databases found under %q", cfg.DatabaseDir)
	}

	st, err := store.Open(filepath.Join(cfg.DataDir, "sequenceserver.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	s := &webServer{
		cfg:       cfg,
		databases: dbs,
		runner:    blast.ExecRunner{BinDir: cfg.Bin},
		fetcher:   blast.ExecFetcher{BinDir: cfg.Bin},
		store:     st,
		resolver:  report.Resolver{DefaultLink: report.GetSequenceLink},
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           buildRouter(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopMDNS := startMDNSAdvertiser(cfg.Addr)
	defer stopMDNS()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("sequenceserver started on %s with %d databases", cfg.Addr, len(dbs))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		log.Println("sequenceserver stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		log.Println("sequenceserver stopped")
		return nil
	}
}
