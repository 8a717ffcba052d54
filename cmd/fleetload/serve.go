package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"go.nownabe.dev/fleetloader"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve storage notifications over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := loadConfig().withFlags()

			l, _, err := c.load(ctx, pretty, jobFeedrate, jobTBNFe, jobMESysOil)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              c.HTTPAddr,
				Handler:           newRouter(l),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			log.Info().Str("addr", c.HTTPAddr).Msg("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

// handler is the part of fleetloader.Loader the router needs.
type handler interface {
	Handle(ctx context.Context, e fleetloader.Event) error
}

func newRouter(h handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var e fleetloader.Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil || e.Name == "" {
			http.Error(w, "invalid event", http.StatusBadRequest)
			return
		}

		log.Info().Str("request_id", middleware.GetReqID(r.Context())).Str("object", e.FullPath()).Msg("event received")
		if err := h.Handle(r.Context(), e); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
