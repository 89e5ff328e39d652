package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loopcontext/msgcode"
	"github.com/loopcontext/msgcode/msghttp"
	"github.com/loopcontext/msgcode/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Serve exposes the catalog:

  GET <prefix>/messages.js         client-side script
  GET <prefix>/messages.msgpack    msgpack bundle
  GET <prefix>/messages/{code}     expanded message (?bind=a&bind=b)

With --watch, resources are reloaded when they change on disk.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("address", "", "listening address (default localhost:8080)")
	serveCmd.Flags().String("prefix", "", "route prefix")
	serveCmd.Flags().Bool("watch", false, "reload resources when they change")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.cfg.Serve
	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Address, _ = flags.GetString("address")
	}
	if flags.Changed("prefix") {
		cfg.Prefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := app.loadCatalog(ctx)
	if err != nil {
		return err
	}
	defer msgcode.Close(c)

	log := app.logger()

	server := &http.Server{
		Addr:              cfg.Address,
		Handler:           msghttp.NewRouter(c, msghttp.RouterCfg{Logger: log, Prefix: cfg.Prefix}),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(log),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", zap.String("address", cfg.Address),
			zap.Int("messages", c.Len()))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.Watch {
		w, err := watch.NewWatcher(watch.WatcherCfg{
			Logger:   log,
			Catalog:  c,
			Loader:   app.loader(),
			Locators: app.cfg.Resources,
			Mode:     app.cfg.Mode,
		})
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	return g.Wait()
}
