package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chrisdamba/takeaway/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the restaurant list over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		server, err := web.NewServer(a.screen, log, web.WithAllowedOrigins(cfg.Server.AllowedOrigins))
		if err != nil {
			return err
		}
		srv := server.NewHTTPServer(cfg.Server.Addr)
		done := runGracefulShutdown(srv)

		log.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		<-done
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	cobra.CheckErr(viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr")))
}

func runGracefulShutdown(srv *http.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
		close(done)
	}()

	return done
}
