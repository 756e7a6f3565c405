package main

import (
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/arturpietrzak/customer-service-llm/internal/api"
	"github.com/arturpietrzak/customer-service-llm/internal/api/middleware"
	"github.com/arturpietrzak/customer-service-llm/internal/config"
	"github.com/arturpietrzak/customer-service-llm/internal/setup"
	"github.com/arturpietrzak/customer-service-llm/internal/setup/logger"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve persisted benchmark results over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(logLevel)
		ctx := cmd.Context()

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		deps, err := setup.Wire(ctx, cfg, setup.LoadEnv(), "", &log)
		if err != nil {
			return fmt.Errorf("failed to wire dependencies: %w", err)
		}

		handler := api.NewHandler(deps.Reader, &log)
		container := restful.NewContainer()
		container.Filter(middleware.Logger)
		container.Filter(middleware.RecoverPanic)
		api.RegisterRoutes(container, handler)

		corsHandler := cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		})

		addr := fmt.Sprintf(":%d", servePort)
		server := &http.Server{
			Addr:    addr,
			Handler: corsHandler.Handler(container),
		}

		go func() {
			<-ctx.Done()
			_ = server.Close()
		}()

		log.Info().Str("address", addr).Msg("Starting benchmark results API")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 18080, "HTTP port to listen on")
	rootCmd.AddCommand(serveCmd)
}
