package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tsingjyujing/langdetect/config"
	"github.com/tsingjyujing/langdetect/controller"
	"github.com/tsingjyujing/langdetect/detector"
	"github.com/tsingjyujing/langdetect/utils"
)

func readConfig(configFile string) (*viper.Viper, *config.Envelope) {
	viperInstance := viper.New()
	if configFile != "" {
		viperInstance.SetConfigFile(configFile)
	} else {
		viperInstance.SetConfigName("config")
		viperInstance.SetConfigType("yaml")
		viperInstance.AddConfigPath("/etc/langdetect/")
		viperInstance.AddConfigPath("$HOME/.langdetect")
		viperInstance.AddConfigPath("./config")
	}
	viperInstance.SetEnvPrefix("LANGDETECT")
	viperInstance.AutomaticEnv()
	// Set default values
	viperInstance.SetDefault("server.address", ":8080")
	viperInstance.SetDefault("profiles.dir", "./profiles")
	viperInstance.SetDefault("profiles.format", "json")
	viperInstance.SetDefault("detector.alpha", detector.DefaultAlpha)
	viperInstance.SetDefault("detector.max_text_length", detector.DefaultMaxTextLength)
	if err := viperInstance.ReadInConfig(); err != nil {
		logger.WithError(err).Warn("No config file loaded, using defaults and environment")
	} else {
		logger.Infof("Using config file: %s", viperInstance.ConfigFileUsed())
	}
	envelope, err := config.LoadConfigFromFile(viperInstance.ConfigFileUsed())
	if err != nil {
		logger.WithError(err).Fatal("Failed to parse configuration")
	}
	return viperInstance, envelope
}

// NewServer wires the HTTP routes of the detection service.
func NewServer(c *controller.Controller, tokens []string) *echo.Echo {
	echoServer := echo.New()
	echoServer.Use(echoprometheus.NewMiddleware("langdetect"))
	// Set routes
	echoServer.GET("/metrics", echoprometheus.NewHandler())
	echoServer.GET("/health", func(c *echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	echoServer.Use(middleware.CORS("*")) // Enable CORS for all origins

	// RESTful API routes
	apiGroup := echoServer.Group("/api/v1")
	apiGroup.Use(utils.RequestLogger())

	// Apply Bearer Token authentication if tokens are configured
	if len(tokens) > 0 {
		logger.Infof("Bearer token authentication enabled with %d token(s)", len(tokens))
		apiGroup.Use(utils.CreateBearerTokenMiddleware(tokens))
	} else {
		logger.Warn("Bearer token authentication disabled - no tokens configured")
	}

	apiGroup.POST("/detect", c.Detect)
	apiGroup.POST("/detect/batch", c.BatchDetect)
	apiGroup.GET("/languages", c.ListLanguages)
	return echoServer
}

func NewServerCommand() *cobra.Command {
	var configFile string
	serverCommand := &cobra.Command{
		Use:   "server",
		Short: "Starting detection server",
		Run: func(cmd *cobra.Command, args []string) {
			goCtx := cmd.Context()
			viperInstance, envelope := readConfig(configFile)

			store, err := openStore(goCtx,
				viperInstance.GetString("profiles.dir"),
				viperInstance.GetString("profiles.database"),
				viperInstance.GetString("profiles.format"),
			)
			if err != nil {
				logger.WithError(err).Fatal("Failed to open profile store")
			}
			settings := detectorSettings{
				alpha:         viperInstance.GetFloat64("detector.alpha"),
				maxTextLength: viperInstance.GetInt("detector.max_text_length"),
				verbose:       envelope.Detector.Verbose,
			}
			factory, err := loadFactory(goCtx, store, settings, envelope.Detector.Prior)
			if err != nil {
				logger.WithError(err).Fatal("Failed to load language profiles")
			}
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close profile store")
			}

			c, err := controller.NewController(factory, prometheus.DefaultRegisterer)
			if err != nil {
				logger.WithError(err).Fatal("Failed to create controller")
			}
			httpServer := &http.Server{
				Addr:              viperInstance.GetString("server.address"),
				Handler:           NewServer(c, viperInstance.GetStringSlice("server.tokens")),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in a goroutine
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				logger.Infof("Starting server on %s", httpServer.Addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.WithError(err).Error("Server start error")
					stop()
				}
			}()

			// Wait for interrupt signal to gracefully shutdown the server with a timeout
			<-ctx.Done()
			stop()
			logger.Info("Shutting down server gracefully, press Ctrl+C again to force")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Server forced to shutdown")
			}
			logger.Info("Server stopped gracefully")
		},
	}
	serverCommand.Flags().StringVar(&configFile, "config", "", "Path to config file")
	return serverCommand
}
