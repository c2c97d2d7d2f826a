package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload form and the matching API over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "listen address (default "+server.DefaultAddress+")")
	serveCmd.Flags().Int64("max-upload-bytes", 0, "largest accepted resume upload in bytes")

	viper.BindPFlag("serve.address", serveCmd.Flags().Lookup("address"))
	viper.BindPFlag("serve.max-upload-bytes", serveCmd.Flags().Lookup("max-upload-bytes"))
}

func serve() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-screener server", zap.String("version", version))

	assembler, err := newAssembler(config, logger)
	if err != nil {
		logger.Fatal("building the screener", zap.Error(err))
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(config.serverConfig(), assembler, logger).Run(ctx); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}
