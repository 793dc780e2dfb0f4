package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zai-console/config"
	"zai-console/internal/command"
	"zai-console/internal/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "zai-console/cmd/docs"
)

// Version 由 -ldflags "-X main.Version=..." 注入
var Version string

const shutdownTimeout = 5 * time.Second

// @title        zai-console API
// @version      1.0
// @description  Worker API 管理後台 BFF
// @host         localhost:3000
// @basePath     /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
// @description 請在欄位輸入 "Bearer {admin key}"
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "app",
		Short: "admin BFF for the Worker API",
		Run: func(cmd *cobra.Command, args []string) {
			if err := serve(conf); err != nil {
				panic(err)
			}
		},
	}
	rootCmd.SetOut(os.Stdout)
	registerFlags(rootCmd.PersistentFlags())
	cobra.OnInitialize(initConfig)
	command.Register(rootCmd, newCommand)
	return rootCmd
}

// serve 啟動 BFF，收到 SIGINT/SIGTERM 或 HTTP server 異常時關閉
func serve(conf *config.Configuration) error {
	if conf == nil {
		return fmt.Errorf("config is nil, check initConfig")
	}
	logger, err := log.NewLogger(conf)
	if err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	defer logger.Sync()

	app, cleanup, err := wireApp(conf, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("start app ...", zap.String("build", Version))
	if err := app.Run(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	case err := <-app.Errors():
		logger.Error("http server stopped", zap.Error(err))
	}

	logger.Info("shutdown app ...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.Stop(ctx)
}

// newCommand console 子命令各自建立 logger 與依賴
func newCommand() (*command.Command, func(), error) {
	logger, err := log.NewLogger(conf)
	if err != nil {
		return nil, nil, err
	}
	cmd, cleanup, err := wireCommand(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	return cmd, func() {
		cleanup()
		_ = logger.Sync()
	}, nil
}
