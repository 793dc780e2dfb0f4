package main

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"zai-console/config"
	"zai-console/internal/cron"
	"zai-console/internal/service"
	"zai-console/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RuntimeInfo struct {
	Env       string        `json:"env"`
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	GoVersion string        `json:"go_version"`
	WorkerURL string        `json:"worker_url"`
	StartAt   time.Time     `json:"start_at"`
	Uptime    time.Duration `json:"uptime"`
}

type App struct {
	conf          *config.Configuration
	logger        *zap.Logger
	cronSrv       *cron.Cron
	Router        *gin.Engine
	server        *http.Server
	healthService *service.HealthService
	probe         *service.UpstreamProbe

	startAt time.Time   // 程式啟動時間（非環境變數）
	appInfo RuntimeInfo // 版本/環境快照（來源 = conf.App）
	errs    chan error
}

func newHttpServer(
	conf *config.Configuration,
	router *gin.Engine,
) *http.Server {
	return &http.Server{
		Addr:              conf.App.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// newHttpClient Worker API 專用；WORKER__TIMEOUT 為 0 時不設逾時
func newHttpClient(conf *config.Configuration, trace *telemetry.Trace) *http.Client {
	return &http.Client{
		Timeout:   conf.Worker.RequestTimeout(),
		Transport: trace.WrapTransport(nil),
	}
}

func newApp(
	conf *config.Configuration,
	logger *zap.Logger,
	router *gin.Engine,
	server *http.Server,
	healthService *service.HealthService,
	probe *service.UpstreamProbe,
	workerClient *service.WorkerClient,
	cronSrv *cron.Cron,
) *App {
	startAt := time.Now()
	return &App{
		conf:          conf,
		logger:        logger,
		Router:        router,
		server:        server,
		healthService: healthService,
		probe:         probe,
		cronSrv:       cronSrv,
		startAt:       startAt,
		errs:          make(chan error, 1),
		appInfo: RuntimeInfo{
			Env:       conf.App.Env,
			Name:      conf.App.Name,
			Version:   conf.App.Version,
			GoVersion: runtime.Version(),
			WorkerURL: workerClient.BaseURL(),
			StartAt:   startAt,
		},
	}
}

func (a *App) Run() error {
	// 1) 啟動時寫入版本/環境資訊
	info := a.appInfo
	a.logger.Info("app runtime info",
		zap.String("env", info.Env),
		zap.String("name", info.Name),
		zap.String("version", info.Version),
		zap.String("go_version", info.GoVersion),
		zap.String("worker_url", info.WorkerURL),
		zap.Time("start_at", info.StartAt),
	)

	// 2) /version：回傳 JSON（含 uptime）
	if a.Router != nil {
		a.Router.GET("/version", func(c *gin.Context) {
			resp := a.appInfo
			resp.Uptime = time.Since(a.startAt)
			c.JSON(http.StatusOK, resp)
		})
	}

	// 3) 先探測一次 upstream，再交給 cron
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a.probe.Check(ctx)
	cancel()

	if err := a.cronSrv.Run(); err != nil {
		return err
	}
	a.logger.Info("cron server started")

	// 4) HTTP server
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errs <- err
		}
	}()
	a.healthService.SetReady(true)

	return nil
}

// Errors HTTP server 非預期結束時送出
func (a *App) Errors() <-chan error {
	return a.errs
}

func (a *App) Close(ctx context.Context) error {
	if a.healthService != nil {
		a.healthService.SetReady(false)
	}
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
		a.logger.Info("http server has been stop")
	}
	if a.cronSrv == nil {
		return nil
	}

	if err := a.cronSrv.Stop(ctx); err != nil {
		return err
	}
	a.logger.Info("cron server has been stop")

	return nil
}

func (a *App) Stop(ctx context.Context) error {
	return a.Close(ctx)
}
