package cron

import (
	"context"

	"zai-console/config"
	"zai-console/internal/service"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron)

type Cron struct {
	conf   *config.Configuration
	logger *zap.Logger
	server *cron.Cron
	probe  *service.UpstreamProbe
}

// NewCron .
func NewCron(conf *config.Configuration, logger *zap.Logger, probe *service.UpstreamProbe) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	return &Cron{
		conf:   conf,
		logger: logger,
		server: server,
		probe:  probe,
	}
}

func (c *Cron) Run() error {
	spec := c.conf.Worker.ResolveProbeSpec()
	if _, err := c.server.AddFunc(spec, c.probe.Run); err != nil {
		return err
	}
	c.logger.Info("upstream probe scheduled", zap.String("spec", spec))

	c.server.Start()
	return nil
}

func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
