package service

import "sync/atomic"

type HealthService struct {
	live     atomic.Bool
	ready    atomic.Bool
	upstream atomic.Bool
}

func NewHealthService() *HealthService {
	s := &HealthService{}
	s.live.Store(true)
	s.ready.Store(false)   // 啟動完成後再打開
	s.upstream.Store(true) // 第一次探測前先視為可用
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) SetUpstreamReachable(v bool) {
	s.upstream.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

// IsReady 已啟動且 Worker API 可連線
func (s *HealthService) IsReady() bool {
	return s.ready.Load() && s.upstream.Load()
}

func (s *HealthService) IsUpstreamReachable() bool {
	return s.upstream.Load()
}
