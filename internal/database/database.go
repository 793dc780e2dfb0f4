package database

import (
	"zai-console/internal/database/client"
	fluentdRepo "zai-console/internal/database/fluentd/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有外部寫入端的依賴（目前只有 Fluentd）
var ProviderSet = wire.NewSet(
	client.NewFluentdClient,
	fluentdRepo.ProviderSet,
)
