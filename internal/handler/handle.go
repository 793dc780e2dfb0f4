package handler

import (
	"io"

	cErr "zai-console/internal/pkg/error"
	"zai-console/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	NewAdminHandler,
	NewAdminUserHandler,
	NewAdminAccountHandler,
	NewAdminConfigHandler,
	NewHealthHandler,
)

// abortWithError 401 原樣回傳，其餘一律 500，原始錯誤留給 Recovery 記錄
func abortWithError(c *gin.Context, err error) {
	if cErr.IsUnauthorized(err) {
		response.AbortWithError(c, err)
		return
	}
	response.AbortWithError(c, cErr.InternalServer("server error").Wrap(err))
}

func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	return io.ReadAll(c.Request.Body)
}
