package middleware

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"zai-console/config"
	"zai-console/internal/core"
	"zai-console/internal/database/fluentd/model"
	"zai-console/internal/database/fluentd/repository"
	"zai-console/internal/telemetry"
	"zai-console/utils/apikey"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

const redacted = "[REDACTED]"

// 不寫入 log 的 header
var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"x-api-key":     {},
}

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// LoggerHandler 記錄每個請求；金鑰一律遮罩後才進 log / trace / fluentd
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isAmbientPath(endpoint) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanLoggerMiddleware))

		ct := c.GetHeader("Content-Type")
		requestTime := requestStart(c)

		mediaType, _, _ := mime.ParseMediaType(ct)
		isBinary := isBinaryContent(mediaType)

		var bodyRaw string
		if !isBinary && c.Request.Body != nil && c.Request.ContentLength != 0 {
			// 讀完整 body 後回填，確保下游仍可讀取
			data, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(data))
			bodyRaw = toSafePreview(maskBodySecrets(data), 2000)
		} else if isBinary {
			bodyRaw = fmt.Sprintf("(binary %s, %d bytes)", mediaType, c.Request.ContentLength)
		}

		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		traceID := span.SpanContext().TraceID()
		spanID := span.SpanContext().SpanID()

		headerMap := redactHeaders(c)

		paramsMap := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			paramsMap[p.Key] = p.Value
		}

		meta := core.LoggerRequestMeta{
			Method:     method,
			Path:       path,
			FullPath:   endpoint,
			Query:      query,
			Body:       bodyRaw,
			Scheme:     c.Request.URL.Scheme,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headerMap,
			Params:     paramsMap,
		}
		m.trace.ApplyTraceAttributes(span, meta)

		logFields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Any("headers", headerMap),
		}
		if query != "" {
			logFields = append(logFields, zap.String("query", query))
		}
		if len(paramsMap) > 0 {
			logFields = append(logFields, zap.Any("params", paramsMap))
		}
		if bodyRaw != "" {
			logFields = append(logFields, zap.String("body", bodyRaw))
		}
		logFields = append(logFields, zap.String("spanId", fmt.Sprintf("%x", spanID[:])))
		logFields = append(logFields, zap.String("traceId", fmt.Sprintf("%x", traceID[:])))

		m.logger.Info("[Request] logging middleware message", logFields...)

		requestLog := model.RequestLog{
			RequestID: fmt.Sprintf("%x", traceID[:]),
			Method:    method,
			Path:      path,
			RequestTS: requestTime.UTC().Format("2006-01-02 15:04:05.999999 UTC"),
			Body:      bodyRaw,
			IPHash:    base64.RawStdEncoding.EncodeToString([]byte(c.ClientIP())),
			UserAgent: c.Request.UserAgent(),
			Version:   m.config.App.Version,
		}
		if err := m.fluentdRepository.LogRequest(ctx, requestLog); err != nil {
			m.logger.Debug("ship request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

// headers → map[string]string（lowercase key），敏感 header 只保留遮罩值
func redactHeaders(c *gin.Context) map[string]string {
	headerMap := make(map[string]string, len(c.Request.Header))
	for k, v := range c.Request.Header {
		lk := strings.ToLower(k)
		if _, ok := sensitiveHeaders[lk]; ok {
			if lk == "authorization" {
				headerMap[lk] = "Bearer " + apikey.MaskAPIKey(apikey.FromBearer(strings.Join(v, ",")))
				continue
			}
			headerMap[lk] = redacted
			continue
		}
		headerMap[lk] = strings.Join(v, ",")
	}
	return headerMap
}

// maskBodySecrets JSON body 中的 admin_key 改為遮罩值
func maskBodySecrets(data []byte) []byte {
	if !gjson.ValidBytes(data) {
		if bytes.Contains(data, []byte("admin_key")) {
			return []byte(redacted)
		}
		return data
	}
	key := gjson.GetBytes(data, "admin_key")
	if key.Type != gjson.String {
		return data
	}
	out, err := sjson.SetBytes(data, "admin_key", apikey.MaskAPIKey(key.String()))
	if err != nil {
		return []byte(redacted)
	}
	return out
}

// 僅對文字內容做安全預覽：UTF-8 直接截斷；非 UTF-8 以 Base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

// 是否為二進位內容（不讀 body）
func isBinaryContent(mediaType string) bool {
	return strings.HasPrefix(mediaType, "multipart/") ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "audio/") ||
		strings.HasPrefix(mediaType, "video/") ||
		mediaType == "application/octet-stream"
}
