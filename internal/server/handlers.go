package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gpport/internal/config"
	"gpport/internal/gphoto2"
	"gpport/internal/port"
)

// PortHandler はポートAPIのハンドラ
type PortHandler struct {
	config  *config.Config
	manager port.Manager
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *PortHandler) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetStatus はシステム状態取得エンドポイントの実装
func (h *PortHandler) GetStatus(c *gin.Context) {
	response := StatusResponse{
		Status: "running",
		Server: ServerInfo{
			Host: h.config.Server.Host,
			Port: h.config.Server.Port,
		},
		Backend:   h.config.Discovery.Backend,
		Scan:      toScanInfo(h.manager.Snapshot()),
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetPorts はポート一覧取得エンドポイントの実装
func (h *PortHandler) GetPorts(c *gin.Context) {
	managed := h.manager.GetPorts()
	ports := make([]PortInfo, 0, len(managed))
	for _, p := range managed {
		ports = append(ports, toPortInfo(p))
	}

	c.JSON(http.StatusOK, PortsResponse{
		Ports: ports,
		Scan:  toScanInfo(h.manager.Snapshot()),
	})
}

// GetPort はポート詳細取得エンドポイントの実装
func (h *PortHandler) GetPort(c *gin.Context) {
	p, found := h.manager.GetPort(c.Param("id"))
	if !found {
		writeError(c, http.StatusNotFound, "port_not_found", "指定されたポートが見つかりません", nil)
		return
	}

	c.JSON(http.StatusOK, toPortInfo(*p))
}

// Rescan は再スキャンエンドポイントの実装
func (h *PortHandler) Rescan(c *gin.Context) {
	snapshot, err := h.manager.Rescan(c.Request.Context())
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, toScanInfo(snapshot))
}

// Lookup はパスまたは名前によるポート検索エンドポイントの実装
func (h *PortHandler) Lookup(c *gin.Context) {
	path, hasPath := c.GetQuery("path")
	name, hasName := c.GetQuery("name")

	if hasPath == hasName {
		writeError(c, http.StatusBadRequest, "invalid_query", "path または name のどちらか一方を指定してください", nil)
		return
	}

	var (
		p   *port.Port
		err error
	)
	if hasPath {
		p, err = h.manager.LookupPath(c.Request.Context(), path)
	} else {
		p, err = h.manager.LookupName(c.Request.Context(), name)
	}
	if err != nil {
		h.writeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPortInfo(*p))
}

// GetResult はステータスコードの説明取得エンドポイントの実装
func (h *PortHandler) GetResult(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_code", "ステータスコードは整数で指定してください", nil)
		return
	}

	result := gphoto2.Result(code)
	c.JSON(http.StatusOK, ResultResponse{
		Code:        code,
		Description: h.manager.Describe(result),
		OK:          result.IsOK(),
	})
}

// ヘルパー関数

// writeLookupError は検索・スキャンのエラーをレスポンスに変換する
func (h *PortHandler) writeLookupError(c *gin.Context, err error) {
	if errors.Is(err, port.ErrNotFound) {
		writeError(c, http.StatusNotFound, "port_not_found", "一致するポートが見つかりません", stringPtr(err.Error()))
		return
	}

	var resErr *gphoto2.ResultError
	if errors.As(err, &resErr) {
		details := h.manager.Describe(resErr.Code)
		writeError(c, http.StatusBadGateway, "native_error", err.Error(), &details)
		return
	}

	writeError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
}

// writeError は共通形式のエラーレスポンスを書き込む
func writeError(c *gin.Context, status int, code, message string, details *string) {
	c.JSON(status, ErrorResponse{
		Error:     code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	})
}

// stringPtr は文字列のポインタを返すヘルパー関数
func stringPtr(s string) *string {
	return &s
}
