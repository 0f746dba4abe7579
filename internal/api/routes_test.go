package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Jkweks/labelgen/internal/config"
	"github.com/Jkweks/labelgen/internal/database"
	"github.com/Jkweks/labelgen/internal/repository"
	"github.com/Jkweks/labelgen/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter 组装内存数据库之上的完整路由
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := config.Default()
	cfg.Uploads.Root = t.TempDir()

	templateRepo := repository.NewTemplateRepository(db)
	labelRepo := repository.NewLabelRepository(db)

	templateService := service.NewTemplateService(templateRepo, labelRepo)
	labelService := service.NewLabelService(labelRepo, templateRepo)
	printService := service.NewPrintService(labelRepo, cfg.Uploads.Root)

	controllers := Controllers{
		Template: NewTemplateController(templateService),
		Label:    NewLabelController(labelService),
		Print:    NewPrintController(printService),
		Upload:   NewUploadController(cfg.Uploads.Root),
	}
	return SetupRoutes(db, controllers, cfg)
}

// doJSON 发送 JSON 请求并返回响应记录器
func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// decodeData 解包统一响应中的 data 字段
func decodeData(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response struct {
		Code    int            `json:"code"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Equal(t, 0, response.Code)
	return response.Data
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestNoRouteReturnsJSON(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(router, http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")
}

// TestTemplateCRUD 测试模板增删改查全流程
func TestTemplateCRUD(t *testing.T) {
	router := newTestRouter(t)

	created := doJSON(router, http.MethodPost, "/api/v1/templates", gin.H{
		"name":           "Bench Stock",
		"image_position": "top",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	data := decodeData(t, created)
	id := uint(data["id"].(float64))
	assert.Equal(t, "top", data["image_position"])

	got := doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/templates/%d", id), nil)
	assert.Equal(t, http.StatusOK, got.Code)

	updated := doJSON(router, http.MethodPut, fmt.Sprintf("/api/v1/templates/%d", id), gin.H{
		"name":            "Bench Stock",
		"parts_per_label": 2,
	})
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Equal(t, float64(2), decodeData(t, updated)["parts_per_label"])

	deleted := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/templates/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	missing := doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/templates/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

// TestTemplateValidationErrors 测试非法模板请求返回 400
func TestTemplateValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(router, http.MethodPost, "/api/v1/templates", gin.H{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(router, http.MethodPost, "/api/v1/templates", gin.H{"name": "Classic Shelf"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(router, http.MethodGet, "/api/v1/templates/abc", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestFieldsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(router, http.MethodGet, "/api/v1/fields", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Code int `json:"code"`
		Data []struct {
			Key   string `json:"key"`
			Label string `json:"label"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Data, 13)
}

// TestLabelCRUDAndPrint 测试标签管理与打印端点
func TestLabelCRUDAndPrint(t *testing.T) {
	router := newTestRouter(t)

	template := doJSON(router, http.MethodPost, "/api/v1/templates", gin.H{"name": "Shelf"})
	require.Equal(t, http.StatusCreated, template.Code)
	templateID := uint(decodeData(t, template)["id"].(float64))

	created := doJSON(router, http.MethodPost, "/api/v1/labels", gin.H{
		"template_id":    templateID,
		"manufacturer":   "Acme Industries",
		"part_number":    "ACM-42-9000",
		"default_copies": 3,
	})
	require.Equal(t, http.StatusCreated, created.Code)
	labelID := uint(decodeData(t, created)["id"].(float64))

	list := doJSON(router, http.MethodGet, "/api/v1/labels", nil)
	assert.Equal(t, http.StatusOK, list.Code)

	printed := doJSON(router, http.MethodPost, "/api/v1/labels/print", gin.H{
		"items":           []gin.H{{"label_id": labelID}},
		"labels_per_page": 12,
	})
	require.Equal(t, http.StatusOK, printed.Code)
	assert.Equal(t, "application/pdf", printed.Header().Get("Content-Type"))
	assert.Contains(t, printed.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(printed.Body.Bytes(), []byte("%PDF-")))

	deleted := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/v1/labels/%d", labelID), nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
}

// TestTemplateLabels 测试按模板列出标签端点
func TestTemplateLabels(t *testing.T) {
	router := newTestRouter(t)

	template := doJSON(router, http.MethodPost, "/api/v1/templates", gin.H{"name": "Shelf"})
	require.Equal(t, http.StatusCreated, template.Code)
	templateID := uint(decodeData(t, template)["id"].(float64))

	created := doJSON(router, http.MethodPost, "/api/v1/labels", gin.H{
		"template_id":  templateID,
		"manufacturer": "Acme Industries",
		"part_number":  "ACM-42-9000",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	recorder := doJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/templates/%d/labels", templateID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Code int `json:"code"`
		Data []struct {
			PartNumber string `json:"part_number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "ACM-42-9000", response.Data[0].PartNumber)

	missing := doJSON(router, http.MethodGet, "/api/v1/templates/9999/labels", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

// TestRequestLogMiddleware 测试请求日志输出与级别控制
func TestRequestLogMiddleware(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	SetLoggerOutput(&buf)
	SetLoggerLevel(logrus.InfoLevel)
	defer SetLoggerOutput(os.Stdout)

	recorder := doJSON(router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, buf.String(), `"path":"/healthz"`)
	assert.Contains(t, buf.String(), `"method":"GET"`)

	// 提升级别后 2xx 请求不再记录
	buf.Reset()
	SetLoggerLevel(logrus.WarnLevel)
	defer SetLoggerLevel(logrus.InfoLevel)

	recorder = doJSON(router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, buf.String())
}

// TestPrintUnknownLabel 测试打印未知标签返回 404
func TestPrintUnknownLabel(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(router, http.MethodPost, "/api/v1/labels/print", gin.H{
		"items": []gin.H{{"label_id": 9999}},
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

// TestPrintEmptySelection 测试空选择仍返回 PDF 文档
func TestPrintEmptySelection(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(router, http.MethodPost, "/api/v1/labels/print", gin.H{
		"items": []gin.H{},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF-")))
}

// TestUpload 测试图片上传与扩展名白名单
func TestUpload(t *testing.T) {
	router := newTestRouter(t)

	upload := func(filename string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		part.Write([]byte("fake image bytes"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder
	}

	accepted := upload("part.png")
	require.Equal(t, http.StatusCreated, accepted.Code)
	data := decodeData(t, accepted)
	assert.Contains(t, data["url"], "/uploads/")

	rejected := upload("part.exe")
	assert.Equal(t, http.StatusBadRequest, rejected.Code)
}
