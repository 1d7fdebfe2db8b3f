package computing

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagrangedao/go-machine-matcher/common"
	"github.com/lagrangedao/go-machine-matcher/internal/matcher"
	"github.com/lagrangedao/go-machine-matcher/internal/models"
)

type testResponse struct {
	Status    string          `json:"status"`
	Code      int             `json:"code"`
	RequestId string          `json:"request_id"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, err := matcher.New(common.DefaultMachineTypes())
	require.NoError(t, err)

	r := gin.New()
	NewMatcherService(m).RegisterRoutes(r.Group("/api/v1/matcher"))
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSelectMachineHandler(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doRequest(t, r, http.MethodPost, "/api/v1/matcher/select",
		`{"cpu_cores": 6, "ram_gib": 20, "accelerator_type": "NVIDIA_TESLA_T4", "accelerator_count": 8}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp.RequestId)

	var data SelectMachineResp
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, models.Selection{
		MachineName: "n1-standard-8", CPUCores: 8, RAMGiB: 30,
		AcceleratorType: common.NvidiaTeslaT4, AcceleratorCount: 4,
	}, data.Selection)
	require.Len(t, data.Warnings, 1)
	assert.Equal(t, models.InsufficientAcceleratorCount, data.Warnings[0].Kind)
}

func TestSelectMachineHandlerNoWarnings(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doRequest(t, r, http.MethodPost, "/api/v1/matcher/select", `{"cpu_cores": 2, "ram_gib": 8}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"warnings":[]`)
}

func TestSelectMachineHandlerErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "broken json", body: `{"cpu_cores":`, status: http.StatusBadRequest},
		{name: "half accelerator", body: `{"cpu_cores": 2, "ram_gib": 8, "accelerator_type": "NVIDIA_TESLA_T4"}`, status: http.StatusBadRequest},
		{name: "zero cpu", body: `{"cpu_cores": 0, "ram_gib": 8}`, status: http.StatusBadRequest},
		{name: "unsupported accelerator", body: `{"cpu_cores": 64, "ram_gib": 200, "accelerator_type": "NVIDIA_TESLA_K80", "accelerator_count": 1}`, status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doRequest(t, r, http.MethodPost, "/api/v1/matcher/select", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestSelectMachineHandlerUnsupportedPayload(t *testing.T) {
	r := newTestRouter(t)

	_, resp := doRequest(t, r, http.MethodPost, "/api/v1/matcher/select",
		`{"cpu_cores": 64, "ram_gib": 200, "accelerator_type": "NVIDIA_TESLA_K80", "accelerator_count": 1}`)

	var data UnsupportedAcceleratorResp
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "n1-standard-64", data.Machine)
	assert.Equal(t, []string{common.NvidiaTeslaT4, common.NvidiaTeslaV100, common.NvidiaTeslaP4}, data.Supported)
}

func TestListCatalogHandler(t *testing.T) {
	r := newTestRouter(t)

	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/matcher/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)

	var catalog []models.CatalogEntry
	require.NoError(t, json.Unmarshal(resp.Data, &catalog))
	assert.Len(t, catalog, len(common.DefaultMachineTypes()))
	assert.Equal(t, "n1-standard-4", catalog[0].Name)
}
