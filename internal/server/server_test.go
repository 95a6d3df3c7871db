package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/iwvelando/installment-plan/pkg/plans"
	"github.com/iwvelando/installment-plan/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)

func newTestHandler(maxUploadSize int64) http.Handler {
	h := &handler{
		logger:        zap.NewNop(),
		planner:       plans.NewPlanner(nil),
		maxUploadSize: maxUploadSize,
		version:       "test",
		now:           func() time.Time { return fixedNow },
	}
	return newRouter(h, []string{"*"})
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func uploadRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(field, "plans.yaml")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/plans/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, " 1.4.0 ")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "1.4.0", resp["version"])
}

func TestHandleVersionDefaultsToDev(t *testing.T) {
	handler := NewHandler(nil, nil, "")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Contains(t, rr.Body.String(), `"dev"`)
}

func TestHandleModels(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(constants.DefaultMaxUploadSizeBytes).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/models", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp []plans.ModelInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, len(plans.Models()))
	assert.Equal(t, plans.ModelDeferredBalance, resp[0].Model)
	assert.Equal(t, 5.0, resp[2].Parameters["discountPercent"])
}

func TestHandleValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     int
		violations int
	}{
		{
			name:   "Valid card plan",
			body:   `{"name":"cartao","model":"cartao-parcial","total":5000,"installmentCount":6}`,
			status: http.StatusOK,
		},
		{
			name:       "Card plan with too many installments",
			body:       `{"name":"cartao","model":"cartao-parcial","total":5000,"installmentCount":24}`,
			status:     http.StatusOK,
			violations: 1,
		},
		{
			name:       "Deferred plan too close to the event",
			body:       `{"model":"indaia","total":8000,"eventDate":"2025-02-10"}`,
			status:     http.StatusOK,
			violations: 1,
		},
		{
			name:   "Unknown model",
			body:   `{"model":"layaway","total":8000}`,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "Unknown field",
			body:   `{"model":"a-vista","totl":8000}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "Malformed JSON",
			body:   `{"model":`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, newTestHandler(constants.DefaultMaxUploadSizeBytes), "/api/plans/validate", tt.body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			if tt.status != http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"error"`)
				return
			}

			var resp planResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotNil(t, resp.Violations)
			assert.Len(t, resp.Violations, tt.violations)
			assert.Nil(t, resp.Result)
		})
	}
}

func TestHandleCalculateDeferredBalance(t *testing.T) {
	body := `{"name":"casamento","model":"indaia","total":10000,"eventDate":"2025-04-15"}`
	rr := postJSON(t, newTestHandler(constants.DefaultMaxUploadSizeBytes), "/api/plans/calculate", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Name       string                 `json:"name"`
		Model      string                 `json:"model"`
		Violations []string               `json:"violations"`
		Result     map[string]interface{} `json:"result"`
		Summary    string                 `json:"summary"`
		Schedule   []schedule.Payment     `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "casamento", resp.Name)
	assert.Equal(t, "indaia", resp.Model)
	assert.Empty(t, resp.Violations)
	assert.Equal(t, 10201.0, resp.Result["valorTotalFinanciado"])
	assert.Equal(t, 2040.2, resp.Result["valorEntrada"])
	assert.Equal(t, 3060.3, resp.Result["valorSaldoFinal"])
	assert.Equal(t, true, resp.Result["temSaldoFinal"])
	assert.Equal(t, 201.0, resp.Result["jurosAplicados"])
	assert.True(t, strings.HasPrefix(resp.Summary, "Entrada: R$ 2.040,20 • 2x de R$ 2.550,25"), resp.Summary)

	require.Len(t, resp.Schedule, 4)
	require.NotNil(t, resp.Schedule[1].DueDate)
	assert.Equal(t, "2025-02-15", resp.Schedule[1].DueDate.Format(constants.DateLayout))
	assert.Equal(t, schedule.KindBalance, resp.Schedule[3].Kind)
}

func TestHandleCalculateRefusesInvalidInput(t *testing.T) {
	body := `{"name":"cartao","model":"cartao-parcial","total":5000,"installmentCount":24}`
	rr := postJSON(t, newTestHandler(constants.DefaultMaxUploadSizeBytes), "/api/plans/calculate", body)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "between 1 and 18")
}

func TestHandleCalculateRejectsOversizedBody(t *testing.T) {
	body := fmt.Sprintf(`{"name":"%s","model":"a-vista","total":1000}`, strings.Repeat("x", 256))
	rr := postJSON(t, newTestHandler(64), "/api/plans/calculate", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusForError(fmt.Errorf("%w: total", plans.ErrInvalidInput)))
	assert.Equal(t, http.StatusInternalServerError, statusForError(fmt.Errorf("compounding: %w", plans.ErrComputationOverflow)))
	assert.Equal(t, http.StatusInternalServerError, statusForError(fmt.Errorf("unexpected")))
}

func TestHandleUploadSuccess(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "config", "testdata", "plans.yaml"))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	newTestHandler(constants.DefaultMaxUploadSizeBytes).ServeHTTP(rr, uploadRequest(t, "file", data))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Outcomes, 6)
	require.Len(t, resp.Summaries, 6)
	assert.Empty(t, resp.Warnings)
	for i, outcome := range resp.Outcomes {
		require.NotNil(t, outcome.Result, outcome.Name)
		assert.NotEmpty(t, resp.Summaries[i])
	}
	assert.Equal(t, "casamento", resp.Outcomes[0].Name)
	assert.Equal(t, 950.0, resp.Outcomes[2].Result.TotalFinanced)
	assert.True(t, strings.HasPrefix(resp.CSV, "name,model,total,"))
	assert.Contains(t, resp.ResultYAML, "valorTotalFinanciado: 10201")
	assert.NotEmpty(t, resp.Duration)
}

func TestHandleUploadReportsWarningsAndFailures(t *testing.T) {
	data := []byte(`referenceDate: "2025-01-15"
plans:
  - name: cartao
    model: cartao-parcial
    total: 5000
    installmentCount: 30
  - name: cartao
    model: a-vista
    total: 1000
`)

	rr := httptest.NewRecorder()
	newTestHandler(constants.DefaultMaxUploadSizeBytes).ServeHTTP(rr, uploadRequest(t, "file", data))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Outcomes, 2)
	assert.Contains(t, resp.Warnings, "Plan 'cartao' is defined more than once")
	assert.Nil(t, resp.Outcomes[0].Result)
	assert.Contains(t, resp.Outcomes[0].Error, "between 1 and 18")
	assert.Empty(t, resp.Summaries[0])
	assert.NotNil(t, resp.Outcomes[1].Result)
}

func TestHandleUploadErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.Handler
		request func(t *testing.T) *http.Request
		status  int
	}{
		{
			name:    "Missing file field",
			handler: newTestHandler(constants.DefaultMaxUploadSizeBytes),
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "document", []byte("plans: []"))
			},
			status: http.StatusBadRequest,
		},
		{
			name:    "Malformed YAML",
			handler: newTestHandler(constants.DefaultMaxUploadSizeBytes),
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", []byte("plans: [\n  - name: x\n"))
			},
			status: http.StatusBadRequest,
		},
		{
			name:    "Unparseable date",
			handler: newTestHandler(constants.DefaultMaxUploadSizeBytes),
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", []byte("plans:\n  - name: x\n    model: indaia\n    total: 100\n    eventDate: soon\n"))
			},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:    "Upload too large",
			handler: newTestHandler(128),
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", bytes.Repeat([]byte("#"), 1024))
			},
			status: http.StatusRequestEntityTooLarge,
		},
		{
			name:    "Not multipart",
			handler: newTestHandler(constants.DefaultMaxUploadSizeBytes),
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/plans/upload", strings.NewReader("plans: []"))
			},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.handler.ServeHTTP(rr, tt.request(t))
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestRoutesRejectWrongMethod(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(constants.DefaultMaxUploadSizeBytes).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/plans/calculate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/plans/calculate", nil)
	req.Header.Set("Origin", "https://vendas.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := httptest.NewRecorder()
	newTestHandler(constants.DefaultMaxUploadSizeBytes).ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
