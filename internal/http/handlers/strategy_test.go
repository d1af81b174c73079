package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/investfolio/investfolio-backend/internal/domain"
	domainagg "github.com/investfolio/investfolio-backend/internal/domain/aggregates"
	"github.com/investfolio/investfolio-backend/internal/services"
)

type stubStrategyService struct {
	listResult    []*types.Strategy
	listErr       error
	ownerResult   []*types.StrategyWithIndicators
	ownerErr      error
	createResult  domainagg.CreateStrategyResult
	createErr     error
	deleteResult  domainagg.DeleteStrategyResult
	deleteErr     error
	lastCreateIn  domainagg.CreateStrategyInput
	lastDeletedID uuid.UUID
}

var _ services.StrategyService = (*stubStrategyService)(nil)

func (s *stubStrategyService) ListAll(ctx context.Context) ([]*types.Strategy, error) {
	return s.listResult, s.listErr
}

func (s *stubStrategyService) GetByOwner(ctx context.Context, owner string) ([]*types.StrategyWithIndicators, error) {
	return s.ownerResult, s.ownerErr
}

func (s *stubStrategyService) Create(ctx context.Context, in domainagg.CreateStrategyInput) (domainagg.CreateStrategyResult, error) {
	s.lastCreateIn = in
	return s.createResult, s.createErr
}

func (s *stubStrategyService) Delete(ctx context.Context, id uuid.UUID) (domainagg.DeleteStrategyResult, error) {
	s.lastDeletedID = id
	return s.deleteResult, s.deleteErr
}

func newStrategyTestRouter(svc services.StrategyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStrategyHandler(svc)
	r := gin.New()
	r.GET("/strategies", h.List)
	r.GET("/strategies/:owner", h.GetByOwner)
	r.POST("/strategies", h.Create)
	r.DELETE("/strategies/:id", h.Delete)
	return r
}

func TestStrategyCreateResponses(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name        string
		result      domainagg.CreateStrategyResult
		body        string
		wantMessage string
	}{
		{
			name:        "with indicators",
			result:      domainagg.CreateStrategyResult{StrategyID: id, IndicatorsCreated: 2},
			body:        `{"owner":"alice","title":"swing","indicators":[{"name":"rsi"},{"name":"macd"}]}`,
			wantMessage: "strategy and indicators created",
		},
		{
			name:        "without indicators",
			result:      domainagg.CreateStrategyResult{StrategyID: id, IndicatorsCreated: 0},
			body:        `{"owner":"alice","title":"swing"}`,
			wantMessage: "strategy created without indicators",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubStrategyService{createResult: tc.result}
			r := newStrategyTestRouter(svc)

			req := httptest.NewRequest(http.MethodPost, "/strategies", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusCreated {
				t.Fatalf("status: got %d, want 201 (%s)", rec.Code, rec.Body.String())
			}
			var payload map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload["message"] != tc.wantMessage {
				t.Fatalf("message: got %q, want %q", payload["message"], tc.wantMessage)
			}
			if payload["id"] != id.String() {
				t.Fatalf("id: got %v", payload["id"])
			}
		})
	}
}

func TestStrategyCreateValidatesBody(t *testing.T) {
	r := newStrategyTestRouter(&stubStrategyService{})

	// title is required
	req := httptest.NewRequest(http.MethodPost, "/strategies", strings.NewReader(`{"owner":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestStrategyCreateConflict(t *testing.T) {
	svc := &stubStrategyService{
		createErr: domainagg.NewError(domainagg.CodeConflict, "op", "already exists", nil),
	}
	r := newStrategyTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/strategies", strings.NewReader(`{"owner":"alice","title":"swing"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want 409", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"conflict"`) {
		t.Fatalf("envelope missing conflict code: %s", rec.Body.String())
	}
}

func TestStrategyGetByOwnerNotFound(t *testing.T) {
	svc := &stubStrategyService{
		ownerErr: domainagg.NewError(domainagg.CodeNotFound, "op", "nothing registered", nil),
	}
	r := newStrategyTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/strategies/nobody", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestStrategyDelete(t *testing.T) {
	id := uuid.New()
	svc := &stubStrategyService{
		deleteResult: domainagg.DeleteStrategyResult{StrategyID: id, IndicatorsDeleted: 3},
	}
	r := newStrategyTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/strategies/"+id.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if svc.lastDeletedID != id {
		t.Fatalf("service called with %s, want %s", svc.lastDeletedID, id)
	}
}

func TestStrategyDeleteBadID(t *testing.T) {
	r := newStrategyTestRouter(&stubStrategyService{})

	req := httptest.NewRequest(http.MethodDelete, "/strategies/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestStrategyDeleteNotFound(t *testing.T) {
	svc := &stubStrategyService{
		deleteErr: domainagg.NewError(domainagg.CodeNotFound, "op", "strategy not found", nil),
	}
	r := newStrategyTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/strategies/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}
