package routes

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	companysvc "github.com/stockwatchhq/stockwatch-backend/internal/companies"
	"github.com/stockwatchhq/stockwatch-backend/pkg/config"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeCompanyService struct{}

func (fakeCompanyService) CreateCompany(context.Context, companysvc.CreateCompanyInput) (*companysvc.CompanyDTO, error) {
	return &companysvc.CompanyDTO{ID: uuid.New()}, nil
}

func (fakeCompanyService) GetCompany(_ context.Context, id uuid.UUID) (*companysvc.CompanyDTO, error) {
	return &companysvc.CompanyDTO{ID: id}, nil
}

func testRouter(dbP fakePinger) http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(cfg, logg, dbP, nil, fakeCompanyService{}, nil, nil, nil, nil, nil, nil)
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter(fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := rec.Header().Get("X-StockWatch-Env"); got != "test" {
		t.Fatalf("expected env header 'test' got %q", got)
	}
}

func TestRouterHealthReady(t *testing.T) {
	router := testRouter(fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestRouterHealthReady_dbDown(t *testing.T) {
	router := testRouter(fakePinger{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestRouterWiresCompanyRoutes(t *testing.T) {
	router := testRouter(fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/companies/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterUnwiredServiceFailsClosed(t *testing.T) {
	router := testRouter(fakePinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
