package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/internal/pages"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/types"
)

type stubPagesService struct {
	created *pages.CreatePageInput
	page    *pages.PageDTO
	err     error
}

func (s *stubPagesService) CreatePage(ctx context.Context, input pages.CreatePageInput) (*pages.PageDTO, error) {
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *stubPagesService) GetPage(ctx context.Context, id uuid.UUID) (*pages.PageDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *stubPagesService) GetPageBySlug(ctx context.Context, slug string) (*pages.PageDTO, error) {
	return s.page, s.err
}

func (s *stubPagesService) ListPages(ctx context.Context, filter pages.ListFilter) (*pages.PageListResult, error) {
	return &pages.PageListResult{}, s.err
}

func (s *stubPagesService) UpdatePage(ctx context.Context, id uuid.UUID, input pages.UpdatePageInput) (*pages.PageDTO, error) {
	return s.page, s.err
}

func (s *stubPagesService) DeletePage(ctx context.Context, id uuid.UUID) error { return s.err }

func TestPageCreateReturns201(t *testing.T) {
	svc := &stubPagesService{page: &pages.PageDTO{Title: "About"}}
	handler := PageCreate(svc, nil)

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"About","status":"published"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	if svc.created == nil || svc.created.Title != "About" {
		t.Fatalf("expected create input, got %+v", svc.created)
	}
	if svc.created.Status == nil || string(*svc.created.Status) != "published" {
		t.Fatalf("expected parsed status, got %+v", svc.created.Status)
	}
}

func TestPageCreateRejectsInvalidStatus(t *testing.T) {
	svc := &stubPagesService{}
	handler := PageCreate(svc, nil)

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"About","status":"bogus"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if svc.created != nil {
		t.Fatal("service should not be called on invalid status")
	}
}

func TestPageCreateRejectsMissingTitle(t *testing.T) {
	handler := PageCreate(&stubPagesService{}, nil)

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"slug":"about"}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
}

func TestPageGetRejectsMalformedID(t *testing.T) {
	handler := PageGet(&stubPagesService{}, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "not-a-uuid")
	r := httptest.NewRequest("GET", "/not-a-uuid", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestPageGetMapsNotFound(t *testing.T) {
	svc := &stubPagesService{err: pkgerrors.New(pkgerrors.CodeNotFound, "page not found")}
	handler := PageGet(svc, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", uuid.NewString())
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
