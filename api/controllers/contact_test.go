package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/internal/contact"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

type stubContactService struct {
	submitted *contact.SubmitMessageInput
}

func (s *stubContactService) Submit(ctx context.Context, input contact.SubmitMessageInput) (*contact.MessageDTO, error) {
	s.submitted = &input
	return &contact.MessageDTO{}, nil
}

func (s *stubContactService) GetMessage(ctx context.Context, id uuid.UUID) (*contact.MessageDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
}

func (s *stubContactService) ListMessages(ctx context.Context, filter contact.ListFilter) (*contact.MessageListResult, error) {
	return &contact.MessageListResult{}, nil
}

func (s *stubContactService) MarkRead(ctx context.Context, id uuid.UUID) (*contact.MessageDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
}

func (s *stubContactService) MarkReplied(ctx context.Context, id, repliedBy uuid.UUID) (*contact.MessageDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
}

func (s *stubContactService) DeleteMessage(ctx context.Context, id uuid.UUID) error { return nil }

func TestContactSubmitCapturesRequestMeta(t *testing.T) {
	svc := &stubContactService{}
	handler := ContactSubmit(svc, nil)

	body := strings.NewReader(`{"name":"Ana","email":"ana@example.com","message":"hello there"}`)
	r := httptest.NewRequest("POST", "/contact", body)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	r.Header.Set("User-Agent", "integration-test/1.0")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", w.Code, w.Body.String())
	}
	if svc.submitted == nil {
		t.Fatal("expected submit call")
	}
	if svc.submitted.IPAddress == nil || *svc.submitted.IPAddress != "203.0.113.9" {
		t.Fatalf("expected first forwarded ip, got %+v", svc.submitted.IPAddress)
	}
	if svc.submitted.UserAgent == nil || *svc.submitted.UserAgent != "integration-test/1.0" {
		t.Fatalf("expected user agent, got %+v", svc.submitted.UserAgent)
	}
}

func TestContactSubmitValidatesEmail(t *testing.T) {
	svc := &stubContactService{}
	handler := ContactSubmit(svc, nil)

	body := strings.NewReader(`{"name":"Ana","email":"nope","message":"hello"}`)
	r := httptest.NewRequest("POST", "/contact", body)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if svc.submitted != nil {
		t.Fatal("service should not be called on invalid payload")
	}
}
