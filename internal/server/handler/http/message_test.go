package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/passvault/passvault/internal/models"
	handler "github.com/passvault/passvault/internal/server/handler/http"
	"github.com/passvault/passvault/internal/service"
)

// fakeInbox records calls and returns preconfigured results.
type fakeInbox struct {
	pending []models.Message
	count   int
	err     error

	receivedSender  *models.User
	receivedTarget  string
	receivedGroup   string
	receivedMessage string
}

func (f *fakeInbox) SendTrustedUserRequest(ctx context.Context, sender *models.User, targetUsername string) error {
	f.receivedSender = sender
	f.receivedTarget = targetUsername
	return f.err
}

func (f *fakeInbox) SendGroupInvitation(ctx context.Context, sender *models.User, targetUsername, groupName string) error {
	f.receivedSender = sender
	f.receivedTarget = targetUsername
	f.receivedGroup = groupName
	return f.err
}

func (f *fakeInbox) ListPending(userID int64) []models.Message {
	return f.pending
}

func (f *fakeInbox) PendingCount(userID int64) int {
	return f.count
}

func (f *fakeInbox) Accept(userID int64, messageID string) error {
	f.receivedMessage = messageID
	return f.err
}

func (f *fakeInbox) Reject(userID int64, messageID string) error {
	f.receivedMessage = messageID
	return f.err
}

func serveMessages(h *handler.MessageHandler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/messages", h.List)
	r.Get("/api/messages/count", h.Count)
	r.Post("/api/messages/trusted-user-request", h.TrustedUserRequest)
	r.Post("/api/messages/group-invitation", h.GroupInvitation)
	r.Post("/api/messages/{id}/accept", h.Accept)
	r.Post("/api/messages/{id}/reject", h.Reject)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMessageList(t *testing.T) {
	fake := &fakeInbox{pending: []models.Message{
		{ID: "m1", Type: models.TrustedUserRequest, From: "bob", Status: models.StatusPending},
	}}
	h := &handler.MessageHandler{Inbox: fake}

	w := serveMessages(h, newAuthedRequest(http.MethodGet, "/api/messages", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}

	var msgs []models.Message
	if err := json.NewDecoder(w.Body).Decode(&msgs); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "m1" || msgs[0].From != "bob" {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestMessageCount(t *testing.T) {
	h := &handler.MessageHandler{Inbox: &fakeInbox{count: 3}}

	w := serveMessages(h, newAuthedRequest(http.MethodGet, "/api/messages/count", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}

	var resp map[string]int
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if resp["count"] != 3 {
		t.Errorf("count = %d; want 3", resp["count"])
	}
}

func TestTrustedUserRequest_Success(t *testing.T) {
	fake := &fakeInbox{}
	h := &handler.MessageHandler{Inbox: fake}

	b, _ := json.Marshal(handler.TrustedUserRequestBody{TargetUsername: "bob"})
	w := serveMessages(h, newAuthedRequest(http.MethodPost, "/api/messages/trusted-user-request", b))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedSender == nil || fake.receivedSender.Username != "alice" {
		t.Errorf("sender = %+v; want alice", fake.receivedSender)
	}
	if fake.receivedTarget != "bob" {
		t.Errorf("target = %q; want bob", fake.receivedTarget)
	}
}

func TestTrustedUserRequest_Self(t *testing.T) {
	fake := &fakeInbox{err: service.ErrSelfRequest}
	h := &handler.MessageHandler{Inbox: fake}

	b, _ := json.Marshal(handler.TrustedUserRequestBody{TargetUsername: "alice"})
	w := serveMessages(h, newAuthedRequest(http.MethodPost, "/api/messages/trusted-user-request", b))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
}

func TestTrustedUserRequest_UnknownTarget(t *testing.T) {
	fake := &fakeInbox{err: service.ErrUserNotFound}
	h := &handler.MessageHandler{Inbox: fake}

	b, _ := json.Marshal(handler.TrustedUserRequestBody{TargetUsername: "ghost"})
	w := serveMessages(h, newAuthedRequest(http.MethodPost, "/api/messages/trusted-user-request", b))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
}

func TestTrustedUserRequest_MissingTarget(t *testing.T) {
	h := &handler.MessageHandler{Inbox: &fakeInbox{}}

	b, _ := json.Marshal(handler.TrustedUserRequestBody{})
	w := serveMessages(h, newAuthedRequest(http.MethodPost, "/api/messages/trusted-user-request", b))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGroupInvitation_Success(t *testing.T) {
	fake := &fakeInbox{}
	h := &handler.MessageHandler{Inbox: fake}

	b, _ := json.Marshal(handler.GroupInvitationBody{TargetUsername: "bob", GroupName: "eng"})
	w := serveMessages(h, newAuthedRequest(http.MethodPost, "/api/messages/group-invitation", b))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedTarget != "bob" || fake.receivedGroup != "eng" {
		t.Errorf("service received (%q, %q); want (bob, eng)", fake.receivedTarget, fake.receivedGroup)
	}
}

func TestAcceptMessage_Success(t *testing.T) {
	fake := &fakeInbox{}
	h := &handler.MessageHandler{Inbox: fake}

	w := serveMessages(h, newAuthedRequest(http.MethodPost, "/api/messages/m1/accept", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	if fake.receivedMessage != "m1" {
		t.Errorf("message id = %q; want m1", fake.receivedMessage)
	}
}

func TestAcceptMessage_AlreadyProcessed(t *testing.T) {
	fake := &fakeInbox{err: service.ErrMessageProcessed}
	h := &handler.MessageHandler{Inbox: fake}

	w := serveMessages(h, newAuthedRequest(http.MethodPost, "/api/messages/m1/accept", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRejectMessage_NotFound(t *testing.T) {
	fake := &fakeInbox{err: service.ErrMessageNotFound}
	h := &handler.MessageHandler{Inbox: fake}

	w := serveMessages(h, newAuthedRequest(http.MethodPost, "/api/messages/nope/reject", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
}
