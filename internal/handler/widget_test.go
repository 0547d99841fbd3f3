package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vivekraina7/Windows-Error/internal/assistant"
	"github.com/vivekraina7/Windows-Error/internal/chat"
	"github.com/vivekraina7/Windows-Error/internal/model"
	"github.com/vivekraina7/Windows-Error/internal/service"
)

// scriptedSender answers every chat request with a fixed response.
type scriptedSender struct {
	resp model.ChatResponse
}

func (s *scriptedSender) Send(ctx context.Context, conversationID, message string) (*model.ChatResponse, error) {
	resp := s.resp
	return &resp, nil
}

func newWidgetRouter(sender chat.Sender) *chi.Mux {
	h := NewWidgetHandler(sender, 5*time.Millisecond, nil)

	r := chi.NewRouter()
	r.Route("/api/v1/widget", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Snapshot)
			r.Delete("/", h.Close)
			r.Post("/messages", h.SubmitMessage)
			r.Get("/export", h.Export)
			r.Post("/escalate", h.Escalate)
			r.Delete("/history", h.ClearHistory)
		})
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createWidget(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/widget", createWidgetRequest{
		ErrorCode: "0x0000007B",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp createWidgetResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.ConversationID)
	return resp.ConversationID
}

func TestWidgetCreateGeneratesConversationID(t *testing.T) {
	router := newWidgetRouter(&scriptedSender{})
	id := createWidget(t, router)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

func TestWidgetCreateConflict(t *testing.T) {
	router := newWidgetRouter(&scriptedSender{})
	id := createWidget(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/widget", createWidgetRequest{
		ConversationID: id,
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestWidgetUnknownSession(t *testing.T) {
	router := newWidgetRouter(&scriptedSender{})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/widget/"+uuid.Must(uuid.NewV7()).String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWidgetSubmitMessage(t *testing.T) {
	router := newWidgetRouter(&scriptedSender{resp: model.ChatResponse{
		Response: "Try updating your drivers.",
	}})
	id := createWidget(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/widget/"+id+"/messages",
		submitMessageRequest{Message: "my PC crashed"})
	require.Equal(t, http.StatusOK, rec.Code)

	var snap SurfaceSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.Len(t, snap.Messages, 2)
	require.Equal(t, model.RoleUser, snap.Messages[0].Role)
	require.Equal(t, model.RoleAssistant, snap.Messages[1].Role)
	require.Contains(t, snap.Messages[1].HTML, "Try updating your drivers.")
	require.False(t, snap.Typing)
}

func TestWidgetEscalationAppearsInSnapshot(t *testing.T) {
	router := newWidgetRouter(&scriptedSender{resp: model.ChatResponse{
		Response:         "Connecting you now.",
		Escalate:         true,
		EscalationReason: "user_request",
	}})
	id := createWidget(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/widget/"+id+"/messages",
		submitMessageRequest{Message: "human please"})
	require.Equal(t, http.StatusOK, rec.Code)

	// The hand-off fires after the pacing delay; poll the snapshot.
	require.Eventually(t, func() bool {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/widget/"+id, nil)
		var snap SurfaceSnapshot
		if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
			return false
		}
		return snap.Handoff == "user_request"
	}, time.Second, 10*time.Millisecond)
}

func TestWidgetExport(t *testing.T) {
	router := newWidgetRouter(&scriptedSender{resp: model.ChatResponse{Response: "answer"}})
	id := createWidget(t, router)

	doJSON(t, router, http.MethodPost, "/api/v1/widget/"+id+"/messages",
		submitMessageRequest{Message: "question"})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/widget/"+id+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "attachment; filename=chat-history-"+id+".json",
		rec.Header().Get("Content-Disposition"))

	var export model.HistoryExport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&export))
	require.Equal(t, id, export.ConversationID)
	require.Equal(t, "0x0000007B", export.ErrorCode)
	require.Len(t, export.Messages, 2)
	require.False(t, export.Timestamp.IsZero())
}

func TestWidgetClearHistory(t *testing.T) {
	router := newWidgetRouter(&scriptedSender{resp: model.ChatResponse{Response: "answer"}})
	id := createWidget(t, router)

	doJSON(t, router, http.MethodPost, "/api/v1/widget/"+id+"/messages",
		submitMessageRequest{Message: "question"})

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/widget/"+id+"/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap SurfaceSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.Empty(t, snap.Messages)
}

func TestWidgetClose(t *testing.T) {
	router := newWidgetRouter(&scriptedSender{})
	id := createWidget(t, router)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/widget/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/widget/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/widget/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

// TestWidgetAgainstChatEndpoint runs the widget session against a real chat
// endpoint served over HTTP, with the no-provider assistant behind it.
func TestWidgetAgainstChatEndpoint(t *testing.T) {
	registry := service.NewRegistry(nil)
	asst := assistant.New(nil, "", nil)
	chatHandler := NewChatHandler(registry, asst, nil)

	backend := httptest.NewServer(http.HandlerFunc(chatHandler.Chat))
	defer backend.Close()

	conv := registry.Create(context.Background(), "0x0000007B")

	client := chat.NewClient(backend.URL, time.Second)
	router := newWidgetRouter(client)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/widget", createWidgetRequest{
		ConversationID: conv.ID,
		ErrorCode:      conv.ErrorCode,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/widget/"+conv.ID+"/messages",
		submitMessageRequest{Message: "what does this error mean?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var snap SurfaceSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	require.Len(t, snap.Messages, 2)

	// No provider configured: the endpoint escalates with ai_unavailable
	// and the widget surfaces the hand-off after its pacing delay.
	require.Eventually(t, func() bool {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/widget/"+conv.ID, nil)
		var snap SurfaceSnapshot
		if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
			return false
		}
		return snap.Handoff == "ai_unavailable" &&
			len(snap.Messages) == 3
	}, time.Second, 10*time.Millisecond)
}
