package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rokovo/widgetd/internal/events"
	"github.com/rokovo/widgetd/internal/product"
	"github.com/rokovo/widgetd/internal/render"
	"github.com/rokovo/widgetd/internal/session"
)

type sendMessageRequest struct {
	Content string `json:"content"`
}

// messageResponse is the rendering boundary: sanitized text plus product
// cards, never the raw assistant markdown.
type messageResponse struct {
	ID       string            `json:"id"`
	Role     session.Role      `json:"role"`
	Text     string            `json:"text"`
	Products []product.Product `json:"products,omitempty"`
}

type createSessionResponse struct {
	SessionID string          `json:"sessionId"`
	Greeting  messageResponse `json:"greeting"`
}

type historyResponse struct {
	SessionID string            `json:"sessionId"`
	State     string            `json:"state"`
	Messages  []messageResponse `json:"messages"`
}

func renderMessage(msg session.Message) messageResponse {
	p := render.Project(msg)
	return messageResponse{
		ID:       msg.ID,
		Role:     msg.Role,
		Text:     p.Text,
		Products: p.Products,
	}
}

// createSession handles POST /api/v1/widget/sessions.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	conv, err := s.sessions.Create(r.Context())
	if err != nil {
		s.logger.Error("session creation failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to connect, please try again")
		return
	}

	history := conv.Messages()
	greeting := history[len(history)-1]

	if s.store != nil {
		if err := s.store.CreateSession(r.Context(), conv.SessionID()); err != nil {
			s.logger.Error("persist session failed", "session_id", conv.SessionID(), "error", err)
		} else if err := s.store.AddMessage(r.Context(), conv.SessionID(), greeting.ID, string(greeting.Role), greeting.Content); err != nil {
			s.logger.Error("persist greeting failed", "session_id", conv.SessionID(), "error", err)
		}
	}
	if s.events != nil {
		if err := s.events.Publish(events.SubjectSessionCreated, events.SessionCreated{SessionID: conv.SessionID()}); err != nil {
			s.logger.Error("publish session created failed", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: conv.SessionID(),
		Greeting:  renderMessage(greeting),
	})
}

// sendMessage handles POST /api/v1/widget/sessions/{sessionID}/messages.
func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	conv, ok := s.sessions.Get(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	userMsg, reply, ok := conv.Send(r.Context(), req.Content)
	if !ok {
		// Blank input or an exchange already in flight.
		writeError(w, http.StatusConflict, "message not accepted")
		return
	}

	if s.store != nil {
		for _, m := range []session.Message{userMsg, reply} {
			if err := s.store.AddMessage(r.Context(), sessionID, m.ID, string(m.Role), m.Content); err != nil {
				s.logger.Error("persist message failed", "session_id", sessionID, "error", err)
			}
		}
	}

	resp := renderMessage(reply)

	if s.events != nil {
		if err := s.events.Publish(events.SubjectMessageExchanged, events.MessageExchanged{
			SessionID: sessionID,
			MessageID: reply.ID,
			Products:  len(resp.Products),
		}); err != nil {
			s.logger.Error("publish message exchanged failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// listMessages handles GET /api/v1/widget/sessions/{sessionID}/messages and
// returns the rendered history.
func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	conv, ok := s.sessions.Get(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	history := conv.Messages()
	rendered := make([]messageResponse, len(history))
	for i, m := range history {
		rendered[i] = renderMessage(m)
	}

	writeJSON(w, http.StatusOK, historyResponse{
		SessionID: sessionID,
		State:     conv.State().String(),
		Messages:  rendered,
	})
}

// transcript handles GET /api/v1/widget/sessions/{sessionID}/transcript,
// serving the persisted transcript rather than in-memory state.
func (s *Server) transcript(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	entries, err := s.store.ListMessages(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("transcript read failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "transcript read failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"entries":   entries,
	})
}
