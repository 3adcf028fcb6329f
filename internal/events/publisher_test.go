package events

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSubjectsShareNamespace(t *testing.T) {
	for _, subject := range []string{SubjectGatewayStarted, SubjectSessionCreated, SubjectMessageExchanged} {
		if !strings.HasPrefix(subject, "rokovo.widget.") {
			t.Errorf("subject %q outside the rokovo.widget namespace", subject)
		}
	}
}

func TestMessageExchangedPayload(t *testing.T) {
	payload, err := json.Marshal(MessageExchanged{
		SessionID: "sess-1",
		MessageID: "msg-1",
		Products:  2,
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got["session_id"] != "sess-1" || got["message_id"] != "msg-1" {
		t.Errorf("payload = %v", got)
	}
	if got["products"].(float64) != 2 {
		t.Errorf("products = %v", got["products"])
	}
}

func TestSessionCreatedPayload(t *testing.T) {
	payload, err := json.Marshal(SessionCreated{SessionID: "sess-1"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(payload) != `{"session_id":"sess-1"}` {
		t.Errorf("payload = %s", payload)
	}
}
