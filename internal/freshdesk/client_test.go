package freshdesk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/freshdesk-bridge/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.FreshdeskConfig{
		APIKey:  "test-api-key",
		BaseURL: server.URL,
	}, zap.NewNop())
	return client, server
}

func TestCreateTicketSendsExpectedPayload(t *testing.T) {
	var gotRequests int
	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]any

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequests++
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":4321}`)) //nolint:errcheck
	})

	created, err := client.CreateTicket(context.Background(), NewTicketRequest("Jordan Fowler", "jordan@example.com", "My widget broke"))
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	if gotRequests != 1 {
		t.Fatalf("expected exactly one request, got %d", gotRequests)
	}
	if gotPath != "/api/v2/tickets" {
		t.Errorf("path = %q, want /api/v2/tickets", gotPath)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("test-api-key:X"))
	if gotAuth != wantAuth {
		t.Errorf("authorization = %q, want %q", gotAuth, wantAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", gotContentType)
	}

	if gotBody["name"] != "Jordan Fowler" {
		t.Errorf("name = %v", gotBody["name"])
	}
	if gotBody["email"] != "jordan@example.com" {
		t.Errorf("email = %v", gotBody["email"])
	}
	if gotBody["description"] != "My widget broke" {
		t.Errorf("description = %v", gotBody["description"])
	}
	if gotBody["status"] != float64(StatusOpen) {
		t.Errorf("status = %v, want %d", gotBody["status"], StatusOpen)
	}
	if gotBody["priority"] != float64(PriorityLow) {
		t.Errorf("priority = %v, want %d", gotBody["priority"], PriorityLow)
	}
	if _, present := gotBody["tags"]; present {
		t.Error("tags key should be omitted when empty")
	}
	if _, present := gotBody["custom_fields"]; present {
		t.Error("custom_fields key should be omitted when empty")
	}

	if created.ID != 4321 {
		t.Errorf("created.ID = %d, want 4321", created.ID)
	}
}

func TestCreateTicketPassesThroughOptionalFields(t *testing.T) {
	var gotBody map[string]any
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody) //nolint:errcheck
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`)) //nolint:errcheck
	})

	ticket := NewTicketRequest("A", "a@example.com", "hello")
	ticket.Tags = []string{"contact-form", "website"}
	ticket.CustomFields = map[string]string{"cf_source_page": "/pricing"}

	if _, err := client.CreateTicket(context.Background(), ticket); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	tags, ok := gotBody["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "contact-form" || tags[1] != "website" {
		t.Errorf("tags = %v, want [contact-form website]", gotBody["tags"])
	}
	fields, ok := gotBody["custom_fields"].(map[string]any)
	if !ok || fields["cf_source_page"] != "/pricing" {
		t.Errorf("custom_fields = %v, want map with cf_source_page", gotBody["custom_fields"])
	}
}

func TestCreateTicketRejectedWithMessage(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Email is invalid"}`)) //nolint:errcheck
	})

	_, err := client.CreateTicket(context.Background(), NewTicketRequest("A", "not-an-email", "hello"))
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", apiErr.StatusCode)
	}
	if apiErr.Message != "Email is invalid" {
		t.Errorf("message = %q, want %q", apiErr.Message, "Email is invalid")
	}
}

func TestCreateTicketRejectedUnparsableBody(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>gateway error</html>`)) //nolint:errcheck
	})

	_, err := client.CreateTicket(context.Background(), NewTicketRequest("A", "a@example.com", "hello"))
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != UnknownErrorMessage {
		t.Errorf("message = %q, want %q", apiErr.Message, UnknownErrorMessage)
	}
}

func TestCreateTicketRejectedMessagelessBody(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":"invalid_credentials"}`)) //nolint:errcheck
	})

	_, err := client.CreateTicket(context.Background(), NewTicketRequest("A", "a@example.com", "hello"))
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", apiErr.StatusCode)
	}
	if apiErr.Message != UnknownErrorMessage {
		t.Errorf("message = %q, want %q", apiErr.Message, UnknownErrorMessage)
	}
}

func TestCreateTicketTransportFailure(t *testing.T) {
	client, server := testClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.CreateTicket(context.Background(), NewTicketRequest("A", "a@example.com", "hello"))
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	if _, ok := AsAPIError(err); ok {
		t.Fatalf("transport failure must not be an APIError: %v", err)
	}
}

func TestCreateTicketSuccessWithOpaqueBody(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`not-json`)) //nolint:errcheck
	})

	created, err := client.CreateTicket(context.Background(), NewTicketRequest("A", "a@example.com", "hello"))
	if err != nil {
		t.Fatalf("a 2xx with an unreadable body is still a success: %v", err)
	}
	if created.ID != 0 {
		t.Errorf("created.ID = %d, want 0", created.ID)
	}
}
