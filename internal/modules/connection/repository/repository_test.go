package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/connection/dto"
	"anoa.com/leadercircle/internal/modules/connection/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/apperror"
)

func newRepo(t *testing.T, handler http.HandlerFunc) ConnectionRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewConnectionRepository(gateway.NewGateway(transport.NewClient(transport.Config{BaseURL: srv.URL})))
}

func TestCreateConnection(t *testing.T) {
	var body map[string]any
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/connections" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(entity.Connection{ID: "c-1", Status: entity.ConnectionStatusPending})
	})

	blank := "   "
	result := repo.CreateConnection(context.Background(), dto.CreateConnectionRequest{
		TargetID: "u-2",
		Type:     entity.ConnectionTypeMentorship,
		Message:  &blank,
	})
	conn, ok := result.Value()
	if !ok {
		t.Fatalf("CreateConnection() failed: %s", result.Message())
	}
	if conn.Status != entity.ConnectionStatusPending {
		t.Errorf("status = %q", conn.Status)
	}
	if body["type"] != "MENTORSHIP" || body["targetId"] != "u-2" {
		t.Errorf("body = %v", body)
	}
	if _, sent := body["message"]; sent {
		t.Error("blank message was sent")
	}
}

func TestUpdateConnectionStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    entity.ConnectionStatus
		code      int
		reply     string
		wantKind  apperror.Kind
		wantOK    bool
		wantCalls int
	}{
		{"accept", entity.ConnectionStatusAccepted, http.StatusOK, `{"id":"c-1","status":"ACCEPTED"}`, 0, true, 1},
		{"already answered", entity.ConnectionStatusDeclined, http.StatusConflict, `{"error":"connection already answered"}`, apperror.KindStatus, false, 1},
		{"pending is not an answer", entity.ConnectionStatusPending, 0, "", apperror.KindValidation, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				if r.Method != http.MethodPut || r.URL.Path != "/api/connections/c-1" {
					t.Errorf("%s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.reply))
			})

			result := repo.UpdateConnectionStatus(context.Background(), "c-1", tt.status)
			if result.IsSuccess() != tt.wantOK {
				t.Fatalf("IsSuccess() = %v: %s", result.IsSuccess(), result.Message())
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !tt.wantOK {
				if kind := apperror.FromError("", result.Err()).Kind; kind != tt.wantKind {
					t.Errorf("kind = %v, want %v", kind, tt.wantKind)
				}
			}
			if tt.code == http.StatusConflict && !apperror.IsConflict(result.Err()) {
				t.Error("IsConflict() = false")
			}
		})
	}
}

func TestListConnections(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		status := entity.ConnectionStatusPending
		if r.URL.Path == "/api/connections/accepted" {
			status = entity.ConnectionStatusAccepted
		}
		_ = json.NewEncoder(w).Encode([]entity.Connection{{ID: "c", Status: status}})
	})
	ctx := context.Background()

	pending, _ := repo.GetPendingConnections(ctx).Value()
	accepted, _ := repo.GetAcceptedConnections(ctx).Value()
	if len(pending) != 1 || pending[0].Status != entity.ConnectionStatusPending {
		t.Errorf("pending = %+v", pending)
	}
	if len(accepted) != 1 || accepted[0].Status != entity.ConnectionStatusAccepted {
		t.Errorf("accepted = %+v", accepted)
	}
}
