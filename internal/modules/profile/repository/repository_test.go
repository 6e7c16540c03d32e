package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/profile/dto"
	"anoa.com/leadercircle/internal/modules/profile/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/apperror"
)

func ptrTo[T any](v T) *T { return &v }

func newRepo(t *testing.T, handler http.HandlerFunc) ProfileRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProfileRepository(gateway.NewGateway(transport.NewClient(transport.Config{BaseURL: srv.URL})))
}

func TestUpdateProfile_SendsPartialBody(t *testing.T) {
	var body map[string]any
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/profiles/u-1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_ = json.NewEncoder(w).Encode(entity.Profile{UserID: "u-1", FullName: "Ada"})
	})

	result := repo.UpdateProfile(context.Background(), "u-1", dto.UpdateProfileRequest{
		FullName: ptrTo("  Ada  "),
		Skills:   []string{"Go", "go", " "},
	})
	if !result.IsSuccess() {
		t.Fatalf("UpdateProfile() failed: %s", result.Message())
	}

	if body["fullName"] != "Ada" {
		t.Errorf("fullName = %v", body["fullName"])
	}
	if skills, _ := body["skills"].([]any); len(skills) != 1 {
		t.Errorf("skills = %v, want deduplicated", body["skills"])
	}
	if _, sent := body["bio"]; sent {
		t.Error("unset field was sent")
	}
}

func TestUpdateProfile_RejectsBadURL(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the server")
	})

	result := repo.UpdateProfile(context.Background(), "u-1", dto.UpdateProfileRequest{
		LinkedInURL: ptrTo("not a url"),
	})
	if result.IsSuccess() {
		t.Fatal("invalid URL accepted")
	}
	if !strings.Contains(result.Message(), "valid URL") {
		t.Errorf("Message() = %q", result.Message())
	}
	if !errorsIsValidation(result.Err()) {
		t.Error("not a validation failure")
	}
}

func TestSearchProfiles(t *testing.T) {
	var gotQuery string
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]entity.Profile{{UserID: "u-1"}})
	})

	result := repo.SearchProfiles(context.Background(), dto.SearchQuery{Query: " ada ", Skill: "Go"})
	if profiles, ok := result.Value(); !ok || len(profiles) != 1 {
		t.Fatalf("SearchProfiles() = %v", result.Message())
	}
	if gotQuery != "q=ada&skill=Go" {
		t.Errorf("query = %q", gotQuery)
	}

	if repo.SearchProfiles(context.Background(), dto.SearchQuery{Query: "  "}).IsSuccess() {
		t.Error("blank search accepted")
	}
}

func errorsIsValidation(err error) bool {
	return apperror.FromError("", err).Kind == apperror.KindValidation
}
