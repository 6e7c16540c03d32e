package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/leadercircle/internal/config"
	"anoa.com/leadercircle/internal/devapi"
	"anoa.com/leadercircle/internal/entity"
	authDto "anoa.com/leadercircle/internal/modules/auth/dto"
	eventController "anoa.com/leadercircle/internal/modules/event/controller"
	profileDto "anoa.com/leadercircle/internal/modules/profile/dto"
	"anoa.com/leadercircle/pkg/database"
)

const seedPassword = "password123"

func newDevAPI(t *testing.T) *config.Config {
	t.Helper()

	db, err := database.Open("")
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	if err := devapi.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := devapi.Seed(db); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	cfg := &config.Config{
		AppEnv:      "test",
		JWTSecret:   "e2e-secret",
		JWTTTL:      time.Hour,
		HTTPTimeout: 5 * time.Second,
		LogLevel:    "error",
	}
	server := devapi.NewServer(cfg, devapi.Deps{DB: db})
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = server.Close()
	})

	cfg.APIBaseURL = srv.URL
	return cfg
}

func signIn(t *testing.T, cfg *config.Config, email string) *App {
	t.Helper()
	app := New(cfg)
	t.Cleanup(app.Close)

	if !app.Auth.Login(context.Background(), email, seedPassword) {
		t.Fatalf("login %s: %q", email, app.Auth.Snapshot().Error)
	}
	return app
}

func TestSession(t *testing.T) {
	cfg := newDevAPI(t)
	ctx := context.Background()
	app := New(cfg)
	defer app.Close()

	if app.Auth.Login(ctx, "mentor@leadercircle.dev", "wrong") {
		t.Fatal("login with wrong password succeeded")
	}
	if got := app.Auth.Snapshot().Error; got != "Login failed: invalid email or password" {
		t.Errorf("Error = %q", got)
	}

	if !app.Auth.Register(ctx, authDto.RegisterRequest{
		Email:    "New.Member@Example.com ",
		Password: seedPassword,
		FullName: "New Member",
	}) {
		t.Fatalf("register: %q", app.Auth.Snapshot().Error)
	}
	s := app.Auth.Snapshot()
	if !s.IsAuthenticated || s.User == nil || s.User.Role != entity.RoleApplicant {
		t.Fatalf("after register = %+v", s)
	}

	app.Auth.LoadCurrentUser(ctx)
	if s := app.Auth.Snapshot(); s.UserError != "" || s.User.Email != "new.member@example.com" {
		t.Errorf("current user = %+v, error %q", s.User, s.UserError)
	}

	app.Auth.Logout()
	if app.CurrentUserID() != "" || app.Transport.Tokens().Get() != "" {
		t.Error("logout kept the session")
	}
}

func TestConversation(t *testing.T) {
	cfg := newDevAPI(t)
	ctx := context.Background()
	mentor := signIn(t, cfg, "mentor@leadercircle.dev")
	participant := signIn(t, cfg, "participant@leadercircle.dev")

	chat := participant.NewMessages()
	defer chat.Close()

	chat.LoadConversation(ctx, mentor.CurrentUserID(), "Maya Mentor")
	if s := chat.Snapshot(); s.ConversationError != "" || len(s.Conversation.Messages) != 0 {
		t.Fatalf("empty conversation = %+v", s)
	}

	local := chat.SendMessage(ctx, "Hello Maya")
	if local == "" {
		t.Fatal("SendMessage returned no local id")
	}
	s := chat.Snapshot()
	if s.SendingMessage || s.SendError != "" || len(s.Conversation.Messages) != 1 {
		t.Fatalf("after send = %+v", s)
	}
	sent := s.Conversation.Messages[0]
	if sent.IsPending() || sent.ID == "" || sent.Content != "Hello Maya" {
		t.Errorf("confirmed message = %+v", sent)
	}

	reply := mentor.NewMessages()
	defer reply.Close()
	reply.LoadConversation(ctx, participant.CurrentUserID(), "")
	reply.MarkConversationRead(ctx)
	if msgs := reply.Snapshot().Conversation.Messages; len(msgs) != 1 || !msgs[0].IsRead {
		t.Errorf("mentor view = %+v", msgs)
	}

	// The sender may not mark its own message; the failure is swallowed.
	chat.MarkAsRead(ctx, sent.ID)
	if s := chat.Snapshot(); s.SendError != "" || s.ConversationError != "" || s.Conversation.Messages[0].IsRead {
		t.Errorf("sender mark-as-read changed state: %+v", s)
	}

	chat.Refresh(ctx)
	if msgs := chat.Snapshot().Conversation.Messages; len(msgs) != 1 || !msgs[0].IsRead {
		t.Errorf("after refresh = %+v", msgs)
	}

	chat.LoadConversation(ctx, participant.CurrentUserID(), "")
	chat.SendMessage(ctx, "note to self")
	s = chat.Snapshot()
	if s.SendError == "" || len(s.Conversation.Messages) != 0 {
		t.Errorf("self message should roll back: %+v", s)
	}
}

func TestConnectionLifecycle(t *testing.T) {
	cfg := newDevAPI(t)
	ctx := context.Background()
	mentor := signIn(t, cfg, "mentor@leadercircle.dev")
	participant := signIn(t, cfg, "participant@leadercircle.dev")

	mine := participant.NewConnections()
	defer mine.Close()
	if !mine.SendRequest(ctx, mentor.CurrentUserID(), entity.ConnectionTypeMentorship, "  ") {
		t.Fatalf("send request: %q", mine.Snapshot().SubmitError)
	}
	if s := mine.Snapshot(); len(s.Pending) != 1 || s.Pending[0].Message != nil {
		t.Fatalf("requester pending = %+v", s.Pending)
	}

	if mine.SendRequest(ctx, mentor.CurrentUserID(), entity.ConnectionTypeConnect, "") {
		t.Error("duplicate request succeeded")
	}

	theirs := mentor.NewConnections()
	defer theirs.Close()
	theirs.LoadAll(ctx)
	pending := theirs.Snapshot().Pending
	if len(pending) != 1 {
		t.Fatalf("target pending = %+v", pending)
	}

	if !theirs.Accept(ctx, pending[0].ID) {
		t.Fatalf("accept: %q", theirs.Snapshot().SubmitError)
	}
	if s := theirs.Snapshot(); len(s.Pending) != 0 || len(s.Accepted) != 1 {
		t.Errorf("after accept = %+v", s)
	}

	if theirs.Decline(ctx, pending[0].ID) {
		t.Error("answered request changed state")
	}
	if s := theirs.Snapshot(); len(s.Accepted) != 1 || s.SubmitError == "" {
		t.Errorf("after second answer = %+v", s)
	}
}

func TestEventsAndDirectory(t *testing.T) {
	cfg := newDevAPI(t)
	ctx := context.Background()
	app := signIn(t, cfg, "participant@leadercircle.dev")

	events := app.NewEvents()
	defer events.Close()
	events.LoadEvents(ctx, eventController.FilterUpcoming)
	upcoming := events.Snapshot().Events
	if len(upcoming) != 2 {
		t.Fatalf("upcoming = %d", len(upcoming))
	}

	events.LoadEvent(ctx, upcoming[0].ID)
	if !events.RSVP(ctx, upcoming[0].ID, entity.RSVPGoing) {
		t.Fatalf("rsvp: %q", events.Snapshot().RSVPError)
	}
	s := events.Snapshot()
	if len(s.MyEvents) != 1 || s.SelectedEvent == nil || s.SelectedEvent.AttendeeCount != 1 || len(s.Attendees) != 1 {
		t.Errorf("after rsvp = %+v", s)
	}

	directory := app.NewDirectory()
	defer directory.Close()
	directory.LoadUsersByCohort(ctx, "2025-spring")
	if users := directory.Snapshot().Users; len(users) != 1 || users[0].ID != app.CurrentUserID() {
		t.Errorf("cohort = %+v", users)
	}

	profile := app.NewProfile()
	defer profile.Close()
	company := "Acme"
	if !profile.UpdateProfile(ctx, app.CurrentUserID(), profileDto.UpdateProfileRequest{
		Company: &company,
		Skills:  []string{"Finance", "finance", "Strategy"},
	}) {
		t.Fatalf("update profile: %q", profile.Snapshot().SaveError)
	}
	if p := profile.Snapshot().Profile; p == nil || len(p.Skills) != 2 {
		t.Errorf("profile = %+v", p)
	}

	profile.Search(ctx, profileDto.SearchQuery{Skill: "strategy"})
	if results := profile.Snapshot().SearchResults; len(results) != 1 {
		t.Errorf("search = %+v", results)
	}

	resources := app.NewResources()
	defer resources.Close()
	resources.LoadResources(ctx)
	if got := len(resources.Snapshot().Resources); got != 2 {
		t.Errorf("participant sees %d resources, want 2", got)
	}
}
