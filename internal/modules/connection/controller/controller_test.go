package controller

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/connection/dto"
	"anoa.com/leadercircle/pkg/apperror"
	"anoa.com/leadercircle/pkg/outcome"
)

// fakeRepo keeps connections in memory and enforces that answered
// requests cannot change again.
type fakeRepo struct {
	mu    sync.Mutex
	conns map[string]entity.Connection
	order []string

	// hold parks CreateConnection for a target until its channel is closed.
	hold    map[string]chan struct{}
	entered chan string
}

func newFakeRepo(conns ...entity.Connection) *fakeRepo {
	f := &fakeRepo{conns: map[string]entity.Connection{}}
	for _, c := range conns {
		f.conns[c.ID] = c
		f.order = append(f.order, c.ID)
	}
	return f
}

func (f *fakeRepo) list(status entity.ConnectionStatus) outcome.Outcome[[]entity.Connection] {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []entity.Connection{}
	for _, id := range f.order {
		if c := f.conns[id]; c.Status == status {
			out = append(out, c)
		}
	}
	return outcome.Success(out)
}

func (f *fakeRepo) CreateConnection(ctx context.Context, req dto.CreateConnectionRequest) outcome.Outcome[entity.Connection] {
	if release, ok := f.hold[req.TargetID]; ok {
		f.entered <- req.TargetID
		<-release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := entity.Connection{ID: "new-" + req.TargetID, TargetID: req.TargetID, Type: req.Type, Status: entity.ConnectionStatusPending}
	f.conns[c.ID] = c
	f.order = append(f.order, c.ID)
	return outcome.Success(c)
}

func (f *fakeRepo) UpdateConnectionStatus(ctx context.Context, id string, status entity.ConnectionStatus) outcome.Outcome[entity.Connection] {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conns[id]
	if !ok || c.Status.IsTerminal() {
		err := apperror.New(apperror.KindStatus, "Update connection", "Update connection failed: connection already answered", nil)
		err.StatusCode = http.StatusConflict
		return outcome.Failure[entity.Connection](err)
	}
	c.Status = status
	f.conns[id] = c
	return outcome.Success(c)
}

func (f *fakeRepo) GetPendingConnections(ctx context.Context) outcome.Outcome[[]entity.Connection] {
	return f.list(entity.ConnectionStatusPending)
}

func (f *fakeRepo) GetAcceptedConnections(ctx context.Context) outcome.Outcome[[]entity.Connection] {
	return f.list(entity.ConnectionStatusAccepted)
}

func ids(conns []entity.Connection) []string {
	out := make([]string, len(conns))
	for i, c := range conns {
		out[i] = c.ID
	}
	return out
}

func TestAccept_RefetchesBothLists(t *testing.T) {
	repo := newFakeRepo(
		entity.Connection{ID: "c-1", Status: entity.ConnectionStatusPending},
		entity.Connection{ID: "c-2", Status: entity.ConnectionStatusPending},
	)
	c := NewController(repo)
	defer c.Close()

	c.LoadAll(context.Background())
	if got := ids(c.Snapshot().Pending); len(got) != 2 {
		t.Fatalf("Pending = %v", got)
	}

	if !c.Accept(context.Background(), "c-1") {
		t.Fatalf("Accept() = false: %s", c.Snapshot().SubmitError)
	}

	s := c.Snapshot()
	if got := ids(s.Pending); len(got) != 1 || got[0] != "c-2" {
		t.Errorf("Pending = %v", got)
	}
	if got := ids(s.Accepted); len(got) != 1 || got[0] != "c-1" {
		t.Errorf("Accepted = %v", got)
	}
	if s.IsSubmitting || s.IsLoadingPending || s.IsLoadingAccepted {
		t.Errorf("flags left set: %+v", s)
	}
}

func TestRespond_AnsweredRequestStaysAnswered(t *testing.T) {
	repo := newFakeRepo(entity.Connection{ID: "c-1", Status: entity.ConnectionStatusPending})
	c := NewController(repo)
	defer c.Close()

	c.Decline(context.Background(), "c-1")
	if c.Accept(context.Background(), "c-1") {
		t.Fatal("accepted a declined request")
	}

	s := c.Snapshot()
	if s.SubmitError != "Update connection failed: connection already answered" {
		t.Errorf("SubmitError = %q", s.SubmitError)
	}
	if len(s.Accepted) != 0 || len(s.Pending) != 0 {
		t.Errorf("Pending = %v, Accepted = %v", ids(s.Pending), ids(s.Accepted))
	}
	if s.PendingError != "" || s.AcceptedError != "" {
		t.Error("submit failure leaked into list errors")
	}
}

func TestSendRequest_ShowsInPending(t *testing.T) {
	c := NewController(newFakeRepo())
	defer c.Close()

	if !c.SendRequest(context.Background(), "u-9", entity.ConnectionTypeMentorship, "") {
		t.Fatal("SendRequest() = false")
	}
	if got := ids(c.Snapshot().Pending); len(got) != 1 || got[0] != "new-u-9" {
		t.Errorf("Pending = %v", got)
	}
}

func TestSubmit_OverlappingRequestsKeepSubmitting(t *testing.T) {
	repo := newFakeRepo()
	repo.hold = map[string]chan struct{}{"u-1": make(chan struct{}), "u-2": make(chan struct{})}
	repo.entered = make(chan string, 2)
	c := NewController(repo)
	defer c.Close()

	done := map[string]chan bool{"u-1": make(chan bool), "u-2": make(chan bool)}
	for target, ch := range done {
		go func() {
			ch <- c.SendRequest(context.Background(), target, entity.ConnectionTypeConnect, "")
		}()
	}
	<-repo.entered
	<-repo.entered

	close(repo.hold["u-1"])
	if !<-done["u-1"] {
		t.Fatal("first SendRequest() = false")
	}
	if !c.Snapshot().IsSubmitting {
		t.Error("IsSubmitting cleared while a request is still in flight")
	}

	close(repo.hold["u-2"])
	if !<-done["u-2"] {
		t.Fatal("second SendRequest() = false")
	}
	s := c.Snapshot()
	if s.IsSubmitting {
		t.Error("IsSubmitting still set after both requests finished")
	}
	if len(s.Pending) != 2 {
		t.Errorf("pending = %v", ids(s.Pending))
	}
}
