package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/event/dto"
	"anoa.com/leadercircle/pkg/outcome"
)

type fakeRepo struct {
	mu       sync.Mutex
	calls    []string
	rsvpErr  error
	statuses map[string]entity.RSVPStatus

	// holdAttendees, when set, parks GetAttendees for that event until
	// released is closed.
	holdAttendees string
	entered       chan struct{}
	released      chan struct{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{statuses: map[string]entity.RSVPStatus{}}
}

func (f *fakeRepo) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeRepo) event(id string) entity.Event {
	e := entity.Event{ID: id}
	if s, ok := f.statuses[id]; ok {
		e.RSVPStatus = &s
		e.AttendeeCount = 1
	}
	return e
}

func (f *fakeRepo) GetEvents(ctx context.Context) outcome.Outcome[[]entity.Event] {
	f.record("all")
	return outcome.Success([]entity.Event{f.event("e-1")})
}

func (f *fakeRepo) GetPublicEvents(ctx context.Context) outcome.Outcome[[]entity.Event] {
	f.record("public")
	return outcome.Success([]entity.Event{f.event("e-1")})
}

func (f *fakeRepo) GetUpcomingEvents(ctx context.Context) outcome.Outcome[[]entity.Event] {
	f.record("upcoming")
	return outcome.Success([]entity.Event{f.event("e-1")})
}

func (f *fakeRepo) GetEvent(ctx context.Context, id string) outcome.Outcome[entity.Event] {
	f.record("event")
	return outcome.Success(f.event(id))
}

func (f *fakeRepo) GetUserEvents(ctx context.Context, userID string) outcome.Outcome[[]entity.Event] {
	f.record("mine")
	return outcome.Success([]entity.Event{})
}

func (f *fakeRepo) GetAttendees(ctx context.Context, eventID string) outcome.Outcome[[]entity.User] {
	f.record("attendees")
	if f.holdAttendees == eventID {
		f.entered <- struct{}{}
		<-f.released
	}
	return outcome.Success([]entity.User{{ID: "attendee-of-" + eventID}})
}

func (f *fakeRepo) RSVP(ctx context.Context, req dto.RSVPRequest) outcome.Outcome[entity.EventRSVP] {
	f.record("rsvp")
	if f.rsvpErr != nil {
		return outcome.Failure[entity.EventRSVP](f.rsvpErr)
	}
	f.statuses[req.EventID] = req.Status
	return outcome.Success(entity.EventRSVP{EventID: req.EventID, Status: req.Status})
}

func TestRSVP_RefetchesAffectedData(t *testing.T) {
	repo := newFakeRepo()
	c := NewController(repo, func() string { return "me" })
	defer c.Close()

	c.LoadEvents(context.Background(), FilterUpcoming)
	c.LoadEvent(context.Background(), "e-1")
	repo.calls = nil

	if !c.RSVP(context.Background(), "e-1", entity.RSVPGoing) {
		t.Fatal("RSVP() = false")
	}

	want := []string{"rsvp", "upcoming", "mine", "event", "attendees"}
	if len(repo.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", repo.calls, want)
	}
	for i := range want {
		if repo.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", repo.calls, want)
		}
	}

	s := c.Snapshot()
	if s.SelectedEvent.RSVPStatus == nil || *s.SelectedEvent.RSVPStatus != entity.RSVPGoing {
		t.Errorf("selected event RSVP = %v", s.SelectedEvent.RSVPStatus)
	}
	if s.Events[0].AttendeeCount != 1 {
		t.Errorf("list not refreshed: %+v", s.Events[0])
	}
}

func TestRSVP_FailureDoesNotRefetch(t *testing.T) {
	repo := newFakeRepo()
	repo.rsvpErr = errors.New("RSVP failed: event not found")
	c := NewController(repo, func() string { return "me" })
	defer c.Close()

	c.LoadEvents(context.Background(), FilterAll)
	repo.calls = nil

	if c.RSVP(context.Background(), "e-404", entity.RSVPGoing) {
		t.Fatal("RSVP() = true")
	}
	if len(repo.calls) != 1 {
		t.Errorf("calls = %v, want only the RSVP", repo.calls)
	}

	s := c.Snapshot()
	if s.RSVPError != "RSVP failed: event not found" || s.EventsError != "" {
		t.Errorf("RSVPError = %q, EventsError = %q", s.RSVPError, s.EventsError)
	}
	if s.IsSubmittingRSVP {
		t.Error("IsSubmittingRSVP still set")
	}
}

func TestLoadEvent_SwitchingClearsAttendees(t *testing.T) {
	c := NewController(newFakeRepo(), func() string { return "me" })
	defer c.Close()

	c.LoadEvent(context.Background(), "e-1")
	c.LoadAttendees(context.Background(), "e-1")
	if len(c.Snapshot().Attendees) != 1 {
		t.Fatal("attendees not loaded")
	}

	c.LoadEvent(context.Background(), "e-2")
	s := c.Snapshot()
	if s.SelectedEvent.ID != "e-2" || s.Attendees != nil {
		t.Errorf("SelectedEvent = %s, Attendees = %v", s.SelectedEvent.ID, s.Attendees)
	}
}

func TestLoadEvent_DropsAttendeesOfPreviousEvent(t *testing.T) {
	repo := newFakeRepo()
	repo.holdAttendees = "e-1"
	repo.entered = make(chan struct{})
	repo.released = make(chan struct{})
	c := NewController(repo, func() string { return "me" })
	defer c.Close()

	c.LoadEvent(context.Background(), "e-1")
	done := make(chan struct{})
	go func() {
		c.LoadAttendees(context.Background(), "e-1")
		close(done)
	}()
	<-repo.entered

	c.LoadEvent(context.Background(), "e-2")
	close(repo.released)
	<-done

	s := c.Snapshot()
	if s.SelectedEvent == nil || s.SelectedEvent.ID != "e-2" {
		t.Fatalf("SelectedEvent = %+v", s.SelectedEvent)
	}
	if s.Attendees != nil || s.IsLoadingAttendees {
		t.Errorf("Attendees = %v, IsLoadingAttendees = %v", s.Attendees, s.IsLoadingAttendees)
	}

	c.LoadAttendees(context.Background(), "e-2")
	if got := c.Snapshot().Attendees; len(got) != 1 || got[0].ID != "attendee-of-e-2" {
		t.Errorf("Attendees = %v", got)
	}
}
