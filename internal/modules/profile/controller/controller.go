package controller

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/profile/dto"
	"anoa.com/leadercircle/internal/modules/profile/repository"
	"anoa.com/leadercircle/internal/state"
	"anoa.com/leadercircle/pkg/outcome"
)

const (
	fieldProfile = "profile"
	fieldSearch  = "search"
)

type State struct {
	Profile          *entity.Profile
	IsLoadingProfile bool
	ProfileError     string

	IsSaving  bool
	SaveError string
	// Saved is set after a successful update and cleared by the next edit.
	Saved bool

	Query         dto.SearchQuery
	SearchResults []entity.Profile
	IsSearching   bool
	SearchError   string
}

// Controller drives the profile view, the profile editor and profile search.
type Controller struct {
	*state.Base[State]
	repo repository.ProfileRepository
}

func NewController(repo repository.ProfileRepository) *Controller {
	return &Controller{
		Base: state.NewBase(State{}),
		repo: repo,
	}
}

func (c *Controller) LoadProfile(ctx context.Context, userID string) {
	state.Load(ctx, c.Base, fieldProfile,
		func(ctx context.Context) outcome.Outcome[entity.Profile] {
			return c.repo.GetProfile(ctx, userID)
		},
		func(s State) State {
			s.IsLoadingProfile = true
			s.ProfileError = ""
			if s.Profile != nil && s.Profile.UserID != userID {
				s.Profile = nil
			}
			return s
		},
		func(s State, p entity.Profile) State {
			s.IsLoadingProfile = false
			s.Profile = &p
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingProfile = false
			s.ProfileError = msg
			return s
		})
}

// UpdateProfile saves req and, on success, re-fetches the profile so the
// screen shows what the server stored.
func (c *Controller) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) bool {
	result := state.Submit(ctx, c.Base,
		func(ctx context.Context) outcome.Outcome[entity.Profile] {
			return c.repo.UpdateProfile(ctx, userID, req)
		},
		func(s State) State {
			s.IsSaving = true
			s.SaveError = ""
			s.Saved = false
			return s
		},
		func(s State, _ entity.Profile) State {
			s.IsSaving = false
			s.Saved = true
			return s
		},
		func(s State, msg string) State {
			s.IsSaving = false
			s.SaveError = msg
			return s
		})

	if !result.IsSuccess() {
		return false
	}
	c.LoadProfile(ctx, userID)
	return true
}

func (c *Controller) Search(ctx context.Context, q dto.SearchQuery) {
	state.Load(ctx, c.Base, fieldSearch,
		func(ctx context.Context) outcome.Outcome[[]entity.Profile] {
			return c.repo.SearchProfiles(ctx, q)
		},
		func(s State) State {
			s.Query = q
			s.IsSearching = true
			s.SearchError = ""
			return s
		},
		func(s State, results []entity.Profile) State {
			s.IsSearching = false
			s.SearchResults = results
			return s
		},
		func(s State, msg string) State {
			s.IsSearching = false
			s.SearchError = msg
			return s
		})
}

func (c *Controller) ClearProfileError() {
	c.Update(func(s State) State {
		s.ProfileError = ""
		return s
	})
}

func (c *Controller) ClearSaveError() {
	c.Update(func(s State) State {
		s.SaveError = ""
		s.Saved = false
		return s
	})
}

func (c *Controller) ClearSearchError() {
	c.Update(func(s State) State {
		s.SearchError = ""
		return s
	})
}
