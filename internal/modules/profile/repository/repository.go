package repository

import (
	"context"
	"errors"
	"strings"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/profile/dto"
	"anoa.com/leadercircle/internal/modules/profile/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/outcome"
	"anoa.com/leadercircle/pkg/validator"
)

var (
	opProfile = outcome.Op{Name: "Load profile", Entity: "Profile"}
	opUpdate  = outcome.Op{Name: "Update profile", Entity: "Profile"}
	opSearch  = outcome.Op{Name: "Search profiles", Entity: "Profiles"}
)

var errEmptySearch = errors.New("Enter a name, company or skill to search")

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) outcome.Outcome[entity.Profile]
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) outcome.Outcome[entity.Profile]
	SearchProfiles(ctx context.Context, q dto.SearchQuery) outcome.Outcome[[]entity.Profile]
}

type profileRepository struct {
	gateway gateway.Gateway
}

func NewProfileRepository(gw gateway.Gateway) ProfileRepository {
	return &profileRepository{gateway: gw}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID string) outcome.Outcome[entity.Profile] {
	return outcome.Execute(opProfile, func() (*transport.Response[entity.Profile], error) {
		return r.gateway.Get(ctx, userID)
	})
}

func (r *profileRepository) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) outcome.Outcome[entity.Profile] {
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		req.FullName = &name
	}
	req.Skills = dto.NormalizeSkills(req.Skills)
	if err := validator.Struct(req); err != nil {
		return outcome.Invalid[entity.Profile](opUpdate, err)
	}
	return outcome.Execute(opUpdate, func() (*transport.Response[entity.Profile], error) {
		return r.gateway.Update(ctx, userID, req)
	})
}

func (r *profileRepository) SearchProfiles(ctx context.Context, q dto.SearchQuery) outcome.Outcome[[]entity.Profile] {
	q.Query = strings.TrimSpace(q.Query)
	q.Skill = strings.TrimSpace(q.Skill)
	if q.Empty() {
		return outcome.Invalid[[]entity.Profile](opSearch, errEmptySearch)
	}
	return outcome.Execute(opSearch, func() (*transport.Response[[]entity.Profile], error) {
		return r.gateway.Search(ctx, q)
	})
}
