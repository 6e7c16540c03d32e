package controller

import (
	"context"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/resource/repository"
	"anoa.com/leadercircle/internal/state"
	"anoa.com/leadercircle/pkg/outcome"
)

const (
	fieldResources = "resources"
	fieldResource  = "resource"
)

// Query records which request produced State.Resources. At most one field is set.
type Query struct {
	Type   entity.ResourceType
	Module string
	Search string
}

type State struct {
	Resources          []entity.Resource
	Query              Query
	IsLoadingResources bool
	ResourcesError     string

	SelectedResource  *entity.Resource
	IsLoadingResource bool
	ResourceError     string
}

// Controller drives the content library.
type Controller struct {
	*state.Base[State]
	repo repository.ResourceRepository
}

func NewController(repo repository.ResourceRepository) *Controller {
	return &Controller{
		Base: state.NewBase(State{}),
		repo: repo,
	}
}

func (c *Controller) LoadResources(ctx context.Context) {
	c.loadList(ctx, Query{}, c.repo.GetResources)
}

func (c *Controller) LoadByType(ctx context.Context, t entity.ResourceType) {
	c.loadList(ctx, Query{Type: t}, func(ctx context.Context) outcome.Outcome[[]entity.Resource] {
		return c.repo.GetResourcesByType(ctx, t)
	})
}

func (c *Controller) LoadByModule(ctx context.Context, module string) {
	c.loadList(ctx, Query{Module: module}, func(ctx context.Context) outcome.Outcome[[]entity.Resource] {
		return c.repo.GetResourcesByModule(ctx, module)
	})
}

func (c *Controller) Search(ctx context.Context, query string) {
	c.loadList(ctx, Query{Search: query}, func(ctx context.Context) outcome.Outcome[[]entity.Resource] {
		return c.repo.SearchResources(ctx, query)
	})
}

func (c *Controller) LoadResource(ctx context.Context, id string) {
	state.Load(ctx, c.Base, fieldResource,
		func(ctx context.Context) outcome.Outcome[entity.Resource] {
			return c.repo.GetResource(ctx, id)
		},
		func(s State) State {
			s.IsLoadingResource = true
			s.ResourceError = ""
			return s
		},
		func(s State, r entity.Resource) State {
			s.IsLoadingResource = false
			s.SelectedResource = &r
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingResource = false
			s.ResourceError = msg
			return s
		})
}

func (c *Controller) ClearResourcesError() {
	c.Update(func(s State) State {
		s.ResourcesError = ""
		return s
	})
}

func (c *Controller) ClearResourceError() {
	c.Update(func(s State) State {
		s.ResourceError = ""
		return s
	})
}

func (c *Controller) loadList(ctx context.Context, q Query, call func(context.Context) outcome.Outcome[[]entity.Resource]) {
	state.Load(ctx, c.Base, fieldResources, call,
		func(s State) State {
			s.Query = q
			s.IsLoadingResources = true
			s.ResourcesError = ""
			return s
		},
		func(s State, list []entity.Resource) State {
			s.IsLoadingResources = false
			s.Resources = list
			return s
		},
		func(s State, msg string) State {
			s.IsLoadingResources = false
			s.ResourcesError = msg
			return s
		})
}
