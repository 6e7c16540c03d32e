package repository

import (
	"context"
	"errors"
	"strings"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/internal/modules/resource/gateway"
	"anoa.com/leadercircle/internal/transport"
	"anoa.com/leadercircle/pkg/outcome"
)

var (
	opResources = outcome.Op{Name: "Load resources", Entity: "Resources"}
	opResource  = outcome.Op{Name: "Load resource", Entity: "Resource"}
	opByType    = outcome.Op{Name: "Load resources by type", Entity: "Resources"}
	opByModule  = outcome.Op{Name: "Load module resources", Entity: "Resources"}
	opSearch    = outcome.Op{Name: "Search resources", Entity: "Resources"}
)

var (
	errUnknownType = errors.New("Type must be one of [PDF VIDEO LINK]")
	errEmptyQuery  = errors.New("Enter something to search for")
)

type ResourceRepository interface {
	GetResources(ctx context.Context) outcome.Outcome[[]entity.Resource]
	GetResource(ctx context.Context, id string) outcome.Outcome[entity.Resource]
	GetResourcesByType(ctx context.Context, t entity.ResourceType) outcome.Outcome[[]entity.Resource]
	GetResourcesByModule(ctx context.Context, module string) outcome.Outcome[[]entity.Resource]
	SearchResources(ctx context.Context, query string) outcome.Outcome[[]entity.Resource]
}

type resourceRepository struct {
	gateway gateway.Gateway
}

func NewResourceRepository(gw gateway.Gateway) ResourceRepository {
	return &resourceRepository{gateway: gw}
}

func (r *resourceRepository) GetResources(ctx context.Context) outcome.Outcome[[]entity.Resource] {
	return outcome.Execute(opResources, func() (*transport.Response[[]entity.Resource], error) {
		return r.gateway.List(ctx)
	})
}

func (r *resourceRepository) GetResource(ctx context.Context, id string) outcome.Outcome[entity.Resource] {
	return outcome.Execute(opResource, func() (*transport.Response[entity.Resource], error) {
		return r.gateway.Get(ctx, id)
	})
}

func (r *resourceRepository) GetResourcesByType(ctx context.Context, t entity.ResourceType) outcome.Outcome[[]entity.Resource] {
	if !t.Valid() {
		return outcome.Invalid[[]entity.Resource](opByType, errUnknownType)
	}
	return outcome.Execute(opByType, func() (*transport.Response[[]entity.Resource], error) {
		return r.gateway.ByType(ctx, t)
	})
}

func (r *resourceRepository) GetResourcesByModule(ctx context.Context, module string) outcome.Outcome[[]entity.Resource] {
	return outcome.Execute(opByModule, func() (*transport.Response[[]entity.Resource], error) {
		return r.gateway.ByModule(ctx, module)
	})
}

func (r *resourceRepository) SearchResources(ctx context.Context, query string) outcome.Outcome[[]entity.Resource] {
	query = strings.TrimSpace(query)
	if query == "" {
		return outcome.Invalid[[]entity.Resource](opSearch, errEmptyQuery)
	}
	return outcome.Execute(opSearch, func() (*transport.Response[[]entity.Resource], error) {
		return r.gateway.Search(ctx, query)
	})
}
