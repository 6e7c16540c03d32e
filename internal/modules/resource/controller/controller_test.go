package controller

import (
	"context"
	"errors"
	"testing"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/pkg/outcome"
)

type fakeRepo struct {
	searchErr error
}

func list(ids ...string) outcome.Outcome[[]entity.Resource] {
	out := make([]entity.Resource, len(ids))
	for i, id := range ids {
		out[i] = entity.Resource{ID: id}
	}
	return outcome.Success(out)
}

func (f *fakeRepo) GetResources(context.Context) outcome.Outcome[[]entity.Resource] {
	return list("a", "b", "c")
}

func (f *fakeRepo) GetResource(_ context.Context, id string) outcome.Outcome[entity.Resource] {
	return outcome.Success(entity.Resource{ID: id})
}

func (f *fakeRepo) GetResourcesByType(_ context.Context, t entity.ResourceType) outcome.Outcome[[]entity.Resource] {
	return list(string(t))
}

func (f *fakeRepo) GetResourcesByModule(_ context.Context, module string) outcome.Outcome[[]entity.Resource] {
	return list(module)
}

func (f *fakeRepo) SearchResources(_ context.Context, query string) outcome.Outcome[[]entity.Resource] {
	if f.searchErr != nil {
		return outcome.Failure[[]entity.Resource](f.searchErr)
	}
	return list("hit")
}

func TestLoadList_RecordsQuery(t *testing.T) {
	c := NewController(&fakeRepo{})
	defer c.Close()
	ctx := context.Background()

	c.LoadResources(ctx)
	if s := c.Snapshot(); len(s.Resources) != 3 || s.Query != (Query{}) {
		t.Errorf("after LoadResources: %+v", s)
	}

	c.LoadByType(ctx, entity.ResourceTypePDF)
	if s := c.Snapshot(); len(s.Resources) != 1 || s.Query.Type != entity.ResourceTypePDF {
		t.Errorf("after LoadByType: %+v", s)
	}

	c.LoadByModule(ctx, "m1")
	if s := c.Snapshot(); s.Resources[0].ID != "m1" || s.Query.Module != "m1" || s.Query.Type != "" {
		t.Errorf("after LoadByModule: %+v", s)
	}
}

func TestSearch_FailureKeepsPreviousList(t *testing.T) {
	c := NewController(&fakeRepo{searchErr: errors.New("Search resources failed: 503 Service Unavailable")})
	defer c.Close()
	ctx := context.Background()

	c.LoadResources(ctx)
	c.LoadResource(ctx, "a")
	c.Search(ctx, "x")

	s := c.Snapshot()
	if s.ResourcesError != "Search resources failed: 503 Service Unavailable" {
		t.Errorf("ResourcesError = %q", s.ResourcesError)
	}
	if len(s.Resources) != 3 || s.IsLoadingResources {
		t.Errorf("list state = %+v", s)
	}
	if s.ResourceError != "" || s.SelectedResource == nil {
		t.Errorf("detail state touched: %+v", s)
	}

	c.ClearResourcesError()
	if c.Snapshot().ResourcesError != "" {
		t.Error("ClearResourcesError() left the error")
	}
}
