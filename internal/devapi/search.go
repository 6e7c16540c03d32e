package devapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"anoa.com/leadercircle/internal/entity"
	"anoa.com/leadercircle/pkg/logger"
)

const (
	indexProfiles  = "profiles"
	indexResources = "resources"
	searchLimit    = 50
)

// Search finds profile user ids and resource ids. Implementations return
// ids in relevance order.
type Search interface {
	IndexProfile(profile *entity.Profile) error
	IndexResource(resource *entity.Resource) error
	SearchProfiles(ctx context.Context, query string) ([]string, error)
	SearchResources(ctx context.Context, query string) ([]string, error)
}

type meiliProfileDoc struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Position string   `json:"position"`
	Company  string   `json:"company"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

type meiliResourceDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Module      string `json:"module"`
}

type meiliSearch struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

// NewMeiliSearch configures the indexes it uses. Configuration failures are
// logged; the search itself reports errors per call.
func NewMeiliSearch(host, apiKey string) Search {
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}
	s := &meiliSearch{
		client:    meilisearch.New(host, meilisearch.WithAPIKey(apiKey)),
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearch) initIndexes() {
	filterable := []any{"skills"}
	if _, err := s.client.Index(indexProfiles).UpdateFilterableAttributes(&filterable); err != nil {
		logger.Warn().Err(err).Str("index", indexProfiles).Msg("failed to update filterable attributes")
	}
	resourceFilterable := []any{"type", "module"}
	if _, err := s.client.Index(indexResources).UpdateFilterableAttributes(&resourceFilterable); err != nil {
		logger.Warn().Err(err).Str("index", indexResources).Msg("failed to update filterable attributes")
	}
	logger.Info().Msg("meilisearch indexes initialized")
}

func (s *meiliSearch) cleanText(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	return strings.Join(strings.Fields(plainText(s.sanitizer, content)), " ")
}

func (s *meiliSearch) IndexProfile(p *entity.Profile) error {
	doc := meiliProfileDoc{
		ID:       p.UserID,
		FullName: p.FullName,
		Position: stringOrEmpty(p.Position),
		Company:  stringOrEmpty(p.Company),
		Bio:      s.cleanText(stringOrEmpty(p.Bio)),
		Skills:   p.Skills,
	}
	task, err := s.client.Index(indexProfiles).AddDocuments([]meiliProfileDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	logger.Debug().Str("user_id", p.UserID).Int64("task", task.TaskUID).Msg("indexed profile")
	return nil
}

func (s *meiliSearch) IndexResource(r *entity.Resource) error {
	doc := meiliResourceDoc{
		ID:          r.ID,
		Title:       r.Title,
		Description: s.cleanText(r.Description),
		Type:        string(r.Type),
		Module:      stringOrEmpty(r.Module),
	}
	task, err := s.client.Index(indexResources).AddDocuments([]meiliResourceDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	logger.Debug().Str("resource_id", r.ID).Int64("task", task.TaskUID).Msg("indexed resource")
	return nil
}

func (s *meiliSearch) SearchProfiles(ctx context.Context, query string) ([]string, error) {
	return s.search(ctx, indexProfiles, query)
}

func (s *meiliSearch) SearchResources(ctx context.Context, query string) ([]string, error) {
	return s.search(ctx, indexResources, query)
}

type meiliHits struct {
	Hits []struct {
		ID string `json:"id"`
	} `json:"hits"`
}

func (s *meiliSearch) search(ctx context.Context, index, query string) ([]string, error) {
	raw, err := s.client.Index(index).SearchRawWithContext(ctx, query, &meilisearch.SearchRequest{
		Limit:                searchLimit,
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, fmt.Errorf("meilisearch %s: %w", index, err)
	}

	var resp meiliHits
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("decode meilisearch %s hits: %w", index, err)
	}
	ids := make([]string, len(resp.Hits))
	for i, h := range resp.Hits {
		ids[i] = h.ID
	}
	return ids, nil
}

// storeSearch answers from the database with LIKE matching when no search
// engine is configured.
type storeSearch struct {
	store Store
}

func NewStoreSearch(store Store) Search {
	return &storeSearch{store: store}
}

func (s *storeSearch) IndexProfile(*entity.Profile) error   { return nil }
func (s *storeSearch) IndexResource(*entity.Resource) error { return nil }

func (s *storeSearch) SearchProfiles(ctx context.Context, query string) ([]string, error) {
	profiles, err := s.store.SearchProfiles(ctx, query)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.UserID
	}
	return ids, nil
}

func (s *storeSearch) SearchResources(ctx context.Context, query string) ([]string, error) {
	resources, err := s.store.ListResources(ctx, ResourceFilter{Query: query})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	return ids, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}

// IndexAll pushes every profile and resource into search. Used at startup
// so seeded or migrated rows are searchable.
func IndexAll(ctx context.Context, store Store, search Search) error {
	profiles, err := store.SearchProfiles(ctx, "")
	if err != nil {
		return err
	}
	for i := range profiles {
		if err := search.IndexProfile(&profiles[i]); err != nil {
			return err
		}
	}

	resources, err := store.ListResources(ctx, ResourceFilter{})
	if err != nil {
		return err
	}
	for i := range resources {
		if err := search.IndexResource(&resources[i]); err != nil {
			return err
		}
	}
	return nil
}
