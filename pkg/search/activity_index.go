package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"

	"anoa.com/healthmanage/pkg/sanitize"
)

const activitiesIndex = "activities"

// ActivityDoc is the indexed form of a catalog activity.
type ActivityDoc struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	CaloriesBurned *float64 `json:"calories_burned,omitempty"`
}

// ActivityIndex keeps a full-text index of activities.
type ActivityIndex interface {
	Index(ctx context.Context, doc ActivityDoc) error
	Remove(ctx context.Context, id uuid.UUID) error
	// Search returns matching ids in relevance order. ok is false when
	// no index is configured and the caller should fall back to SQL.
	Search(ctx context.Context, query string, limit int) (ids []uuid.UUID, ok bool, err error)
}

type meiliActivityIndex struct {
	client meilisearch.ServiceManager
}

func NewMeiliActivityIndex(host, apiKey string) ActivityIndex {
	client := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	return &meiliActivityIndex{client: client}
}

// Setup declares the searchable attributes. Safe to call on every start.
func Setup(idx ActivityIndex) error {
	m, ok := idx.(*meiliActivityIndex)
	if !ok {
		return nil
	}
	searchable := []string{"name", "description"}
	if _, err := m.client.Index(activitiesIndex).UpdateSearchableAttributes(&searchable); err != nil {
		return fmt.Errorf("failed to update searchable attributes: %w", err)
	}
	return nil
}

func (m *meiliActivityIndex) Index(ctx context.Context, doc ActivityDoc) error {
	doc.Description = sanitize.PlainText(doc.Description)
	pk := "id"
	if _, err := m.client.Index(activitiesIndex).AddDocumentsWithContext(ctx, []ActivityDoc{doc}, &pk); err != nil {
		return fmt.Errorf("failed to index activity %s: %w", doc.ID, err)
	}
	return nil
}

func (m *meiliActivityIndex) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := m.client.Index(activitiesIndex).DeleteDocumentWithContext(ctx, id.String()); err != nil {
		return fmt.Errorf("failed to remove activity %s: %w", id, err)
	}
	return nil
}

func (m *meiliActivityIndex) Search(ctx context.Context, query string, limit int) ([]uuid.UUID, bool, error) {
	raw, err := m.client.Index(activitiesIndex).SearchRawWithContext(ctx, query, &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, true, fmt.Errorf("activity search failed: %w", err)
	}

	var resp struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, true, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if id, err := uuid.Parse(hit.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, true, nil
}

type noopIndex struct{}

// Noop is used when no search host is configured.
func Noop() ActivityIndex { return noopIndex{} }

func (noopIndex) Index(context.Context, ActivityDoc) error { return nil }
func (noopIndex) Remove(context.Context, uuid.UUID) error  { return nil }
func (noopIndex) Search(context.Context, string, int) ([]uuid.UUID, bool, error) {
	return nil, false, nil
}
