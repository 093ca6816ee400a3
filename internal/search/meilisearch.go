package search

import (
	"encoding/json"
	"strconv"

	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

// Client wraps the Meilisearch property index used by admin and
// property-manager search.
type Client struct {
	client *meilisearch.Client
	index  string
}

func NewClient(host, apiKey string) *Client {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &Client{
		client: client,
		index:  "properties",
	}
}

// InitIndex initializes the Meilisearch index
func (s *Client) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"name",
		"address",
		"description",
		"type",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"type",
		"featured",
		"landlordId",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"totalUnits",
		"availableUnits",
		"createdAt",
	})
	return err
}

// IndexProperty indexes a single property
func (s *Client) IndexProperty(property *models.Property) error {
	doc := *property
	doc.Landlord = nil
	doc.Units = nil
	_, err := s.client.Index(s.index).AddDocuments([]models.Property{doc})
	return err
}

// RemoveProperty removes a property from the index
func (s *Client) RemoveProperty(id uint) error {
	_, err := s.client.Index(s.index).DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

// Search searches the property index.
func (s *Client) Search(query string, limit int64) ([]models.Property, error) {
	if limit == 0 {
		limit = 20
	}

	res, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	properties := make([]models.Property, 0, len(res.Hits))
	for _, hit := range res.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var property models.Property
		if err := json.Unmarshal(raw, &property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	return properties, nil
}
