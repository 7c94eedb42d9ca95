// Package search indexes profile aggregates into Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// ProfileIndex keeps one document per user, keyed by user id.
type ProfileIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewProfileIndex(es *elasticsearch.Client, index string) *ProfileIndex {
	return &ProfileIndex{es: es, index: index}
}

type profileDoc struct {
	UserID         string   `json:"user_id"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Bio            string   `json:"bio"`
	GithubUsername string   `json:"githubusername"`
	Skills         []string `json:"skills"`
	UpdatedAt      string   `json:"updated_at"`
}

func (i *ProfileIndex) Index(ctx context.Context, p *entity.Profile, owner *entity.User) error {
	doc := profileDoc{
		UserID:         p.UserID,
		Status:         p.Status,
		Company:        p.Company,
		Location:       p.Location,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339Nano),
	}
	if owner != nil {
		doc.Name = owner.Name
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := esapi.IndexRequest{Index: i.index, DocumentID: p.UserID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index profile %s: %s", p.UserID, res.Status())
	}
	return nil
}

func (i *ProfileIndex) Delete(ctx context.Context, userID string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	req := esapi.DeleteRequest{Index: i.index, DocumentID: userID}
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete profile %s: %s", userID, res.Status())
	}
	return nil
}

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// Search returns the user ids of matching profiles, best match first.
func (i *ProfileIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	switch {
	case size <= 0:
		size = defaultSearchSize
	case size > maxSearchSize:
		size = maxSearchSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"skills^3", "status^2", "name^2", "company", "location", "bio", "githubusername"},
			},
		},
		"size":    size,
		"_source": []string{"user_id"},
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := i.es.Search(
		i.es.Search.WithContext(c),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search profiles: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.ID)
	}
	return out, nil
}
