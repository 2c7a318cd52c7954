package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "nlp-dashboard/internal/common/errors"
	"nlp-dashboard/internal/models"
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"number": {"type": "integer"},
			"title":  {"type": "text"},
			"text":   {"type": "text"},
			"url":    {"type": "keyword"}
		}
	}
}`

// ElasticsearchStore keeps articles as documents in a single index, keyed by a "number" field.
type ElasticsearchStore struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchStore(client *elasticsearch.Client, index string) *ElasticsearchStore {
	return &ElasticsearchStore{client: client, index: index}
}

func (s *ElasticsearchStore) EnsureSchema(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return apperrors.NewElasticsearchConnectionFailedError(err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return apperrors.NewElasticsearchConnectionFailedError(fmt.Errorf("create index: %s", res.String()))
	}
	return nil
}

func (s *ElasticsearchStore) Count(ctx context.Context) (int, error) {
	res, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(s.index),
	)
	if err != nil {
		return 0, apperrors.NewArticleCountFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return 0, apperrors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return 0, apperrors.NewArticleCountFailedError(fmt.Errorf("count: %s", res.String()))
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, apperrors.NewArticleCountFailedError(err)
	}
	return body.Count, nil
}

func (s *ElasticsearchStore) Get(ctx context.Context, number int) (*models.Article, error) {
	query := map[string]interface{}{
		"size": 1,
		"query": map[string]interface{}{
			"term": map[string]interface{}{"number": number},
		},
	}
	body, _ := json.Marshal(query)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, apperrors.NewArticleLookupFailedError(number, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, apperrors.NewArticleLookupFailedError(number, fmt.Errorf("search: %s", res.String()))
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source models.Article `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, apperrors.NewArticleLookupFailedError(number, err)
	}
	if len(result.Hits.Hits) == 0 {
		return nil, apperrors.NewArticleNotFoundError(number)
	}

	a := result.Hits.Hits[0].Source
	return &a, nil
}

func (s *ElasticsearchStore) Upsert(ctx context.Context, a models.Article) error {
	body, err := json.Marshal(a)
	if err != nil {
		return apperrors.NewArticleStoreFailedError(a.Number, err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: strconv.Itoa(a.Number),
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return apperrors.NewArticleStoreFailedError(a.Number, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewArticleStoreFailedError(a.Number, fmt.Errorf("index: %s", res.String()))
	}
	return nil
}
