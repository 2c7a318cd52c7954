package analysis

import (
	"context"
	"fmt"
	"time"

	language "google.golang.org/api/language/v1"
	"google.golang.org/api/option"

	"nlp-dashboard/internal/common/config"
)

const (
	documentType = "PLAIN_TEXT"
	encodingType = "UTF8"
)

// LanguageClient talks to the Cloud Natural Language REST API.
type LanguageClient struct {
	svc     *language.Service
	timeout time.Duration
}

// NewLanguageClient authenticates with the configured API key, then the credentials file,
// then application default credentials. extra options are appended last.
func NewLanguageClient(ctx context.Context, cfg config.LanguageConfig, extra ...option.ClientOption) (*LanguageClient, error) {
	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	opts = append(opts, extra...)

	svc, err := language.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create language service: %w", err)
	}
	return &LanguageClient{svc: svc, timeout: config.GetDuration(cfg.Timeout)}, nil
}

func (c *LanguageClient) AnalyzeSentiment(ctx context.Context, text string) (RawSentiment, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.svc.Documents.AnalyzeSentiment(&language.AnalyzeSentimentRequest{
		Document:     document(text),
		EncodingType: encodingType,
	}).Context(ctx).Do()
	if err != nil {
		return RawSentiment{}, err
	}

	out := RawSentiment{Sentences: make([]RawSentence, 0, len(resp.Sentences))}
	if resp.DocumentSentiment != nil {
		out.Score = resp.DocumentSentiment.Score
		out.Magnitude = resp.DocumentSentiment.Magnitude
	}
	for _, s := range resp.Sentences {
		if s == nil {
			continue
		}
		var row RawSentence
		if s.Text != nil {
			row.Text = s.Text.Content
		}
		if s.Sentiment != nil {
			row.Score = s.Sentiment.Score
			row.Magnitude = s.Sentiment.Magnitude
		}
		out.Sentences = append(out.Sentences, row)
	}
	return out, nil
}

func (c *LanguageClient) AnalyzeEntities(ctx context.Context, text string) ([]RawEntity, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.svc.Documents.AnalyzeEntities(&language.AnalyzeEntitiesRequest{
		Document:     document(text),
		EncodingType: encodingType,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	out := make([]RawEntity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		if e == nil {
			continue
		}
		out = append(out, RawEntity{Name: e.Name, Type: e.Type, Salience: e.Salience})
	}
	return out, nil
}

func (c *LanguageClient) ClassifyText(ctx context.Context, text string) ([]RawCategory, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.svc.Documents.ClassifyText(&language.ClassifyTextRequest{
		Document: document(text),
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	out := make([]RawCategory, 0, len(resp.Categories))
	for _, cat := range resp.Categories {
		if cat == nil {
			continue
		}
		out = append(out, RawCategory{Name: cat.Name, Confidence: cat.Confidence})
	}
	return out, nil
}

func (c *LanguageClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func document(text string) *language.Document {
	return &language.Document{Type: documentType, Content: text}
}
