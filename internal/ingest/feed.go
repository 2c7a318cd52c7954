package ingest

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	apperrors "nlp-dashboard/internal/common/errors"
	commonhttp "nlp-dashboard/internal/common/http"
)

const (
	// Elements whose bodies are never article text.
	droppedElements = "script, style, noscript, template, iframe"
	// Elements that separate words when flattened to text.
	blockElements = "br, p, div, li, tr, td, th, h1, h2, h3, h4, h5, h6, blockquote, pre, section, article, header, footer"
)

// FetchFeed downloads an RSS or Atom feed and turns each item into a record. Item content
// is preferred over the description; markup is stripped.
func FetchFeed(ctx context.Context, client *commonhttp.Client, url string) ([]Record, error) {
	parser := gofeed.NewParser()
	parser.Client = client.Standard()

	feed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, apperrors.NewFeedFetchFailedError(url, err)
	}
	return FeedRecords(feed), nil
}

// FeedRecords maps parsed feed items to article records.
func FeedRecords(feed *gofeed.Feed) []Record {
	records := make([]Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		body := item.Content
		if strings.TrimSpace(body) == "" {
			body = item.Description
		}
		records = append(records, Record{
			"title": plainText(item.Title),
			"text":  plainText(body),
			"url":   strings.TrimSpace(item.Link),
		})
	}
	return records
}

// plainText parses s as an HTML fragment and returns its visible text with whitespace
// collapsed. Entities are decoded by the parser.
func plainText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	doc.Find(droppedElements).Remove()
	doc.Find(blockElements).Each(func(_ int, sel *goquery.Selection) {
		sel.AppendNodes(&html.Node{Type: html.TextNode, Data: " "})
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}
