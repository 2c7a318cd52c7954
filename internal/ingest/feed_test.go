package ingest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "nlp-dashboard/internal/common/errors"
	commonhttp "nlp-dashboard/internal/common/http"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>Go News</title>
  <item>
    <title>Go 1.24 &amp; friends</title>
    <link> https://go.dev/blog/go1.24 </link>
    <description>Short summary.</description>
    <content:encoded><![CDATA[<p>Generic <b>type</b> aliases are here.</p>]]></content:encoded>
  </item>
  <item>
    <title>Only a description</title>
    <link>https://go.dev/blog/other</link>
    <description>&lt;p&gt;Plain description.&lt;/p&gt;</description>
  </item>
</channel>
</rss>`

func TestFetchFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		io.WriteString(w, rssFixture)
	}))
	defer srv.Close()

	records, err := FetchFeed(context.Background(), commonhttp.NewClient(5*time.Second), srv.URL)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{
		"title": "Go 1.24 & friends",
		"text":  "Generic type aliases are here.",
		"url":   "https://go.dev/blog/go1.24",
	}, records[0])
	assert.Equal(t, "Plain description.", records[1]["text"])

	assert.True(t, Validate(records).Skipped == 0)
}

func TestFetchFeed_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := FetchFeed(context.Background(), commonhttp.NewClient(5*time.Second), srv.URL)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeFeedFetchFailed))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"block elements separate words", "<p>a</p>\t<p>b</p>", "a b"},
		{"entities decoded", "Tom &amp; Jerry", "Tom & Jerry"},
		{"comparison operators kept", "<p>if x < y and y > z then</p>", "if x < y and y > z then"},
		{"script and style bodies dropped", "<script>var a=1;</script><style>p{}</style>Body", "Body"},
		{"inline markup joins words", "Go<b>pher</b>s<br>dig", "Gophers dig"},
		{"plain text untouched", "  already   plain  ", "already plain"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plainText(tt.in))
		})
	}
}

func TestFeedRecords_DropsScriptFromContent(t *testing.T) {
	records := FeedRecords(&gofeed.Feed{Items: []*gofeed.Item{
		nil,
		{
			Title:   "Tracked",
			Link:    "https://example.com/a",
			Content: `<div><script>track("a")</script><p>Real text.</p></div>`,
		},
	}})

	require.Len(t, records, 1)
	assert.Equal(t, "Real text.", records[0]["text"])
}
