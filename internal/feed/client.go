// Package feed ingests scene-release RSS feeds into the release store.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client fetches one RSS feed.
type Client struct {
	name       string
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// Item is one entry from a feed.
type Item struct {
	Title       string
	GUID        string
	Link        string
	Size        int64 // bytes
	PublishedAt time.Time
}

// NewClient creates a feed client.
func NewClient(name, feedURL string, log *slog.Logger) *Client {
	var clientLog *slog.Logger
	if log != nil {
		clientLog = log.With("component", "feed", "feed", name)
	}
	return &Client{
		name: name,
		url:  strings.TrimSuffix(feedURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: clientLog,
	}
}

// Name returns the feed name.
func (c *Client) Name() string {
	return c.name
}

// RSS response structures. The newznab attribute namespace carries the
// release size on indexer feeds that omit the enclosure length.
type rssResponse struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title     string        `xml:"title"`
	GUID      string        `xml:"guid"`
	Link      string        `xml:"link"`
	Size      int64         `xml:"size"`
	PubDate   string        `xml:"pubDate"`
	Enclosure rssEnclosure  `xml:"enclosure"`
	Attrs     []newznabAttr `xml:"http://www.newznab.com/DTD/2010/feeds/attributes/ attr"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
}

type newznabAttr struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// Fetch downloads and parses the feed.
func (c *Client) Fetch(ctx context.Context) ([]Item, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var rss rssResponse
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]Item, 0, len(rss.Channel.Items))
	for _, ri := range rss.Channel.Items {
		item := Item{
			Title: ri.Title,
			GUID:  ri.GUID,
			Link:  ri.Link,
		}

		// A feed without explicit GUIDs still needs a stable identifier.
		if item.GUID == "" {
			item.GUID = ri.Link
		}
		if item.Link == "" && ri.Enclosure.URL != "" {
			item.Link = ri.Enclosure.URL
		}

		if ri.Enclosure.Length > 0 {
			item.Size = ri.Enclosure.Length
		} else if ri.Size > 0 {
			item.Size = ri.Size
		} else {
			for _, attr := range ri.Attrs {
				if attr.Name == "size" {
					item.Size, _ = strconv.ParseInt(attr.Value, 10, 64)
					break
				}
			}
		}

		item.PublishedAt = parsePubDate(ri.PubDate)
		items = append(items, item)
	}

	if c.log != nil {
		c.log.Debug("feed fetched", "items", len(items), "duration_ms", time.Since(start).Milliseconds())
	}
	return items, nil
}

// parsePubDate tries the date formats seen on real feeds.
func parsePubDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, format := range []string{
		time.RFC1123Z,
		"Mon, 02 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 MST",
		time.RFC1123,
	} {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
