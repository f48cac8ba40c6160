package news

import (
	"context"
	"log"

	"github.com/mmcdole/gofeed"
)

// MaxItems caps the digest length per render.
const MaxItems = 5

// publishedWidth truncates the feed's published string for display.
const publishedWidth = 16

// Item is one headline entry from the configured feed.
type Item struct {
	Title     string
	Link      string
	Published string
}

// Client fetches a fixed RSS feed and reduces it to a short headline digest.
type Client struct {
	feedURL string
	parser  *gofeed.Parser
}

func NewClient(feedURL string) *Client {
	return &Client{
		feedURL: feedURL,
		parser:  gofeed.NewParser(),
	}
}

// Latest returns up to MaxItems entries. It never fails: any fetch or parse
// problem is logged and degrades to an empty digest.
func (c *Client) Latest(ctx context.Context) []Item {
	feed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		log.Printf("[WARN] news feed fetch failed: %v", err)
		return nil
	}

	items := make([]Item, 0, MaxItems)
	for _, entry := range feed.Items {
		if len(items) == MaxItems {
			break
		}
		published := entry.Published
		if len(published) > publishedWidth {
			published = published[:publishedWidth]
		}
		items = append(items, Item{
			Title:     entry.Title,
			Link:      entry.Link,
			Published: published,
		})
	}
	return items
}
