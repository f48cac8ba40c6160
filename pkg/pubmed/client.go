package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultSearchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	defaultFetchURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

	// MaxResults caps one query at the source, sorted by relevance.
	MaxResults = 5

	unknownYear         = "????"
	abstractPlaceholder = "No abstract available."
)

// ErrNoResults reports that the search matched zero articles. It is an
// informational outcome, not a transport or parse failure.
var ErrNoResults = errors.New("no matching articles found")

// Article is normalized literature metadata for a single PubMed record.
type Article struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Year     string `json:"year"`
	Link     string `json:"link"`
}

// Client queries the NCBI E-utilities esearch/efetch endpoints.
type Client struct {
	SearchURL  string
	FetchURL   string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		SearchURL:  defaultSearchURL,
		FetchURL:   defaultFetchURL,
		HTTPClient: &http.Client{},
	}
}

// BuildTerm appends a publication-date filter to the query. Both bounds give a
// closed range; a start year alone leaves the upper bound open via a sentinel.
// An end year alone is ignored, matching the form's intended usage.
func BuildTerm(query, startYear, endYear string) string {
	switch {
	case startYear != "" && endYear != "":
		return fmt.Sprintf("%s AND %s:%s[pdat]", query, startYear, endYear)
	case startYear != "":
		return fmt.Sprintf("%s AND %s:3000[pdat]", query, startYear)
	default:
		return query
	}
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type efetchDocument struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []efetchArticle `xml:"PubmedArticle"`
}

type efetchArticle struct {
	PMIDs     []string `xml:"MedlineCitation>PMID"`
	Title     string   `xml:"MedlineCitation>Article>ArticleTitle"`
	Abstracts []string `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	Year      string   `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate>Year"`
}

// Search runs esearch then efetch and returns at most MaxResults articles in
// source relevance order. Zero matches yield ErrNoResults; any transport or
// decode failure is returned wrapped, never panics.
func (c *Client) Search(ctx context.Context, query, startYear, endYear string) ([]Article, error) {
	term := BuildTerm(query, startYear, endYear)

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", term)
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprintf("%d", MaxResults))
	params.Set("sort", "relevance")

	var search esearchResponse
	if err := c.getJSON(ctx, c.SearchURL, params, &search); err != nil {
		return nil, fmt.Errorf("pubmed search: %w", err)
	}

	idList := search.ESearchResult.IDList
	if len(idList) == 0 {
		return nil, ErrNoResults
	}

	fetchParams := url.Values{}
	fetchParams.Set("db", "pubmed")
	fetchParams.Set("id", strings.Join(idList, ","))
	fetchParams.Set("retmode", "xml")

	doc, err := c.getXML(ctx, c.FetchURL, fetchParams)
	if err != nil {
		return nil, fmt.Errorf("pubmed fetch: %w", err)
	}

	articles := make([]Article, 0, len(doc.Articles))
	for _, art := range doc.Articles {
		abstract := abstractPlaceholder
		if len(art.Abstracts) > 0 {
			abstract = strings.Join(art.Abstracts, " ")
		}
		year := art.Year
		if year == "" {
			year = unknownYear
		}
		pmid := ""
		if len(art.PMIDs) > 0 {
			pmid = art.PMIDs[0]
		}
		articles = append(articles, Article{
			Title:    art.Title,
			Abstract: abstract,
			Year:     year,
			Link:     fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
		})
	}
	return articles, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *Client) getXML(ctx context.Context, endpoint string, params url.Values) (*efetchDocument, error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	var doc efetchDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}
	return io.ReadAll(resp.Body)
}
