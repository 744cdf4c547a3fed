// Package scraper fetches Wikipedia articles and reduces them to plain
// text, section headings, and naive key entities.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

var (
	// ErrFetchFailed marks failures to retrieve the page at all.
	ErrFetchFailed = domain.ErrArticleUnreachable
	// ErrContentNotFound means the page has no article body.
	ErrContentNotFound = errors.New("Wikipedia page content not found")
)

const (
	defaultTitle     = "Untitled"
	titleSelector    = "h1#firstHeading"
	contentSelector  = "#mw-content-text"
	noiseSelector    = "table, style, script, .toc, .reference, sup"
	blockSelector    = "h2, h3, p"
	minEntityRunes   = 4
	paragraphDivider = "\n\n"
)

var trailingBracket = regexp.MustCompile(`\[.*?\]$`)

type WikipediaScraper struct {
	client    *http.Client
	userAgent string
}

// NewWikipediaScraper builds a scraper. A nil client gets one with the
// configured timeout.
func NewWikipediaScraper(cfg config.ScraperConfig, client *http.Client) *WikipediaScraper {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &WikipediaScraper{client: client, userAgent: cfg.UserAgent}
}

func (s *WikipediaScraper) Scrape(ctx context.Context, url string) (*domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	article, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	article.URL = url

	logger.Get().Debug("Scraped article",
		zap.String("url", url),
		zap.String("title", article.Title),
		zap.Int("sections", len(article.Sections)),
		zap.Int("content_length", len(article.Content)),
	)
	return article, nil
}

// Parse extracts an article from a Wikipedia HTML document. URL is left
// empty.
func Parse(r io.Reader) (*domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := defaultTitle
	if h := doc.Find(titleSelector).First(); h.Length() > 0 {
		if t := strings.TrimSpace(h.Text()); t != "" {
			title = t
		}
	}

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, ErrContentNotFound
	}
	content.Find(noiseSelector).Remove()

	sections := []string{}
	var blocks []string
	content.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		text := collapse(sel.Text())
		if goquery.NodeName(sel) == "p" {
			if text != "" {
				blocks = append(blocks, text)
			}
			return
		}
		sections = append(sections, trailingBracket.ReplaceAllString(text, ""))
	})

	text := strings.Join(blocks, paragraphDivider)
	return &domain.Article{
		Title:       title,
		Content:     text,
		Sections:    sections,
		KeyEntities: extractEntities(text),
	}, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractEntities collects title-case words longer than three characters.
// Everything lands in People; there is no real classifier behind it.
func extractEntities(text string) domain.KeyEntities {
	entities := domain.KeyEntities{
		People:        []string{},
		Organizations: []string{},
		Locations:     []string{},
	}
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) < minEntityRunes || !isTitleCase(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		entities.People = append(entities.People, word)
	}
	return entities
}

// isTitleCase reports whether upper-case letters only follow uncased
// characters and lower-case letters only follow cased ones, with at least
// one cased letter.
func isTitleCase(word string) bool {
	cased, prevCased := false, false
	for _, r := range word {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased, cased = true, true
		default:
			prevCased = false
		}
	}
	return cased
}
