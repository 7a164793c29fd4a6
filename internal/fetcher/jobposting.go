package fetcher

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// site holds the selectors for a job board whose markup we know.
type site struct {
	host    string
	title   string
	content string
}

var sites = []site{
	{host: "linkedin.com", title: "h1.top-card-layout__title, h1", content: "div.show-more-less-html__markup, div.description__text"},
	{host: "greenhouse.io", title: "h1.app-title, h1.section-header, h1", content: "div#content, div.job__description"},
	{host: "lever.co", title: "div.posting-headline h2, h2", content: "div[data-qa='job-description'], div.section-wrapper.page-full-width"},
	{host: "ashbyhq.com", title: "h1", content: "div[class*='descriptionText'], div._description"},
	{host: "workable.com", title: "h1", content: "section[data-ui='job-description'], div[data-ui='job-description']"},
}

var genericContent = "main article, article, main, div[role='main'], div.job-description, div#job-description, body"

type ldJobPosting struct {
	Type        any    `json:"@type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// extractPosting prefers schema.org JobPosting metadata, then selectors for
// known boards, then the page's main content.
func extractPosting(doc *goquery.Document, host string) *JobPosting {
	if p := fromJSONLD(doc); p != nil {
		return p
	}

	doc.Find("script, style, noscript, nav, header, footer, form, iframe, .ad, .advertisement").Remove()

	titleSel, contentSel := "h1", genericContent
	for _, s := range sites {
		if strings.HasSuffix(host, s.host) {
			titleSel, contentSel = s.title, s.content
			break
		}
	}

	title := cleanText(doc.Find(titleSel).First().Text())
	if title == "" {
		title = cleanText(doc.Find("title").First().Text())
	}
	return &JobPosting{Title: title, Text: contentText(doc.Find(contentSel).First())}
}

func fromJSONLD(doc *goquery.Document) *JobPosting {
	var found *JobPosting
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		var candidates []ldJobPosting
		if strings.HasPrefix(raw, "[") {
			_ = json.Unmarshal([]byte(raw), &candidates)
		} else {
			var one ldJobPosting
			if json.Unmarshal([]byte(raw), &one) == nil {
				candidates = append(candidates, one)
			}
		}
		for _, c := range candidates {
			if isJobPosting(c.Type) && c.Description != "" {
				text := c.Description
				if inner, err := goquery.NewDocumentFromReader(strings.NewReader(c.Description)); err == nil {
					text = contentText(inner.Selection)
				}
				found = &JobPosting{Title: cleanText(c.Title), Text: text}
				return false
			}
		}
		return true
	})
	return found
}

func isJobPosting(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, x := range v {
			if s, ok := x.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

// contentText keeps block structure: one paragraph, heading or list item
// per line. Falls back to the selection's raw text.
func contentText(sel *goquery.Selection) string {
	var parts []string
	sel.Find("p, h1, h2, h3, h4, li, pre").Each(func(_ int, s *goquery.Selection) {
		if s.Find("p, li").Length() > 0 {
			return
		}
		if text := cleanText(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return cleanText(sel.Text())
	}
	return strings.Join(parts, "\n")
}

var (
	spaceRun   = regexp.MustCompile(`[ \t\x{00a0}]+`)
	newlineRun = regexp.MustCompile(`\n+`)
)

// cleanText removes excessive whitespace and newlines
func cleanText(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n")

	lines := strings.Split(text, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, "\n")
}
