package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Social platforms recognized when probing a website for profile links.
var socialHosts = []string{
	"linkedin.com",
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"youtube.com",
	"tiktok.com",
}

// SitePresence holds facts observed directly on a company website. These
// are inputs for digital-presence assessment, not generated content.
type SitePresence struct {
	URL         string
	Title       string
	Description string
	SocialLinks []string
	Generator   string // CMS/framework hint from the generator meta tag
}

// SiteProber fetches a company website and extracts presence signals.
type SiteProber struct {
	HTTPClient *http.Client
}

// NewSiteProber creates a prober using the given HTTP client, or
// http.DefaultClient when nil.
func NewSiteProber(client *http.Client) *SiteProber {
	if client == nil {
		client = http.DefaultClient
	}
	return &SiteProber{HTTPClient: client}
}

// Probe fetches siteURL and extracts title, meta description, a CMS hint
// and any social profile links found in the page.
func (p *SiteProber) Probe(ctx context.Context, siteURL string) (*SitePresence, error) {
	if !strings.HasPrefix(siteURL, "http://") && !strings.HasPrefix(siteURL, "https://") {
		siteURL = "https://" + siteURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch site: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("site returned status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	presence := &SitePresence{URL: siteURL}
	presence.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		switch strings.ToLower(name) {
		case "description":
			presence.Description = strings.TrimSpace(content)
		case "generator":
			presence.Generator = strings.TrimSpace(content)
		}
	})

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		for _, host := range socialHosts {
			if strings.Contains(href, host) && !seen[href] {
				seen[href] = true
				presence.SocialLinks = append(presence.SocialLinks, href)
				break
			}
		}
	})

	return presence, nil
}

// Facts renders the presence as bullet text for inclusion in a prompt.
func (s *SitePresence) Facts() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- Website: %s\n", s.URL)
	if s.Title != "" {
		fmt.Fprintf(&sb, "- Page title: %s\n", s.Title)
	}
	if s.Description != "" {
		fmt.Fprintf(&sb, "- Meta description: %s\n", s.Description)
	}
	if s.Generator != "" {
		fmt.Fprintf(&sb, "- Built with: %s\n", s.Generator)
	}
	if len(s.SocialLinks) > 0 {
		fmt.Fprintf(&sb, "- Social profiles linked: %s\n", strings.Join(s.SocialLinks, ", "))
	} else {
		sb.WriteString("- No social profiles linked from the website\n")
	}
	return sb.String()
}
