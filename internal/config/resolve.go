package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveBaseURL returns BaseURL as an absolute URL, resolving a
// page-relative base such as "/api" against PageURL.
func (a APIConfig) ResolveBaseURL() (string, error) {
	base, err := url.Parse(a.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse api.base_url: %w", err)
	}
	if base.IsAbs() {
		return strings.TrimRight(base.String(), "/"), nil
	}

	page, err := url.Parse(a.PageURL)
	if err != nil {
		return "", fmt.Errorf("parse api.page_url: %w", err)
	}
	if !page.IsAbs() || page.Host == "" {
		return "", fmt.Errorf("api.base_url %q is relative and api.page_url %q is not absolute", a.BaseURL, a.PageURL)
	}
	return strings.TrimRight(page.ResolveReference(base).String(), "/"), nil
}
