package connection

import (
	"fmt"
	"net/url"
	"strings"
)

// WSPathPrefix is the server route for live channels.
const WSPathPrefix = "/notepad/ws/"

// BuildWSURL derives the live channel URL for docID.
//
// The host is wsHost when set, else the API base host, else the page host
// (for a relative API base such as "/api"). The scheme is wss when either
// the API base or the page is served over https.
func BuildWSURL(apiBase, pageURL, wsHost, docID string) (string, error) {
	if docID == "" {
		return "", ErrEmptyDocID
	}

	base, err := url.Parse(apiBase)
	if err != nil {
		return "", fmt.Errorf("parse api base %q: %w", apiBase, err)
	}

	var page *url.URL
	if pageURL != "" {
		page, err = url.Parse(pageURL)
		if err != nil {
			return "", fmt.Errorf("parse page url %q: %w", pageURL, err)
		}
	}

	host := ""
	secure := false
	if base.Host != "" {
		host = base.Host
		secure = base.Scheme == "https"
	}
	if page != nil {
		if host == "" {
			host = page.Host
		}
		secure = secure || page.Scheme == "https"
	}
	if h := strings.TrimSpace(wsHost); h != "" {
		host = h
	}
	if host == "" {
		return "", fmt.Errorf("no websocket host: api base %q is relative and no page url is set", apiBase)
	}

	scheme := "ws"
	if secure {
		scheme = "wss"
	}

	u := url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   WSPathPrefix + docID,
	}
	return u.String(), nil
}
