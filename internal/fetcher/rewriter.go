// SPDX-License-Identifier: MPL-2.0

package fetcher

import (
	"net/url"
	"strings"
)

// Rewriter converts a forge's human-facing file URL into the raw
// content URL behind it.
type Rewriter interface {
	// CanHandle reports whether this rewriter recognizes the host.
	CanHandle(u *url.URL) bool
	// Rewrite returns the raw content URL, or nil when the URL needs
	// no rewriting despite being on a handled host.
	Rewrite(u *url.URL) *url.URL
}

// GitHubRewriter turns github.com blob URLs into
// raw.githubusercontent.com URLs.
type GitHubRewriter struct{}

func (GitHubRewriter) CanHandle(u *url.URL) bool {
	return u.Host == "github.com"
}

func (GitHubRewriter) Rewrite(u *url.URL) *url.URL {
	if !strings.Contains(u.Path, "/blob/") {
		return nil
	}
	raw := *u
	raw.Host = "raw.githubusercontent.com"
	raw.Path = strings.Replace(u.Path, "/blob/", "/", 1)
	return &raw
}

// GitLabRewriter turns gitlab.com /-/blob/ URLs into /-/raw/ URLs.
type GitLabRewriter struct{}

func (GitLabRewriter) CanHandle(u *url.URL) bool {
	return u.Host == "gitlab.com"
}

func (GitLabRewriter) Rewrite(u *url.URL) *url.URL {
	if !strings.Contains(u.Path, "/-/blob/") {
		return nil
	}
	raw := *u
	raw.Path = strings.Replace(u.Path, "/-/blob/", "/-/raw/", 1)
	return &raw
}

var defaultRewriters = []Rewriter{GitHubRewriter{}, GitLabRewriter{}}

// NormalizeForgeURL rewrites u to its raw content form when a known
// forge rewriter applies, otherwise returns u unchanged.
func NormalizeForgeURL(u *url.URL) *url.URL {
	for _, rw := range defaultRewriters {
		if rw.CanHandle(u) {
			if rewritten := rw.Rewrite(u); rewritten != nil {
				return rewritten
			}
		}
	}
	return u
}
