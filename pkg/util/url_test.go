package util_test

import (
	"testing"

	"github.com/WangYihang/site-probe/pkg/util"
)

func TestJoinPath(t *testing.T) {
	testCases := []struct {
		base     string
		path     string
		expected string
	}{
		{"https://example.com/", "/sitemap.xml", "https://example.com/sitemap.xml"},
		{"https://example.com", "sitemap.xml", "https://example.com/sitemap.xml"},
		{"https://example.com", "/sitemap.xml", "https://example.com/sitemap.xml"},
		{"https://example.com/", "sitemap.xml", "https://example.com/sitemap.xml"},
		{"https://example.com//", "//sitemaps/index.xml", "https://example.com/sitemaps/index.xml"},
		{"https://example.com/blog", "sitemap.xml", "https://example.com/blog/sitemap.xml"},
		{"https://example.com", "", "https://example.com/"},
	}
	for _, tc := range testCases {
		got := util.JoinPath(tc.base, tc.path)
		t.Logf("util.JoinPath(%s, %s) = %v", tc.base, tc.path, got)
		if got != tc.expected {
			t.Errorf("Expected %s but got %s", tc.expected, got)
		}
	}
}

func TestRobotsURL(t *testing.T) {
	if got := util.RobotsURL("https://example.com/"); got != "https://example.com/robots.txt" {
		t.Errorf("Expected https://example.com/robots.txt but got %s", got)
	}
}
