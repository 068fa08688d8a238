package robots

import "testing"

func TestEvaluate(t *testing.T) {
	raw := []byte(`User-agent: *
Disallow: /private
Allow: /private/open

User-agent: strictbot
Disallow: /
`)

	testCases := []struct {
		agent string
		path  string
		want  bool
	}{
		{"somebot", "/", true},
		{"somebot", "/private/data", false},
		{"somebot", "/private/open/x", true},
		{"somebot", "sitemap.xml", true},
		{"strictbot", "/", false},
	}

	for _, tc := range testCases {
		verdicts, err := Evaluate(raw, tc.agent, []string{tc.path})
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if len(verdicts) != 1 {
			t.Fatalf("len(verdicts) = %d, want 1", len(verdicts))
		}
		if verdicts[0].Allowed != tc.want {
			t.Errorf("%s %s: Allowed = %v, want %v", tc.agent, tc.path, verdicts[0].Allowed, tc.want)
		}
		if verdicts[0].Path[0] != '/' {
			t.Errorf("Path = %q, want leading slash", verdicts[0].Path)
		}
	}
}

func TestEvaluate_Empty(t *testing.T) {
	verdicts, err := Evaluate(nil, "bot", []string{"/anything"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !verdicts[0].Allowed {
		t.Error("empty robots.txt should allow everything")
	}
}
