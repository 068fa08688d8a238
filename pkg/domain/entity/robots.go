package entity

// AgentRules holds the allow and disallow patterns of one user-agent group,
// in file order
type AgentRules struct {
	Allow    []string `json:"allow"`
	Disallow []string `json:"disallow"`
}

// RobotsDocument is the structured form of a robots.txt file
type RobotsDocument struct {
	Sitemaps []string               `json:"sitemaps"`
	Rules    map[string]*AgentRules `json:"rules"`
	// Agents lists the keys of Rules in first-seen order
	Agents []string `json:"agents"`
}

// AgentVerdict tells whether an agent may fetch a path
type AgentVerdict struct {
	Agent   string `json:"agent"`
	Path    string `json:"path"`
	Allowed bool   `json:"allowed"`
}

// RobotsFailure explains why no document could be produced
type RobotsFailure struct {
	Kind       FailureKind `json:"kind"`
	StatusCode int         `json:"status_code,omitempty"`
	Message    string      `json:"message"`
}

// RobotsReport is either a parsed document or a failure
type RobotsReport struct {
	URL      string          `json:"url"`
	Document *RobotsDocument `json:"document,omitempty"`
	Verdicts []AgentVerdict  `json:"verdicts,omitempty"`
	Failure  *RobotsFailure  `json:"failure,omitempty"`
}
