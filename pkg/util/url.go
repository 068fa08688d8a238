package util

import "strings"

// JoinPath joins a base URL and a relative path with exactly one slash
// between them
func JoinPath(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// RobotsURL returns the robots.txt location for a base URL
func RobotsURL(base string) string {
	return JoinPath(base, "robots.txt")
}
