// Package scam provides the URL-scheduling core of a web crawler.
// It decides, for a pool of concurrent fetchers, which URL to visit next
// using either a deduplicating FIFO frontier or a Mercator-style
// front-queue/back-queue priority frontier.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., bloom/, goquery/, snowball/).
package scam

// UserAgent identifies the crawler in outbound requests.
const UserAgent = "scam agent"
