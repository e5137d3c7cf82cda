// Package scraper provides HTTP fetching and HTML parsing for the league
// fixtures page.
//
// The scraper fetches the public cricclubs fixtures page and extracts the
// upcoming home games for the configured team. The page structure (element
// and class names) is an implicit contract with the source site, so every
// heuristic failure is treated as a per-card skip rather than a hard error,
// and the whole extraction sits behind FetchFixtures so the brittle parts
// can be swapped or mocked without touching other components.
package scraper
