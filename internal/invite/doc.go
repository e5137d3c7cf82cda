// Package invite renders the templated HTML invitation for a home match
// and stores it as a draft via the webmail API.
//
// The drafter substitutes date, opponent, and map-link placeholders in the
// template, inlines both team logos and the local ground-map image as
// base64 data (falling back to the remote URL when a logo fetch fails),
// attaches an iCalendar invite, and hands the assembled message to the
// draft store. It also computes the intended send time (the configured
// weekday before the game) purely for the operator's reference.
package invite
