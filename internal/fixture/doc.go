// Package fixture defines the match record extracted from the league
// fixtures page, along with the date reconstruction and filtering rules
// that decide which fixtures get an invitation.
package fixture
