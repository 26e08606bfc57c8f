// Package selections provides the handler for multi-selection commands.
//
// Pattern commands (select, split, keepMatching, clearMatching) bracket the
// prompt with the Awaiting mode. The handler enters Awaiting before asking
// for a pattern and always restores Normal before returning, whether the
// user submitted, cancelled, or an error occurred. A cancelled prompt yields
// a cancelled result and leaves the region set untouched.
//
// Actions:
//
//	selections.select        select every match inside each region
//	selections.split         split each region on matches
//	selections.splitLines    split multi-line regions into lines
//	selections.firstLast     reduce regions to their edge characters
//	selections.clear         keep only the primary region
//	selections.clearMain     drop the primary region
//	selections.keepMatching  keep regions whose text matches
//	selections.clearMatching drop regions whose text matches
package selections
