// Package lyrics normalizes raw lyrics text and aligns two languages line by line.
//
// # Normalization
//
// A [Profile] is an ordered list of [Step] line transforms plus a list of drop rules.
// [Profile.Lines] splits text on either line-ending convention, runs every step in order on each line, trims it,
// and discards lines that end up empty or match a drop rule. The step order is part of the contract:
// annotations are removed before punctuation so that no half of an annotation survives.
//
// Two profiles are provided:
//   - [LyricsProfile] : strips annotations, quotes, numbers, slashes, dashes, commas and periods
//   - [TranslationProfile] : keeps text as-is but drops numeric lines, reference markers and classification codes
//
// # Alignment
//
// [Merge] pairs two line sequences strictly by position, padding the shorter one with empty lines.
// Mismatched line counts are not detected or corrected.
//
// All functions in this package are pure and safe for concurrent use.
package lyrics
