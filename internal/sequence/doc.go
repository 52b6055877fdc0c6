// Package sequence holds the ordered token container used on both sides of an
// alignment.
//
// A Sequence owns its tokens exclusively: every structural mutation goes
// through Insert, Append, InsertText or InsertChar, each of which reindexes the
// whole sequence and drops the cached flat string. Index is the dense range
// 0..n-1 in slice order and Start is the rune offset of the token in String().
//
// The separator placed before a token t is decided against p, the nearest
// preceding token that is not a Spacer. No separator is written when there is
// no p, when t is Whitespace, Punctuation or Spacer, when either t or p is
// layout (non-empty whitespace-only text), or when p is an opening mark.
// Otherwise a single space is written.
package sequence
