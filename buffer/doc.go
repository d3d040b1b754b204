// Package buffer implements the token-aware text model for tokenfield.
//
// Locations are 0-based indices of extended grapheme clusters, so an emoji
// modifier sequence counts as one position. Spans are half-open:
// [Location, Location+Length).
//
// Besides text, the buffer stores an ordered set of disjoint attribute runs.
// Two attributes carry meaning: AttrToken marks an atomic token (its value is
// the token reference) and AttrInput marks the composition anchor and the
// composition input text.
package buffer
