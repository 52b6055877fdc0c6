// Package token defines the lexical units of the text model and their kinds.
// Invariants:
//   - Kind is a closed set; Classify is the only place text is mapped to a Kind.
//   - Spacer tokens carry empty Text and describe a gap through Padding only.
//   - Two tokens are equal when their Text is equal; kind, position and
//     annotations never take part in equality.
//   - Original is a detached snapshot. It is read, never written through.
package token
