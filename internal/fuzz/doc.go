// Package fuzztests houses Go fuzz harnesses for the tokenizer and the
// aligner. They feed arbitrary text through sequence construction and
// alignment and check the structural invariants of the results.
//
// Назначение: ловить паники и нарушения инвариантов на произвольном вводе.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/sequence, internal/align, internal/lexer, internal/testkit.
package fuzztests
