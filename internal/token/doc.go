// Package token defines lexical token kinds and trivia for the class
// declaration language read by abstractc.
// Invariants:
//   - Token.Span matches Text exactly, except for backticked identifiers
//     whose Text omits the backticks.
//   - Attributes are lexed as '@' (Kind: At) + Ident; markers have no token kinds of their own.
//   - Declaration modifiers (public, override, final, ...) are identifiers;
//     the parser recognizes them.
//   - Newlines are trivia. Statement boundaries are derived from the
//     Leading trivia of the following token.
package token
