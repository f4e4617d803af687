// File: doc.go
// Title: Expression Parser Package Documentation
// Description: Tokenizer and recursive descent parser for arithmetic
//              expressions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parser implementation

/*
Package parser turns expression strings into ast trees.

The grammar, in order of increasing precedence:

	expression     = additive
	additive       = multiplicative { ("+" | "-") multiplicative }
	multiplicative = primary { ("*" | "/") primary }
	primary        = NUMBER

Numbers are runs of ASCII digits without a decimal point. Identifiers (a
letter followed by letters or digits) are recognised by the tokenizer but are
rejected by the parser. Whitespace separates tokens and is otherwise ignored.

Malformed input is reported through typed errors that all implement
PositionedError:

  - UnknownCharacterError for characters outside the token alphabet
  - InvalidNumberError for literals such as "12a"
  - UnexpectedTokenError when the token stream does not fit the grammar
  - InputTooLongError when the input exceeds Options.MaxInputLength
*/
package parser
