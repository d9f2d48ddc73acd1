package parsing

import (
	"fmt"

	"github.com/demizer/ftml-go/pkg/token"
)

// WarningKind enumerates the taxonomy of parser warnings (spec.md §7,
// abridged list). Grounded on the teacher's messages.MessageType: an int
// enum with a String() lookup table and a private message() method.
type WarningKind int

const (
	WarnBlockMissingArguments WarningKind = iota
	WarnBlockMissingName
	WarnBlockMissingCloseBrackets
	WarnBlockExpectedEnd
	WarnBlockMalformedArguments
	WarnRuleFailed
	WarnNoRulesMatch
	WarnMaxDepthExceeded
	WarnManualBreak // informational, dropped by the post-processor
	WarnInvalidURL
	WarnInvalidInclude
	WarnListEmpty
	WarnTableRowOutsideTable
	WarnEndOfInput
)

var warningKindNames = [...]string{
	"BlockMissingArguments",
	"BlockMissingName",
	"BlockMissingCloseBrackets",
	"BlockExpectedEnd",
	"BlockMalformedArguments",
	"RuleFailed",
	"NoRulesMatch",
	"MaxDepthExceeded",
	"ManualBreak",
	"InvalidUrl",
	"InvalidInclude",
	"ListEmpty",
	"TableRowOutsideTable",
	"EndOfInput",
}

func (k WarningKind) String() string {
	if int(k) < 0 || int(k) >= len(warningKindNames) {
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
	return warningKindNames[k]
}

// message returns the human-readable text for a WarningKind, the way
// messages.MessageType.message() does for the teacher.
func (k WarningKind) message() string {
	switch k {
	case WarnBlockMissingArguments:
		return "Block is missing required arguments."
	case WarnBlockMissingName:
		return "Block is missing a name."
	case WarnBlockMissingCloseBrackets:
		return "Block is missing closing brackets \"]]\"."
	case WarnBlockExpectedEnd:
		return "Expected a block end tag."
	case WarnBlockMalformedArguments:
		return "Block arguments could not be parsed."
	case WarnRuleFailed:
		return "Rule failed to match."
	case WarnNoRulesMatch:
		return "No rules matched the current token; watchdog aborted."
	case WarnMaxDepthExceeded:
		return "Maximum recursion depth exceeded."
	case WarnManualBreak:
		return "Manual line break."
	case WarnInvalidURL:
		return "Invalid URL."
	case WarnInvalidInclude:
		return "Invalid include target."
	case WarnListEmpty:
		return "List has no items."
	case WarnTableRowOutsideTable:
		return "Table row found outside of a table."
	case WarnEndOfInput:
		return "Unexpected end of input."
	}
	return ""
}

// ParseWarning is a single diagnostic, anchored at the token and rule that
// produced it (spec.md §3).
type ParseWarning struct {
	Kind  WarningKind
	Token token.Kind
	Rule  string
	Span  token.Span
}

func (w ParseWarning) Error() string {
	return fmt.Sprintf("%s (rule %q, token %s): %s", w.Kind, w.Rule, w.Token, w.Kind.message())
}

// ParseException is a tagged union; only the Warning variant currently
// exists, reserved for future non-warning exceptions (spec.md §3).
type ExceptionKind int

const (
	ExceptionWarning ExceptionKind = iota
)

type ParseException struct {
	Kind    ExceptionKind
	Warning ParseWarning
}

// WarningException wraps w as a ParseException.
func WarningException(w ParseWarning) ParseException {
	return ParseException{Kind: ExceptionWarning, Warning: w}
}

// IsWarning reports whether e is the Warning variant; with only one
// variant defined today this is always true, but call sites filter on it
// explicitly so adding a second variant later doesn't silently change
// their behavior.
func (e ParseException) IsWarning() bool { return e.Kind == ExceptionWarning }
