package notes

import (
	"strings"

	"github.com/zedfetch/zedfetch/internal/fault"
)

// tableSeparator stands in for the header rule of a two-column table
const tableSeparator = "|-|-|"

// Translate folds an event stream into plain terminal text.
//
// Blocks are separated by a blank line, list items by a newline. Trailing
// newlines are trimmed. A TagUnknown event fails with
// *fault.UnknownMarkupError.
func Translate(events []Event) (string, error) {
	var tr translator
	for _, ev := range events {
		if err := tr.step(ev); err != nil {
			return "", err
		}
	}
	return strings.TrimRight(tr.out.String(), "\n"), nil
}

type translator struct {
	out strings.Builder
	// pending is the separator owed before the next block
	pending   string
	listDepth int
}

func (tr *translator) write(s string) {
	tr.out.WriteString(s)
}

// beginBlock flushes the separator owed by the previous block
func (tr *translator) beginBlock() {
	if tr.pending != "" && tr.out.Len() > 0 {
		tr.write(tr.pending)
	}
	tr.pending = ""
}

func (tr *translator) endBlock() {
	if tr.listDepth > 0 {
		tr.pending = "\n"
		return
	}
	tr.pending = "\n\n"
}

func (tr *translator) ensureNewline() {
	s := tr.out.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		tr.write("\n")
	}
}

func (tr *translator) step(ev Event) error {
	switch ev.Kind {
	case EventText:
		tr.write(ev.Text)
	case EventCode:
		tr.write("`" + ev.Text + "`")
	case EventSoftBreak, EventHardBreak:
		tr.write("\n")
	case EventStart:
		return tr.start(ev)
	case EventEnd:
		tr.end(ev)
	default:
		return &fault.UnknownMarkupError{Construct: ev.Kind.String()}
	}
	return nil
}

func (tr *translator) start(ev Event) error {
	switch ev.Tag {
	case TagParagraph:
		tr.beginBlock()
	case TagHeading:
		tr.beginBlock()
		tr.write(strings.Repeat("#", ev.Level) + " ")
	case TagCodeBlock:
		tr.beginBlock()
		tr.write("```\n")
	case TagTable:
		tr.beginBlock()
		tr.write(tableSeparator)
	case TagTableHead, TagTableRow:
		tr.write("\n")
	case TagTableCell:
		tr.write("|")
	case TagStrong:
		tr.write("**")
	case TagStrikethrough:
		tr.write("~~")
	case TagLink:
		// Only the link text is kept.
	case TagList:
		if tr.listDepth == 0 {
			tr.beginBlock()
		} else {
			tr.pending = ""
		}
		tr.listDepth++
	case TagItem:
		tr.pending = ""
		tr.ensureNewline()
		tr.write(strings.Repeat("  ", tr.listDepth-1) + "* ")
	default:
		name := ev.Name
		if name == "" {
			name = ev.Tag.String()
		}
		return &fault.UnknownMarkupError{Construct: name}
	}
	return nil
}

func (tr *translator) end(ev Event) {
	switch ev.Tag {
	case TagParagraph, TagHeading, TagTable:
		tr.endBlock()
	case TagCodeBlock:
		tr.ensureNewline()
		tr.write("```")
		tr.endBlock()
	case TagTableHead, TagTableRow:
		tr.write("|")
	case TagStrong:
		tr.write("**")
	case TagStrikethrough:
		tr.write("~~")
	case TagList:
		tr.listDepth--
		if tr.listDepth == 0 {
			tr.endBlock()
		} else {
			tr.pending = ""
		}
	}
}
