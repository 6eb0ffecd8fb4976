// Package notes turns a release's markdown description into text suited for
// a terminal.
//
// Rendering is two steps. Events parses the markdown and flattens the
// syntax tree into a stream of start/end/text events; Translate folds that
// stream into plain terminal text. Constructs without a translation rule
// produce a TagUnknown event, and Translate fails on it instead of dropping
// content.
package notes

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// EventKind discriminates Event
type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
	EventText
	EventCode
	EventSoftBreak
	EventHardBreak
)

var eventKindNames = [...]string{"Start", "End", "Text", "Code", "SoftBreak", "HardBreak"}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Tag identifies the container a Start/End event opens or closes
type Tag int

const (
	TagUnknown Tag = iota
	TagParagraph
	TagHeading
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagLink
	TagCodeBlock
	TagStrikethrough
	TagStrong
	TagList
	TagItem
)

var tagNames = [...]string{
	"Unknown", "Paragraph", "Heading", "Table", "TableHead", "TableRow", "TableCell",
	"Link", "CodeBlock", "Strikethrough", "Strong", "List", "Item",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// Event is one step of a flattened markdown document.
//
// Start/End carry Tag (and Level for headings). Text and Code carry Text.
// A TagUnknown Start carries the construct's name in Name.
type Event struct {
	Kind  EventKind
	Tag   Tag
	Level int
	Text  string
	Name  string
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Events parses body as GitHub-flavoured markdown and returns its event stream
func Events(body string) []Event {
	src := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(src))

	b := &eventBuilder{src: src}
	// The walker never returns an error.
	_ = ast.Walk(doc, b.visit)

	return b.events
}

type eventBuilder struct {
	src    []byte
	events []Event
}

func (b *eventBuilder) emit(e Event) {
	b.events = append(b.events, e)
}

// container emits Start or End for a node that wraps its children
func (b *eventBuilder) container(tag Tag, entering bool) {
	if entering {
		b.emit(Event{Kind: EventStart, Tag: tag})
		return
	}
	b.emit(Event{Kind: EventEnd, Tag: tag})
}

func (b *eventBuilder) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document:
		// Root carries no output.

	case *ast.Paragraph, *ast.TextBlock:
		b.container(TagParagraph, entering)

	case *ast.Heading:
		if entering {
			b.emit(Event{Kind: EventStart, Tag: TagHeading, Level: node.Level})
		} else {
			b.emit(Event{Kind: EventEnd, Tag: TagHeading, Level: node.Level})
		}

	case *ast.Text:
		if !entering {
			break
		}
		b.emit(Event{Kind: EventText, Text: string(node.Segment.Value(b.src))})
		switch {
		case node.HardLineBreak():
			b.emit(Event{Kind: EventHardBreak})
		case node.SoftLineBreak() && node.NextSibling() != nil:
			b.emit(Event{Kind: EventSoftBreak})
		}

	case *ast.String:
		if entering {
			b.emit(Event{Kind: EventText, Text: string(node.Value)})
		}

	case *ast.CodeSpan:
		if entering {
			b.emit(Event{Kind: EventCode, Text: b.inlineText(node)})
		}
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			b.emit(Event{Kind: EventStart, Tag: TagCodeBlock})
			b.emit(Event{Kind: EventText, Text: b.blockLines(n)})
			b.emit(Event{Kind: EventEnd, Tag: TagCodeBlock})
		}
		return ast.WalkSkipChildren, nil

	case *ast.Emphasis:
		if node.Level != 2 {
			b.unknown(n, entering)
			break
		}
		b.container(TagStrong, entering)

	case *ast.Link:
		b.container(TagLink, entering)

	case *ast.AutoLink:
		if entering {
			b.emit(Event{Kind: EventStart, Tag: TagLink})
			b.emit(Event{Kind: EventText, Text: string(node.Label(b.src))})
			b.emit(Event{Kind: EventEnd, Tag: TagLink})
		}
		return ast.WalkSkipChildren, nil

	case *ast.List:
		b.container(TagList, entering)

	case *ast.ListItem:
		b.container(TagItem, entering)

	case *east.Table:
		b.container(TagTable, entering)

	case *east.TableHeader:
		b.container(TagTableHead, entering)

	case *east.TableRow:
		b.container(TagTableRow, entering)

	case *east.TableCell:
		b.container(TagTableCell, entering)

	case *east.Strikethrough:
		b.container(TagStrikethrough, entering)

	default:
		b.unknown(n, entering)
	}

	return ast.WalkContinue, nil
}

func (b *eventBuilder) unknown(n ast.Node, entering bool) {
	if entering {
		b.emit(Event{Kind: EventStart, Tag: TagUnknown, Name: n.Kind().String()})
		return
	}
	b.emit(Event{Kind: EventEnd, Tag: TagUnknown, Name: n.Kind().String()})
}

// inlineText concatenates the literal text below an inline node
func (b *eventBuilder) inlineText(n ast.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(b.src))
		case *ast.String:
			buf.Write(t.Value)
		}
	}
	return buf.String()
}

// blockLines returns the raw lines of a code block
func (b *eventBuilder) blockLines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(b.src))
	}
	return buf.String()
}
