package notes

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/zedfetch/zedfetch/internal/fault"
)

func translate(t *testing.T, body string) (string, error) {
	t.Helper()
	return Translate(Events(body))
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heading_bold_code",
			in:   "# Title\n\n**bold** and `code`",
			want: "# Title\n\n**bold** and `code`",
		},
		{
			name: "heading_levels",
			in:   "## Two\n\n###### Six",
			want: "## Two\n\n###### Six",
		},
		{
			name: "setext_heading",
			in:   "Title\n=====",
			want: "# Title",
		},
		{
			name: "strikethrough",
			in:   "~~gone~~ now",
			want: "~~gone~~ now",
		},
		{
			name: "link_keeps_text",
			in:   "See [the docs](https://zed.dev/docs) for more.",
			want: "See the docs for more.",
		},
		{
			name: "autolink",
			in:   "Visit https://zed.dev today",
			want: "Visit https://zed.dev today",
		},
		{
			name: "fenced_code_block",
			in:   "```go\nfmt.Println(\"hi\")\n```",
			want: "```\nfmt.Println(\"hi\")\n```",
		},
		{
			name: "indented_code_block",
			in:   "    cargo build\n    cargo test",
			want: "```\ncargo build\ncargo test\n```",
		},
		{
			name: "bullet_list",
			in:   "- one\n- two\n- three",
			want: "* one\n* two\n* three",
		},
		{
			name: "ordered_list",
			in:   "1. one\n2. two",
			want: "* one\n* two",
		},
		{
			name: "nested_list",
			in:   "- outer\n  - inner\n- next",
			want: "* outer\n  * inner\n* next",
		},
		{
			name: "paragraph_then_list",
			in:   "Changes:\n\n- fixed **crash**\n- added `--flag`",
			want: "Changes:\n\n* fixed **crash**\n* added `--flag`",
		},
		{
			name: "list_then_paragraph",
			in:   "- a\n- b\n\nDone.",
			want: "* a\n* b\n\nDone.",
		},
		{
			name: "table",
			in:   "| Asset | Backend |\n|---|---|\n| zed.exe | Vulkan |\n| zed-opengl.exe | OpenGL |",
			want: "|-|-|\n|Asset|Backend|\n|zed.exe|Vulkan|\n|zed-opengl.exe|OpenGL|",
		},
		{
			name: "heading_then_table",
			in:   "# Builds\n\n| a | b |\n|---|---|\n| 1 | 2 |",
			want: "# Builds\n\n|-|-|\n|a|b|\n|1|2|",
		},
		{
			name: "empty_body",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translate(t, tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Translate mismatch:\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestTranslatePlainTextUnchanged(t *testing.T) {
	inputs := []string{
		"Just some plain words.",
		"First line\nsecond line",
		"Paragraph one.\n\nParagraph two.\n\nParagraph three.",
		"Version 0.150.0 ships with fixes, improvements and more",
	}

	for _, in := range inputs {
		got, err := translate(t, in)
		if err != nil {
			t.Fatalf("Translate(%q): %v", in, err)
		}
		if got != in {
			t.Errorf("plain text changed:\ngot:  %q\nwant: %q", got, in)
		}
	}
}

func TestTranslateUnknownConstructs(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		construct string
	}{
		{name: "emphasis", in: "some *italic* text", construct: "Emphasis"},
		{name: "blockquote", in: "> quoted", construct: "Blockquote"},
		{name: "image", in: "![logo](logo.png)", construct: "Image"},
		{name: "thematic_break", in: "above\n\n---\n\nbelow", construct: "ThematicBreak"},
		{name: "html_block", in: "<details>\n<summary>x</summary>\n</details>", construct: "HTMLBlock"},
		{name: "raw_html", in: "line with <br> tag", construct: "RawHTML"},
		{name: "task_checkbox", in: "- [x] done", construct: "TaskCheckBox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := translate(t, tt.in)
			if !errors.Is(err, fault.ErrUnknownMarkup) {
				t.Fatalf("expected ErrUnknownMarkup, got %v", err)
			}

			var unknown *fault.UnknownMarkupError
			if !errors.As(err, &unknown) {
				t.Fatalf("expected *UnknownMarkupError, got %T", err)
			}
			if unknown.Construct != tt.construct {
				t.Errorf("Construct = %q, want %q", unknown.Construct, tt.construct)
			}
		})
	}
}

func TestTranslateHandBuiltEvents(t *testing.T) {
	events := []Event{
		{Kind: EventStart, Tag: TagHeading, Level: 3},
		{Kind: EventText, Text: "Fixes"},
		{Kind: EventEnd, Tag: TagHeading, Level: 3},
		{Kind: EventStart, Tag: TagParagraph},
		{Kind: EventText, Text: "a"},
		{Kind: EventHardBreak},
		{Kind: EventText, Text: "b"},
		{Kind: EventEnd, Tag: TagParagraph},
	}

	got, err := Translate(events)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "### Fixes\n\na\nb"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	_, err = Translate([]Event{{Kind: EventStart, Tag: Tag(99)}})
	if !errors.Is(err, fault.ErrUnknownMarkup) {
		t.Errorf("expected ErrUnknownMarkup for out-of-range tag, got %v", err)
	}

	_, err = Translate([]Event{{Kind: EventKind(42)}})
	if !errors.Is(err, fault.ErrUnknownMarkup) {
		t.Errorf("expected ErrUnknownMarkup for out-of-range kind, got %v", err)
	}
}

func TestEventsStream(t *testing.T) {
	events := Events("# Hi\n\n**x**")

	want := []struct {
		kind EventKind
		tag  Tag
		text string
	}{
		{EventStart, TagHeading, ""},
		{EventText, TagUnknown, "Hi"},
		{EventEnd, TagHeading, ""},
		{EventStart, TagParagraph, ""},
		{EventStart, TagStrong, ""},
		{EventText, TagUnknown, "x"},
		{EventEnd, TagStrong, ""},
		{EventEnd, TagParagraph, ""},
	}

	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		e := events[i]
		if e.Kind != w.kind || e.Text != w.text {
			t.Errorf("event[%d] = %s %q, want %s %q", i, e.Kind, e.Text, w.kind, w.text)
		}
		if (e.Kind == EventStart || e.Kind == EventEnd) && e.Tag != w.tag {
			t.Errorf("event[%d] tag = %s, want %s", i, e.Tag, w.tag)
		}
	}
	if events[0].Level != 1 {
		t.Errorf("heading level = %d, want 1", events[0].Level)
	}
}

func TestRendererPrint(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	body := "# Zed 0.150\n\n- faster **startup**\n\n```\nzed.exe --help\n```"
	if err := r.Print(body); err != nil {
		t.Fatalf("Print: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\n") {
		t.Errorf("output should start with a blank line: %q", out)
	}
	for _, want := range []string{"# Zed 0.150", "faster **startup**", "zed.exe --help", "```"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRendererPrintUnknownMarkup(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(&buf).Print("> not supported")

	if !errors.Is(err, fault.ErrUnknownMarkup) {
		t.Errorf("expected ErrUnknownMarkup, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be printed on failure, got %q", buf.String())
	}
}

func TestTagAndKindStrings(t *testing.T) {
	if TagStrong.String() != "Strong" || Tag(99).String() != "Tag(99)" {
		t.Errorf("unexpected tag strings: %s %s", TagStrong, Tag(99))
	}
	if EventSoftBreak.String() != "SoftBreak" || EventKind(9).String() != "EventKind(9)" {
		t.Errorf("unexpected kind strings: %s %s", EventSoftBreak, EventKind(9))
	}
}

func TestRendererKeepsTabsInCode(t *testing.T) {
	var buf bytes.Buffer
	body := "```go\nfunc main() {\n\tfmt.Println()\n}\n```"

	if err := NewRenderer(&buf).Print(body); err != nil {
		t.Fatalf("Print: %v", err)
	}

	if !strings.Contains(buf.String(), "\tfmt.Println()") {
		t.Errorf("tab in code block was not preserved: %q", buf.String())
	}
}
