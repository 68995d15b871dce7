// Package htmldoc provides HTML lyric-document parsing for songs kept
// as web pages or HTML exports.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/cantus/lyric"
)

// Reader provides access to HTML lyric content.
type Reader struct {
	title      string
	paragraphs []lyric.Paragraph
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{}
	reader.extractTitle(doc)

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	reader.extractParagraphs(body)
	return reader, nil
}

// Close releases resources associated with the Reader. HTML readers
// keep no file handles.
func (r *Reader) Close() error {
	return nil
}

// Title returns the document title, when present.
func (r *Reader) Title() string {
	return r.title
}

// Paragraphs returns the document's block-level text as lyric
// paragraphs: one per <p>, <div>, <h1>..<h6> or <li>, with italic runs
// for <i> and <em> spans and newlines for <br>.
func (r *Reader) Paragraphs() []lyric.Paragraph {
	return r.paragraphs
}

func (r *Reader) extractTitle(n *html.Node) {
	if t := findElement(n, "title"); t != nil {
		r.title = strings.TrimSpace(textContent(t))
	}
}

// blockTags are the elements treated as paragraph boundaries.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true,
	"h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
}

// skipTags never contribute lyric text.
var skipTags = map[string]bool{
	"script": true, "style": true, "head": true, "nav": true,
}

func (r *Reader) extractParagraphs(n *html.Node) {
	if n.Type == html.ElementNode {
		if skipTags[n.Data] {
			return
		}
		if blockTags[n.Data] && !containsBlock(n) {
			para := collectRuns(n)
			r.paragraphs = append(r.paragraphs, para)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractParagraphs(c)
	}
}

// containsBlock reports whether a node nests further block elements;
// such wrappers are descended into instead of flattened.
func containsBlock(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (blockTags[c.Data] || containsBlock(c)) {
			return true
		}
	}
	return false
}

// collectRuns flattens a block's inline content into runs, tracking
// italic nesting and turning <br> into embedded newlines.
func collectRuns(block *html.Node) lyric.Paragraph {
	var para lyric.Paragraph

	appendText := func(text string, italic bool) {
		if text == "" {
			return
		}
		n := len(para.Runs)
		if n > 0 && para.Runs[n-1].Emphasized() == italic {
			para.Runs[n-1].Text += text
			return
		}
		i := italic
		para.Runs = append(para.Runs, lyric.Run{Text: text, Italic: &i})
	}

	var walk func(n *html.Node, italic bool)
	walk = func(n *html.Node, italic bool) {
		switch n.Type {
		case html.TextNode:
			appendText(n.Data, italic)
			return
		case html.ElementNode:
			switch n.Data {
			case "br":
				appendText("\n", italic)
				return
			case "i", "em":
				italic = true
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, italic)
		}
	}
	for c := block.FirstChild; c != nil; c = c.NextSibling {
		walk(c, false)
	}
	return para
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// textContent returns the concatenated text of a node's subtree.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			sb.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
