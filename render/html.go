package render

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/tables"
)

// HTMLRenderer writes the tables as a standalone HTML document with one
// <table> per recovered table.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render builds the document tree and serialises it.
func (r *HTMLRenderer) Render(found []*tables.Table) ([]byte, error) {
	body := element(atom.Body)
	for _, t := range found {
		body.AppendChild(tableNode(t))
	}

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: "Tables"})
	head.AppendChild(title)

	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func tableNode(t *tables.Table) *html.Node {
	table := element(atom.Table)
	table.Attr = []html.Attribute{{Key: "data-page", Val: fmt.Sprint(t.Page)}}

	title := element(atom.Caption)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: t.Title})
	table.AppendChild(title)

	m := t.Matrix()
	for _, row := range m.Rows {
		tr := element(atom.Tr)
		for _, cell := range row {
			tr.AppendChild(cellNode(cell))
		}
		table.AppendChild(tr)
	}
	return table
}

func cellNode(c model.Cell) *html.Node {
	a := atom.Td
	if c.IsHeader {
		a = atom.Th
	}
	n := element(a)
	if c.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: c.Text})
	}
	return n
}
