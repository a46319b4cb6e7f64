package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// extractWord handles the Word family. A .docx payload is an OOXML zip whose
// word/document.xml is walked as a generic element tree; a legacy .doc binary
// is scanned for printable text runs, which trades fidelity for never faulting
// on malformed input.
func extractWord(data []byte) (string, *Error) {
	if len(data) == 0 {
		return "", emptyContent("empty word document")
	}
	if isZip(data) {
		return extractDocx(data)
	}
	return extractLegacyBinary(data, "doc")
}

func extractDocx(data []byte) (string, *Error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", parserFault("docx", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", parserFault("docx", errors.New("word/document.xml not found in archive"))
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", parserFault("docx", err)
	}
	defer rc.Close()

	root, err := parseElementTree(rc)
	if err != nil {
		return "", parserFault("docx", err)
	}

	var sb strings.Builder
	walkWordTree(root, &sb)
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", emptyContent("word document contains no text")
	}
	return text, nil
}

// element is a generic XML node: either a text leaf or a container of
// children. Unknown element types are simply containers, so documents with
// unexpected structure degrade to "walk deeper" instead of failing.
type element struct {
	tag      string
	text     strings.Builder
	children []*element
}

func (e *element) isLeaf() bool { return len(e.children) == 0 }

// parseElementTree builds the element tree from an XML stream. Namespace
// prefixes are dropped; only local names matter for text accumulation.
func parseElementTree(r io.Reader) (*element, error) {
	decoder := xml.NewDecoder(r)
	root := &element{tag: ""}
	stack := []*element{root}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &element{tag: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, child)
			stack = append(stack, child)
		case xml.CharData:
			stack[len(stack)-1].text.Write(t)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return root, nil
}

// walkWordTree recursively visits the element tree, accumulating the content
// of w:t text runs and emitting line breaks at paragraph and break boundaries.
func walkWordTree(e *element, sb *strings.Builder) {
	switch e.tag {
	case "t":
		sb.WriteString(e.text.String())
		return
	case "br", "cr":
		sb.WriteString("\n")
		return
	}
	for _, child := range e.children {
		walkWordTree(child, sb)
	}
	if e.tag == "p" {
		sb.WriteString("\n")
	}
}

func isZip(data []byte) bool {
	return len(data) >= 4 && data[0] == 'P' && data[1] == 'K'
}
