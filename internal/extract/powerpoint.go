package extract

import (
	"archive/zip"
	"bytes"
	"html"
	"io"
	"regexp"
	"sort"
	"strings"
)

var (
	// Text runs inside slide XML. A direct structural scan is deliberately
	// used instead of a presentation-object model, which tends to choke on
	// malformed decks: slides with only graphics simply match nothing.
	slideTextRunRe = regexp.MustCompile(`(?s)<a:t[^>]*>(.*?)</a:t>`)
	markupTagRe    = regexp.MustCompile(`<[^>]+>`)
)

// extractPowerPoint handles the PowerPoint family. A .pptx payload is an
// OOXML zip whose slide parts are scanned for text runs; a legacy .ppt binary
// falls back to the printable-run scan.
func extractPowerPoint(data []byte) (string, *Error) {
	if len(data) == 0 {
		return "", emptyContent("empty presentation")
	}
	if isZip(data) {
		return extractPptx(data)
	}
	return extractLegacyBinary(data, "ppt")
}

func extractPptx(data []byte) (string, *Error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", parserFault("pptx", err)
	}

	// Any .xml part whose path contains the slide prefix is treated as a
	// slide. The substring match is intentionally loose; tightening it would
	// change which parts contribute text on malformed decks.
	var slides []*zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if strings.Contains(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			slides = append(slides, f)
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].Name < slides[j].Name })

	var parts []string
	for _, slide := range slides {
		text, serr := scanSlide(slide)
		if serr != nil {
			return "", serr
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", emptyContent("presentation contains no text-bearing slides")
	}
	return strings.Join(parts, "\n\n"), nil
}

func scanSlide(f *zip.File) (string, *Error) {
	rc, err := f.Open()
	if err != nil {
		return "", parserFault("pptx", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", parserFault("pptx", err)
	}

	var lines []string
	for _, match := range slideTextRunRe.FindAllSubmatch(raw, -1) {
		run := string(match[1])
		run = markupTagRe.ReplaceAllString(run, "")
		run = html.UnescapeString(run)
		run = strings.TrimSpace(run)
		if run != "" {
			lines = append(lines, run)
		}
	}
	return strings.Join(lines, "\n"), nil
}
