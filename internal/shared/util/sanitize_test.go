package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "report.pdf", want: "report.pdf"},
		{name: "slashes replaced", in: "a/b\\c.docx", want: "a_b_c.docx"},
		{name: "traversal rejected", in: "../etc/passwd", wantErr: true},
		{name: "empty rejected", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileExtension(t *testing.T) {
	t.Parallel()

	if got := FileExtension("Slides.PPTX"); got != "pptx" {
		t.Fatalf("got %q, want pptx", got)
	}
	if got := FileExtension("noext"); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestTitleFromFileName(t *testing.T) {
	t.Parallel()

	if got := TitleFromFileName("quarterly_report-final.docx"); got != "quarterly report final" {
		t.Fatalf("got %q", got)
	}
	if got := TitleFromFileName(".pdf"); got != "Untitled document" {
		t.Fatalf("got %q", got)
	}
}
