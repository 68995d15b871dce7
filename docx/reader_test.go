package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// createTestDOCX creates a minimal DOCX file for testing.
func createTestDOCX(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	f, err := os.Create(docxPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	zw := zip.NewWriter(f)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(contentTypes))

	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
	w, _ = zw.Create("_rels/.rels")
	w.Write([]byte(rels))

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + content + `</w:body>
</w:document>`
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(document))

	zw.Close()
	f.Close()

	return docxPath
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.docx")); err == nil {
		t.Error("expected error opening nonexistent file")
	}
}

func TestOpenRejectsNonDOCX(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "bogus.docx")
	if err := os.WriteFile(tmp, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(tmp); err == nil {
		t.Error("expected error opening non-zip file")
	}
}

func TestParagraphRuns(t *testing.T) {
	path := createTestDOCX(t, `
<w:p>
  <w:r><w:t>Amazing grace, how sweet the sound</w:t></w:r>
</w:p>
<w:p>
  <w:r><w:rPr><w:i/></w:rPr><w:t>Sung refrain</w:t></w:r>
  <w:r><w:t xml:space="preserve"> plain tail</w:t></w:r>
</w:p>`)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	paras := r.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	if got := paras[0].Text(); got != "Amazing grace, how sweet the sound" {
		t.Errorf("paragraph 0 = %q", got)
	}

	runs := paras[1].Runs
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if !runs[0].Emphasized() {
		t.Error("run with <w:i/> should be emphasized")
	}
	if runs[1].Italic != nil {
		t.Error("run without rPr should keep italic unspecified")
	}
}

func TestItalicTriState(t *testing.T) {
	path := createTestDOCX(t, `
<w:p><w:r><w:rPr><w:i w:val="0"/></w:rPr><w:t>explicit off</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:i w:val="false"/></w:rPr><w:t>false off</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:i w:val="1"/></w:rPr><w:t>explicit on</w:t></w:r></w:p>`)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	paras := r.Paragraphs()
	if paras[0].Runs[0].Emphasized() {
		t.Error(`<w:i w:val="0"/> should not be emphasized`)
	}
	if paras[1].Runs[0].Emphasized() {
		t.Error(`<w:i w:val="false"/> should not be emphasized`)
	}
	if !paras[2].Runs[0].Emphasized() {
		t.Error(`<w:i w:val="1"/> should be emphasized`)
	}
}

func TestEmbeddedBreaksBecomeNewlines(t *testing.T) {
	path := createTestDOCX(t, `
<w:p>
  <w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t><w:cr/><w:t>Line three</w:t></w:r>
</w:p>`)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	got := r.Paragraphs()[0].Runs[0].Text
	if got != "Line one\nLine two\nLine three" {
		t.Errorf("run text = %q", got)
	}
}

func TestBlankParagraphsSurviveAsEmpty(t *testing.T) {
	path := createTestDOCX(t, `
<w:p><w:r><w:t>Before</w:t></w:r></w:p>
<w:p/>
<w:p><w:r><w:t>After</w:t></w:r></w:p>`)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	paras := r.Paragraphs()
	if len(paras) != 3 {
		t.Fatalf("got %d paragraphs, want 3", len(paras))
	}
	if paras[1].Text() != "" {
		t.Errorf("blank paragraph text = %q, want empty", paras[1].Text())
	}
}
