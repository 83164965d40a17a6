package domain

type DocumentKind string

const (
	KindPDF        DocumentKind = "pdf"
	KindScannedPDF DocumentKind = "scanned_pdf"
	KindPlainText  DocumentKind = "text"
)

// Document is the transient input of one match request. Data holds the raw
// payload; ManualText, when set, bypasses the extraction chain entirely.
type Document struct {
	Kind       DocumentKind
	Filename   string
	Data       []byte
	ManualText string
}

// MatchRequest carries both sides of a single match invocation. The job
// description side is always plain text.
type MatchRequest struct {
	Resume         Document
	JobDescription string
}

// ExtractionResult is the outcome of the extraction chain. Strategy names the
// strategy whose output first cleared the sufficiency threshold ("manual",
// "plaintext", "structured", "layout", "ocr") or "none" when no strategy did
// and Text is the best-effort concatenation of all attempts.
type ExtractionResult struct {
	Text        string
	Strategy    string
	UsableChars int
	Sufficient  bool
}
