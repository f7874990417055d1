package models

// ElementKind is the closed set of element types produced by document
// partitioning. Anything the partitioner reports that carries no useful
// content maps to KindOther.
type ElementKind int

const (
	KindText ElementKind = iota
	KindTitle
	KindTable
	KindImage
	KindOther
)

func (k ElementKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTitle:
		return "title"
	case KindTable:
		return "table"
	case KindImage:
		return "image"
	default:
		return "other"
	}
}

// Element is one atomic unit of a partitioned document: a paragraph, a
// section title, a table, or an inline image. Only the fields valid for the
// element's kind are populated.
type Element struct {
	Kind        ElementKind
	Text        string
	TableHTML   string // table elements: HTML rendering of the table
	ImageBase64 string // image elements: inline base64 payload, if extracted
	Page        int
}

// Chunk is a title- and size-bounded grouping of consecutive elements.
// Elements carries the original elements so that tables and images can be
// recovered after chunking; a chunk without it degrades to plain text.
type Chunk struct {
	Text     string
	Elements []Element
}

// SeparatedContent is the text/tables/images view of a chunk, serialized
// into record metadata and reconstructed at query time.
type SeparatedContent struct {
	Text   string   `json:"text"`
	Tables []string `json:"tables"`
	Images []string `json:"images"`
	Types  []string `json:"types"`
}

// ChatTurn is one message of the conversation history sent by the client.
type ChatTurn struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// StoredRecord is the persisted unit: searchable text plus the JSON-encoded
// SeparatedContent it was derived from.
type StoredRecord struct {
	ID              string
	PageContent     string
	OriginalContent string
}

// RetrievedRecord is a StoredRecord returned from a similarity search.
type RetrievedRecord struct {
	ID              string
	PageContent     string
	OriginalContent string
	Similarity      float32
}
