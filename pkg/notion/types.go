package notion

// Parent points a new page at the database it is created in
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// Text is the plain text payload of a rich text item
type Text struct {
	Content string `json:"content"`
}

// RichText is a single rich text item; only plain text content is used here
type RichText struct {
	Text Text `json:"text"`
}

// PlainText builds a one-item rich text array
func PlainText(content string) []RichText {
	return []RichText{{Text: Text{Content: content}}}
}

// Property is a database page property value
type Property interface {
	propertyType() string
}

// TitleProperty is the page title column
type TitleProperty struct {
	Title []RichText `json:"title"`
}

func (TitleProperty) propertyType() string { return "title" }

// EmailProperty serializes a nil Email as JSON null, which clears the column
type EmailProperty struct {
	Email *string `json:"email"`
}

func (EmailProperty) propertyType() string { return "email" }

// RichTextProperty is a text column
type RichTextProperty struct {
	RichText []RichText `json:"rich_text"`
}

func (RichTextProperty) propertyType() string { return "rich_text" }

// DateValue holds an ISO-8601 start date
type DateValue struct {
	Start string `json:"start"`
}

// DateProperty is a date column
type DateProperty struct {
	Date DateValue `json:"date"`
}

func (DateProperty) propertyType() string { return "date" }

// Properties maps column names to values
type Properties map[string]Property

// Paragraph is the body of a paragraph block
type Paragraph struct {
	RichText []RichText `json:"rich_text"`
}

// Block is a child content block appended to a new page
type Block struct {
	Object    string     `json:"object"`
	Type      string     `json:"type"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
}

// ParagraphBlock builds a paragraph block with plain text content
func ParagraphBlock(content string) Block {
	return Block{
		Object:    "block",
		Type:      "paragraph",
		Paragraph: &Paragraph{RichText: PlainText(content)},
	}
}

// CreatePageRequest is the body of POST /v1/pages.
// Children is always encoded as an array, empty when there is no content.
type CreatePageRequest struct {
	Parent     Parent     `json:"parent"`
	Properties Properties `json:"properties"`
	Children   []Block    `json:"children"`
}
