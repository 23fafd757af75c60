package models

type ContentType string

const (
	ContentBook    ContentType = "book"
	ContentLecture ContentType = "lecture"
	ContentCustom  ContentType = "custom"
)

// ContentItem is immutable reference data a Plan draws its range from.
type ContentItem struct {
	ID              string      `json:"id"`
	ContentType     ContentType `json:"content_type"`
	Title           string      `json:"title,omitempty"`
	TotalPages      *int        `json:"total_pages,omitempty"`
	DurationMinutes *int        `json:"duration_minutes,omitempty"`
	TotalPageOrTime *int        `json:"total_page_or_time,omitempty"`
}

// ContentCatalog indexes content items by id.
type ContentCatalog map[string]ContentItem

// NewContentCatalog builds a catalog. Later items win on duplicate ids.
func NewContentCatalog(items []ContentItem) ContentCatalog {
	catalog := make(ContentCatalog, len(items))
	for _, item := range items {
		catalog[item.ID] = item
	}
	return catalog
}

// Lookup returns the item for id, or nil when it is unknown.
func (c ContentCatalog) Lookup(id string) *ContentItem {
	item, ok := c[id]
	if !ok {
		return nil
	}
	return &item
}
