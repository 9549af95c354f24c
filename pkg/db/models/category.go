package models

// Category groups catalog products and carries its display glyph.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Icon  string  `json:"icon"`
	Image *string `json:"image,omitempty"`
}
