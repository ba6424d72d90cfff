package dto

import "blog-admin-be/pkg/richtext"

const (
	ContentFormatHTML     = "html"
	ContentFormatMarkdown = "markdown"
	ContentFormatText     = "text"
	ContentFormatJSON     = "json"
)

type RenderContentRequest struct {
	Content string `json:"content"`
	Format  string `json:"format" validate:"omitempty,oneof=html markdown text json"`
}

type RenderContentResponse struct {
	Format     string            `json:"format"`
	Structured bool              `json:"structured"`
	Body       string            `json:"body,omitempty"`
	Document   richtext.Document `json:"document,omitempty"`
}

type NormalizeContentRequest struct {
	Content string `json:"content"`
}

type NormalizeContentResponse struct {
	Content    string `json:"content"`
	Structured bool   `json:"structured"`
	WordCount  int    `json:"word_count"`
}
