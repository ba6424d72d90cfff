package service

import (
	"context"
	"html"
	"strings"
	"unicode/utf8"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/pkg/richtext"

	"github.com/microcosm-cc/bluemonday"
)

const contentModule = "CONTENT"

type IContentService interface {
	// Decode parses persisted content. Content that is not a block array is
	// wrapped in a single paragraph and reported with structured=false.
	Decode(ctx context.Context, content string) (doc richtext.Document, structured bool)
	// Canonical re-encodes structured content in normalized form and keeps
	// anything else verbatim. Empty content becomes an empty paragraph.
	Canonical(ctx context.Context, content string) (string, error)
	Render(ctx context.Context, content string, format string) (*dto.RenderContentResponse, error)
	Normalize(ctx context.Context, content string) (*dto.NormalizeContentResponse, error)
	// Index derives the excerpt and the search text of a post body.
	Index(ctx context.Context, content string) (excerpt string, searchText string)
}

type contentService struct {
	logger        logger.ILogger
	excerptLength int
	stripPolicy   *bluemonday.Policy
}

func NewContentService(log logger.ILogger, excerptLength int) IContentService {
	if excerptLength <= 0 {
		excerptLength = 200
	}
	return &contentService{
		logger:        log,
		excerptLength: excerptLength,
		stripPolicy:   bluemonday.StrictPolicy(),
	}
}

func (s *contentService) Decode(ctx context.Context, content string) (richtext.Document, bool) {
	doc, ok := richtext.DecodeOrFallback(content)
	if !ok && s.logger != nil {
		s.logger.Warn(contentModule, "Content is not a block document, using plain-text fallback", map[string]interface{}{
			"length": len(content),
		})
	}
	return doc, ok
}

func (s *contentService) Canonical(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return richtext.Encode(richtext.NewDocument())
	}
	doc, err := richtext.Decode(content)
	if err != nil || onlyEmptyLeaves(doc) {
		// Legacy text is stored as written, even when it parses as JSON.
		return content, nil
	}
	if len(doc) == 0 {
		doc = richtext.NewDocument()
	}
	return richtext.Encode(doc)
}

// onlyEmptyLeaves reports whether every top-level node is an empty text
// leaf, which is what a JSON array without a single block decodes to.
func onlyEmptyLeaves(doc richtext.Document) bool {
	if len(doc) == 0 {
		return false
	}
	for _, n := range doc {
		if !n.IsText() || n.Text != "" {
			return false
		}
	}
	return true
}

func (s *contentService) Render(ctx context.Context, content string, format string) (*dto.RenderContentResponse, error) {
	if format == "" {
		format = dto.ContentFormatHTML
	}
	doc, structured := s.Decode(ctx, content)

	resp := &dto.RenderContentResponse{
		Format:     format,
		Structured: structured,
	}

	switch format {
	case dto.ContentFormatHTML:
		body, err := richtext.RenderHTML(doc)
		if err != nil {
			return nil, err
		}
		resp.Body = body
	case dto.ContentFormatMarkdown:
		body, err := richtext.RenderMarkdown(doc)
		if err != nil {
			return nil, err
		}
		resp.Body = body
	case dto.ContentFormatText:
		resp.Body = s.plainText(doc, structured)
	case dto.ContentFormatJSON:
		resp.Document = doc
	default:
		return nil, ErrUnsupportedFormat
	}

	return resp, nil
}

func (s *contentService) Normalize(ctx context.Context, content string) (*dto.NormalizeContentResponse, error) {
	doc, structured := s.Decode(ctx, content)
	if len(doc) == 0 {
		doc = richtext.NewDocument()
	}
	encoded, err := richtext.Encode(doc)
	if err != nil {
		return nil, err
	}
	return &dto.NormalizeContentResponse{
		Content:    encoded,
		Structured: structured,
		WordCount:  richtext.WordCount(doc),
	}, nil
}

func (s *contentService) Index(ctx context.Context, content string) (string, string) {
	doc, structured := s.Decode(ctx, content)
	text := s.plainText(doc, structured)
	searchText := strings.Join(strings.Fields(text), " ")
	return truncateWords(searchText, s.excerptLength), searchText
}

// plainText flattens a document. Fallback documents carry whatever the raw
// content was, which for older posts is often an HTML fragment.
func (s *contentService) plainText(doc richtext.Document, structured bool) string {
	text := richtext.PlainText(doc)
	if structured {
		return text
	}
	return html.UnescapeString(s.stripPolicy.Sanitize(text))
}

// truncateWords cuts text to at most limit runes on a word boundary and
// appends an ellipsis when something was cut.
func truncateWords(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "..."
}
