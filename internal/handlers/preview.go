package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"promptforge/internal/contextutil"
	"promptforge/internal/storage"
)

// PreviewHandler serves a saved prompt as a rendered HTML page. The UI
// links here from the prompt detail dialog; enhanced prompts and notes are
// markdown.
type PreviewHandler struct {
	prompts  *storage.SavedPromptRepo
	markdown goldmark.Markdown
	template *template.Template
}

// previewPageData holds template data for rendered preview pages.
type previewPageData struct {
	Target   string
	Original string
	Enhanced template.HTML
	Notes    template.HTML
}

// NewPreviewHandler creates a new handler for rendering saved prompts.
func NewPreviewHandler(prompts *storage.SavedPromptRepo) *PreviewHandler {
	tmpl := template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Saved prompt for {{.Target}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 800px;
      line-height: 1.6;
      color: #1f2937;
    }
    h1 { font-size: 1.4rem; }
    section {
      border: 1px solid #e5e7eb;
      border-radius: 12px;
      padding: 1rem 1.5rem;
      margin-bottom: 1.5rem;
    }
    section h2 {
      font-size: 0.85rem;
      text-transform: uppercase;
      letter-spacing: 0.05em;
      color: #6b7280;
    }
    blockquote {
      border-left: 3px solid #6366f1;
      margin-left: 0;
      padding-left: 1rem;
      color: #4b5563;
    }
    pre {
      background: #f3f4f6;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 8px;
    }
  </style>
</head>
<body>
  <h1>Saved prompt for {{.Target}}</h1>
  <section>
    <h2>Original</h2>
    <blockquote>{{.Original}}</blockquote>
  </section>
  <section>
    <h2>Enhanced</h2>
    {{.Enhanced}}
  </section>
  {{if .Notes}}
  <section>
    <h2>Notes</h2>
    {{.Notes}}
  </section>
  {{end}}
</body>
</html>`))

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(ghhtml.WithHardWraps()),
	)

	return &PreviewHandler{
		prompts:  prompts,
		markdown: md,
		template: tmpl,
	}
}

// ServeHTTP handles GET /api/prompts/{id}/preview.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	prompt, err := h.prompts.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleStorageError(w, ctx, err, "Failed to load prompt")
		return
	}

	enhanced, err := h.render(prompt.EnhancedPrompt)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render enhanced prompt", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render prompt")
		return
	}

	var notes template.HTML
	if prompt.Notes != "" {
		notes, err = h.render(prompt.Notes)
		if err != nil {
			logger.ErrorContext(ctx, "failed to render notes", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to render prompt")
			return
		}
	}

	data := previewPageData{
		Target:   prompt.Target,
		Original: prompt.OriginalPrompt,
		Enhanced: enhanced,
		Notes:    notes,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute preview template", "error", err)
	}
}

func (h *PreviewHandler) render(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
