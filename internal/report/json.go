package report

import (
	"encoding/json"
	"io"
)

// WriteJSON - печатает результат (AuditResult или SiteReport) как JSON с отступами
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
