package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
)

// maxPreview caps the content preview of a block.
const maxPreview = 60

// Outline describes a document state as markdown: title, blocks in order
// with the selection marked, pending edits and history depth.
func Outline(documentID string, s *editor.State) string {
	var b strings.Builder

	title, _ := s.EditedPostAttribute("title").(string)
	if title == "" {
		title = documentID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	blocks := s.Blocks()
	if len(blocks) == 0 {
		b.WriteString("_No blocks._\n\n")
	}
	for i, block := range blocks {
		marker := ""
		if s.Selection.HasSelection() && isSelected(s, block.ID) {
			marker = " **(selected)**"
		}
		fmt.Fprintf(&b, "%d. `%s` %s%s\n", i+1, block.ID, block.Name, marker)
		if preview := previewOf(block); preview != "" {
			fmt.Fprintf(&b, "   > %s\n", preview)
		}
	}
	b.WriteString("\n")

	if edits := s.Editor.Edits(); edits.Len() > 0 {
		b.WriteString("## Pending edits\n\n")
		for _, k := range edits.Keys() {
			fmt.Fprintf(&b, "- **%s**: %v\n", k, edits.Value(k))
		}
		b.WriteString("\n")
	}

	h := s.Editor.History()
	fmt.Fprintf(&b, "_History: %d undo, %d redo._\n", h.PastLen(), h.FutureLen())
	return b.String()
}

func isSelected(s *editor.State, uid string) bool {
	for _, id := range s.MultiSelectedUIDs() {
		if id == uid {
			return true
		}
	}
	return s.Selection.Start == uid
}

func previewOf(block *domain.Block) string {
	content, _ := block.Attributes.Value("content").(string)
	content = strings.Join(strings.Fields(content), " ")
	if runes := []rune(content); len(runes) > maxPreview {
		content = string(runes[:maxPreview]) + "…"
	}
	return content
}
