package generation

import (
	"fmt"
	"strings"

	"github.com/mateoquintana/brandforge-backend/pkg/db/models"
)

// BuildPrompt flattens a project's brand brief and a design's content fields
// into one descriptive prompt. Missing fields degrade to neutral defaults so
// the prompt always reads as a complete instruction.
func BuildPrompt(project *models.Project, design *models.Design) string {
	colors := "default"
	if len(project.Colors) > 0 {
		colors = strings.Join(project.Colors, ", ")
	}
	fonts := "modern"
	if len(project.Fonts) > 0 {
		fonts = strings.Join(project.Fonts, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s design using brand colors %s and %s typography.",
		strings.ReplaceAll(string(project.DesignType), "_", " "), colors, fonts)

	appendField(&b, "Headline", design.Title)
	appendField(&b, "Body copy", design.Copy)
	appendField(&b, "Description", design.Description)
	appendField(&b, "Call to action", design.CallToAction)
	appendField(&b, "Footer", design.Footer)
	if project.Guidelines != nil && strings.TrimSpace(*project.Guidelines) != "" {
		fmt.Fprintf(&b, " Brand guidelines: %s.", strings.TrimSpace(*project.Guidelines))
	}
	return b.String()
}

func appendField(b *strings.Builder, label string, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return
	}
	fmt.Fprintf(b, " %s: %q.", label, trimmed)
}
