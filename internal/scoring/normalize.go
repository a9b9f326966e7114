package scoring

import (
	"strings"

	"github.com/spigell/ats-scorer/internal/utils"
)

// MaxEmbeddingText keeps texts within the embedding model's token window.
const MaxEmbeddingText = 5120

// Normalize collapses whitespace runs, trims and truncates text to
// MaxEmbeddingText characters.
func Normalize(text string) string {
	return utils.TruncateRunes(collapseSpaces(text), MaxEmbeddingText)
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
