package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessageStripsFencedBlock(t *testing.T) {
	got := ExtractMessage("Here you go:\n\n```js\nconsole.log(1)\n```\n\nDone!")

	assert.Equal(t, "Here you go:\n\nDone!", got)
}

func TestExtractMessageStripsContainer(t *testing.T) {
	got := ExtractMessage(containerResponse)

	assert.Equal(t, "Sure, here is a landing page.\n\nLet me know what to change.", got)
}

func TestExtractMessageStripsFileTags(t *testing.T) {
	got := ExtractMessage("Intro\n\n<genFile path=\"a.js\">x</genFile>\n\nOutro")

	assert.Equal(t, "Intro\n\nOutro", got)
}

func TestExtractMessageCollapsesNewlines(t *testing.T) {
	got := ExtractMessage("a\n\n\n\n\nb")

	assert.Equal(t, "a\n\nb", got)
}

func TestExtractMessagePlainTextUntouched(t *testing.T) {
	assert.Equal(t, "just words", ExtractMessage("  just words  "))
}
