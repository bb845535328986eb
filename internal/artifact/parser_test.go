package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const containerResponse = `Sure, here is a landing page.

<genArtifact title="Landing page">
  <genAction type="file" path="src/App.jsx">
export default function App() {
  return <h1>Hello</h1>;
}
  </genAction>
  <genAction type="file" path="src/index.css">
body { margin: 0; }
  </genAction>
  <genAction type="shell">npm install</genAction>
</genArtifact>

Let me know what to change.`

func TestParseContainerFormat(t *testing.T) {
	a := Parse(containerResponse)

	require.Len(t, a.Files, 2)
	assert.Equal(t, "Landing page", a.Title)
	assert.Contains(t, a.Files["src/App.jsx"], "export default function App()")
	assert.Equal(t, "body { margin: 0; }", a.Files["src/index.css"])
	require.Len(t, a.Commands, 1)
	assert.Equal(t, "npm install", a.Commands[0])
}

func TestParseContainerTrimsContent(t *testing.T) {
	a := Parse(`<genArtifact title="t"><genAction type="file" path="a.txt">

  hello

</genAction></genArtifact>`)

	require.Len(t, a.Files, 1)
	assert.Equal(t, "hello", a.Files["a.txt"])
}

func TestParseContainerLastWriteWins(t *testing.T) {
	a := Parse(`<genArtifact title="t">
<genAction type="file" path="a.txt">first</genAction>
<genAction type="file" path="a.txt">second</genAction>
</genArtifact>`)

	require.Len(t, a.Files, 1)
	assert.Equal(t, "second", a.Files["a.txt"])
}

func TestParseOnlyFirstContainerConsulted(t *testing.T) {
	a := Parse(`<genArtifact title="one">
<genAction type="file" path="a.txt">a</genAction>
</genArtifact>
<genArtifact title="two">
<genAction type="file" path="b.txt">b</genAction>
</genArtifact>`)

	assert.Equal(t, "one", a.Title)
	require.Len(t, a.Files, 1)
	assert.Contains(t, a.Files, "a.txt")
}

func TestParseContainerBeatsFencedBlock(t *testing.T) {
	text := containerResponse + "\n```js\nconsole.log('ignored')\n```\n"
	a := Parse(text)

	assert.Len(t, a.Files, 2)
	for path := range a.Files {
		assert.NotContains(t, a.Files[path], "ignored")
	}
}

func TestParseFileTagFormat(t *testing.T) {
	a := Parse(`<genFile path="src/Button.jsx">
export const Button = () => <button/>;
</genFile>
<genFile path="src/Card.jsx">
export const Card = () => <div/>;
</genFile>`)

	require.Len(t, a.Files, 2)
	assert.Empty(t, a.Commands)
	assert.Contains(t, a.Files["src/Button.jsx"], "Button")
}

func TestParseInlinePathFence(t *testing.T) {
	a := Parse("```jsx:src/App.jsx\nexport default function App() {}\n```\n")

	require.Len(t, a.Files, 1)
	assert.Equal(t, "export default function App() {}", a.Files["src/App.jsx"])
}

func TestParseCommentPathFence(t *testing.T) {
	for _, tc := range []struct {
		name    string
		comment string
	}{
		{"slash", "// filepath: src/util.js"},
		{"hash", "# filepath: setup.py"},
		{"html", "<!-- filepath: index.html -->"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := Parse("```\n" + tc.comment + "\nthe content\n```\n")
			require.Len(t, a.Files, 1)
			for _, content := range a.Files {
				assert.Equal(t, "the content", content)
			}
		})
	}
}

func TestParseCommentPathConsumesFirstLine(t *testing.T) {
	a := Parse("```js\n// filepath: src/a.js\nline1\nline2\n```\n")

	require.Contains(t, a.Files, "src/a.js")
	assert.Equal(t, "line1\nline2", a.Files["src/a.js"])
}

func TestParseDropsNonCodeFences(t *testing.T) {
	a := Parse("```bash\nnpm run dev\n```\n\n```json\n{\"name\":\"demo\",\"dependencies\":{}}\n```\n")

	require.Len(t, a.Files, 1)
	assert.Contains(t, a.Files, "package.json")
}

func TestParsePlainReplyIsEmpty(t *testing.T) {
	a := Parse("Happy to help! What kind of UI would you like to build?")

	assert.True(t, a.Empty())
	assert.NotNil(t, a.Files)
}

func TestParseFileActionWithoutPathSkipped(t *testing.T) {
	a := Parse(`<genArtifact title="t">
<genAction type="file">orphan</genAction>
<genAction type="shell">npm ci</genAction>
</genArtifact>`)

	assert.Empty(t, a.Files)
	require.Len(t, a.Commands, 1)
}

func TestParseCommandOrderPreserved(t *testing.T) {
	a := Parse(`<genArtifact title="t">
<genAction type="shell">npm install</genAction>
<genAction type="file" path="a.txt">x</genAction>
<genAction type="shell">npm run dev</genAction>
</genArtifact>`)

	require.Equal(t, []string{"npm install", "npm run dev"}, a.Commands)
}
