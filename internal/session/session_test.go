package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genstudio/internal/design"
	"genstudio/internal/llm"
	"genstudio/internal/store"
	"genstudio/model"
)

const appReply = "Here is the app.\n\n" +
	`<genArtifact title="Counter">
<genAction type="file" path="src/App.jsx">
export default function App() { return <button>0</button> }
</genAction>
<genAction type="file" path="package.json">
{"name": "counter"}
</genAction>
</genArtifact>`

func cannedGenerator(reply string) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string, history []model.Message) (string, error) {
		return reply, nil
	})
}

func TestGenerateMergesArtifactIntoProject(t *testing.T) {
	s := New(Config{Generator: cannedGenerator(appReply)})

	msg, err := s.Generate(context.Background(), "build a counter")
	require.NoError(t, err)

	assert.Equal(t, model.RoleAssistant, msg.Role)
	assert.Equal(t, "Here is the app.", msg.Content)
	require.NotNil(t, msg.Artifact)
	assert.Equal(t, "Counter", msg.Artifact.Title)

	files := s.Files()
	require.Len(t, files, 2)
	assert.Contains(t, files["src/App.jsx"], "button")

	history := s.Messages()
	require.Len(t, history, 2)
	assert.Equal(t, model.RoleUser, history[0].Role)
	assert.Equal(t, "build a counter", history[0].Content)
}

func TestGenerateFailureBecomesErrorMessage(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string, history []model.Message) (string, error) {
		return "", errors.New("quota exceeded")
	})
	s := New(Config{Generator: gen})

	msg, err := s.Generate(context.Background(), "build a counter")
	require.Error(t, err)

	assert.True(t, msg.IsError)
	assert.Equal(t, model.RoleAssistant, msg.Role)
	assert.Contains(t, msg.Content, "quota exceeded")

	history := s.Messages()
	require.Len(t, history, 2, "user prompt and the error reply")
	assert.Empty(t, s.Files())
}

func TestGenerateLaterArtifactOverwritesFiles(t *testing.T) {
	replies := []string{
		appReply,
		"Updated.\n\n" + `<genArtifact title="Counter v2">
<genAction type="file" path="src/App.jsx">
export default function App() { return <button>1</button> }
</genAction>
</genArtifact>`,
	}
	i := 0
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string, history []model.Message) (string, error) {
		r := replies[i]
		i++
		return r, nil
	})
	s := New(Config{Generator: gen})

	_, err := s.Generate(context.Background(), "build a counter")
	require.NoError(t, err)
	_, err = s.Generate(context.Background(), "make it start at 1")
	require.NoError(t, err)

	files := s.Files()
	require.Len(t, files, 2, "untouched files survive a follow-up")
	assert.Contains(t, files["src/App.jsx"], "<button>1</button>")
}

func TestDesignEditFlowsThroughGeneration(t *testing.T) {
	var gotPrompt string
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string, history []model.Message) (string, error) {
		gotPrompt = prompt
		return appReply, nil
	})
	s := New(Config{Generator: gen, Debounce: 10 * time.Millisecond})

	s.Aggregator().Queue(design.Change{
		Type:      design.TypeStyle,
		ElementID: "btn-1",
		File:      "src/App.jsx",
		Style:     map[string]string{"color": "#fff"},
	})
	s.Aggregator().Flush()

	assert.Contains(t, gotPrompt, "In src/App.jsx:")
	assert.Contains(t, gotPrompt, "color: #fff")
	assert.Len(t, s.Messages(), 2, "the edit lands in chat history like any prompt")
}

func TestRestoreRoundTrip(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	s := New(Config{Generator: cannedGenerator(appReply), Store: st})
	_, err = s.Generate(context.Background(), "build a counter")
	require.NoError(t, err)

	fresh := New(Config{Generator: cannedGenerator(appReply), Store: st})
	require.NoError(t, fresh.Restore())

	assert.Equal(t, s.Files(), fresh.Files())
	require.Len(t, fresh.Messages(), 2)
	assert.Equal(t, "build a counter", fresh.Messages()[0].Content)
}

func TestRestoreWithoutSnapshotStartsEmpty(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	s := New(Config{Generator: cannedGenerator(appReply), Store: st})
	require.NoError(t, s.Restore())
	assert.Empty(t, s.Files())
	assert.Empty(t, s.Messages())
}

func TestTreeReflectsProject(t *testing.T) {
	s := New(Config{Generator: cannedGenerator(appReply)})
	_, err := s.Generate(context.Background(), "build a counter")
	require.NoError(t, err)

	tree := s.Tree()
	require.Len(t, tree, 2)
	assert.Equal(t, "src", tree[0].Name, "folders sort before files")
	assert.Equal(t, "package.json", tree[1].Name)
}
