package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"codeberg.org/snonux/mdtranslate/internal/cli"
	"codeberg.org/snonux/mdtranslate/internal/segment"
	"codeberg.org/snonux/mdtranslate/internal/testutil"
	"codeberg.org/snonux/mdtranslate/internal/translation"
)

// upperService "translates" by prefixing the fragment with "T:". Fragments
// containing filter get a single choice without text.
type upperService struct {
	calls  []string
	fail   string
	filter string
}

func (s *upperService) Complete(_ context.Context, req translation.Request) ([]translation.Choice, error) {
	user := req.Messages[len(req.Messages)-1].Content
	fragment := user[strings.LastIndex(user, "---\n")+len("---\n"):]
	s.calls = append(s.calls, fragment)
	if s.fail != "" && strings.Contains(fragment, s.fail) {
		return nil, errors.New("service unavailable")
	}
	if s.filter != "" && strings.Contains(fragment, s.filter) {
		return []translation.Choice{{FinishReason: "content_filter"}}, nil
	}
	return []translation.Choice{{Content: "T:" + fragment}}, nil
}

func newTestProcessor(t *testing.T, svc translation.ChatService) (*Processor, *cli.Flags, *bytes.Buffer) {
	t.Helper()

	viper.Reset()
	t.Setenv("OPENAI_API_KEY", "test-key")

	flags := cli.NewFlags()
	cli.CreateRootCommand(flags)

	var out bytes.Buffer
	p := NewProcessor(flags, zap.NewNop(),
		WithStdout(&out),
		WithTranslationOptions(translation.WithService(svc), translation.WithoutBreaker()))
	return p, flags, &out
}

func TestNewProcessor(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags, zap.NewNop())

	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
	if p.flags != flags {
		t.Error("Processor flags not set correctly")
	}
	if p.stdout != os.Stdout {
		t.Error("Processor should write to stdout by default")
	}
}

func TestProcessText(t *testing.T) {
	svc := &upperService{}
	p, _, out := newTestProcessor(t, svc)

	err := p.ProcessText(context.Background(), nil, strings.NewReader("# A\none\n## B\ntwo\n"), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"# A\none", "## B\ntwo"}, svc.calls)
	assert.Equal(t, "T:# A\none\n\nT:## B\ntwo\n\n", out.String())
}

func TestProcessText_HTMLToFile(t *testing.T) {
	svc := &upperService{}
	p, flags, out := newTestProcessor(t, svc)
	flags.OutputFile = filepath.Join(t.TempDir(), "out", "doc.html")
	viper.Set("output.format", "html")

	err := p.ProcessText(context.Background(), []string{"# Title"}, nil, true)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(flags.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")
	assert.Contains(t, string(data), "<h1>Title</h1>")
	assert.Contains(t, string(data), "T:# Title")
}

func TestProcessText_HTMLWithFilteredFragment(t *testing.T) {
	svc := &upperService{filter: "# A"}
	p, _, out := newTestProcessor(t, svc)
	viper.Set("output.format", "html")

	err := p.ProcessText(context.Background(), nil, strings.NewReader("# A\n# B\n# C"), false)
	require.NoError(t, err)

	rows := strings.Split(out.String(), "<tr>")[1:]
	require.Len(t, rows, 3)

	assert.Contains(t, rows[0], "<h1>A</h1>")
	assert.NotContains(t, rows[0], "T:")
	assert.Contains(t, rows[1], "<h1>B</h1>")
	assert.Contains(t, rows[1], "T:# B")
	assert.Contains(t, rows[2], "<h1>C</h1>")
	assert.Contains(t, rows[2], "T:# C")
}

func TestProcessText_TextWithFilteredFragment(t *testing.T) {
	svc := &upperService{filter: "# A"}
	p, _, out := newTestProcessor(t, svc)

	err := p.ProcessText(context.Background(), nil, strings.NewReader("# A\n# B"), false)
	require.NoError(t, err)
	assert.Equal(t, "T:# B\n\n", out.String())
}

func TestProcessText_EmptyInput(t *testing.T) {
	svc := &upperService{}
	p, _, _ := newTestProcessor(t, svc)

	err := p.ProcessText(context.Background(), nil, strings.NewReader("  \n"), false)
	assert.ErrorIs(t, err, segment.ErrEmptyInput)
	assert.Empty(t, svc.calls)
}

func TestProcessText_MissingAPIKey(t *testing.T) {
	svc := &upperService{}
	p, _, _ := newTestProcessor(t, svc)
	t.Setenv("OPENAI_API_KEY", "")

	err := p.ProcessText(context.Background(), []string{"# A"}, nil, true)

	var cfgErr *translation.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, svc.calls)
}

func TestProcessText_StopsOnFailure(t *testing.T) {
	svc := &upperService{fail: "B"}
	p, _, out := newTestProcessor(t, svc)

	err := p.ProcessText(context.Background(), nil, strings.NewReader("# A\n# B\n# C"), false)

	var trErr *translation.TranslationError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, []string{"# A", "# B"}, svc.calls)
	assert.Empty(t, out.String())
}

func TestProcessText_InvalidFormat(t *testing.T) {
	p, _, _ := newTestProcessor(t, &upperService{})
	viper.Set("output.format", "pdf")

	err := p.ProcessText(context.Background(), []string{"# A"}, nil, true)
	assert.Error(t, err)
}

func TestProcessBatch(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateTestFile(t, filepath.Join(dir, "one.md"), "# One\ntext")
	testutil.CreateTestFile(t, filepath.Join(dir, "two.md"), "# Two\nFAIL")
	testutil.CreateTestFile(t, filepath.Join(dir, "three.md"), "# Three")
	testutil.CreateTestFile(t, filepath.Join(dir, "batch.txt"), "one.md\ntwo.md\nthree.md = out/three.md\nmissing.md\n")

	svc := &upperService{fail: "FAIL"}
	p, flags, out := newTestProcessor(t, svc)
	flags.BatchFile = filepath.Join(dir, "batch.txt")

	err := p.ProcessBatch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 4 documents failed")

	testutil.AssertFileContent(t, filepath.Join(dir, "one.english.md"), "T:# One\ntext\n\n")
	testutil.AssertFileContent(t, filepath.Join(dir, "out", "three.md"), "T:# Three\n\n")
	testutil.AssertFileNotExists(t, filepath.Join(dir, "two.english.md"))

	assert.Contains(t, out.String(), "Translating 1/4")
	assert.Contains(t, out.String(), "Translated: 2")
	assert.Contains(t, out.String(), "Errors: 2")
}

func TestProcessBatch_InvalidFile(t *testing.T) {
	p, flags, _ := newTestProcessor(t, &upperService{})
	flags.BatchFile = "/nonexistent/file.txt"

	if err := p.ProcessBatch(context.Background()); err == nil {
		t.Error("Expected error for non-existent batch file")
	}
}

func TestTranslator_IsReused(t *testing.T) {
	p, _, _ := newTestProcessor(t, &upperService{})

	first, err := p.Translator()
	require.NoError(t, err)
	second, err := p.Translator()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
