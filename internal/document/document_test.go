package document

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"codeberg.org/snonux/mdtranslate/internal/segment"
)

// stubTranslator wraps every fragment in "<T:...>" and can fail at one index.
type stubTranslator struct {
	calls  []string
	failAt int
	err    error
}

func (s *stubTranslator) Translate(_ context.Context, fragment string) ([]string, error) {
	s.calls = append(s.calls, fragment)
	if s.err != nil && len(s.calls)-1 == s.failAt {
		return nil, s.err
	}
	return []string{"<T:" + fragment + ">"}, nil
}

type fixedTranslator map[string][]string

func (f fixedTranslator) Translate(_ context.Context, fragment string) ([]string, error) {
	return f[fragment], nil
}

const sample = "intro\n# A\ntext1\n## B\n```\n# code\n```\n### C\ntext3"

func TestNew(t *testing.T) {
	d, err := New(sample)
	require.NoError(t, err)
	assert.Equal(t, []string{"intro", "# A\ntext1", "## B\n```\n# code\n```", "### C\ntext3"}, d.Fragments())
	assert.Equal(t, 4, d.Len())
}

func TestNew_Empty(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, segment.ErrEmptyInput)
}

func TestFragments_ReturnsCopy(t *testing.T) {
	d, err := New(sample)
	require.NoError(t, err)

	f := d.Fragments()
	f[0] = "changed"
	assert.Equal(t, "intro", d.Fragments()[0])
}

func TestTranslate_Alignment(t *testing.T) {
	d, err := New(sample)
	require.NoError(t, err)

	stub := &stubTranslator{}
	out, err := d.Translate(context.Background(), stub)
	require.NoError(t, err)

	fragments := d.Fragments()
	require.Len(t, out, len(fragments))
	for i, f := range fragments {
		assert.Equal(t, "<T:"+f+">", out[i])
	}
	assert.Equal(t, fragments, stub.calls)
}

func TestTranslate_StopsAtFirstFailure(t *testing.T) {
	d, err := New(sample)
	require.NoError(t, err)

	cause := errors.New("rate limited")
	stub := &stubTranslator{failAt: 1, err: cause}

	out, err := d.Translate(context.Background(), stub)
	assert.Same(t, cause, err)
	assert.Nil(t, out)
	assert.Len(t, stub.calls, 2)
}

func TestTranslate_FlattensResults(t *testing.T) {
	d, err := New("# A\n# B\n# C")
	require.NoError(t, err)

	tr := fixedTranslator{
		"# A": {"a1", "a2"},
		"# B": nil,
		"# C": {"c"},
	}

	out, err := d.Translate(context.Background(), tr)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "c"}, out)
}

func TestTranslate_Progress(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	var seen [][2]int
	d, err := New(sample,
		WithLogger(zap.New(core)),
		WithProgress(func(done, total int) { seen = append(seen, [2]int{done, total}) }))
	require.NoError(t, err)

	_, err = d.Translate(context.Background(), &stubTranslator{})
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{1, 4}, {2, 4}, {3, 4}, {4, 4}}, seen)

	entries := logs.FilterMessage("translating fragment").All()
	require.Len(t, entries, 4)
	for i, e := range entries {
		fields := e.ContextMap()
		assert.EqualValues(t, i+1, fields["fragment"])
		assert.EqualValues(t, 4, fields["total"])
	}
}

func TestTranslate_ProgressStopsOnFailure(t *testing.T) {
	var calls int
	d, err := New(sample, WithProgress(func(int, int) { calls++ }))
	require.NoError(t, err)

	_, err = d.Translate(context.Background(), &stubTranslator{failAt: 0, err: errors.New("x")})
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestTranslateEach_KeepsFragmentAlignment(t *testing.T) {
	d, err := New("# A\n# B\n# C")
	require.NoError(t, err)

	tr := fixedTranslator{
		"# A": nil,
		"# B": {"b1", "b2"},
		"# C": {"c"},
	}

	each, err := d.TranslateEach(context.Background(), tr)
	require.NoError(t, err)
	require.Len(t, each, d.Len())
	assert.Empty(t, each[0])
	assert.Equal(t, []string{"b1", "b2"}, each[1])
	assert.Equal(t, []string{"c"}, each[2])

	assert.Equal(t, []string{"b1", "b2", "c"}, Flatten(each))
}

func TestTranslateEach_StopsAtFirstFailure(t *testing.T) {
	d, err := New(sample)
	require.NoError(t, err)

	cause := errors.New("rate limited")
	each, err := d.TranslateEach(context.Background(), &stubTranslator{failAt: 2, err: cause})
	assert.Same(t, cause, err)
	assert.Nil(t, each)
}
