package noteshub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickyRule struct{}

func (panickyRule) Kind() ResourceKind { return KindMarkdown }

func (panickyRule) Run(ctx context.Context, site *Site, res *Resource) RenderResult {
	panic("boom")
}

func TestRunRuleRecoversPanics(t *testing.T) {
	site := newTestSite(t, map[string]string{"a.md": "x"})
	result := RunRule(context.Background(), panickyRule{}, site, resourceFor(t, site, "a.md"))
	require.True(t, result.Failed())
	assert.Equal(t, "a.md: panic: boom", result.Failure.Error())
}

func TestRunRuleHonoursCancelledContext(t *testing.T) {
	site := newTestSite(t, map[string]string{"a.md": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := RunRule(ctx, &MarkdownRule{}, site, resourceFor(t, site, "a.md"))
	require.True(t, result.Failed())
	assert.ErrorIs(t, result.Failure, context.Canceled)
}

func TestCopyRuleKeepsRelativePath(t *testing.T) {
	site := newTestSite(t, map[string]string{"chapter1/figs/plot.png": "png"})
	require.NoError(t, site.Output.EnsureLayout())

	result := RunRule(context.Background(), &CopyRule{}, site, resourceFor(t, site, "chapter1/figs/plot.png"))
	require.False(t, result.Failed())
	assert.Nil(t, result.Entry)
	assert.Equal(t, []string{"images/chapter1/figs/plot.png"}, result.Outputs)
	assert.Equal(t, "png", readOutput(t, site, "images/chapter1/figs/plot.png"))
}
