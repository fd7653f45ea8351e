package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bonsai/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, rendered := range []string{
		styles.Bold.Render("test"),
		styles.Kind.Render("test"),
		styles.Trivia.Render("test"),
		styles.Failure.Render("test"),
	} {
		assert.Equal(t, "test", rendered, "no-color styles should not add formatting")
	}
}

func TestStyles_AllFieldsRender(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	for _, rendered := range []string{
		styles.Kind.Render("x"),
		styles.Length.Render("x"),
		styles.Token.Render("x"),
		styles.Trivia.Render("x"),
		styles.Branch.Render("x"),
		styles.DiffPath.Render("x"),
		styles.DiffLeft.Render("x"),
		styles.DiffRight.Render("x"),
		styles.SummaryTitle.Render("x"),
		styles.SummaryValue.Render("x"),
		styles.Success.Render("x"),
		styles.Failure.Render("x"),
		styles.TableHeader.Render("x"),
		styles.TableSeparator.Render("x"),
		styles.Dim.Render("x"),
		styles.Bold.Render("x"),
	} {
		assert.Contains(t, rendered, "x")
	}
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	t.Parallel()

	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	// Even with a TTY, NO_COLOR should disable colors.
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf), "non-TTY means no color")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode behaves like auto")
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))

	f, err := os.CreateTemp(t.TempDir(), "width")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 100, pretty.TerminalWidth(f))
}
