package classname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveRaw(t *testing.T, value string, mode Mode) (bg, text string) {
	t.Helper()
	pair := Resolve(Parse(value), mode)
	if pair.Background != nil {
		bg = pair.Background.Raw
	}
	if pair.Text != nil {
		text = pair.Text.Raw
	}
	return bg, text
}

func TestResolve_DarkOverrideWinsRegardlessOfOrder(t *testing.T) {
	for _, value := range []string{
		"bg-white dark:bg-gray-900 text-gray-900 dark:text-white",
		"dark:bg-gray-900 bg-white dark:text-white text-gray-900",
	} {
		bg, text := resolveRaw(t, value, ModeDark)
		assert.Equal(t, "dark:bg-gray-900", bg, value)
		assert.Equal(t, "dark:text-white", text, value)

		bg, text = resolveRaw(t, value, ModeLight)
		assert.Equal(t, "bg-white", bg, value)
		assert.Equal(t, "text-gray-900", text, value)
	}
}

func TestResolve_UniversalFallback(t *testing.T) {
	for _, mode := range Modes {
		bg, text := resolveRaw(t, "bg-gray-900 text-gray-800", mode)
		assert.Equal(t, "bg-gray-900", bg, mode)
		assert.Equal(t, "text-gray-800", text, mode)
	}
}

func TestResolve_FirstNonDarkWins(t *testing.T) {
	bg, _ := resolveRaw(t, "bg-white bg-gray-50", ModeLight)
	assert.Equal(t, "bg-white", bg)
}

func TestResolve_DarkNeverResolvesLight(t *testing.T) {
	bg, text := resolveRaw(t, "dark:bg-gray-900 dark:text-white", ModeLight)
	assert.Empty(t, bg)
	assert.Empty(t, text)
}

func TestResolve_SkipsInteractiveVariants(t *testing.T) {
	bg, text := resolveRaw(t, "hover:bg-gray-100 focus:text-white group-hover:text-black", ModeLight)
	assert.Empty(t, bg)
	assert.Empty(t, text)

	bg, _ = resolveRaw(t, "dark:hover:bg-gray-800 bg-white", ModeDark)
	assert.Equal(t, "bg-white", bg)
}

func TestResolve_ExcludesOpacityModified(t *testing.T) {
	pair := Resolve(Parse("bg-white/10 text-white/80"), ModeLight)
	assert.Nil(t, pair.Background)
	assert.Nil(t, pair.Text)
	assert.False(t, pair.Complete())
}

func TestResolver_CustomInteractiveVariants(t *testing.T) {
	r := NewResolver([]string{"aria-selected"})

	pair := r.Resolve(Parse("aria-selected:bg-white hover:bg-gray-50"), ModeLight)
	require.NotNil(t, pair.Background)
	assert.Equal(t, "hover:bg-gray-50", pair.Background.Raw)
}

func TestResolve_ReturnsPointersIntoInput(t *testing.T) {
	tokens := Parse("bg-white text-black")
	pair := Resolve(tokens, ModeLight)
	require.True(t, pair.Complete())
	assert.Same(t, &tokens[0], pair.Background)
	assert.Same(t, &tokens[1], pair.Text)
}
