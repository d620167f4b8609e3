package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONContent(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		assert.Equal(t, `{"a":"b"}`, ExtractJSONContent(`  {"a":"b"} `))
	})

	t.Run("fenced json block", func(t *testing.T) {
		raw := "Sure!\n```json\n{\"status\": \"ongoing\"}\n```\nEnjoy."
		assert.Equal(t, `{"status": "ongoing"}`, ExtractJSONContent(raw))
	})

	t.Run("fenced block without language", func(t *testing.T) {
		raw := "```\n{\"status\": \"ongoing\"}\n```"
		assert.Equal(t, `{"status": "ongoing"}`, ExtractJSONContent(raw))
	})

	t.Run("object surrounded by prose", func(t *testing.T) {
		raw := `The scene: {"dialog_prompt": "A {curly} room"} -- end`
		assert.Equal(t, `{"dialog_prompt": "A {curly} room"}`, ExtractJSONContent(raw))
	})

	t.Run("truncated object is balanced", func(t *testing.T) {
		raw := `{"dialog_prompt": "You wake up", "choices": ["a", "b"`
		assert.Equal(t, `{"dialog_prompt": "You wake up", "choices": ["a", "b"]}`, ExtractJSONContent(raw))
	})

	t.Run("truncated inside a string", func(t *testing.T) {
		raw := `{"dialog_prompt": "You wake up in a`
		assert.Equal(t, `{"dialog_prompt": "You wake up in a"}`, ExtractJSONContent(raw))
	})

	t.Run("nothing json-like", func(t *testing.T) {
		assert.Equal(t, "", ExtractJSONContent("no braces here"))
		assert.Equal(t, "", ExtractJSONContent(""))
	})
}

func TestBalanceBrackets_IgnoresBracketsInStrings(t *testing.T) {
	assert.Equal(t, `{"a": "}{]["}`, balanceBrackets(`{"a": "}{]["`))
	assert.Equal(t, `{"a": "x\"y"}`, balanceBrackets(`{"a": "x\"y"`))
}
