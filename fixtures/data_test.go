package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultData(t *testing.T) {
	d := DefaultData()
	assert.Equal(t, "Google", d.PageTitle)
	todo, ok := d.Todo(1)
	require.True(t, ok)
	assert.Equal(t, Todo{UserID: 1, ID: 1, Title: "delectus aut autem", Completed: false}, todo)

	_, ok = d.Todo(999)
	assert.False(t, ok)
}

func TestLoadDataAcceptsJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"pageTitle":"Example","todos":[{"id":7,"title":"x"}]}`), 0600))
	yamlPath := filepath.Join(dir, "data.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("pageTitle: Example\ntodos:\n  - id: 7\n    title: x\n"), 0600))

	for _, path := range []string{jsonPath, yamlPath} {
		d, err := LoadData(path)
		require.NoError(t, err)
		assert.Equal(t, Data{PageTitle: "Example", Todos: []Todo{{ID: 7, Title: "x"}}}, d)
	}
}

func TestLoadDataErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadData(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("todos: ["), 0600))
	_, err = LoadData(bad)
	assert.Error(t, err)

	dup := filepath.Join(dir, "dup.yml")
	require.NoError(t, os.WriteFile(dup, []byte("todos:\n  - id: 1\n  - id: 1\n"), 0600))
	_, err = LoadData(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate todo id 1")
}

func TestParseJSONOrYAMLRejectsNonStringKeys(t *testing.T) {
	var target map[string]interface{}
	err := ParseJSONOrYAML([]byte("? [a, b]\n: 1\n"), &target)
	assert.Error(t, err)
}

func TestFixtureDataCanUseYAMLAnchors(t *testing.T) {
	input := `---
shared: &first
  userId: 5
  completed: true
pageTitle: Anchored
todos:
  - <<: *first
    id: 1
    title: one
  - <<: *first
    id: 2
    title: two
`
	var d Data
	require.NoError(t, ParseJSONOrYAML([]byte(input), &d))
	assert.Equal(t, []Todo{
		{UserID: 5, ID: 1, Title: "one", Completed: true},
		{UserID: 5, ID: 2, Title: "two", Completed: true},
	}, d.Todos)
}
