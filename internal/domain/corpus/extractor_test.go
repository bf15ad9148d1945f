package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_NotAPDF(t *testing.T) {
	_, err := ExtractText([]byte("plain text, not a pdf"))
	assert.Error(t, err)
}

func TestTableFromText(t *testing.T) {
	t.Run("document and name pairs", func(t *testing.T) {
		text := "111.222.333-44 MARIA SILVA 555.666.777-88 PEDRO ALCANTARA\n123.456.789-01 JOSE DOS SANTOS\n"

		ds := TableFromText(text)
		require.Len(t, ds.Rows, 3)
		assert.Equal(t, "111.222.333-44", ds.Rows[0][DocumentHeader])
		assert.Equal(t, "MARIA SILVA", ds.Rows[0][NameHeader])
		assert.Equal(t, "555.666.777-88", ds.Rows[1][DocumentHeader])
		assert.Equal(t, "PEDRO ALCANTARA", ds.Rows[1][NameHeader])
		assert.Equal(t, "JOSE DOS SANTOS", ds.Rows[2][NameHeader])
	})

	t.Run("name-only listings split on column gaps", func(t *testing.T) {
		text := "MARIA SILVA   PEDRO ALCANTARA\nJOSE DOS SANTOS\n"

		ds := TableFromText(text)
		require.Len(t, ds.Rows, 3)
		for _, row := range ds.Rows {
			assert.Equal(t, "", row[DocumentHeader])
		}
	})

	t.Run("page furniture is dropped", func(t *testing.T) {
		ds := TableFromText("Página 3\nab\n")
		assert.Empty(t, ds.Rows)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		ds := TableFromText("111.222.333-44 MARIA SILVA\n111.222.333-44 MARIA SILVA\n")
		assert.Len(t, ds.Rows, 1)
	})
}
