package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testRow struct {
	Name  string `json:"name" yaml:"name"`
	Owner string `json:"owner" yaml:"owner"`
}

func (r testRow) Header() []string { return []string{"NAME", "OWNER"} }
func (r testRow) Fields() []string { return []string{r.Name, r.Owner} }
func (r testRow) Describe() string { return "Name: " + r.Name + "\n" }

var rows = []testRow{
	{Name: "alpha", Owner: "platform"},
	{Name: "a-much-longer-name", Owner: "security"},
}

func TestNewPrinter(t *testing.T) {
	t.Parallel()

	p, err := NewPrinter(&bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, p.Format())

	_, err = NewPrinter(&bytes.Buffer{}, "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestPrint_Table(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, err := NewPrinter(&buf, FormatTable)
	require.NoError(t, err)
	require.NoError(t, Print(p, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "alpha"))

	// columns are aligned
	assert.Equal(t, strings.Index(lines[0], "OWNER"), strings.Index(lines[1], "platform"))
	assert.Equal(t, strings.Index(lines[0], "OWNER"), strings.Index(lines[2], "security"))
}

func TestPrint_TableEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, _ := NewPrinter(&buf, FormatTable)
	require.NoError(t, Print(p, []testRow{}))
	assert.Empty(t, buf.String())
}

func TestPrint_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, _ := NewPrinter(&buf, FormatJSON)
	require.NoError(t, Print(p, rows))

	var got []testRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rows, got)
}

func TestPrint_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, _ := NewPrinter(&buf, FormatYAML)
	require.NoError(t, Print(p, rows))

	assert.True(t, strings.HasPrefix(buf.String(), "- name: alpha\n"))
	var got []testRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rows, got)
}

func TestPrintDetail(t *testing.T) {
	t.Parallel()

	var table bytes.Buffer
	p, _ := NewPrinter(&table, FormatTable)
	require.NoError(t, p.PrintDetail(rows[0]))
	assert.Equal(t, "Name: alpha\n", table.String())

	var js bytes.Buffer
	p, _ = NewPrinter(&js, FormatJSON)
	require.NoError(t, p.PrintDetail(rows[0]))

	var got testRow
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	assert.Equal(t, rows[0], got)
}
