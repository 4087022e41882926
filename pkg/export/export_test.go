package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Name", "Batch", "Attended Session"},
		Rows: []map[string]string{
			{"Name": "Asha, K", "Batch": "Batch 36 (Oct 19, 2026 - Oct 31, 2026)", "Attended Session": "yes"},
			{"Name": "Ravi", "Attended Session": "no"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset(), "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Batch,Attended Session", lines[0])
	assert.Equal(t, `"Asha, K",Batch 36 (Oct 19, 2026 - Oct 31, 2026),yes`, strings.TrimSpace(lines[1]))
	assert.Equal(t, "Ravi,,no", strings.TrimSpace(lines[2]))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{}, "")
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "title")
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Candidates")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate(" short ", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
