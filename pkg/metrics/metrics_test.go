package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.DocsIndexedTotal.Add(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(a.DocsIndexedTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DocsIndexedTotal))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.DocsIndexedTotal.Add(2)
	m.ScanEntriesVisited.Set(5)
	m.RunsTotal.WithLabelValues("ok").Inc()

	path := filepath.Join(t.TempDir(), "docrank.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "docrank_documents_indexed_total 2"))
	assert.True(t, strings.Contains(text, "docrank_scan_entries_visited 5"))
	assert.True(t, strings.Contains(text, `docrank_runs_total{result="ok"} 1`))
}

func TestWriteTextfile_BadDirectory(t *testing.T) {
	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "docrank.prom"))
	assert.Error(t, err)
}
