// Tests for JSONL persistence, export and import.
package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dirschema/pkg/schema"
	"github.com/mesh-intelligence/dirschema/pkg/types"
	"github.com/mesh-intelligence/dirschema/pkg/wim"
)

func TestJSONLInitializedEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	attached(t, testRegistry(t), tmpDir)

	info, err := os.Stat(filepath.Join(tmpDir, recordsJSONL))
	if err != nil {
		t.Fatalf("failed to stat %s: %v", recordsJSONL, err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty file, got %d bytes", info.Size())
	}
}

func TestRecordPersistedToJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	reg := testRegistry(t)
	b := attached(t, reg, tmpDir)

	id, err := b.Set("", newPerson(t, reg, "Test Person", "Person"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, recordsJSONL))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], id)
	assert.Contains(t, lines[0], "Test Person")
	assert.Contains(t, lines[0], `"type_name":"Person"`)

	require.NoError(t, b.Delete(id))
	data, err = os.ReadFile(filepath.Join(tmpDir, recordsJSONL))
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(data)))
}

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	content := strings.Join([]string{
		`{"record_id":"a","type_name":"Group","properties":{"cn":"one"}}`,
		`not json`,
		``,
		`{"record_id":"","type_name":"Group"}`,
		`{"record_id":"b","type_name":"Group","properties":{},"future_field":true}`,
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].RecordID)
	assert.Equal(t, "b", records[1].RecordID)
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestWriteJSONLReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old contents\n"), 0644))

	require.NoError(t, writeJSONL(path, []recordJSON{{RecordID: "x", TypeName: "Group"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old contents")
	assert.Contains(t, string(data), `"record_id":"x"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestExportImportRoundTrip(t *testing.T) {
	reg := testRegistry(t)
	src := attached(t, reg, t.TempDir())

	group := reg.MustNew(wim.TypeGroup)
	require.NoError(t, group.Set("cn", schema.String("eng")))
	require.NoError(t, group.Set("members", schema.RecordRef(newPerson(t, reg, "m", "m"))))
	groupID, err := src.Set("", group)
	require.NoError(t, err)
	personID, err := src.Set("", newPerson(t, reg, "solo", "s"))
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.jsonl")
	require.NoError(t, src.Export(exportPath))

	dst := attached(t, reg, t.TempDir())
	n, err := dst.Import(exportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := dst.Get(groupID)
	require.NoError(t, err)
	assert.True(t, got.Get("cn").Equal(schema.String("eng")))
	assert.Equal(t, 1, got.Get("members").Len())

	_, err = dst.Get(personID)
	assert.NoError(t, err)

	n, err = dst.Import(exportPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "re-import replaces by ID")
	all, err := dst.Fetch(wim.TypeEntity, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportSkipsUnknownTypes(t *testing.T) {
	reg := testRegistry(t)
	b := attached(t, reg, t.TempDir())

	path := filepath.Join(t.TempDir(), "in.jsonl")
	content := `{"record_id":"a","type_name":"Spaceship","properties":{}}
{"record_id":"b","type_name":"Group","properties":{"cn":"ok"}}
{"record_id":"c","type_name":"Group","properties":{"cn":12}}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	n, err := b.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = b.Get("a")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.Get("c")
	assert.ErrorIs(t, err, types.ErrNotFound)
	rec, err := b.Get("b")
	require.NoError(t, err)
	assert.True(t, rec.Get("cn").Equal(schema.String("ok")))
}
