package wireformat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/value"
)

func TestExportParquetWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.parquet")

	columns := []ExportColumn{
		{Name: "id", Kind: sqltype.Integer, Values: []value.Value{value.FromI32(1), value.FromI32(2)}},
		{Name: "name", Kind: sqltype.Varchar, Values: []value.Value{value.BorrowedString([]byte("a")), value.NullOf(sqltype.Varchar)}},
	}
	assert.NoError(t, ExportParquet(path, columns))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportParquetRejectsMismatchedRowCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.parquet")
	columns := []ExportColumn{
		{Name: "a", Kind: sqltype.Integer, Values: []value.Value{value.FromI32(1)}},
		{Name: "b", Kind: sqltype.Integer, Values: []value.Value{value.FromI32(1), value.FromI32(2)}},
	}
	assert.Error(t, ExportParquet(path, columns))
}

func TestExportParquetRejectsArrayColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.parquet")
	arr := value.ArrayOf(1, sqltype.Integer)
	columns := []ExportColumn{
		{Name: "a", Kind: sqltype.Array, Values: []value.Value{arr}},
	}
	assert.Error(t, ExportParquet(path, columns))
}
