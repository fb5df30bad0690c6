package wireformat

import (
	"encoding/json"
	"fmt"
	"strings"

	pqLocal "github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/value"
)

// ExportColumn is one named, typed column of an export batch, alongside
// its per-row Values (NULLs included inline rather than via a separate
// bitmap -- Parquet's own optional-field encoding carries that).
type ExportColumn struct {
	Name   string
	Kind   sqltype.Kind
	Values []value.Value
}

// ExportParquet writes a row batch described by columns to a local
// Parquet file at path, one row group. Every field is OPTIONAL so a
// NULL Value serializes as Parquet's own null rather than a sentinel.
// Array columns are not supported; Parquet's own nested list encoding
// is a different, heavier feature than this engine's fixed-length
// homogeneous arrays and is left for a caller that needs it to flatten
// first.
func ExportParquet(path string, columns []ExportColumn) error {
	if len(columns) == 0 {
		return &engerr.UnsupportedOperationError{Msg: "wireformat: ExportParquet needs at least one column"}
	}
	rowCount := len(columns[0].Values)
	for _, c := range columns {
		if len(c.Values) != rowCount {
			return &engerr.UnsupportedOperationError{Msg: "wireformat: ExportParquet columns have mismatched row counts"}
		}
		if c.Kind == sqltype.Array {
			return &engerr.UnsupportedOperationError{Msg: "wireformat: ExportParquet does not support Array columns"}
		}
	}

	schema, err := parquetJSONSchema(columns)
	if err != nil {
		return err
	}

	pqFile, err := pqLocal.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer pqFile.Close()

	pw, err := writer.NewJSONWriter(schema, pqFile, int64(len(columns)))
	if err != nil {
		return err
	}

	for row := 0; row < rowCount; row++ {
		rec := make(map[string]any, len(columns))
		for _, c := range columns {
			rec[c.Name] = parquetFieldValue(c.Values[row])
		}
		encoded, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := pw.Write(string(encoded)); err != nil {
			return err
		}
	}
	return pw.WriteStop()
}

func parquetJSONSchema(columns []ExportColumn) (string, error) {
	var fields []string
	for _, c := range columns {
		pqType, err := parquetFieldTag(c.Kind)
		if err != nil {
			return "", err
		}
		fields = append(fields, fmt.Sprintf(`{"Tag": "name=%s, %s, repetitiontype=OPTIONAL"}`, c.Name, pqType))
	}
	return fmt.Sprintf(`{"Tag": "name=root, repetitiontype=REQUIRED", "Fields": [%s]}`, strings.Join(fields, ",")), nil
}

func parquetFieldTag(k sqltype.Kind) (string, error) {
	switch k {
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer:
		return "type=INT32", nil
	case sqltype.BigInt, sqltype.Timestamp, sqltype.Address:
		return "type=INT64", nil
	case sqltype.Double:
		return "type=DOUBLE", nil
	case sqltype.Boolean:
		return "type=BOOLEAN", nil
	case sqltype.Decimal:
		// Stored as its canonical decimal-string text rather than
		// Parquet's own DECIMAL logical type, which needs a fixed
		// byte width chosen up front; a string survives any scale.
		return "type=BYTE_ARRAY, convertedtype=UTF8", nil
	case sqltype.Varchar:
		return "type=BYTE_ARRAY, convertedtype=UTF8", nil
	case sqltype.Varbinary:
		return "type=BYTE_ARRAY", nil
	default:
		return "", &engerr.UnsupportedOperationError{Msg: "wireformat: " + k.String() + " has no Parquet mapping"}
	}
}

func parquetFieldValue(v value.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case sqltype.TinyInt:
		return int32(v.AsI8())
	case sqltype.SmallInt:
		return int32(v.AsI16())
	case sqltype.Integer:
		return v.AsI32()
	case sqltype.BigInt:
		return v.AsI64()
	case sqltype.Timestamp:
		return v.AsTimestamp()
	case sqltype.Address:
		return int64(v.AsAddress())
	case sqltype.Double:
		return v.AsF64()
	case sqltype.Boolean:
		return v.AsBool()
	case sqltype.Decimal:
		return v.AsDecimal().String()
	case sqltype.Varchar, sqltype.Varbinary:
		return string(v.Bytes())
	default:
		return nil
	}
}
