// cmd/valuewired is a demo psql-wire server: a client connects with any
// Postgres client and issues queries shaped like
// "INTEGER:42, VARCHAR:hello" (a comma-separated kind:text list). Each
// field is cast from text, round-tripped through pkg/wireformat's wire
// codec exactly as it would cross a real process boundary, and echoed
// back as one output row -- there is no SQL parser or query engine
// behind this, only the scalar value engine the rest of this module
// implements.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	wire "github.com/jeroenrinzema/psql-wire"
	"github.com/lib/pq/oid"
	"go.uber.org/zap"

	"github.com/relicsql/valuecore/pkg/cast"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/util"
	"github.com/relicsql/valuecore/pkg/value"
	"github.com/relicsql/valuecore/pkg/wireformat"
)

var runCfg util.Config

func init() {
	loadConfig()
}

var defCfgFilePaths = []string{".", "etc"}
var cfgFileName = "valuewired.toml"

func loadConfig() {
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			if _, err := toml.DecodeFile(fpath, &runCfg); err != nil {
				util.Error("toml load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
			}
			return
		}
	}
	// No config file is fine; runCfg keeps zero-value defaults.
}

func main() {
	err := wire.ListenAndServe("127.0.0.1:5432", handler)
	if err != nil {
		util.Error("listen failed", zap.Error(err))
		os.Exit(1)
	}
}

func handler(ctx context.Context, query string) (wire.PreparedStatements, error) {
	util.Info("incoming query", zap.String("query", query))
	fields := strings.Split(query, ",")

	kinds := make([]sqltype.Kind, 0, len(fields))
	values := make([]value.Value, 0, len(fields))
	opts := cast.Options{AllowNonStandardTimestampCasts: runCfg.Cast.AllowNonStandardTimestampCasts}

	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		parts := strings.SplitN(field, ":", 2)
		kindName := "VARCHAR"
		text := field
		if len(parts) == 2 {
			kindName = strings.TrimSpace(parts[0])
			text = parts[1]
		}
		k, err := sqltype.ParseKind(kindName)
		if err != nil {
			return nil, err
		}
		var v value.Value
		if k == sqltype.Varchar {
			v = value.BorrowedString([]byte(text))
		} else {
			v, err = cast.CastAs(value.BorrowedString([]byte(text)), k, opts)
			if err != nil {
				return nil, err
			}
		}
		kinds = append(kinds, k)
		values = append(values, v)
	}

	cols := make(wire.Columns, 0, len(kinds))
	for _, k := range kinds {
		cols = append(cols, wire.Column{
			Name: strings.ToLower(k.String()),
			Oid:  oid.T_varchar,
		})
	}

	exec := &echoExec{values: values}
	return wire.Prepared(
		wire.NewStatement(exec.handle,
			wire.WithColumns(cols),
		),
	), nil
}

type echoExec struct {
	values []value.Value
}

// handle round-trips every field through the wire codec (the point of
// this demo) before writing it back out as one row.
func (exec *echoExec) handle(ctx context.Context, writer wire.DataWriter, parameters []wire.Parameter) error {
	var buf util.BufSerialize
	for _, v := range exec.values {
		if err := wireformat.WriteParam(v, &buf); err != nil {
			return err
		}
	}

	deserial := &util.BufDeserialize{Buf: buf.Buf}
	row := make([]any, len(exec.values))
	for i := range exec.values {
		v, err := wireformat.ReadParam(deserial)
		if err != nil {
			return err
		}
		row[i] = v.String()
	}
	if err := writer.Row(row); err != nil {
		return err
	}
	return writer.Complete("OK")
}
