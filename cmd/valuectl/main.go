package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/relicsql/valuecore/pkg/cast"
	"github.com/relicsql/valuecore/pkg/compare"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/strmatch"
	"github.com/relicsql/valuecore/pkg/util"
	"github.com/relicsql/valuecore/pkg/value"
	"github.com/relicsql/valuecore/pkg/valuehash"
	"github.com/relicsql/valuecore/pkg/wireformat"
)

var cfg = &util.Config{}

func init() {
	cobra.OnInitialize(loadConfig)
	initCastCmd()
	initLikeCmd()
	initHashCmd()
	initCompareCmd()
	initExportParquetCmd()
}

var info = "valuectl"
var RootCmd = &cobra.Command{
	Use:          "valuectl",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use valuectl --help or -h")
	},
}

var defCfgFilePaths = []string{".", "etc"}
var cfgFileName = "valuectl.toml"

func loadConfig() {
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			viper.SetConfigFile(fpath)
			if err := viper.ReadInConfig(); err != nil {
				util.Error("viper load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
				continue
			}
			if _, err := toml.DecodeFile(fpath, cfg); err != nil {
				util.Error("toml decode config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
			}
			return
		}
	}
	// No config file is fine; cfg keeps its flag/zero-value defaults.
}

func parseTyped(text string, k sqltype.Kind, opts cast.Options) (value.Value, error) {
	if k == sqltype.Varchar {
		return value.BorrowedString([]byte(text)), nil
	}
	return cast.CastAs(value.BorrowedString([]byte(text)), k, opts)
}

func castOptions() cast.Options {
	return cast.Options{AllowNonStandardTimestampCasts: cfg.Cast.AllowNonStandardTimestampCasts}
}

var castFromName, castToName, castValue string

var castCmd = &cobra.Command{
	Use:   "cast",
	Short: "cast a textual value from one kind to another",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := sqltype.ParseKind(castFromName)
		if err != nil {
			return err
		}
		to, err := sqltype.ParseKind(castToName)
		if err != nil {
			return err
		}
		opts := castOptions()
		v, err := parseTyped(castValue, from, opts)
		if err != nil {
			return err
		}
		out, err := cast.CastAs(v, to, opts)
		if err != nil {
			return err
		}
		fmt.Println(out.String())
		return nil
	},
}

func initCastCmd() {
	RootCmd.AddCommand(castCmd)
	castCmd.Flags().StringVar(&castFromName, "from", "VARCHAR", "source kind")
	castCmd.Flags().StringVar(&castToName, "to", "VARCHAR", "destination kind")
	castCmd.Flags().StringVar(&castValue, "value", "", "textual value to cast")
	castCmd.Flags().BoolVar(&cfg.Cast.AllowNonStandardTimestampCasts, "allow-nonstandard-timestamp-casts", false, "allow Double/Decimal -> Timestamp")
	viper.BindPFlag("cast.allowNonStandardTimestampCasts", castCmd.Flags().Lookup("allow-nonstandard-timestamp-casts"))
}

var likeValue, likePattern string

var likeCmd = &cobra.Command{
	Use:   "like",
	Short: "test a value against a LIKE pattern",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(strmatch.Like([]byte(likeValue), []byte(likePattern)))
	},
}

func initLikeCmd() {
	RootCmd.AddCommand(likeCmd)
	likeCmd.Flags().StringVar(&likeValue, "value", "", "value to test")
	likeCmd.Flags().StringVar(&likePattern, "pattern", "%", "LIKE pattern")
}

var hashValue, hashKindName string

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "hash a textual value of a given kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := sqltype.ParseKind(hashKindName)
		if err != nil {
			return err
		}
		v, err := parseTyped(hashValue, k, castOptions())
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", valuehash.Of(v))
		return nil
	},
}

func initHashCmd() {
	RootCmd.AddCommand(hashCmd)
	hashCmd.Flags().StringVar(&hashValue, "value", "", "textual value to hash")
	hashCmd.Flags().StringVar(&hashKindName, "kind", "VARCHAR", "value kind")
}

var compareLeft, compareRight, compareKindName string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "compare two textual values of the same kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := sqltype.ParseKind(compareKindName)
		if err != nil {
			return err
		}
		opts := castOptions()
		l, err := parseTyped(compareLeft, k, opts)
		if err != nil {
			return err
		}
		r, err := parseTyped(compareRight, k, opts)
		if err != nil {
			return err
		}
		fmt.Println(compare.Compare(l, r))
		return nil
	},
}

func initCompareCmd() {
	RootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareLeft, "left", "", "left-hand textual value")
	compareCmd.Flags().StringVar(&compareRight, "right", "", "right-hand textual value")
	compareCmd.Flags().StringVar(&compareKindName, "kind", "VARCHAR", "value kind")
}

var exportParquetOut string

var exportParquetCmd = &cobra.Command{
	Use:   "export-parquet",
	Short: "write a small demo batch to a Parquet file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := exportParquetOut
		if out == "" {
			out = filepath.Join(cfg.Parquet.OutputDir, "valuectl-demo.parquet")
		}
		columns := []wireformat.ExportColumn{
			{Name: "id", Kind: sqltype.Integer, Values: []value.Value{value.FromI32(1), value.FromI32(2), value.FromI32(3)}},
			{Name: "label", Kind: sqltype.Varchar, Values: []value.Value{
				value.BorrowedString([]byte("a")),
				value.NullOf(sqltype.Varchar),
				value.BorrowedString([]byte("c")),
			}},
		}
		if err := wireformat.ExportParquet(out, columns); err != nil {
			return err
		}
		fmt.Println("wrote", out)
		return nil
	},
}

func initExportParquetCmd() {
	RootCmd.AddCommand(exportParquetCmd)
	exportParquetCmd.Flags().StringVar(&exportParquetOut, "out", "", "output .parquet path (defaults to parquet.outputDir/valuectl-demo.parquet)")
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
