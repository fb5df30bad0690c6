package util

// CastOptions mirrors pkg/cast.Options in a form viper/toml can bind
// flags and config-file keys onto before it is copied into the real
// cast.Options the engine takes.
type CastOptions struct {
	AllowNonStandardTimestampCasts bool `tag:"allowNonStandardTimestampCasts"`
}

// ParquetExport configures cmd/valuectl's export-to-Parquet subcommand.
type ParquetExport struct {
	OutputDir string `tag:"outputDir"`
}

// Config is cmd/valuectl's toml-file-and-flag-bound configuration.
type Config struct {
	Cast    CastOptions   `tag:"cast"`
	Parquet ParquetExport `tag:"parquet"`
}
