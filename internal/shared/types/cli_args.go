package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	NamesFile  string
	ReportType []string
	Dir        string
	DryRun     bool
}
