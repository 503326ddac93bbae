package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
)

type importCmd struct {
	app *App
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import holdings from a CSV or Excel file" }
func (*importCmd) Usage() string {
	return `goldctl import <file>

  Uploads a .csv, .xlsx or .xls file. Rows the backend rejects are listed as
  warnings; the remaining rows are still imported.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, fs *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if fs.NArg() != 1 {
		return c.app.usage("import takes exactly one file")
	}
	path := fs.Arg(0)

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	resp, err := c.app.Backend.ImportHoldings(ctx, filepath.Base(path), file)
	if err != nil {
		return c.app.fail(err, "Import failed")
	}
	for _, rowErr := range resp.Errors {
		fmt.Fprintf(c.app.Err, "warning: %s\n", rowErr)
	}
	fmt.Fprintf(c.app.Out, "Successfully imported %d holdings\n", resp.Imported)
	return subcommands.ExitSuccess
}

type exportCmd struct {
	app    *App
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export holdings as CSV" }
func (*exportCmd) Usage() string {
	return `goldctl export [-o <file>]

  Writes the backend CSV export to the file, or to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var w io.Writer = c.app.Out
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(c.app.Err, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	n, err := c.app.Backend.ExportHoldings(ctx, w)
	if err != nil {
		return c.app.fail(err, "Export failed")
	}
	if c.output != "" {
		fmt.Fprintf(c.app.Err, "Wrote %d bytes to %s\n", n, c.output)
	}
	return subcommands.ExitSuccess
}
