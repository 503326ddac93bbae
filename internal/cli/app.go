// Package cli implements the goldctl subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atharvakonge/gold-tracker/internal/client"
	"github.com/atharvakonge/gold-tracker/internal/form"
	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Backend is the part of the tracker API the commands use
type Backend interface {
	Prices(ctx context.Context) (models.PricesResponse, error)
	Portfolio(ctx context.Context) (models.PortfolioResponse, error)
	form.HoldingWriter
	form.HoldingSeller
	ImportHoldings(ctx context.Context, filename string, file io.Reader) (models.ImportResponse, error)
	ExportHoldings(ctx context.Context, w io.Writer) (int64, error)
	PriceHistory(ctx context.Context, days int) (models.PriceHistoryResponse, error)
}

var _ Backend = (*client.Client)(nil)

// App is shared by every command
type App struct {
	Backend Backend
	Out     io.Writer
	Err     io.Writer
	// Plain prints the markdown source instead of rendering it for the terminal
	Plain bool
	Now   func() time.Time

	cache *models.Cache
}

// NewApp creates an App writing to out and errOut
func NewApp(backend Backend, out, errOut io.Writer) *App {
	return &App{
		Backend: backend,
		Out:     out,
		Err:     errOut,
		Now:     time.Now,
		cache:   models.NewCache(),
	}
}

// Register the subcommands.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&pricesCmd{app: app}, "views")
	c.Register(&portfolioCmd{app: app}, "views")
	c.Register(&historyCmd{app: app}, "views")
	c.Register(&priceHistoryCmd{app: app}, "views")

	c.Register(&addCmd{app: app}, "holdings")
	c.Register(&editCmd{app: app}, "holdings")
	c.Register(&sellCmd{app: app}, "holdings")
	c.Register(&removeCmd{app: app}, "holdings")

	c.Register(&importCmd{app: app}, "files")
	c.Register(&exportCmd{app: app}, "files")
}

// printMarkdown renders md for the terminal, or prints it as is in plain mode
func (a *App) printMarkdown(md string) {
	if a.Plain {
		fmt.Fprint(a.Out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(a.Out, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(a.Out, md)
		return
	}
	fmt.Fprint(a.Out, out)
}

// fail reports err the way the web console toasts it. Errors that never
// reached the backend, such as form validation, are printed as they are.
func (a *App) fail(err error, fallback string) subcommands.ExitStatus {
	msg := err.Error()
	var transport *client.TransportError
	var apiErr *client.APIError
	if errors.As(err, &transport) || errors.As(err, &apiErr) {
		msg = client.Message(err, fallback)
	}
	fmt.Fprintf(a.Err, "Error: %s\n", msg)
	return subcommands.ExitFailure
}

func (a *App) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, format+"\n", args...)
	return subcommands.ExitUsageError
}

func (a *App) loadPrices(ctx context.Context) (*models.PriceSnapshot, error) {
	resp, err := a.Backend.Prices(ctx)
	if err != nil {
		return nil, err
	}
	return a.cache.SetPrices(resp, a.Now()), nil
}

func (a *App) loadPortfolio(ctx context.Context) (*models.PortfolioSnapshot, error) {
	resp, err := a.Backend.Portfolio(ctx)
	if err != nil {
		return nil, err
	}
	return a.cache.SetPortfolio(resp, a.Now()), nil
}
