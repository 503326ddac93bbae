package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/atharvakonge/gold-tracker/internal/form"
	"github.com/atharvakonge/gold-tracker/internal/view"
	"github.com/google/subcommands"
)

type addCmd struct {
	app    *App
	weight string
	price  string
	date   string
	notes  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a gold purchase" }
func (*addCmd) Usage() string {
	return `goldctl add -w <grams> [-p <price>] [-d <date>] [-n <notes>]

  Records a new holding. Without -p the purchase price is suggested from
  current prices: the exact denomination when listed, otherwise the 1 gram
  sell price times the weight.

Usage Examples:
$ goldctl add -w 5 -n Antam
$ goldctl add -w 0.5 -p 520000 -d 2026-10-01
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.weight, "w", "", "Weight in grams.")
	f.StringVar(&c.price, "p", "", "Purchase price in rupiah. Suggested from current prices when omitted.")
	f.StringVar(&c.date, "d", "", "Purchase date (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.notes, "n", "", "Free-form notes, e.g. the brand.")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.weight == "" {
		return c.app.usage("-w is required")
	}

	f := form.OpenAdd(c.app.Now())
	if c.price == "" {
		snap, err := c.app.loadPrices(ctx)
		if err != nil {
			return c.app.fail(err, "Failed to fetch gold prices")
		}
		f.SetWeight(c.weight, snap.Prices)
		if !f.HasSuggestion {
			return c.app.usage("no price suggestion for %q, pass -p", c.weight)
		}
		fmt.Fprintf(c.app.Err, "Using suggested price %s\n", view.Rupiah(f.Suggestion))
	} else {
		f.Weight = c.weight
		f.PurchasePrice = c.price
	}
	if c.date != "" {
		f.PurchaseDate = c.date
	}
	f.Notes = c.notes

	if _, err := f.Submit(ctx, c.app.Backend); err != nil {
		return c.app.fail(err, "Failed to save holding")
	}
	fmt.Fprintln(c.app.Out, "Holding added successfully")
	return subcommands.ExitSuccess
}

type editCmd struct {
	app    *App
	weight string
	price  string
	date   string
	notes  string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change a recorded holding" }
func (*editCmd) Usage() string {
	return `goldctl edit [-w <grams>] [-p <price>] [-d <date>] [-n <notes>] <id>

  Updates a holding. Fields without a flag keep their recorded value.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.weight, "w", "", "New weight in grams.")
	f.StringVar(&c.price, "p", "", "New purchase price in rupiah.")
	f.StringVar(&c.date, "d", "", "New purchase date (YYYY-MM-DD).")
	f.StringVar(&c.notes, "n", "", "New notes.")
}

func (c *editCmd) Execute(ctx context.Context, fs *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if fs.NArg() != 1 {
		return c.app.usage("edit takes exactly one holding id")
	}
	id := fs.Arg(0)

	if _, err := c.app.loadPortfolio(ctx); err != nil {
		return c.app.fail(err, "Failed to load portfolio")
	}
	f, ok := form.OpenEdit(c.app.cache, id)
	if !ok {
		fmt.Fprintf(c.app.Err, "Error: holding %s not found\n", id)
		return subcommands.ExitFailure
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "w":
			f.Weight = c.weight
		case "p":
			f.PurchasePrice = c.price
		case "d":
			f.PurchaseDate = c.date
		case "n":
			f.Notes = c.notes
		}
	})

	if _, err := f.Submit(ctx, c.app.Backend); err != nil {
		return c.app.fail(err, "Failed to save holding")
	}
	fmt.Fprintln(c.app.Out, "Holding updated successfully")
	return subcommands.ExitSuccess
}

type sellCmd struct {
	app   *App
	price string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a holding" }
func (*sellCmd) Usage() string {
	return `goldctl sell [-p <price>] <id>

  Sells a holding. The price defaults to its current buyback value.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.price, "p", "", "Sell price in rupiah. Defaults to the current buyback value.")
}

func (c *sellCmd) Execute(ctx context.Context, fs *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if fs.NArg() != 1 {
		return c.app.usage("sell takes exactly one holding id")
	}
	id := fs.Arg(0)

	if _, err := c.app.loadPortfolio(ctx); err != nil {
		return c.app.fail(err, "Failed to load portfolio")
	}
	f, ok := form.OpenSell(c.app.cache, id)
	if !ok {
		fmt.Fprintf(c.app.Err, "Error: holding %s not found\n", id)
		return subcommands.ExitFailure
	}
	if c.price != "" {
		f.SellPrice = c.price
	}

	resp, err := f.Submit(ctx, c.app.Backend)
	if err != nil {
		return c.app.fail(err, "Failed to sell holding")
	}
	msg := resp.Message
	if msg == "" {
		msg = "Holding sold successfully"
	}
	fmt.Fprintf(c.app.Out, "%s: %s\n", msg, f.Description)
	return subcommands.ExitSuccess
}

type removeCmd struct {
	app *App
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "delete a mistaken holding without selling it" }
func (*removeCmd) Usage() string {
	return `goldctl remove <id>

  Deletes a holding. History records a DELETE instead of a SELL.
`
}

func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (c *removeCmd) Execute(ctx context.Context, fs *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if fs.NArg() != 1 {
		return c.app.usage("remove takes exactly one holding id")
	}

	resp, err := form.SellForm{ID: fs.Arg(0)}.Remove(ctx, c.app.Backend)
	if err != nil {
		return c.app.fail(err, "Failed to remove holding")
	}
	msg := resp.Message
	if msg == "" {
		msg = "Holding deleted successfully"
	}
	fmt.Fprintln(c.app.Out, msg)
	return subcommands.ExitSuccess
}
