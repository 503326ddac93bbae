package cli

import (
	"context"
	"flag"
	"strings"

	"github.com/atharvakonge/gold-tracker/internal/client"
	"github.com/atharvakonge/gold-tracker/internal/view"
	"github.com/google/subcommands"
)

type pricesCmd struct {
	app *App
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "display current gold prices per weight" }
func (*pricesCmd) Usage() string {
	return `goldctl prices

  Displays the sell and buyback price of every gold denomination, ascending by weight.
`
}

func (*pricesCmd) SetFlags(*flag.FlagSet) {}

func (c *pricesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.app.loadPrices(ctx)
	if err != nil {
		return c.app.fail(err, "Failed to fetch gold prices")
	}
	var b strings.Builder
	view.MarkdownPrices(&b, snap)
	c.app.printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type portfolioCmd struct {
	app *App
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display the portfolio summary and holdings" }
func (*portfolioCmd) Usage() string {
	return `goldctl portfolio

  Displays the portfolio totals followed by one row per holding.
`
}

func (*portfolioCmd) SetFlags(*flag.FlagSet) {}

func (c *portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.app.loadPortfolio(ctx)
	if err != nil {
		return c.app.fail(err, "Failed to load portfolio")
	}
	var b strings.Builder
	view.MarkdownSummary(&b, snap.Summary)
	b.WriteString("\n")
	view.MarkdownHoldings(&b, snap.Holdings)
	c.app.printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type historyCmd struct {
	app *App
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the transaction history, newest first" }
func (*historyCmd) Usage() string {
	return `goldctl history
`
}

func (*historyCmd) SetFlags(*flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.app.loadPortfolio(ctx)
	if err != nil {
		return c.app.fail(err, "Failed to load portfolio")
	}
	var b strings.Builder
	view.MarkdownHistory(&b, snap.Transactions)
	c.app.printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type priceHistoryCmd struct {
	app  *App
	days int
}

func (*priceHistoryCmd) Name() string     { return "price-history" }
func (*priceHistoryCmd) Synopsis() string { return "display recorded 1 gram prices" }
func (*priceHistoryCmd) Usage() string {
	return `goldctl price-history [-days <n>]

  Displays the 1 gram sell and buyback prices recorded over the last n days (1 to 365).
`
}

func (c *priceHistoryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "Number of days to look back, clamped to 1..365.")
}

func (c *priceHistoryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	days := client.ClampDays(c.days)
	resp, err := c.app.Backend.PriceHistory(ctx, days)
	if err != nil {
		return c.app.fail(err, "Failed to load price history")
	}
	var b strings.Builder
	view.MarkdownPriceHistory(&b, days, resp.Data)
	c.app.printMarkdown(b.String())
	return subcommands.ExitSuccess
}
