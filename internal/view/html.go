package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/atharvakonge/gold-tracker/internal/form"
	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/atharvakonge/gold-tracker/internal/notify"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is everything a screen may render; fragments read only their part.
type Page struct {
	LastUpdate     string
	Prices         []PriceCard
	Summary        *SummaryView
	Holdings       []HoldingCard
	History        []HistoryRow
	Toasts         []notify.Toast
	ToastTTLMillis int64
	HoldingForm    form.HoldingForm
	SellForm       *form.SellForm
	Importing      bool

	Days         int
	DayOptions   []int
	PriceHistory []PriceHistoryRow

	Body template.HTML
}

// WithPrices fills the price panel from a snapshot; nil leaves it empty
func (p *Page) WithPrices(snap *models.PriceSnapshot) *Page {
	if snap == nil {
		return p
	}
	p.LastUpdate = snap.LastUpdate
	p.Prices = PriceCards(snap.Prices)
	return p
}

// WithPortfolio fills summary, holdings and history from a snapshot
func (p *Page) WithPortfolio(snap *models.PortfolioSnapshot) *Page {
	if snap == nil {
		return p
	}
	summary := NewSummaryView(snap.Summary)
	p.Summary = &summary
	p.Holdings = HoldingCards(snap.Holdings)
	p.History = HistoryRows(snap.Transactions)
	return p
}

// WithToasts lists the visible notifications
func (p *Page) WithToasts(toasts []notify.Toast, ttl time.Duration) *Page {
	p.Toasts = toasts
	p.ToastTTLMillis = ttl.Milliseconds()
	return p
}

// Renderer executes the embedded templates
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustRenderer is NewRenderer for package initialisation; the templates are embedded
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Template returns the parsed templates, for gin's HTML renderer
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

// Render executes the named template ("page", "prices", "holdings", ...) into w
func (r *Renderer) Render(w io.Writer, name string, p *Page) error {
	if err := r.tmpl.ExecuteTemplate(w, name, p); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

// RenderString renders into a string
func (r *Renderer) RenderString(name string, p *Page) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}
