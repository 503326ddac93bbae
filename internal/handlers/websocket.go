package handlers

import (
	"net/http"
	"time"

	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/atharvakonge/gold-tracker/internal/notify"
	"github.com/atharvakonge/gold-tracker/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// PriceUpdate is pushed to the browser whenever the price panel is refreshed
type PriceUpdate struct {
	Type       string           `json:"type"` // "prices"
	LastUpdate string           `json:"last_update"`
	Prices     []view.PriceCard `json:"prices"`
	HTML       string           `json:"html"`
	Timestamp  time.Time        `json:"timestamp"`
}

// ToastUpdate forwards a notification to the browser
type ToastUpdate struct {
	Type  string       `json:"type"` // "toast"
	Icon  string       `json:"icon"`
	Toast notify.Toast `json:"toast"`
}

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the console is served same-origin or behind a proxy
	},
}

// HandleWebSocket handles GET /ws/prices: the price panel is refetched and
// pushed right away and then every push interval, toasts as they are raised
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade error")
		return
	}
	defer conn.Close()

	h.log.Debug().Str("remote", c.ClientIP()).Msg("client connected to price feed")

	// the reader only watches for the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	toasts, unsubscribe := h.notes.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(h.pushInterval)
	defer ticker.Stop()

	if err := h.pushPrices(c, conn); err != nil {
		return
	}
	for {
		select {
		case <-closed:
			h.log.Debug().Msg("price feed client disconnected")
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			if err := h.pushPrices(c, conn); err != nil {
				return
			}
		case t := <-toasts:
			if err := conn.WriteJSON(ToastUpdate{Type: "toast", Icon: t.Kind.Icon(), Toast: t}); err != nil {
				h.log.Debug().Err(err).Msg("websocket write error")
				return
			}
		}
	}
}

// pushPrices refetches and sends the panel. A failed fetch is logged and
// skipped; only a failed write ends the feed.
func (h *Handler) pushPrices(c *gin.Context, conn *websocket.Conn) error {
	resp, err := h.backend.Prices(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("price feed fetch failed")
		return nil
	}
	snap := h.cache.SetPrices(resp, h.now())

	update, err := h.priceUpdate(snap)
	if err != nil {
		h.log.Error().Err(err).Msg("price feed render failed")
		return nil
	}
	if err := conn.WriteJSON(update); err != nil {
		h.log.Debug().Err(err).Msg("websocket write error")
		return err
	}
	return nil
}

func (h *Handler) priceUpdate(snap *models.PriceSnapshot) (PriceUpdate, error) {
	p := new(view.Page).WithPrices(snap)
	html, err := h.view.RenderString("prices", p)
	if err != nil {
		return PriceUpdate{}, err
	}
	return PriceUpdate{
		Type:       "prices",
		LastUpdate: snap.LastUpdate,
		Prices:     p.Prices,
		HTML:       html,
		Timestamp:  snap.FetchedAt,
	}, nil
}
