package handlers

import (
	"net/http"
	"strconv"

	"github.com/atharvakonge/gold-tracker/internal/form"
	"github.com/atharvakonge/gold-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// holdingInput is the add/edit modal as posted by a browser form
type holdingInput struct {
	Weight        string `form:"weight"`
	PurchasePrice string `form:"purchase_price"`
	PurchaseDate  string `form:"purchase_date"`
	Notes         string `form:"notes"`
}

// sellInput is the sell modal as posted by a browser form
type sellInput struct {
	SellPrice string `form:"sell_price"`
}

// AddHolding handles POST /holdings
func (h *Handler) AddHolding(c *gin.Context) {
	h.submitHolding(c, form.Add, "")
}

// UpdateHolding handles POST and PUT /holdings/:id
func (h *Handler) UpdateHolding(c *gin.Context) {
	h.submitHolding(c, form.Edit, c.Param("id"))
}

func (h *Handler) submitHolding(c *gin.Context, mode form.Mode, id string) {
	f, err := bindHoldingForm(c, mode, id)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if _, err := f.Submit(c.Request.Context(), h.backend); err != nil {
		h.log.Warn().Err(err).Str("mode", mode.String()).Str("holding_id", id).Msg("holding submit failed")
		p := h.page()
		p.HoldingForm = f
		h.fail(c, failureStatus(err), userMessage(err, msgSaveFailed), p)
		return
	}

	msg := "Holding added successfully"
	if mode == form.Edit {
		msg = "Holding updated successfully"
	}
	h.succeed(c, msg, nil)
}

// bindHoldingForm reads either a JSON HoldingRequest or browser form fields
func bindHoldingForm(c *gin.Context, mode form.Mode, id string) (form.HoldingForm, error) {
	f := form.HoldingForm{Mode: mode, ID: id}

	if c.ContentType() == binding.MIMEJSON {
		var req models.HoldingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return f, err
		}
		f.Weight = models.WeightKey(req.Weight)
		f.PurchasePrice = strconv.FormatFloat(req.PurchasePrice, 'f', -1, 64)
		f.PurchaseDate = req.PurchaseDate
		f.Notes = req.Notes
		return f, nil
	}

	var in holdingInput
	if err := c.ShouldBind(&in); err != nil {
		return f, err
	}
	f.Weight = in.Weight
	f.PurchasePrice = in.PurchasePrice
	f.PurchaseDate = in.PurchaseDate
	f.Notes = in.Notes
	return f, nil
}

// SellHolding handles POST /holdings/:id/sell and DELETE /holdings/:id.
// The backend turns the holding into a SELL transaction at the given price.
func (h *Handler) SellHolding(c *gin.Context) {
	id := c.Param("id")
	f := form.SellForm{ID: id}
	if cached, ok := form.OpenSell(h.cache, id); ok {
		f.Description = cached.Description
	}

	if c.ContentType() == binding.MIMEJSON {
		var req models.SellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		f.SellPrice = strconv.FormatFloat(req.SellPrice, 'f', -1, 64)
	} else {
		var in sellInput
		if err := c.ShouldBind(&in); err != nil {
			h.fail(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		f.SellPrice = in.SellPrice
	}

	resp, err := f.Submit(c.Request.Context(), h.backend)
	if err != nil {
		h.log.Warn().Err(err).Str("holding_id", id).Msg("sell failed")
		p := h.page()
		p.SellForm = &f
		h.fail(c, failureStatus(err), userMessage(err, msgSellFailed), p)
		return
	}

	msg := resp.Message
	if msg == "" {
		msg = "Holding sold successfully"
	}
	h.succeed(c, msg, nil)
}

// RemoveHolding handles POST /holdings/:id/remove: a mistaken entry is deleted
// without recording a sale
func (h *Handler) RemoveHolding(c *gin.Context) {
	id := c.Param("id")
	f, ok := form.OpenSell(h.cache, id)
	if !ok {
		f = form.SellForm{ID: id}
	}

	resp, err := f.Remove(c.Request.Context(), h.backend)
	if err != nil {
		h.log.Warn().Err(err).Str("holding_id", id).Msg("remove failed")
		p := h.page()
		p.SellForm = &f
		h.fail(c, failureStatus(err), userMessage(err, msgRemoveFailed), p)
		return
	}

	msg := resp.Message
	if msg == "" {
		msg = "Holding deleted successfully"
	}
	h.succeed(c, msg, nil)
}
