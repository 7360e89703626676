package handlers

import (
	"log/slog"
	"net/http"

	"github.com/talx-hub/salon-bonus/internal/api/dto"
)

type CheckoutHandler struct {
	logger  *slog.Logger
	settler Settler
}

func NewCheckoutHandler(settler Settler, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		logger:  log,
		settler: settler,
	}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	cid, err := customerID(r)
	if err != nil {
		writeError(w, log, r, err)
		return
	}

	var body dto.CheckoutRequest
	if err = decode(r, &body); err != nil {
		writeError(w, log, r, err)
		return
	}

	res, err := h.settler.Settle(r.Context(), body.ToCheckout(cid))
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	writeJSON(w, log, r, http.StatusOK, res)
}
