package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/talx-hub/salon-bonus/internal/api/dto"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
)

type LoyaltyHandler struct {
	logger   *slog.Logger
	accruer  Accruer
	redeemer Redeemer
	accounts AccountReader
}

func NewLoyaltyHandler(accruer Accruer, redeemer Redeemer, accounts AccountReader, log *slog.Logger,
) *LoyaltyHandler {
	return &LoyaltyHandler{
		logger:   log,
		accruer:  accruer,
		redeemer: redeemer,
		accounts: accounts,
	}
}

func (h *LoyaltyHandler) Earn(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	cid, err := customerID(r)
	if err != nil {
		writeError(w, log, r, err)
		return
	}

	var body dto.EarnRequest
	if err = decode(r, &body); err != nil {
		writeError(w, log, r, err)
		return
	}
	req, err := body.ToAccrual(cid)
	if err != nil {
		writeError(w, log, r, validation(err))
		return
	}

	res, err := h.accruer.Award(r.Context(), req)
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	writeJSON(w, log, r, http.StatusOK, res)
}

func (h *LoyaltyHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	cid, err := customerID(r)
	if err != nil {
		writeError(w, log, r, err)
		return
	}

	var body dto.RedeemRequest
	if err = decode(r, &body); err != nil {
		writeError(w, log, r, err)
		return
	}

	key := loyalty.AccountKey{CustomerID: cid, BusinessID: body.BusinessID}
	res, err := h.redeemer.Redeem(r.Context(), key, body.Points)
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	writeJSON(w, log, r, http.StatusOK, res)
}

func (h *LoyaltyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	cid, err := customerID(r)
	if err != nil {
		writeError(w, log, r, err)
		return
	}

	summaries, err := h.accounts.Summaries(r.Context(), cid)
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	if len(summaries) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, log, r, http.StatusOK, summaries)
}

func (h *LoyaltyHandler) Balance(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	cid, err := customerID(r)
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	bid, err := pathID(r, "bid")
	if err != nil {
		writeError(w, log, r, err)
		return
	}

	balance, err := h.accounts.Balance(r.Context(), loyalty.AccountKey{CustomerID: cid, BusinessID: bid})
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	writeJSON(w, log, r, http.StatusOK, dto.BalanceResponse{
		Balance:    json.Number(balance.Round(0).String()),
		BusinessID: bid,
	})
}
