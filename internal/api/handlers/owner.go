package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/talx-hub/salon-bonus/internal/api/dto"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

type OwnerHandler struct {
	logger   *slog.Logger
	catalog  CatalogAdmin
	accounts AccountReader
	now      func() time.Time
}

func NewOwnerHandler(catalog CatalogAdmin, accounts AccountReader, log *slog.Logger) *OwnerHandler {
	return &OwnerHandler{
		logger:   log,
		catalog:  catalog,
		accounts: accounts,
		now:      time.Now,
	}
}

func (h *OwnerHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	var body dto.ProgramRequest
	if err := decode(r, &body); err != nil {
		writeError(w, log, r, err)
		return
	}
	p, err := body.ToProgram()
	if err != nil {
		writeError(w, log, r, validation(err))
		return
	}

	id, err := h.catalog.CreateProgram(r.Context(), p)
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	writeJSON(w, log, r, http.StatusCreated, dto.CreatedResponse{ID: id})
}

func (h *OwnerHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	var body dto.PromotionRequest
	if err := decode(r, &body); err != nil {
		writeError(w, log, r, err)
		return
	}
	p, err := body.ToPromotion()
	if err != nil {
		writeError(w, log, r, validation(err))
		return
	}

	id, err := h.catalog.CreatePromotion(r.Context(), p)
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	writeJSON(w, log, r, http.StatusCreated, dto.CreatedResponse{ID: id})
}

// Revenue reports one month, the current one unless year and month are
// given in the query.
func (h *OwnerHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)
	bid, err := pathID(r, "bid")
	if err != nil {
		writeError(w, log, r, err)
		return
	}

	now := h.now()
	year, month := now.Year(), int(now.Month())
	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			writeError(w, log, r, serviceerrs.Validation("bad year %q", v))
			return
		}
	}
	if v := q.Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			writeError(w, log, r, serviceerrs.Validation("bad month %q", v))
			return
		}
	}

	report, err := h.accounts.MonthlyRevenue(r.Context(), bid, year, time.Month(month))
	if err != nil {
		writeError(w, log, r, err)
		return
	}
	writeJSON(w, log, r, http.StatusOK, report)
}
