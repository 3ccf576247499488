package rest

import (
	"net/http"
)

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid receipt id")
		return
	}
	receipt, err := h.receipts.GetReceipt(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, receipt)
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	receipts, total, err := h.receipts.ListReceipts(r.Context(), page, limit)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, NewPageData(receipts, page, limit, total))
}

// sendReceipt triggers delivery (or redelivery) of one receipt.
func (h *Handler) sendReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid receipt id")
		return
	}
	if err := h.receipts.Deliver(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	SuccessMessage(w, nil, "receipt sent")
}
