package rest

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentfolio-backend/internal/security"
	"rentfolio-backend/internal/service"
)

type Handler struct {
	properties service.PropertyService
	tenants    service.TenantService
	leases     service.LeaseService
	rents      service.RentService
	payments   service.PaymentService
	receipts   service.ReceiptService
	reminders  service.ReminderService
	loans      service.LoanService
}

func NewHandler(
	properties service.PropertyService,
	tenants service.TenantService,
	leases service.LeaseService,
	rents service.RentService,
	payments service.PaymentService,
	receipts service.ReceiptService,
	reminders service.ReminderService,
	loans service.LoanService,
) *Handler {
	return &Handler{
		properties: properties,
		tenants:    tenants,
		leases:     leases,
		rents:      rents,
		payments:   payments,
		receipts:   receipts,
		reminders:  reminders,
		loans:      loans,
	}
}

// Router assembles the full API under /api/v1.
func (h *Handler) Router(tokens security.TokenManager, authEnabled bool) *mux.Router {
	root := mux.NewRouter()
	root.Use(LoggingMiddleware)
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		Success(w, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens, authEnabled))

	api.HandleFunc("/properties", h.createProperty).Methods(http.MethodPost)
	api.HandleFunc("/properties", h.listProperties).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}", h.getProperty).Methods(http.MethodGet)
	api.HandleFunc("/properties/{id}", h.updateProperty).Methods(http.MethodPut)
	api.HandleFunc("/properties/{id}", h.deleteProperty).Methods(http.MethodDelete)
	api.HandleFunc("/properties/{id}/loans", h.listLoansByProperty).Methods(http.MethodGet)

	api.HandleFunc("/tenants", h.createTenant).Methods(http.MethodPost)
	api.HandleFunc("/tenants", h.listTenants).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{id}", h.getTenant).Methods(http.MethodGet)
	api.HandleFunc("/tenants/{id}", h.updateTenant).Methods(http.MethodPut)
	api.HandleFunc("/tenants/{id}", h.deleteTenant).Methods(http.MethodDelete)

	api.HandleFunc("/leases", h.createLease).Methods(http.MethodPost)
	api.HandleFunc("/leases", h.listLeases).Methods(http.MethodGet)
	api.HandleFunc("/leases/{id}", h.getLease).Methods(http.MethodGet)
	api.HandleFunc("/leases/{id}", h.updateLease).Methods(http.MethodPut)
	api.HandleFunc("/leases/{id}", h.deleteLease).Methods(http.MethodDelete)
	api.HandleFunc("/leases/{id}/suspend", h.suspendLease).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/reactivate", h.reactivateLease).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/terminate", h.terminateLease).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/terminate/preview", h.previewTermination).Methods(http.MethodPost)
	api.HandleFunc("/leases/{id}/history", h.listLeaseHistory).Methods(http.MethodGet)
	api.HandleFunc("/leases/{id}/rents", h.listRentsByLease).Methods(http.MethodGet)
	api.HandleFunc("/leases/{id}/rents/generate", h.generateRent).Methods(http.MethodPost)

	api.HandleFunc("/rents", h.listRentsByStatus).Methods(http.MethodGet)
	api.HandleFunc("/rents/generate-current", h.generateCurrentMonth).Methods(http.MethodPost)
	api.HandleFunc("/rents/{id}", h.getRent).Methods(http.MethodGet)
	api.HandleFunc("/rents/{id}", h.updateRentComment).Methods(http.MethodPut)
	api.HandleFunc("/rents/{id}", h.deleteRent).Methods(http.MethodDelete)
	api.HandleFunc("/rents/{id}/payments", h.recordPayment).Methods(http.MethodPost)
	api.HandleFunc("/rents/{id}/payments", h.listPayments).Methods(http.MethodGet)
	api.HandleFunc("/rents/{id}/reminders", h.createReminder).Methods(http.MethodPost)
	api.HandleFunc("/rents/{id}/reminders", h.listReminders).Methods(http.MethodGet)

	api.HandleFunc("/payments/{id}", h.amendPayment).Methods(http.MethodPut)
	api.HandleFunc("/payments/{id}", h.deletePayment).Methods(http.MethodDelete)

	api.HandleFunc("/receipts", h.listReceipts).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}", h.getReceipt).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{id}/send", h.sendReceipt).Methods(http.MethodPost)

	api.HandleFunc("/loans", h.createLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}", h.getLoan).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", h.deleteLoan).Methods(http.MethodDelete)
	api.HandleFunc("/loans/{id}/schedule", h.loanSchedule).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/schedule/export", h.exportLoanSchedule).Methods(http.MethodGet)

	return root
}

// pathID extracts the {id} route variable.
func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}

// pagination reads page/limit query parameters with sane defaults.
func pagination(r *http.Request) (page, limit int32) {
	page, limit = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil && v > 0 && v <= 200 {
		limit = int32(v)
	}
	return page, limit
}
