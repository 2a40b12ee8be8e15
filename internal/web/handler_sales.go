package web

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/navigator"
	"github.com/vbonduro/stock2profit/internal/sales"
	"github.com/vbonduro/stock2profit/internal/service"
	"github.com/vbonduro/stock2profit/internal/session"
)

const (
	msgInvalidEntry = "Enter a product, a quantity and a rate greater than zero."
	msgEmptyDraft   = "Add at least one item before submitting."
	msgCheckoutFail = "The sale could not be recorded. Please try again."
)

var errEmptyDraft = errors.New("draft has no items")

// draftView is the sales panel as rendered: the draft, the entry fields and
// the outcome of the last action.
type draftView struct {
	Items      []sales.LineItem
	Entry      sales.Entry
	EntryTotal float64
	Customer   sales.Customer
	Total      float64
	Error      string
	Sale       *domain.Transaction
}

func newDraftView(d *sales.Draft) draftView {
	return draftView{
		Items:      d.Items(),
		Entry:      d.Entry,
		EntryTotal: d.Entry.Total(),
		Customer:   d.Customer,
		Total:      d.GrandTotal(),
	}
}

func (s *Server) handleAddLineItem(w http.ResponseWriter, r *http.Request) {
	product := strings.TrimSpace(r.FormValue("product"))
	qty, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("qty")))
	rate := parseAmount(r.FormValue("rate"))

	var (
		view draftView
		ok   bool
	)
	_ = s.svc.Workspaces.With(claimsFromContext(r.Context()).UserID, func(ws *session.Workspace) error {
		_, ok = ws.Draft.AddLineItem(product, qty, rate)
		view = newDraftView(ws.Draft)
		return nil
	})

	status := http.StatusOK
	if !ok {
		view.Error = msgInvalidEntry
		status = http.StatusUnprocessableEntity
	}
	s.respondDraft(w, r, status, view)
}

func (s *Server) handleRemoveLineItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		view  draftView
		found bool
	)
	_ = s.svc.Workspaces.With(claimsFromContext(r.Context()).UserID, func(ws *session.Workspace) error {
		found = ws.Draft.RemoveLineItem(id)
		view = newDraftView(ws.Draft)
		return nil
	})

	if !found {
		s.logger.Debug("line item already gone", "id", id)
	}
	s.respondDraft(w, r, http.StatusOK, view)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customer := sales.Customer{
		Name:  r.FormValue("customer"),
		Email: strings.TrimSpace(r.FormValue("email")),
	}

	var view draftView
	_ = s.svc.Workspaces.With(claimsFromContext(r.Context()).UserID, func(ws *session.Workspace) error {
		ws.Draft.Customer = customer
		view = newDraftView(ws.Draft)
		return nil
	})
	s.respondDraft(w, r, http.StatusOK, view)
}

// handleSubmitSale closes the draft and records it. A draft whose checkout
// fails is restored so the cashier can retry.
func (s *Server) handleSubmitSale(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	userID := claimsFromContext(r.Context()).UserID

	var view draftView
	err := s.svc.Workspaces.With(userID, func(ws *session.Workspace) error {
		if r.PostForm.Has("customer") || r.PostForm.Has("email") {
			ws.Draft.Customer = sales.Customer{
				Name:  r.PostForm.Get("customer"),
				Email: strings.TrimSpace(r.PostForm.Get("email")),
			}
		}

		c, ok := ws.Draft.Submit()
		if !ok {
			view = newDraftView(ws.Draft)
			return errEmptyDraft
		}

		tx, err := s.svc.Sales.Checkout(r.Context(), userID, c)
		if err != nil {
			ws.Draft.Reopen(c)
			view = newDraftView(ws.Draft)
			return err
		}

		view = newDraftView(ws.Draft)
		view.Sale = tx
		return nil
	})

	switch {
	case errors.Is(err, errEmptyDraft):
		view.Error = msgEmptyDraft
		s.respondDraft(w, r, http.StatusUnprocessableEntity, view)
	case err != nil:
		s.logger.Error("checkout failed", "user_id", userID, "error", err)
		view.Error = msgCheckoutFail
		s.respondDraft(w, r, http.StatusInternalServerError, view)
	default:
		s.respondDraft(w, r, http.StatusOK, view)
	}
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid receipt id", http.StatusBadRequest)
		return
	}

	rc, mimeType, err := s.svc.Sales.Receipt(r.Context(), id)
	if errors.Is(err, service.ErrNoReceipt) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to load receipt", err)
		return
	}
	defer func() {
		if err := rc.Close(); err != nil {
			s.logger.Error("failed to close receipt", "transaction_id", id, "error", err)
		}
	}()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%d.pdf"`, id))
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("failed to stream receipt", "transaction_id", id, "error", err)
	}
}

// respondDraft answers htmx requests with the draft fragment and plain form
// posts with the whole sales panel. A successful plain post without a sale
// to show redirects back to the panel.
func (s *Server) respondDraft(w http.ResponseWriter, r *http.Request, status int, view draftView) {
	if isHTMX(r) {
		// htmx only swaps 2xx responses; the error travels in the fragment.
		if err := s.renderPartial(w, http.StatusOK, "partials/draft.html", "draft", view); err != nil {
			s.logger.Error("render partial failed", "error", err)
		}
		return
	}

	if status == http.StatusOK && view.Sale == nil {
		http.Redirect(w, r, navigator.Sales.Path(), http.StatusSeeOther)
		return
	}

	page := newPageData(navigator.Sales, claimsFromContext(r.Context()), view)
	s.renderView(w, r, status, page)
}

// parseAmount reads a positive decimal form value; anything else is 0.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
