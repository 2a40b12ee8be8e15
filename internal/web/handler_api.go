package web

import (
	"net/http"
	"strconv"

	"github.com/vbonduro/stock2profit/internal/money"
	"github.com/vbonduro/stock2profit/internal/sales"
	"github.com/vbonduro/stock2profit/internal/session"
)

type workspaceResponse struct {
	View         string           `json:"view"`
	Label        string           `json:"label"`
	Scroll       int              `json:"scroll"`
	Items        []sales.LineItem `json:"items"`
	Entry        sales.Entry      `json:"entry"`
	Customer     sales.Customer   `json:"customer"`
	Total        float64          `json:"total"`
	TotalDisplay string           `json:"total_display"`
}

// handleWorkspace reports the caller's workspace without changing it.
func (s *Server) handleWorkspace(w http.ResponseWriter, r *http.Request) {
	var snap workspaceSnapshot
	_ = s.svc.Workspaces.With(claimsFromContext(r.Context()).UserID, func(ws *session.Workspace) error {
		snap = snapshotOf(ws)
		return nil
	})

	items := snap.Draft.Items
	if items == nil {
		items = []sales.LineItem{}
	}
	writeJSON(w, http.StatusOK, workspaceResponse{
		View:         snap.View.Slug(),
		Label:        snap.View.Label(),
		Scroll:       snap.Scroll,
		Items:        items,
		Entry:        snap.Draft.Entry,
		Customer:     snap.Draft.Customer,
		Total:        snap.Draft.Total,
		TotalDisplay: money.Format(s.opts.Currency, snap.Draft.Total),
	})
}

// handleScroll records how far the current view has been scrolled.
func (s *Server) handleScroll(w http.ResponseWriter, r *http.Request) {
	offset, err := strconv.Atoi(r.FormValue("offset"))
	if err != nil {
		writeJSONError(w, "offset must be an integer", http.StatusBadRequest)
		return
	}

	_ = s.svc.Workspaces.With(claimsFromContext(r.Context()).UserID, func(ws *session.Workspace) error {
		ws.Navigator.Scroll(offset)
		return nil
	})
	w.WriteHeader(http.StatusNoContent)
}
