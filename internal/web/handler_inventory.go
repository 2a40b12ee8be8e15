package web

import (
	"bytes"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/navigator"
	"github.com/vbonduro/stock2profit/internal/service"
	"github.com/vbonduro/stock2profit/internal/store"
)

// productForm holds the add-product form as typed.
type productForm struct {
	SKU      string
	Name     string
	Category string
	Stock    string
	Price    string
	Error    string
}

type inventoryContent struct {
	Items      []*domain.InventoryItem
	Categories []string
	Filter     store.InventoryFilter
	Threshold  int
	Form       productForm
}

func inventoryFilter(r *http.Request) store.InventoryFilter {
	q := r.URL.Query()
	f := store.InventoryFilter{
		Query:    strings.TrimSpace(q.Get("q")),
		Category: q.Get("category"),
	}
	if f.Category == "" {
		f.Category = store.AllCategories
	}
	return f
}

func (s *Server) loadInventory(r *http.Request, c *inventoryContent) error {
	c.Filter = inventoryFilter(r)
	c.Threshold = s.svc.Inventory.LowStockThreshold()

	items, err := s.svc.Inventory.Search(r.Context(), c.Filter)
	if err != nil {
		return err
	}
	c.Items = items

	c.Categories, err = s.svc.Inventory.Categories(r.Context())
	return err
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	form := productForm{
		SKU:      r.FormValue("sku"),
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Stock:    strings.TrimSpace(r.FormValue("stock")),
		Price:    strings.TrimSpace(r.FormValue("price")),
	}

	item, err := parseProduct(form)
	if err == nil {
		_, err = s.svc.Inventory.CreateProduct(r.Context(), item)
	}

	status := http.StatusOK
	switch {
	case err == nil:
		s.logger.Info("product created", "sku", item.SKU)
		if isHTMX(r) {
			w.Header().Set("HX-Redirect", navigator.Inventory.Path())
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Redirect(w, r, navigator.Inventory.Path(), http.StatusSeeOther)
		return
	case errors.Is(err, service.ErrSKUTaken):
		status = http.StatusConflict
	case isProductValidation(err):
		status = http.StatusUnprocessableEntity
	default:
		s.serverError(w, r, "failed to create product", err)
		return
	}

	form.Error = err.Error()
	if isHTMX(r) {
		if err := s.renderPartial(w, http.StatusOK, "partials/product_form.html", "product_form", form); err != nil {
			s.logger.Error("render partial failed", "error", err)
		}
		return
	}
	page := newPageData(navigator.Inventory, claimsFromContext(r.Context()), inventoryContent{Form: form})
	s.renderView(w, r, status, page)
}

func (s *Server) handleRestock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	stock, err := strconv.Atoi(strings.TrimSpace(r.FormValue("stock")))
	if err != nil {
		http.Error(w, errStockNotNumber.Error(), http.StatusUnprocessableEntity)
		return
	}

	switch err := s.svc.Inventory.Restock(r.Context(), id, stock); {
	case errors.Is(err, service.ErrProductNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, service.ErrProductStock):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		s.serverError(w, r, "failed to restock product", err)
		return
	}

	s.logger.Info("product restocked", "id", id, "stock", stock)
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", navigator.Inventory.Path())
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, navigator.Inventory.Path(), http.StatusSeeOther)
}

func (s *Server) handleExportInventory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.svc.Inventory.ExportCSV(r.Context(), &buf, inventoryFilter(r)); err != nil {
		s.serverError(w, r, "failed to export inventory", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)
	_, _ = w.Write(buf.Bytes())
}

var (
	errStockNotNumber = errors.New("stock must be a whole number")
	errPriceNotNumber = errors.New("price must be a number")
)

func parseProduct(f productForm) (domain.InventoryItem, error) {
	item := domain.InventoryItem{SKU: f.SKU, Name: f.Name, Category: f.Category}

	if f.Stock != "" {
		n, err := strconv.Atoi(f.Stock)
		if err != nil {
			return item, errStockNotNumber
		}
		item.Stock = n
	}
	if f.Price != "" {
		p, err := strconv.ParseFloat(f.Price, 64)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
			return item, errPriceNotNumber
		}
		item.Price = p
	}
	return item, nil
}

func isProductValidation(err error) bool {
	for _, target := range []error{
		errStockNotNumber,
		errPriceNotNumber,
		service.ErrProductName,
		service.ErrProductSKU,
		service.ErrProductCategory,
		service.ErrProductStock,
		service.ErrProductPrice,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
