package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	applog "alerscan/internal/log"
	"alerscan/internal/store"
	"alerscan/internal/views/components"
	"alerscan/internal/views/pages"
)

const messageLoadFailed = "We couldn't load your products. Please try again."

// Scan lists the user's products and checks whether one of them contains a
// chosen allergen.
func (h *Handlers) Scan(ctx context.Context, req Request) Response {
	if req.Identity == nil {
		return Response{Redirect: loginPath}
	}
	if h.catalog == nil {
		return Response{Status: http.StatusServiceUnavailable}
	}

	switch req.Method {
	case http.MethodGet, http.MethodHead:
		data, err := h.scanData(ctx, req.Identity.UserID)
		if err != nil {
			applog.Error(ctx, "failed to load scan page", "error", err)
			data.Notice = components.Failure(messageLoadFailed)
			return scanPage(http.StatusInternalServerError, data)
		}
		data.Notice = req.Notice
		return scanPage(http.StatusOK, data)
	case http.MethodPost:
		data, err := h.scanData(ctx, req.Identity.UserID)
		if err != nil {
			applog.Error(ctx, "failed to load scan page", "error", err)
			data.Notice = components.Failure(messageLoadFailed)
			return scanPage(http.StatusInternalServerError, data)
		}

		productID, productOK := parseID(req.Form.Get("producto"))
		allergenID, allergenOK := parseID(req.Form.Get("alergeno"))
		data.ProductID = productID
		data.AllergenID = allergenID
		if !productOK || !allergenOK {
			data.Notice = components.Failure("Choose a product and an allergen.")
			return scanPage(http.StatusOK, data)
		}

		result, err := h.verify(ctx, req.Identity.UserID, productID, allergenID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			applog.Debug(ctx, "scan target not found", "productID", productID, "allergenID", allergenID)
			data.Notice = components.Failure("Product or allergen not found.")
		case err != nil:
			applog.Error(ctx, "failed to verify allergen", "error", err)
			data.Notice = components.Failure("We couldn't check that product right now. Please try again.")
		default:
			applog.Debug(ctx, "allergen verified", "productID", productID, "allergenID", allergenID, "contains", result.Contains)
			data.Result = result
		}
		return scanPage(http.StatusOK, data)
	default:
		return Response{Status: http.StatusMethodNotAllowed}
	}
}

func (h *Handlers) scanData(ctx context.Context, userID uint) (pages.ScanData, error) {
	products, err := h.catalog.ListProductsForUser(ctx, userID)
	if err != nil {
		return pages.ScanData{}, err
	}
	allergens, err := h.catalog.ListSeedAllergens(ctx)
	if err != nil {
		return pages.ScanData{}, err
	}
	return pages.ScanData{Products: products, Allergens: allergens}, nil
}

func (h *Handlers) verify(ctx context.Context, userID, productID, allergenID uint) (*pages.ScanResult, error) {
	product, err := h.catalog.GetProductForUser(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	allergen, err := h.catalog.GetAllergen(ctx, allergenID)
	if err != nil {
		return nil, err
	}
	return &pages.ScanResult{
		Product:  product.Name,
		Allergen: allergen.Name,
		Contains: product.ContainsAllergen(allergen.Name),
		Summary:  product.Summary(),
	}, nil
}

func scanPage(status int, data pages.ScanData) Response {
	return Response{
		Status:  status,
		Title:   "Scan",
		Content: pages.Scan(data),
	}
}

func parseID(value string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
