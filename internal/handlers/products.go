package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"alerscan/internal/labels"
	applog "alerscan/internal/log"
	"alerscan/internal/store"
	"alerscan/internal/views/components"
	"alerscan/internal/views/pages"
	"alerscan/models"
)

const registerProductPath = "/registrar"

// RegisterProduct shows the product form and creates products tagged with the
// selected allergens plus any detected on an uploaded label.
func (h *Handlers) RegisterProduct(ctx context.Context, req Request) Response {
	if req.Identity == nil {
		return Response{Redirect: loginPath}
	}
	if h.catalog == nil {
		return Response{Status: http.StatusServiceUnavailable}
	}

	allergens, err := h.catalog.ListSeedAllergens(ctx)
	if err != nil {
		applog.Error(ctx, "failed to load allergens", "error", err)
		return productPage(http.StatusInternalServerError, pages.RegisterProductData{
			Notice: components.Failure("We couldn't load the allergen list. Please try again."),
		})
	}

	switch req.Method {
	case http.MethodGet, http.MethodHead:
		return productPage(http.StatusOK, pages.RegisterProductData{Allergens: allergens, Notice: req.Notice})
	case http.MethodPost:
		data := pages.RegisterProductData{
			Allergens: allergens,
			Name:      strings.TrimSpace(req.Form.Get("nombre")),
			Lot:       strings.TrimSpace(req.Form.Get("lote")),
			Selected:  map[uint]bool{},
		}

		var ids []uint
		for _, raw := range req.Form["alergenos"] {
			if id, ok := parseID(raw); ok {
				ids = append(ids, id)
				data.Selected[id] = true
			}
		}

		if req.Upload != nil {
			detected, err := detectFromLabel(req.Upload, allergens)
			if err != nil {
				applog.Debug(ctx, "label could not be read", "file", req.Upload.Name, "error", err)
				data.Notice = components.Failure(labelMessage(err))
				return productPage(http.StatusOK, data)
			}
			for _, allergen := range detected {
				ids = append(ids, allergen.ID)
				data.Detected = append(data.Detected, allergen.Name)
			}
			applog.Debug(ctx, "label scanned", "file", req.Upload.Name, "detected", len(detected))
		}

		product, err := h.catalog.CreateProduct(ctx, data.Name, data.Lot, req.Identity.UserID, ids)
		if err != nil {
			if errors.Is(err, store.ErrValidation) {
				data.Notice = components.Failure("Name and lot are required.")
				return productPage(http.StatusOK, data)
			}
			applog.Error(ctx, "failed to create product", "error", err)
			data.Notice = components.Failure("We couldn't register the product right now. Please try again.")
			return productPage(http.StatusOK, data)
		}

		applog.Debug(ctx, "product registered", "productID", product.ID, "allergens", len(product.Allergens))
		message := fmt.Sprintf("Product %s registered.", product.Name)
		if len(data.Detected) > 0 {
			message += " Detected on the label: " + strings.Join(data.Detected, ", ") + "."
		}
		return Response{
			Redirect: registerProductPath,
			Notice:   components.Success(message),
		}
	default:
		return Response{Status: http.StatusMethodNotAllowed}
	}
}

func detectFromLabel(upload *labels.Upload, allergens []models.Allergen) ([]models.Allergen, error) {
	text, err := upload.Text()
	if err != nil {
		return nil, err
	}
	found := map[uint]bool{}
	for _, id := range labels.Detect(text, allergens) {
		found[id] = true
	}
	var detected []models.Allergen
	for _, allergen := range allergens {
		if found[allergen.ID] {
			detected = append(detected, allergen)
		}
	}
	return detected, nil
}

func labelMessage(err error) string {
	if errors.Is(err, labels.ErrUnsupportedFormat) {
		return "Labels must be PDF or plain text files."
	}
	return "We couldn't read that label. Please try another file."
}

func productPage(status int, data pages.RegisterProductData) Response {
	return Response{
		Status:  status,
		Title:   "Register product",
		Content: pages.RegisterProduct(data),
	}
}
