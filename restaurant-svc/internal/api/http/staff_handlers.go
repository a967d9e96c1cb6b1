package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"restaurant-hub/restaurant-svc/internal/domain"
	"restaurant-hub/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) registerStaffRoutes(r *mux.Router) {
	staff := r.PathPrefix("/staff").Subrouter()

	staff.HandleFunc("/login/", h.loginForm).Methods("GET")
	staff.HandleFunc("/login/", h.staffLogin).Methods("POST")
	staff.HandleFunc("/dashboard/", h.dashboard).Methods("GET")

	staff.HandleFunc("/orders/{id}/status/", h.setOrderStatus).Methods("POST")
	staff.HandleFunc("/orders/{id}/process/", h.orderAction(domain.ActionProcess)).Methods("POST")
	staff.HandleFunc("/orders/{id}/complete/", h.orderAction(domain.ActionComplete)).Methods("POST")
	staff.HandleFunc("/orders/{id}/cancel/", h.orderAction(domain.ActionCancel)).Methods("POST")
	staff.HandleFunc("/reservations/{id}/confirm/", h.confirmReservation).Methods("POST")

	staff.HandleFunc("/categories/", h.createCategory).Methods("POST")
	staff.HandleFunc("/categories/{id}/delete/", h.deleteCategory).Methods("POST")
	staff.HandleFunc("/menu/", h.createMenuItem).Methods("POST")
	staff.HandleFunc("/menu/{item_id}/edit/", h.editMenuItemForm).Methods("GET")
	staff.HandleFunc("/menu/{item_id}/edit/", h.updateMenuItem).Methods("PUT", "POST")
	staff.HandleFunc("/menu/{item_id}/delete/", h.deleteMenuItemConfirm).Methods("GET")
	staff.HandleFunc("/menu/{item_id}/delete/", h.deleteMenuItem).Methods("POST")
	staff.HandleFunc("/menu/{item_id}/image", h.uploadMenuItemImage).Methods("POST")
}

func (h *Handler) staffLogin(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, func(ctx context.Context, sess *domain.Session, req service.LoginRequest) (*domain.User, error) {
		user, err := h.Auth.StaffLogin(ctx, sess, req)
		if errors.Is(err, domain.ErrForbidden) {
			return nil, errStaffOnly
		}
		return user, err
	})
}

var errStaffOnly = &domain.ValidationError{Field: "username", Message: "Access denied. This login is for staff members only."}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Dashboard.Dashboard(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	err := decodeRequest(r, &req, func(form url.Values) {
		req.Status = form.Get("status")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.Orders.SetStatus(r.Context(), userFrom(r), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Order #%d status updated to %s.", order.ID, order.Status),
		map[string]any{"order": order})
}

func (h *Handler) orderAction(action domain.OrderAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			writeError(w, r, domain.ErrNotFound)
			return
		}

		var order *domain.Order
		var err error
		switch action {
		case domain.ActionProcess:
			order, err = h.Orders.Process(r.Context(), userFrom(r), id)
		case domain.ActionComplete:
			order, err = h.Orders.Complete(r.Context(), userFrom(r), id)
		default:
			order, err = h.Orders.Cancel(r.Context(), userFrom(r), id)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, fmt.Sprintf("Order #%d is now %s.", order.ID, order.Status),
			map[string]any{"order": order})
	}
}

func (h *Handler) confirmReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	reservation, alreadyConfirmed, err := h.Reservations.Confirm(r.Context(), userFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	message := fmt.Sprintf("Reservation for %s has been confirmed.", reservation.Name)
	if alreadyConfirmed {
		message = fmt.Sprintf("Reservation for %s was already confirmed.", reservation.Name)
	}
	writeMessage(w, http.StatusOK, message, map[string]any{
		"reservation":       reservation,
		"already_confirmed": alreadyConfirmed,
	})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	err := decodeRequest(r, &category, func(form url.Values) {
		category.Name = form.Get("name")
		category.Description = form.Get("description")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Menu.CreateCategory(r.Context(), userFrom(r), &category); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	if err := h.Menu.DeleteCategory(r.Context(), userFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Category deleted.", nil)
}

func decodeMenuItem(r *http.Request) (service.MenuItemRequest, error) {
	var req service.MenuItemRequest
	err := decodeRequest(r, &req, func(form url.Values) {
		req.Name = form.Get("name")
		req.Description = form.Get("description")
		req.Price = json.Number(form.Get("price"))
		req.CategoryID = json.Number(form.Get("category"))
		req.IsAvailable = formBool(form, "is_available")
	})
	return req, err
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMenuItem(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.Menu.Create(r.Context(), userFrom(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) editMenuItemForm(w http.ResponseWriter, r *http.Request) {
	if err := domain.RequireRole(userFrom(r), domain.RoleStaff); err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := pathID(r, "item_id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	item, err := h.Menu.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	categories, err := h.Menu.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"menu_item": item, "categories": categories})
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "item_id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	req, err := decodeMenuItem(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := h.Menu.Update(r.Context(), userFrom(r), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItemConfirm(w http.ResponseWriter, r *http.Request) {
	if err := domain.RequireRole(userFrom(r), domain.RoleStaff); err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := pathID(r, "item_id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	item, err := h.Menu.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"menu_item": item})
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "item_id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	if err := h.Menu.Delete(r.Context(), userFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Menu item deleted.", nil)
}

func (h *Handler) uploadMenuItemImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "item_id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	if err := domain.RequireRole(userFrom(r), domain.RoleStaff); err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageSize+1<<20)
	if err := r.ParseMultipartForm(service.MaxImageSize); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageURL, err := h.Menu.UpdateImage(r.Context(), userFrom(r), id, service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Image uploaded successfully", map[string]any{"image_url": imageURL})
}
