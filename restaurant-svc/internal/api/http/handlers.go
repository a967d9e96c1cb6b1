package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"
	"restaurant-hub/restaurant-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Home         service.HomeServiceInterface
	Menu         service.MenuServiceInterface
	Drafts       service.DraftServiceInterface
	Checkout     service.CheckoutServiceInterface
	Orders       service.OrderServiceInterface
	Reservations service.ReservationServiceInterface
	Reviews      service.ReviewServiceInterface
	Auth         service.AuthServiceInterface
	Dashboard    service.DashboardServiceInterface
	UploadDir    string
	SessionTTL   time.Duration
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/", h.home).Methods("GET")
	r.HandleFunc("/contact/", h.contact).Methods("GET")
	r.HandleFunc("/menu/{item_id}/", h.menuItem).Methods("GET")

	r.HandleFunc("/register/", h.registerForm).Methods("GET")
	r.HandleFunc("/register/", h.register).Methods("POST")
	r.HandleFunc("/accounts/login/", h.loginForm).Methods("GET")
	r.HandleFunc("/accounts/login/", h.login).Methods("POST")
	r.HandleFunc("/accounts/logout/", h.logout).Methods("POST")
	r.HandleFunc("/profile/", h.profile).Methods("GET")
	r.HandleFunc("/profile/reviews/", h.myReviews).Methods("GET")

	r.HandleFunc("/cart/", h.viewDraft).Methods("GET")
	r.HandleFunc("/cart/count", h.draftCount).Methods("GET")
	r.HandleFunc("/add_to_cart/{item_id}/", h.addToDraft).Methods("GET", "POST")
	r.HandleFunc("/update_cart_quantity/{item_id}/", h.updateDraftQuantity).Methods("POST")
	r.HandleFunc("/remove_from_cart/{item_id}/", h.removeFromDraft).Methods("POST")
	r.HandleFunc("/checkout/", h.checkoutPreview).Methods("GET")
	r.HandleFunc("/checkout/", h.checkout).Methods("POST")

	r.HandleFunc("/orders/{id}/", h.getOrder).Methods("GET")
	r.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/reserve/", h.reservationForm).Methods("GET")
	r.HandleFunc("/reserve/", h.reserve).Methods("POST")
	r.HandleFunc("/review/", h.reviewForm).Methods("GET")
	r.HandleFunc("/review/", h.submitReview).Methods("POST")

	h.registerStaffRoutes(r)

	if h.UploadDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir)))).Methods("GET")
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "restaurant-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	page, err := h.Home.Home(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"contact":    h.Home.Contact(),
		"cart_count": h.Drafts.Count(sessionFrom(r)),
	})
}

func (h *Handler) menuItem(w http.ResponseWriter, r *http.Request) {
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
	reviews, err := h.Reviews.ListForItem(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"menu_item": item, "reviews": reviews})
}

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"fields": []string{"username", "email", "password1", "password2"},
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	err := decodeRequest(r, &req, func(form url.Values) {
		req.Username = form.Get("username")
		req.Email = form.Get("email")
		req.Password1 = form.Get("password1")
		req.Password2 = form.Get("password2")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess := sessionFrom(r)
	previousID := sess.ID
	user, err := h.Auth.Register(r.Context(), sess, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.reissueSessionCookie(w, previousID, sess)
	writeMessage(w, http.StatusCreated, "Registration successful!", map[string]any{"user": user})
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"next": safeNext(r.URL.Query().Get("next"))})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, h.Auth.Login)
}

type authenticator func(ctx context.Context, sess *domain.Session, req service.LoginRequest) (*domain.User, error)

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, authenticate authenticator) {
	var req service.LoginRequest
	err := decodeRequest(r, &req, func(form url.Values) {
		req.Username = form.Get("username")
		req.Password = form.Get("password")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess := sessionFrom(r)
	previousID := sess.ID
	user, err := authenticate(r.Context(), sess, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.reissueSessionCookie(w, previousID, sess)
	if next := safeNext(r.URL.Query().Get("next")); next != "" {
		http.Redirect(w, r, next, http.StatusFound)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Welcome back, %s!", user.DisplayName()), map[string]any{"user": user})
}

// reissueSessionCookie points the browser at the session id issued on sign-in.
func (h *Handler) reissueSessionCookie(w http.ResponseWriter, previousID string, sess *domain.Session) {
	if sess.ID != "" && sess.ID != previousID {
		setSessionCookie(w, sess.ID, h.SessionTTL)
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), sessionFrom(r)); err != nil {
		writeError(w, r, err)
		return
	}
	clearSessionCookie(w)
	writeMessage(w, http.StatusOK, "You have been logged out.", nil)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Auth.Profile(r.Context(), userFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) myReviews(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if err := domain.RequireRole(user, domain.RoleCustomer); err != nil {
		writeError(w, r, err)
		return
	}
	reviews, err := h.Reviews.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *Handler) viewDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.Drafts.View(userFrom(r), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) draftCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"cart_count": h.Drafts.Count(sessionFrom(r))})
}

func (h *Handler) addToDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "item_id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	sess := sessionFrom(r)
	item, err := h.Drafts.Add(r.Context(), userFrom(r), sess, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("%s added to your order.", item.Name),
		map[string]any{"cart_count": h.Drafts.Count(sess)})
}

func (h *Handler) updateDraftQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "item_id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	var req struct {
		Quantity json.Number `json:"quantity"`
	}
	err := decodeRequest(r, &req, func(form url.Values) {
		req.Quantity = json.Number(form.Get("quantity"))
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(string(req.Quantity)))
	if err != nil {
		writeError(w, r, &domain.ValidationError{Field: "quantity", Message: "Invalid quantity."})
		return
	}

	user, sess := userFrom(r), sessionFrom(r)
	if err := h.Drafts.SetQuantity(r.Context(), user, sess, id, quantity); err != nil {
		writeError(w, r, err)
		return
	}
	h.viewDraft(w, r)
}

func (h *Handler) removeFromDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "item_id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	if err := h.Drafts.Remove(r.Context(), userFrom(r), sessionFrom(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	h.viewDraft(w, r)
}

func (h *Handler) checkoutPreview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.Checkout.Preview(userFrom(r), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var form domain.ContactForm
	err := decodeRequest(r, &form, func(values url.Values) {
		form.CustomerName = values.Get("customer_name")
		form.CustomerEmail = values.Get("customer_email")
		form.CustomerPhone = values.Get("customer_phone")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	orderID, err := h.Checkout.Checkout(r.Context(), userFrom(r), sessionFrom(r), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated,
		fmt.Sprintf("Order placed successfully! Your order number is #%d", orderID),
		map[string]any{"order_id": orderID, "qr_code": service.QRLink(orderID)})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	order, err := h.Orders.Get(r.Context(), userFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	qrCode, err := h.Orders.QRCode(r.Context(), userFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) reservationForm(w http.ResponseWriter, r *http.Request) {
	prefill := map[string]string{}
	if user := userFrom(r); user != nil {
		prefill["name"] = user.DisplayName()
		prefill["email"] = user.Email
	}
	writeJSON(w, http.StatusOK, map[string]any{"initial": prefill})
}

func (h *Handler) reserve(w http.ResponseWriter, r *http.Request) {
	var req service.ReservationRequest
	err := decodeRequest(r, &req, func(form url.Values) {
		req.Name = form.Get("name")
		req.Email = form.Get("email")
		req.Phone = form.Get("phone")
		req.Date = form.Get("date")
		req.Time = form.Get("time")
		req.NumberOfGuests = json.Number(form.Get("number_of_guests"))
		req.SpecialRequests = form.Get("special_requests")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	reservation, err := h.Reservations.Create(r.Context(), userFrom(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Your reservation request has been received. We will confirm it shortly.",
		map[string]any{"reservation": reservation})
}

func (h *Handler) reviewForm(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListAvailable(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"menu_items": items,
		"order_id":   r.URL.Query().Get("order_id"),
	})
}

func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	var req service.ReviewRequest
	err := decodeRequest(r, &req, func(form url.Values) {
		req.MenuItemID = json.Number(form.Get("menu_item"))
		req.Rating = json.Number(form.Get("rating"))
		req.Comment = form.Get("comment")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	review, err := h.Reviews.Submit(r.Context(), userFrom(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Thank you for your review!", map[string]any{"review": review})
}
