package api

import (
	"encoding/json/v2"
	"net/http"
	"strings"
	"time"

	"github.com/steamwatch/steamwatch-server/internal/domain"
	errs "github.com/steamwatch/steamwatch-server/internal/errors"
	"github.com/steamwatch/steamwatch-server/internal/http/response"
	"github.com/steamwatch/steamwatch-server/internal/mailer"
)

// createAlertRequest is the body of POST /alert/discount.
type createAlertRequest struct {
	AppID              int64  `json:"appid" validate:"required,gt=0"`
	Email              string `json:"email" validate:"required,contains=@"`
	MinDiscountPercent int64  `json:"min_discount_percent" validate:"required,min=1,max=100"`
}

// testEmailRequest is the body of POST /test-email.
type testEmailRequest struct {
	Email string `json:"email" validate:"required,contains=@"`
}

// handleCreateAlert creates a threshold subscription, or reactivates the
// existing one for an identical (appid, email, threshold) triple.
func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	alert, err := s.store.CreateAlert(r.Context(), req.AppID, req.Email, req.MinDiscountPercent, time.Now())
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(w, "Game not tracked", s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{"alert": alert}, s.logger)
}

// handleListAlerts returns all subscriptions for an email address.
func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	email := domain.NormalizeEmail(r.URL.Query().Get("email"))
	if email == "" || !strings.Contains(email, "@") {
		response.BadRequest(w, "Missing or invalid email", s.logger)
		return
	}

	alerts, err := s.store.ListAlertsByEmail(r.Context(), email)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{"alerts": alerts}, s.logger)
}

// handleDeleteAlert deactivates a subscription; the row is retained.
func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if id == 0 {
		response.BadRequest(w, "Missing or invalid id", s.logger)
		return
	}

	alert, err := s.store.DeactivateAlert(r.Context(), id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			response.NotFound(w, "Alert not found", s.logger)
			return
		}
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{"alert": alert}, s.logger)
}

// handleTestEmail sends a fixed sample alert to verify SMTP configuration.
func (s *Server) handleTestEmail(w http.ResponseWriter, r *http.Request) {
	var req testEmailRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	price := int64(1999)
	currency := "CAD"
	sample := mailer.DiscountEmail{
		To:              domain.NormalizeEmail(req.Email),
		GameName:        "Test Game",
		AppID:           123,
		DiscountPercent: 50,
		PriceCents:      &price,
		Currency:        &currency,
	}

	if err := s.notifier.SendDiscountAlert(sample); err != nil {
		s.logger.Error("test email failed", "error", err)
		response.InternalError(w, "Failed to send test email", s.logger)
		return
	}

	response.Success(w, map[string]any{"message": "Test email sent"}, s.logger)
}
