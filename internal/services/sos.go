package services

import (
	"context"
	"errors"
	"fmt"
	"mediroute-service/internal/domain"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SOSRequest struct {
	Confirmed     bool
	EmergencyType string
	Location      *domain.UserLocation
}

// SOSService sends a confirmed SOS alert to a single notifier.
type SOSService struct {
	notifier ports.SOSNotifier
	now      func() time.Time
	newID    func() string
}

func NewSOSService(notifier ports.SOSNotifier) (*SOSService, error) {
	if notifier == nil {
		return nil, errors.New("new sos service: notifier is required")
	}
	return &SOSService{
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Send builds the alert and hands it to the notifier. Delivery is fire and
// forget: a notifier failure is logged and counted but the alert is still
// returned to the caller.
func (s *SOSService) Send(ctx context.Context, req SOSRequest) (_ ports.SOSAlert, err error) {
	defer obs.Time(ctx, "SendSOS")(&err)

	if !req.Confirmed {
		obs.SOSAlertsTotal.WithLabelValues("unconfirmed").Inc()
		return ports.SOSAlert{}, fmt.Errorf("send sos: %w", domain.ErrSOSNotConfirmed)
	}

	alert := ports.SOSAlert{
		ID:            s.newID(),
		SentAt:        s.now().UTC(),
		EmergencyType: strings.ToLower(strings.TrimSpace(req.EmergencyType)),
		Location:      sosLocationText(req.Location),
	}
	if req.Location != nil && req.Location.HasCoordinates() {
		lat, lon := *req.Location.Latitude, *req.Location.Longitude
		alert.Latitude, alert.Longitude = &lat, &lon
		alert.Precise = true
	}

	if nerr := s.notifier.Notify(ctx, alert); nerr != nil {
		obs.SOSAlertsTotal.WithLabelValues("notify_failed").Inc()
		obs.L().Error("sos notify failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("alert_id", alert.ID),
			zap.Error(nerr),
		)
		return alert, nil
	}

	obs.SOSAlertsTotal.WithLabelValues("sent").Inc()
	return alert, nil
}

// sosLocationText prefers precise coordinates, then the address.
func sosLocationText(loc *domain.UserLocation) string {
	if loc == nil {
		return "Unavailable"
	}
	if loc.HasCoordinates() {
		return fmt.Sprintf("%.4f, %.4f", *loc.Latitude, *loc.Longitude)
	}
	return loc.Describe()
}
