package webhook

import (
	"context"
	"net/http"
	"time"

	"pet-foster-homes/internal/domain/stayrequests"
	"pet-foster-homes/internal/platform/httpclient"
	"pet-foster-homes/internal/platform/logger"

	"github.com/sony/gobreaker"
)

// Notifier implementa stayrequests.Notifier: POSTea el cambio de estado
// a un endpoint configurado por env. Es best-effort — el lifecycle ya
// persistió antes de llegar acá, un webhook caído solo se loguea.
// El breaker evita martillar un endpoint muerto en cada decisión.
type Notifier struct {
	client *httpclient.Client
	url    string
	cb     *gobreaker.CircuitBreaker
	log    logger.Logger
}

type statusChangedPayload struct {
	Event      string    `json:"event"`
	RequestID  string    `json:"requestId"`
	HomeID     string    `json:"homeId"`
	HostEmail  string    `json:"hostEmail"`
	TutorEmail string    `json:"tutorEmail"`
	PetName    string    `json:"petName"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(url string, client *httpclient.Client, log logger.Logger) *Notifier {
	if client == nil {
		client = httpclient.New(httpclient.DefaultTimeout)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "stay-request-webhook",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("webhook breaker state change", map[string]any{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})

	return &Notifier{
		client: client,
		url:    url,
		cb:     cb,
		log:    log,
	}
}

func (n *Notifier) StatusChanged(ctx context.Context, sr stayrequests.StayRequest) {
	payload := statusChangedPayload{
		Event:      "stay_request." + string(sr.Status),
		RequestID:  sr.ID,
		HomeID:     sr.HomeID,
		HostEmail:  sr.HostEmail,
		TutorEmail: sr.TutorEmail,
		PetName:    sr.PetName,
		Status:     string(sr.Status),
		OccurredAt: sr.UpdatedAt,
	}

	_, err := n.cb.Execute(func() (any, error) {
		return nil, n.client.DoJSON(ctx, http.MethodPost, n.url, nil, payload, nil)
	})
	if err != nil {
		n.log.Warn("webhook delivery failed", map[string]any{
			"request_id": sr.ID,
			"status":     string(sr.Status),
			"error":      err.Error(),
		})
	}
}
