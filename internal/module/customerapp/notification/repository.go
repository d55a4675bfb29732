package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type NotificationRepository interface {
	Send(ctx context.Context, m Message) error
}

type notificationRepository struct {
	logger *logrus.Logger
	client *resty.Client
	apiKey string
}

func NewNotificationRepository(logger *logrus.Logger, client *resty.Client, apiKey string) NotificationRepository {
	return &notificationRepository{
		logger: logger,
		client: client,
		apiKey: apiKey,
	}
}

// Send implements NotificationRepository.
func (r *notificationRepository) Send(ctx context.Context, m Message) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Api-Key", r.apiKey).
		SetBody(m).
		Post("/v1/messages")
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while sending notification through gateway")
	}

	if resp.IsError() {
		err := fmt.Errorf("notification gateway responded with status %d: %s", resp.StatusCode(), resp.String())
		r.logger.WithContext(ctx).WithError(err).Error()
		return errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while sending notification through gateway")
	}

	return nil
}
