package slack

import (
	"context"
	"fmt"

	"github.com/diillson/aws-cost-reporter-go/internal/domain/repository"
	"github.com/slack-go/slack"
)

// slackAPI é o subconjunto do cliente Slack usado aqui.
type slackAPI interface {
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// DeliveryRepositoryImpl implementa o DeliveryRepository via upload de
// arquivo do Slack.
type DeliveryRepositoryImpl struct {
	client slackAPI
}

// NewDeliveryRepository cria uma nova implementação do DeliveryRepository
// autenticada com o token do bot.
func NewDeliveryRepository(botToken string) repository.DeliveryRepository {
	return &DeliveryRepositoryImpl{client: slack.New(botToken)}
}

// UploadReport uploads the serialized report as a named file attachment
// with a short caption. No retries: a failed upload surfaces to the
// caller as the job's only fatal IO error.
func (r *DeliveryRepositoryImpl) UploadReport(ctx context.Context, channelID, filename, comment string, content []byte) error {
	_, err := r.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:        channelID,
		Filename:       filename,
		FileSize:       len(content),
		Content:        string(content),
		InitialComment: comment,
	})
	if err != nil {
		return fmt.Errorf("error uploading file to Slack: %w", err)
	}
	return nil
}
