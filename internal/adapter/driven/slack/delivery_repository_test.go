package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSlackAPI struct {
	uploadFunc func(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

func (m *mockSlackAPI) UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	return m.uploadFunc(ctx, params)
}

func TestUploadReport(t *testing.T) {
	var captured slack.UploadFileV2Parameters

	repo := &DeliveryRepositoryImpl{client: &mockSlackAPI{
		uploadFunc: func(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
			captured = params
			return &slack.FileSummary{ID: "F123"}, nil
		},
	}}

	content := []byte("Account ID,Account Name\n")
	err := repo.UploadReport(context.Background(), "C0123456789", "aws_cost_2024-02.csv", "AWS monthly cost", content)
	require.NoError(t, err)

	assert.Equal(t, "C0123456789", captured.Channel)
	assert.Equal(t, "aws_cost_2024-02.csv", captured.Filename)
	assert.Equal(t, "AWS monthly cost", captured.InitialComment)
	assert.Equal(t, string(content), captured.Content)
	assert.Equal(t, len(content), captured.FileSize)
}

func TestUploadReport_Failure(t *testing.T) {
	repo := &DeliveryRepositoryImpl{client: &mockSlackAPI{
		uploadFunc: func(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
			return nil, errors.New("invalid_auth")
		},
	}}

	err := repo.UploadReport(context.Background(), "C0123456789", "aws_cost_2024-02.csv", "AWS monthly cost", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_auth")
}
