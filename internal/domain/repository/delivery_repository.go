package repository

import "context"

// DeliveryRepository defines the interface for handing the finished
// report to the team channel.
type DeliveryRepository interface {
	UploadReport(ctx context.Context, channelID, filename, comment string, content []byte) error
}
