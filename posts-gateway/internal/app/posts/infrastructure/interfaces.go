package infrastructure

import (
	"context"

	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/entity"
)

// SpotAPIClient is the transport-agnostic contract with the spot-discovery
// server. Implementations own pooling, timeouts and cancellation; callers
// see exactly two outcomes per call: a decoded response or an error. No
// implementation retries — a retried community-post sequence can duplicate
// lists and spots, so retrying belongs to the layer above.
type SpotAPIClient interface {
	CreateList(ctx context.Context, req *entity.ListCreateRequest) (*entity.ListCreateResponse, error)
	AddSpotToList(ctx context.Context, listID int64, req *entity.AddSpotRequest) error
	CreateCommunityPost(ctx context.Context, listID int64, req *entity.CommunityPostRequest) (*entity.CommunityPostResponse, error)
	CreateReviewPost(ctx context.Context, req *entity.ReviewPostRequest) (*entity.ReviewPostResponse, error)
	CreateListPost(ctx context.Context, req *entity.ListPostRequest) (*entity.ListPostResponse, error)
}

// MessagePublisher pushes post events to the event stream.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
