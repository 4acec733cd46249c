package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mello-felipe/travel-map-social-app/pkg/logger"
	"github.com/mello-felipe/travel-map-social-app/pkg/metrics"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/entity"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/infrastructure"
)

// FlowState is the terminal state of a post-creation flow.
type FlowState string

const (
	StateRejected  FlowState = "rejected"  // validation failed, no network call made
	StateFailed    FlowState = "failed"    // a collaborator call failed
	StateSucceeded FlowState = "succeeded"
)

// Stage names the step of the community-post protocol a flow stopped at.
type Stage string

const (
	StageValidate    Stage = "validate"
	StageCreateList  Stage = "create_list"
	StageAttachSpots Stage = "attach_spots"
	StageCreatePost  Stage = "create_post"
)

// CommunityPostOutcome is the full result of one community-post flow. The
// state machine is exposed so the caller can tell a clean failure from one
// that left an orphaned hidden list on the server.
type CommunityPostOutcome struct {
	State FlowState
	Stage Stage

	// Partial is true once the hidden list exists server-side but no post
	// references it. The gateway never deletes the orphan; the server owns
	// garbage collection of private lists.
	Partial       bool
	ListID        int64
	AttachedSpots int

	ValidationErrors []string
	Response         *entity.CommunityPostResponse
}

// ReviewPostOutcome is the result of a single-step review-post flow.
type ReviewPostOutcome struct {
	State            FlowState
	ValidationErrors []string
	Response         *entity.ReviewPostResponse
}

// ListPostOutcome is the result of a single-step list-post flow.
type ListPostOutcome struct {
	State            FlowState
	ValidationErrors []string
	Response         *entity.ListPostResponse
}

// PostService turns one user intent into the right sequence of spot API
// calls. Every failure is returned as a value inside a typed outcome;
// nothing here panics or retries.
type PostService struct {
	spotAPI   infrastructure.SpotAPIClient
	publisher infrastructure.MessagePublisher
}

// NewPostService creates the orchestrator. publisher may be nil, in which
// case post events are simply not emitted.
func NewPostService(spotAPI infrastructure.SpotAPIClient, publisher infrastructure.MessagePublisher) *PostService {
	return &PostService{
		spotAPI:   spotAPI,
		publisher: publisher,
	}
}

// CreateCommunityPost runs the community-post protocol:
//
//	validate -> create hidden list -> attach spots in order -> create post
//
// The steps are strictly sequential because each call needs the previous
// call's output. There is no compensation: once the hidden list exists,
// any later failure leaves it orphaned and the outcome says so.
func (s *PostService) CreateCommunityPost(ctx context.Context, req *entity.CommunityPostRequest) *CommunityPostOutcome {
	flowID := uuid.NewString()
	log := logger.With().Str("flow_id", flowID).Logger()

	if errs := req.Validate(); len(errs) > 0 {
		metrics.PostValidationRejections.WithLabelValues(entity.PostTypeCommunity).Inc()
		log.Warn().Strs("errors", errs).Msg("Community post rejected by validation")

		return &CommunityPostOutcome{
			State:            StateRejected,
			Stage:            StageValidate,
			ValidationErrors: errs,
			Response:         failedCommunityResponse(strings.Join(errs, "; ")),
		}
	}

	log.Info().Str("request", req.Summary()).Msg("Creating community post")

	// Step one: the hidden container list. Nothing exists server-side yet,
	// so a failure here is clean.
	listResp, err := s.spotAPI.CreateList(ctx, entity.NewHiddenList(req))
	if msg, failed := listCreateFailure(listResp, err); failed {
		metrics.PostStageFailures.WithLabelValues(string(StageCreateList)).Inc()
		log.Error().Str("stage", string(StageCreateList)).Str("error", msg).Msg("Community post flow failed")

		return &CommunityPostOutcome{
			State:    StateFailed,
			Stage:    StageCreateList,
			Response: failedCommunityResponse(msg),
		}
	}

	listID := listResp.Data.ListID

	// Step two: attach every spot, in request order. From the first
	// attach onward the list is live on the server, so any failure leaves
	// a partial orphan behind.
	for i, spotID := range req.SpotIDs {
		attachReq := &entity.AddSpotRequest{SpotID: spotID}
		if err := s.spotAPI.AddSpotToList(ctx, listID, attachReq); err != nil {
			metrics.PostStageFailures.WithLabelValues(string(StageAttachSpots)).Inc()
			log.Error().
				Str("stage", string(StageAttachSpots)).
				Int64("list_id", listID).
				Int("attached", i).
				Err(err).
				Msg("Community post flow failed, hidden list orphaned")

			return &CommunityPostOutcome{
				State:         StateFailed,
				Stage:         StageAttachSpots,
				Partial:       true,
				ListID:        listID,
				AttachedSpots: i,
				Response:      failedCommunityResponse(err.Error()),
			}
		}
	}

	// Step three: the post itself, referencing the populated list.
	postResp, err := s.spotAPI.CreateCommunityPost(ctx, listID, req)
	if err != nil {
		metrics.PostStageFailures.WithLabelValues(string(StageCreatePost)).Inc()
		log.Error().
			Str("stage", string(StageCreatePost)).
			Int64("list_id", listID).
			Err(err).
			Msg("Community post flow failed, hidden list orphaned")

		return &CommunityPostOutcome{
			State:         StateFailed,
			Stage:         StageCreatePost,
			Partial:       true,
			ListID:        listID,
			AttachedSpots: len(req.SpotIDs),
			Response:      failedCommunityResponse(err.Error()),
		}
	}

	if !postResp.Success {
		metrics.PostStageFailures.WithLabelValues(string(StageCreatePost)).Inc()
		log.Error().
			Str("stage", string(StageCreatePost)).
			Int64("list_id", listID).
			Str("error", postResp.Error.Or("no error reported")).
			Msg("Community post flow failed, hidden list orphaned")

		return &CommunityPostOutcome{
			State:         StateFailed,
			Stage:         StageCreatePost,
			Partial:       true,
			ListID:        listID,
			AttachedSpots: len(req.SpotIDs),
			Response:      postResp,
		}
	}

	metrics.PostsCreated.WithLabelValues(entity.PostTypeCommunity).Inc()

	var postID int64
	if postResp.Data != nil {
		postID = postResp.Data.PostID
		if postResp.Data.Type != entity.PostTypeCommunity {
			log.Warn().Str("type", postResp.Data.Type).Msg("Unexpected post type in response data")
		}
	}

	log.Info().Int64("post_id", postID).Int64("list_id", listID).Msg("Community post created")
	s.publishPostEvent(ctx, postID, entity.PostTypeCommunity, req.UserID)

	return &CommunityPostOutcome{
		State:         StateSucceeded,
		Stage:         StageCreatePost,
		ListID:        listID,
		AttachedSpots: len(req.SpotIDs),
		Response:      postResp,
	}
}

// CreateReviewPost validates and issues the single review-post call.
func (s *PostService) CreateReviewPost(ctx context.Context, req *entity.ReviewPostRequest) *ReviewPostOutcome {
	flowID := uuid.NewString()
	log := logger.With().Str("flow_id", flowID).Logger()

	if errs := req.Validate(); len(errs) > 0 {
		metrics.PostValidationRejections.WithLabelValues(entity.PostTypeReview).Inc()
		log.Warn().Strs("errors", errs).Msg("Review post rejected by validation")

		return &ReviewPostOutcome{
			State:            StateRejected,
			ValidationErrors: errs,
			Response: &entity.ReviewPostResponse{
				Error: entity.StringOf(strings.Join(errs, "; ")),
			},
		}
	}

	log.Info().Str("request", req.Summary()).Msg("Creating review post")

	resp, err := s.spotAPI.CreateReviewPost(ctx, req)
	if err != nil {
		metrics.PostStageFailures.WithLabelValues(string(StageCreatePost)).Inc()
		log.Error().Err(err).Msg("Review post creation failed")

		return &ReviewPostOutcome{
			State: StateFailed,
			Response: &entity.ReviewPostResponse{
				Error: entity.StringOf(err.Error()),
			},
		}
	}

	if !resp.Success {
		metrics.PostStageFailures.WithLabelValues(string(StageCreatePost)).Inc()
		log.Error().Str("error", resp.Error.Or("no error reported")).Msg("Review post creation failed")

		return &ReviewPostOutcome{
			State:    StateFailed,
			Response: resp,
		}
	}

	metrics.PostsCreated.WithLabelValues(entity.PostTypeReview).Inc()
	metrics.ReviewRatings.Observe(req.Rating)

	var postID int64
	if resp.Data != nil {
		postID = resp.Data.PostID
		if resp.Data.Type != entity.PostTypeReview {
			log.Warn().Str("type", resp.Data.Type).Msg("Unexpected post type in response data")
		}
	}

	log.Info().Int64("post_id", postID).Msg("Review post created")
	s.publishPostEvent(ctx, postID, entity.PostTypeReview, req.UserID)

	return &ReviewPostOutcome{
		State:    StateSucceeded,
		Response: resp,
	}
}

// CreateListPost validates and issues the single list-post call.
func (s *PostService) CreateListPost(ctx context.Context, req *entity.ListPostRequest) *ListPostOutcome {
	flowID := uuid.NewString()
	log := logger.With().Str("flow_id", flowID).Logger()

	if errs := req.Validate(); len(errs) > 0 {
		metrics.PostValidationRejections.WithLabelValues(entity.PostTypeList).Inc()
		log.Warn().Strs("errors", errs).Msg("List post rejected by validation")

		return &ListPostOutcome{
			State:            StateRejected,
			ValidationErrors: errs,
			Response: &entity.ListPostResponse{
				Error: entity.StringOf(strings.Join(errs, "; ")),
			},
		}
	}

	log.Info().Str("request", req.Summary()).Msg("Creating list post")

	resp, err := s.spotAPI.CreateListPost(ctx, req)
	if err != nil {
		metrics.PostStageFailures.WithLabelValues(string(StageCreatePost)).Inc()
		log.Error().Err(err).Msg("List post creation failed")

		return &ListPostOutcome{
			State: StateFailed,
			Response: &entity.ListPostResponse{
				Error: entity.StringOf(err.Error()),
			},
		}
	}

	if !resp.Success {
		metrics.PostStageFailures.WithLabelValues(string(StageCreatePost)).Inc()
		log.Error().Str("error", resp.Error.Or("no error reported")).Msg("List post creation failed")

		return &ListPostOutcome{
			State:    StateFailed,
			Response: resp,
		}
	}

	metrics.PostsCreated.WithLabelValues(entity.PostTypeList).Inc()

	var postID int64
	if resp.Data != nil {
		postID = resp.Data.PostID
		if resp.Data.Type != entity.PostTypeList {
			log.Warn().Str("type", resp.Data.Type).Msg("Unexpected post type in response data")
		}
	}

	log.Info().Int64("post_id", postID).Msg("List post created")
	s.publishPostEvent(ctx, postID, entity.PostTypeList, req.UserID)

	return &ListPostOutcome{
		State:    StateSucceeded,
		Response: resp,
	}
}

// publishPostEvent emits a POST_CREATED event. Publishing is best effort:
// the post already exists, so a stream failure is logged and swallowed.
func (s *PostService) publishPostEvent(ctx context.Context, postID int64, postType string, userID int64) {
	if s.publisher == nil {
		return
	}

	event := entity.PostEvent{
		EventType: "POST_CREATED",
		PostID:    postID,
		PostType:  postType,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal post event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(postID, 10), eventData); err != nil {
		logger.Error().Err(err).Msg("Failed to publish post event")
	}
}

// listCreateFailure decides whether the list-create step failed and picks
// the message to surface: the transport error when there is one, otherwise
// whatever the server put in the envelope.
func listCreateFailure(resp *entity.ListCreateResponse, err error) (string, bool) {
	if err != nil {
		return err.Error(), true
	}
	if resp == nil || !resp.Success || resp.Data == nil {
		if resp != nil && resp.Error.Set {
			return resp.Error.Value, true
		}
		return "spot api reported failure", true
	}
	return "", false
}

func failedCommunityResponse(msg string) *entity.CommunityPostResponse {
	return &entity.CommunityPostResponse{
		Error: entity.StringOf(msg),
	}
}
