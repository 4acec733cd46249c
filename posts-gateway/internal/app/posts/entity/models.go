package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Post kind tags as they appear on the wire.
const (
	PostTypeCommunity = "community"
	PostTypeReview    = "review"
	PostTypeList      = "list"
)

// Sentiment labels derived from a review rating. Display strings of the
// app, carried verbatim.
const (
	SentimentPositive = "Positiva"
	SentimentNegative = "Negativa"
	SentimentNeutral  = "Neutra"
)

// Fallbacks for blank display fields.
const (
	fallbackTitle       = "Sem título"
	fallbackDescription = "Sem descrição"
)

// decodeSuccess reads the success flag leniently: a missing or malformed
// field means false and never fails the decode of the rest of the payload.
func decodeSuccess(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v
}

// StatusResponse is the minimal envelope returned by operations that
// create no payload, such as attaching a spot to a list.
type StatusResponse struct {
	Success bool      `json:"success"`
	Message OptString `json:"message,omitzero"`
	Error   OptString `json:"error,omitzero"`
}

func (r *StatusResponse) UnmarshalJSON(data []byte) error {
	type alias StatusResponse
	aux := struct {
		Success json.RawMessage `json:"success"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Success = decodeSuccess(aux.Success)
	return nil
}

// ListData is the payload of a created list.
type ListData struct {
	ListID     int64  `json:"list_id"`
	ListName   string `json:"list_name"`
	IsPublic   bool   `json:"is_public"`
	SpotsCount int    `json:"spots_count"`
}

// Summary combines name and spot count for display.
func (d *ListData) Summary() string {
	return fmt.Sprintf("%s (%d spots)", d.ListName, d.SpotsCount)
}

// ListCreateResponse is the envelope of a list-create call.
type ListCreateResponse struct {
	Success bool      `json:"success"`
	Message OptString `json:"message,omitzero"`
	Error   OptString `json:"error,omitzero"`
	Data    *ListData `json:"data,omitempty"`
}

func (r *ListCreateResponse) UnmarshalJSON(data []byte) error {
	type alias ListCreateResponse
	aux := struct {
		Success json.RawMessage `json:"success"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Success = decodeSuccess(aux.Success)
	return nil
}

// CommunityPostData is the payload of a created community post.
type CommunityPostData struct {
	PostID      int64     `json:"post_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description OptString `json:"description,omitzero"`
	UserID      int64     `json:"user_id"`
	ListID      int64     `json:"list_id"`
	SpotsCount  int       `json:"spots_count"`
	CreatedDate time.Time `json:"created_date"`
}

func (d *CommunityPostData) DisplayTitle() string {
	return displayOr(d.Title, fallbackTitle)
}

func (d *CommunityPostData) DisplayDescription() string {
	return displayOr(d.Description.Value, fallbackDescription)
}

// FormattedDate renders only the calendar-day component.
func (d *CommunityPostData) FormattedDate() string {
	return d.CreatedDate.Format("02/01/2006")
}

// CommunityPostResponse is the envelope of a community-post-create call.
type CommunityPostResponse struct {
	Success bool               `json:"success"`
	Message OptString          `json:"message,omitzero"`
	Error   OptString          `json:"error,omitzero"`
	Data    *CommunityPostData `json:"data,omitempty"`
}

func (r *CommunityPostResponse) UnmarshalJSON(data []byte) error {
	type alias CommunityPostResponse
	aux := struct {
		Success json.RawMessage `json:"success"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Success = decodeSuccess(aux.Success)
	return nil
}

// ReviewPostData is the payload of a created review post.
type ReviewPostData struct {
	PostID      int64     `json:"post_id"`
	Type        string    `json:"type"`
	Description OptString `json:"description,omitzero"`
	UserID      int64     `json:"user_id"`
	SpotID      int64     `json:"spot_id"`
	Rating      float64   `json:"rating"`
	CreatedDate time.Time `json:"created_date"`
}

// RatingStars buckets the rating into a whole star count, rounding half up
// (4.5 shows as 5 stars).
func (d *ReviewPostData) RatingStars() int {
	return int(math.Floor(d.Rating + 0.5))
}

// Sentiment maps the rating to the label shown next to the stars.
func (d *ReviewPostData) Sentiment() string {
	switch {
	case d.Rating >= 4.0:
		return SentimentPositive
	case d.Rating <= 2.0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func (d *ReviewPostData) DisplayDescription() string {
	return displayOr(d.Description.Value, fallbackDescription)
}

func (d *ReviewPostData) FormattedDate() string {
	return d.CreatedDate.Format("02/01/2006")
}

// ReviewPostResponse is the envelope of a review-post-create call.
type ReviewPostResponse struct {
	Success bool            `json:"success"`
	Message OptString       `json:"message,omitzero"`
	Error   OptString       `json:"error,omitzero"`
	Data    *ReviewPostData `json:"data,omitempty"`
}

func (r *ReviewPostResponse) UnmarshalJSON(data []byte) error {
	type alias ReviewPostResponse
	aux := struct {
		Success json.RawMessage `json:"success"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Success = decodeSuccess(aux.Success)
	return nil
}

// ListPostData is the payload of a created list post.
type ListPostData struct {
	PostID      int64     `json:"post_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description OptString `json:"description,omitzero"`
	UserID      int64     `json:"user_id"`
	ListID      int64     `json:"list_id"`
	SpotsCount  int       `json:"spots_count"`
	CreatedDate time.Time `json:"created_date"`
}

func (d *ListPostData) DisplayTitle() string {
	return displayOr(d.Title, fallbackTitle)
}

func (d *ListPostData) DisplayDescription() string {
	return displayOr(d.Description.Value, fallbackDescription)
}

func (d *ListPostData) FormattedDate() string {
	return d.CreatedDate.Format("02/01/2006")
}

// ListPostResponse is the envelope of a list-post-create call.
type ListPostResponse struct {
	Success bool          `json:"success"`
	Message OptString     `json:"message,omitzero"`
	Error   OptString     `json:"error,omitzero"`
	Data    *ListPostData `json:"data,omitempty"`
}

func (r *ListPostResponse) UnmarshalJSON(data []byte) error {
	type alias ListPostResponse
	aux := struct {
		Success json.RawMessage `json:"success"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Success = decodeSuccess(aux.Success)
	return nil
}

// PostEvent is published to the event stream after a successful creation.
type PostEvent struct {
	EventType string    `json:"event_type"` // POST_CREATED
	PostID    int64     `json:"post_id"`
	PostType  string    `json:"post_type"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func displayOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
