package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field limits dictated by the spot API contract.
const (
	MaxTitleLength       = 45
	MaxDescriptionLength = 500
	MaxSpotsPerList      = 10
	MinRating            = 1.0
	MaxRating            = 5.0
)

// Validation messages shown to the user. They are display strings of the
// app, not a localization layer.
const (
	msgTitleRequired       = "O título é obrigatório"
	msgTitleTooLong        = "O título deve ter no máximo 45 caracteres"
	msgDescriptionTooLong  = "A descrição deve ter no máximo 500 caracteres"
	msgInvalidUserID       = "Identificador de usuário inválido"
	msgNoSpots             = "Selecione pelo menos um spot"
	msgTooManySpots        = "Uma lista pode ter no máximo 10 spots"
	msgDuplicateSpots      = "A lista de spots contém entradas repetidas"
	msgInvalidSpotIDs      = "A lista de spots contém identificadores inválidos"
	msgInvalidSpotID       = "Identificador de spot inválido"
	msgInvalidListID       = "Identificador de lista inválido"
	msgInvalidThumbnailID  = "Identificador de miniatura inválido"
	msgListNameRequired    = "O nome da lista é obrigatório"
	msgListNameTooLong     = "O nome da lista deve ter no máximo 45 caracteres"
	msgRatingOutOfRange    = "A nota deve estar entre 1 e 5"
)

// ErrInvalidReviewForm marks a review form that failed fail-fast
// construction. Only NewReviewPostRequestFromForm produces it; every other
// request type collects errors through Validate instead.
var ErrInvalidReviewForm = errors.New("invalid review form")

var formValidator = validator.New()

// CommunityPostRequest asks for a community post over a set of spots.
// The gateway fulfils it in two steps: a hidden list holding the spots,
// then a post referencing that list.
type CommunityPostRequest struct {
	Title       string    `json:"title"`
	Description OptString `json:"description,omitzero"`
	UserID      int64     `json:"user_id"`
	SpotIDs     []int64   `json:"spot_ids"`
}

// Validate reports every violated rule, in a stable order. The emptiness
// check runs on the trimmed title but the length limits run on the raw
// strings, matching what the server enforces.
func (r *CommunityPostRequest) Validate() []string {
	var errs []string

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, msgTitleRequired)
	}
	if utf8.RuneCountInString(r.Title) > MaxTitleLength {
		errs = append(errs, msgTitleTooLong)
	}
	if r.Description.Set && utf8.RuneCountInString(r.Description.Value) > MaxDescriptionLength {
		errs = append(errs, msgDescriptionTooLong)
	}
	if r.UserID <= 0 {
		errs = append(errs, msgInvalidUserID)
	}

	// The four spot_ids rules are independent and may all fire at once.
	if len(r.SpotIDs) == 0 {
		errs = append(errs, msgNoSpots)
	}
	if len(r.SpotIDs) > MaxSpotsPerList {
		errs = append(errs, msgTooManySpots)
	}
	seen := make(map[int64]struct{}, len(r.SpotIDs))
	for _, id := range r.SpotIDs {
		seen[id] = struct{}{}
	}
	if len(seen) != len(r.SpotIDs) {
		errs = append(errs, msgDuplicateSpots)
	}
	for _, id := range r.SpotIDs {
		if id <= 0 {
			errs = append(errs, msgInvalidSpotIDs)
			break
		}
	}

	return errs
}

func (r *CommunityPostRequest) IsValid() bool {
	return len(r.Validate()) == 0
}

// Summary is a log-safe description of the request. It never includes the
// description body.
func (r *CommunityPostRequest) Summary() string {
	return fmt.Sprintf("community post %q by user %d (%d spots)", r.Title, r.UserID, len(r.SpotIDs))
}

// CommunityPostCreateRequest is the wire payload of the final post-create
// step. It references the hidden list by id; the spots were already
// attached to that list and do not travel on this call.
type CommunityPostCreateRequest struct {
	Title       string    `json:"title"`
	Description OptString `json:"description,omitzero"`
	UserID      int64     `json:"user_id"`
	ListID      int64     `json:"list_id"`
}

// NewCommunityPostCreate derives the post-create payload from the original
// request and the hidden list created for it.
func NewCommunityPostCreate(req *CommunityPostRequest, listID int64) *CommunityPostCreateRequest {
	return &CommunityPostCreateRequest{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
		ListID:      listID,
	}
}

// ListCreateRequest creates a list on the spot API. The gateway only ever
// builds it through NewHiddenList, as step one of a community post.
type ListCreateRequest struct {
	ListName string `json:"list_name"`
	IsPublic bool   `json:"is_public"`
}

// NewHiddenList derives the non-public container list for a community post.
func NewHiddenList(post *CommunityPostRequest) *ListCreateRequest {
	return &ListCreateRequest{
		ListName: strings.TrimSpace(post.Title),
		IsPublic: false,
	}
}

func (r *ListCreateRequest) Validate() []string {
	var errs []string

	if strings.TrimSpace(r.ListName) == "" {
		errs = append(errs, msgListNameRequired)
	}
	if utf8.RuneCountInString(r.ListName) > MaxTitleLength {
		errs = append(errs, msgListNameTooLong)
	}

	return errs
}

func (r *ListCreateRequest) IsValid() bool {
	return len(r.Validate()) == 0
}

func (r *ListCreateRequest) Summary() string {
	return fmt.Sprintf("list %q (public=%t)", r.ListName, r.IsPublic)
}

// AddSpotRequest attaches one spot to a list. Spots are attached in the
// order the caller listed them.
type AddSpotRequest struct {
	SpotID          int64    `json:"spot_id"`
	ListThumbnailID OptInt64 `json:"list_thumbnail_id,omitzero"`
}

func (r *AddSpotRequest) Validate() []string {
	var errs []string

	if r.SpotID <= 0 {
		errs = append(errs, msgInvalidSpotID)
	}
	if r.ListThumbnailID.Set && r.ListThumbnailID.Value <= 0 {
		errs = append(errs, msgInvalidThumbnailID)
	}

	return errs
}

func (r *AddSpotRequest) IsValid() bool {
	return len(r.Validate()) == 0
}

func (r *AddSpotRequest) Summary() string {
	return fmt.Sprintf("spot %d", r.SpotID)
}

// ReviewPostRequest rates a single spot. Unlike the other request types it
// has a fail-fast constructor for form input; see
// NewReviewPostRequestFromForm.
type ReviewPostRequest struct {
	Description string  `json:"description" validate:"omitempty,max=500"`
	UserID      int64   `json:"user_id" validate:"required,gt=0"`
	SpotID      int64   `json:"spot_id" validate:"required,gt=0"`
	Rating      float64 `json:"rating" validate:"required,gte=1,lte=5"`
}

// NewReviewPostRequestFromForm builds a review request from raw form
// fields. The description is trimmed before any check. Any violation
// aborts construction with an ErrInvalidReviewForm error; this is the one
// place where validation throws instead of collecting. Inherited from the
// app's review form and kept as-is because callers rely on it.
func NewReviewPostRequestFromForm(description string, userID, spotID int64, rating float64) (*ReviewPostRequest, error) {
	req := &ReviewPostRequest{
		Description: strings.TrimSpace(description),
		UserID:      userID,
		SpotID:      spotID,
		Rating:      rating,
	}

	if err := formValidator.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidReviewForm, formatFieldError(err))
	}

	return req, nil
}

// formatFieldError turns the first validator violation into a short
// field-level message.
func formatFieldError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "validation failed"
}

// Validate is the collect-and-report path for review requests, used when a
// request arrives already constructed (e.g. decoded from JSON).
func (r *ReviewPostRequest) Validate() []string {
	var errs []string

	if utf8.RuneCountInString(strings.TrimSpace(r.Description)) > MaxDescriptionLength {
		errs = append(errs, msgDescriptionTooLong)
	}
	if r.UserID <= 0 {
		errs = append(errs, msgInvalidUserID)
	}
	if r.SpotID <= 0 {
		errs = append(errs, msgInvalidSpotID)
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		errs = append(errs, msgRatingOutOfRange)
	}

	return errs
}

func (r *ReviewPostRequest) IsValid() bool {
	return len(r.Validate()) == 0
}

func (r *ReviewPostRequest) Summary() string {
	return fmt.Sprintf("review by user %d for spot %d (rating %.1f, %d chars)",
		r.UserID, r.SpotID, r.Rating, utf8.RuneCountInString(r.Description))
}

// ListPostRequest publishes a post about an existing list (not one created
// by this request).
type ListPostRequest struct {
	Title       string    `json:"title"`
	Description OptString `json:"description,omitzero"`
	UserID      int64     `json:"user_id"`
	ListID      int64     `json:"list_id"`
}

// MarshalJSON injects the literal "type": "list" discriminator the posts
// endpoint dispatches on. The field has no in-memory counterpart.
func (r ListPostRequest) MarshalJSON() ([]byte, error) {
	type alias ListPostRequest
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{
		Type:  PostTypeList,
		alias: alias(r),
	})
}

func (r *ListPostRequest) Validate() []string {
	var errs []string

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, msgTitleRequired)
	}
	if utf8.RuneCountInString(r.Title) > MaxTitleLength {
		errs = append(errs, msgTitleTooLong)
	}
	if r.Description.Set && utf8.RuneCountInString(r.Description.Value) > MaxDescriptionLength {
		errs = append(errs, msgDescriptionTooLong)
	}
	if r.UserID <= 0 {
		errs = append(errs, msgInvalidUserID)
	}
	if r.ListID <= 0 {
		errs = append(errs, msgInvalidListID)
	}

	return errs
}

func (r *ListPostRequest) IsValid() bool {
	return len(r.Validate()) == 0
}

func (r *ListPostRequest) Summary() string {
	return fmt.Sprintf("list post %q by user %d (list %d)", r.Title, r.UserID, r.ListID)
}
