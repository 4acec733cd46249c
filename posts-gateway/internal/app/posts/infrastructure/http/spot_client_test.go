package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/entity"
)

func TestCreateList_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"list_id":900,"list_name":"Best Beaches","is_public":false,"spots_count":0}}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	client.SetAuthToken("secret-token")

	resp, err := client.CreateList(context.Background(), &entity.ListCreateRequest{
		ListName: "Best Beaches",
		IsPublic: false,
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1/lists", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "Best Beaches", gotBody["list_name"])
	assert.Equal(t, false, gotBody["is_public"])
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, int64(900), resp.Data.ListID)
}

func TestAddSpotToList_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	err := client.AddSpotToList(context.Background(), 900, &entity.AddSpotRequest{SpotID: 10})

	require.NoError(t, err)
	assert.Equal(t, "/v1/lists/900/spots", gotPath)
	assert.Equal(t, float64(10), gotBody["spot_id"])
	assert.NotContains(t, gotBody, "list_thumbnail_id", "unset thumbnail must be absent, not null")
}

func TestAddSpotToList_RefusedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"lista cheia"}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	err := client.AddSpotToList(context.Background(), 900, &entity.AddSpotRequest{SpotID: 10})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lista cheia")
}

func TestAddSpotToList_MalformedSuccessMeansRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":"yes"}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	err := client.AddSpotToList(context.Background(), 900, &entity.AddSpotRequest{SpotID: 10})

	require.Error(t, err)
}

func TestPostJSON_NonOKWithEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"list not found"}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	_, err := client.CreateCommunityPost(context.Background(), 900, &entity.CommunityPostRequest{
		Title:   "Best Beaches",
		UserID:  42,
		SpotIDs: []int64{10},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list not found")
}

func TestCreateCommunityPost_SendsListReference(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"data":{"post_id":5001,"type":"community","title":"Best Beaches","user_id":42,"list_id":900,"spots_count":3,"created_date":"2026-08-30T12:00:00Z"}}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	resp, err := client.CreateCommunityPost(context.Background(), 900, &entity.CommunityPostRequest{
		Title:       "Best Beaches",
		Description: entity.StringOf("minhas praias favoritas"),
		UserID:      42,
		SpotIDs:     []int64{10, 11, 12},
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1/posts/community", gotPath)
	assert.Equal(t, float64(900), gotBody["list_id"])
	assert.Equal(t, "Best Beaches", gotBody["title"])
	assert.Equal(t, "minhas praias favoritas", gotBody["description"])
	assert.Equal(t, float64(42), gotBody["user_id"])
	// Spots were attached in the previous step, only the list reference travels.
	assert.NotContains(t, gotBody, "spot_ids")
	require.NotNil(t, resp.Data)
	assert.Equal(t, int64(5001), resp.Data.PostID)
}

func TestCreateCommunityPost_AbsentDescriptionOmitted(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	_, err := client.CreateCommunityPost(context.Background(), 900, &entity.CommunityPostRequest{
		Title:   "Best Beaches",
		UserID:  42,
		SpotIDs: []int64{10},
	})

	require.NoError(t, err)
	assert.NotContains(t, gotBody, "description")
}

func TestPostJSON_NonOKWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	_, err := client.CreateReviewPost(context.Background(), &entity.ReviewPostRequest{
		Description: "ok", UserID: 42, SpotID: 10, Rating: 3,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 502")
}

func TestPostJSON_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewSpotClient(server.URL, time.Second)
	_, err := client.CreateList(context.Background(), &entity.ListCreateRequest{ListName: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestCreateListPost_SendsDiscriminator(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"data":{"post_id":314,"type":"list","title":"Minhas praias","user_id":42,"list_id":900,"spots_count":3,"created_date":"2026-08-30T12:00:00Z"}}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	resp, err := client.CreateListPost(context.Background(), &entity.ListPostRequest{
		Title:  "Minhas praias",
		UserID: 42,
		ListID: 900,
	})

	require.NoError(t, err)
	assert.Equal(t, "/v1/posts", gotPath)
	assert.Equal(t, "list", gotBody["type"])
	require.NotNil(t, resp.Data)
	assert.Equal(t, int64(314), resp.Data.PostID)
}

func TestCreateReviewPost_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/posts/review", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"post_id":77,"type":"review","user_id":42,"spot_id":10,"rating":4.5,"created_date":"2026-08-30T12:00:00Z"}}`))
	}))
	defer server.Close()

	client := NewSpotClient(server.URL, 5*time.Second)
	resp, err := client.CreateReviewPost(context.Background(), &entity.ReviewPostRequest{
		Description: "Ótimo lugar", UserID: 42, SpotID: 10, Rating: 4.5,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 4.5, resp.Data.Rating)
}

func TestPostJSON_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewSpotClient(server.URL, 5*time.Second)
	_, err := client.CreateList(ctx, &entity.ListCreateRequest{ListName: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
