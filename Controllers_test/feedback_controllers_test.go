package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-manager/controllers"
	"github.com/yeremiapane/restaurant-manager/models"
)

func postFeedback(t *testing.T, s *testServer, rating int) models.Feedback {
	t.Helper()
	w, env := s.public(http.MethodPost, "/feedback", map[string]interface{}{
		"customer_name": "Guest",
		"rating":        rating,
		"comments":      "ok",
		"is_published":  true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var fb models.Feedback
	decodeData(t, env, &fb)
	return fb
}

func TestCreateFeedbackStartsUnpublished(t *testing.T) {
	s := newTestServer(t)
	fb := postFeedback(t, s, 5)
	assert.False(t, fb.IsPublished)

	w, env := s.public(http.MethodGet, "/feedback/published", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var published []models.Feedback
	decodeData(t, env, &published)
	assert.Empty(t, published)

	toggle := fmt.Sprintf("/feedback/%d/toggle", fb.ID)
	w, _ = s.public(http.MethodPut, toggle, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.admin(http.MethodPut, toggle, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, env, &fb)
	assert.True(t, fb.IsPublished)

	w, env = s.public(http.MethodGet, "/feedback/published", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, env, &published)
	assert.Len(t, published, 1)
}

func TestCreateFeedbackValidation(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.public(http.MethodPost, "/feedback", map[string]interface{}{"customer_name": "A", "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.public(http.MethodPost, "/feedback", map[string]interface{}{"customer_name": "A", "rating": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.public(http.MethodPost, "/feedback", map[string]interface{}{"customer_name": "A", "rating": 3, "order_id": 404})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackStats(t *testing.T) {
	s := newTestServer(t)

	w, env := s.public(http.MethodGet, "/feedback/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var empty controllers.FeedbackStats
	decodeData(t, env, &empty)
	assert.Zero(t, empty.TotalCount)
	assert.Zero(t, empty.AvgRating)

	for _, rating := range []int{5, 4, 4} {
		postFeedback(t, s, rating)
	}

	w, env = s.public(http.MethodGet, "/feedback/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats controllers.FeedbackStats
	decodeData(t, env, &stats)
	assert.Equal(t, int64(3), stats.TotalCount)
	assert.Equal(t, 4.3, stats.AvgRating)
	assert.Equal(t, int64(1), stats.Rating5)
	assert.Equal(t, int64(2), stats.Rating4)
	assert.Zero(t, stats.Rating1)
}

func TestDeleteFeedback(t *testing.T) {
	s := newTestServer(t)
	fb := postFeedback(t, s, 2)
	path := fmt.Sprintf("/feedback/%d", fb.ID)

	w, _ := s.admin(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.admin(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
