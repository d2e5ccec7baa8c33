package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-manager/models"
)

func reservationPayload(tableID uint, date, at string) map[string]interface{} {
	return map[string]interface{}{
		"customer_name":    "Iryna Melnyk",
		"customer_phone":   "+380671234567",
		"reservation_date": date,
		"reservation_time": at,
		"table_id":         tableID,
		"number_of_guests": 2,
	}
}

func TestCreateReservationIsPublic(t *testing.T) {
	s := newTestServer(t)
	table := seedTable(t, s.DB, 1)

	w, env := s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, futureDate(2), "18:30"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var r models.Reservation
	decodeData(t, env, &r)
	assert.NotZero(t, r.ID)
	assert.Equal(t, models.ReservationConfirmed, r.Status)
	assert.Equal(t, "18:30:00", r.ReservationTime.String())
}

func TestCreateReservationConflict(t *testing.T) {
	s := newTestServer(t)
	table := seedTable(t, s.DB, 2)
	date := futureDate(4)

	w, _ := s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, date, "19:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// tepat 2 jam masih bentrok
	w, env := s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, date, "21:00"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Status)

	w, _ = s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, date, "21:01"))
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	s.DB.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCreateReservationValidation(t *testing.T) {
	s := newTestServer(t)
	table := seedTable(t, s.DB, 3)

	w, env := s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, "2001-01-01", "19:00"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "past date")

	w, _ = s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, futureDate(1), "7pm"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload := reservationPayload(table.ID, futureDate(1), "19:00")
	payload["number_of_guests"] = 0
	w, _ = s.public(http.MethodPost, "/reservations", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.public(http.MethodPost, "/reservations", reservationPayload(4242, futureDate(1), "19:00"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReservationExcludesItself(t *testing.T) {
	s := newTestServer(t)
	table := seedTable(t, s.DB, 7)
	date := futureDate(6)

	w, env := s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, date, "12:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first models.Reservation
	decodeData(t, env, &first)

	w, _ = s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, date, "16:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	path := fmt.Sprintf("/reservations/%d", first.ID)

	w, _ = s.public(http.MethodPut, path, map[string]interface{}{"number_of_guests": 3})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// geser 30 menit, hanya bentrok dengan dirinya sendiri
	w, env = s.admin(http.MethodPut, path, map[string]interface{}{"reservation_time": "12:30"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var moved models.Reservation
	decodeData(t, env, &moved)
	assert.Equal(t, "12:30:00", moved.ReservationTime.String())

	w, _ = s.admin(http.MethodPut, path, map[string]interface{}{"reservation_time": "15:00"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.admin(http.MethodPut, path, map[string]interface{}{"status": models.ReservationArrived})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.admin(http.MethodPut, path, map[string]interface{}{"status": "seated"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationListings(t *testing.T) {
	s := newTestServer(t)
	table := seedTable(t, s.DB, 9)
	date := futureDate(8)

	for _, at := range []string{"12:00", "18:00"} {
		w, _ := s.public(http.MethodPost, "/reservations", reservationPayload(table.ID, date, at))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, env := s.public(http.MethodGet, "/reservations/date/"+date, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byDate []models.Reservation
	decodeData(t, env, &byDate)
	require.Len(t, byDate, 2)
	assert.Equal(t, "12:00:00", byDate[0].ReservationTime.String())

	w, env = s.public(http.MethodGet, "/reservations/upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var upcoming []models.Reservation
	decodeData(t, env, &upcoming)
	assert.Len(t, upcoming, 2)

	w, _ = s.admin(http.MethodDelete, fmt.Sprintf("/reservations/%d", byDate[1].ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.public(http.MethodGet, "/reservations/date/not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
