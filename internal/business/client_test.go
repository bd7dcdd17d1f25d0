package business

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availabilityServer(t *testing.T) *httptest.Server {
	t.Helper()
	mockJSONResponse := `{
		"data": [
			{ "business_id": "biz1", "court_id": "c1", "court_name": "Court 1", "latitude": 55.67, "longitude": 12.56, "date": "2026-09-12", "initial_hour": 18, "reserve": false },
			{ "business_id": "biz1", "court_id": "c1", "court_name": "Court 1", "latitude": 55.67, "longitude": 12.56, "date": "2026-09-12", "initial_hour": 19, "reserve": true }
		]
	}`
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/businesses/biz1/padel-courts/Court 1/available-matches/", r.URL.Path)
		assert.Equal(t, "2026-09-12", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
}

func TestGetAvailableTimes(t *testing.T) {
	server := availabilityServer(t)
	defer server.Close()

	client := APIClient{httpClient: server.Client(), BaseURL: server.URL}

	times, err := client.GetAvailableTimes("biz1", "Court 1", "2026-09-12")
	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.Equal(t, 18, times[0].Time)
	assert.False(t, times[0].IsReserved)
	assert.True(t, times[1].IsReserved)
}

func TestGetAvailableTime(t *testing.T) {
	server := availabilityServer(t)
	defer server.Close()

	client := APIClient{httpClient: server.Client(), BaseURL: server.URL}

	slot, err := client.GetAvailableTime("biz1", "Court 1", "2026-09-12", 18)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, "c1", slot.CourtPublicID)

	// An hour the business no longer offers is absent, not an error.
	slot, err = client.GetAvailableTime("biz1", "Court 1", "2026-09-12", 21)
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestGetCourts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/businesses/biz1/padel-courts/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"data": [{ "business_id": "biz1", "court_id": "c1", "court_name": "Court 1", "price_per_hour": 28 }]}`)
	}))
	defer server.Close()

	client := APIClient{httpClient: server.Client(), BaseURL: server.URL}

	courts, err := client.GetCourts("biz1")
	require.NoError(t, err)
	require.Len(t, courts, 1)
	assert.Equal(t, "Court 1", courts[0].CourtName)
	assert.Equal(t, 28.0, courts[0].PricePerHour)
}
