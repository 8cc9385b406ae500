package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthaai/swastha-cli/internal/medalert"
)

func TestListReminders_DecodesWireShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[{
			"id":"r1",
			"medicineName":"Amlodipine",
			"dosage":"5mg",
			"frequency":"daily",
			"timeSlot":[{"hour":"09","minute":"00","period":"AM"}],
			"isActive":true,
			"isPaused":false
		}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("jwt-abc"), nil)
	reminders, err := client.ListReminders(context.Background())
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Amlodipine", reminders[0].MedicineName)
	assert.Equal(t, "09:00 AM", reminders[0].FormatTimeSlots())
	assert.True(t, reminders[0].IsActive)
}

func TestPauseReminder_ReturnsUpdatedEntity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/api/medalert/reminders/r7/pause", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"r7","medicineName":"Metformin","isPaused":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("jwt-abc"), nil)
	reminder, err := client.PauseReminder(context.Background(), "r7")
	require.NoError(t, err)
	assert.True(t, reminder.IsPaused)
}

func TestDeleteCategory(t *testing.T) {
	var deleted atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/api/medalert/categories/c2", r.URL.Path)
		deleted.Store(true)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("jwt-abc"), nil)
	require.NoError(t, client.DeleteCategory(context.Background(), "c2"))
	assert.True(t, deleted.Load())
}

func TestCreateCategory_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"c9","name":"Vitamins","color":"#3b82f6"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("jwt-abc"), nil)
	category, err := client.CreateCategory(context.Background(), medalert.CategoryInput{
		Name:  "Vitamins",
		Color: "#3b82f6",
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", category.ID)
}

func TestFetchMedAlerts_BothListsConcurrently(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
		switch r.URL.Path {
		case "/api/medalert/categories":
			_, _ = w.Write([]byte(`[{"id":"c1","name":"Blood Pressure"}]`))
		case "/api/medalert/reminders":
			_, _ = w.Write([]byte(`[{"id":"r1","medicineName":"Amlodipine"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("jwt-abc"), nil)
	categories, reminders, err := client.FetchMedAlerts(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	assert.Len(t, reminders, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchMedAlerts_OneFailureNoPartialResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/medalert/reminders" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"reminders unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"id":"c1","name":"Blood Pressure"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, StaticToken("jwt-abc"), nil)
	categories, reminders, err := client.FetchMedAlerts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reminders unavailable")
	assert.Nil(t, categories)
	assert.Nil(t, reminders)
}
