package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/pkg/api"
)

func TestCreate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/patients", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req api.WriteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tok-1", req.IdempotencyToken)
		assert.Equal(t, int64(0), req.BaseVersion)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.WriteResponse{
			Record: api.EntityRecord{
				ID:      "srv-123",
				Data:    req.Data,
				Version: 1,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	record, err := client.Create(context.Background(), "patients", api.WriteRequest{
		IdempotencyToken: "tok-1",
		Data:             json.RawMessage(`{"name":"Riya"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-123", record.ID)
	assert.Equal(t, int64(1), record.Version)
}

func TestUpdate_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/patients/srv-123", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(api.ConflictResponse{
			Message: "version mismatch",
			Current: api.EntityRecord{
				ID:      "srv-123",
				Data:    json.RawMessage(`{"name":"server edit"}`),
				Version: 5,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Update(context.Background(), "patients", "srv-123", api.WriteRequest{
		IdempotencyToken: "tok-1",
		BaseVersion:      3,
	})
	require.Error(t, err)

	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "srv-123", conflict.ServerID)
	assert.Equal(t, int64(5), conflict.ServerVersion)
	assert.JSONEq(t, `{"name":"server edit"}`, string(conflict.ServerData))
	assert.False(t, models.IsTransient(err))
}

func TestCreate_ValidationRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(api.ErrorResponse{
			Error:   "validation",
			Message: "dosage out of range",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Create(context.Background(), "prescriptions", api.WriteRequest{IdempotencyToken: "tok-1"})
	require.Error(t, err)

	var validation *models.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, http.StatusUnprocessableEntity, validation.StatusCode)
	assert.Equal(t, "dosage out of range", validation.Message)
	assert.False(t, models.IsTransient(err))
}

func TestDoRequest_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Get(context.Background(), "patients", "srv-123")
	require.Error(t, err)
	assert.True(t, models.IsTransient(err))
}

func TestDoRequest_TransportFailureIsTransient(t *testing.T) {
	// A closed server makes the dial fail
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "")
	_, err := client.List(context.Background(), "patients")
	require.Error(t, err)

	var netErr *models.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.True(t, models.IsTransient(err))
}

func TestDoRequest_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	client := NewClient(server.URL, "")
	client.SetTimeout(50 * time.Millisecond)

	err := client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, models.IsTransient(err))
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	assert.NoError(t, client.Health(context.Background()))
}

func TestDelete_SendsWriteRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		var req api.WriteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tok-9", req.IdempotencyToken)
		assert.Equal(t, int64(4), req.BaseVersion)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.WriteResponse{
			Record: api.EntityRecord{ID: "srv-123", Version: 5, Deleted: true},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	record, err := client.Delete(context.Background(), "patients", "srv-123", api.WriteRequest{
		IdempotencyToken: "tok-9",
		BaseVersion:      4,
	})
	require.NoError(t, err)
	assert.True(t, record.Deleted)
	assert.Equal(t, int64(5), record.Version)
}

func TestList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/patients", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]api.EntityRecord{
			{ID: "srv-1", Version: 1},
			{ID: "srv-2", Version: 3},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	records, err := client.List(context.Background(), "patients")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "srv-1", records[0].ID)
}

func TestDoRequest_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "")
	err := client.Health(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || models.IsTransient(err))
}
