package sciencebase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

func testRecord() *domain.Record {
	return &domain.Record{
		ID:         "A1",
		Collection: domain.CollectionCore,
		Title:      "Core Research Center Core C1 (Acme)",
		Summary:    "Core Research Center, core C1, from well operated by Acme",
		Identifiers: []domain.Identifier{
			{Type: domain.IdentifierTypeUniqueKey, Scheme: domain.SchemeDatabaseID, Key: "A1"},
		},
		Contacts: []domain.Contact{
			{Name: "Acme", Type: domain.ContactRoleSiteOperator, ContactType: domain.ContactTypeOrganization},
		},
		Location:   &domain.Point{Longitude: -105, Latitude: 40},
		Properties: map[string]any{"libno": "C1", "oper": "Acme"},
	}
}

func TestSubmitter_Created(t *testing.T) {
	var calls int32
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/item/", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"sb-123","link":{"rel":"self","url":"https://sb.example/catalog/item/sb-123"}}`))
	}))
	defer srv.Close()

	s := NewSubmitter(newTestClient(srv.URL, "secret"),
		OwnerContact("Core Research Center"), StewardContact("Data Manager", 4685))

	result := s.Submit(t.Context(), "parent-1", testRecord())

	require.True(t, result.OK(), "unexpected error: %v", result.Err)
	assert.Equal(t, "A1", result.RecordID)
	assert.Equal(t, "sb-123", result.ItemID)
	assert.Equal(t, "https://sb.example/catalog/item/sb-123", result.URL)
	assert.NoError(t, result.Err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	assert.Equal(t, "parent-1", got["parentId"])
	assert.Equal(t, "Core Research Center Core C1 (Acme)", got["title"])
	assert.Equal(t, []any{"Physical Item"}, got["browseCategories"])
	assert.Equal(t, map[string]any{"annotation": ProvenanceAnnotation}, got["provenance"])
	assert.Equal(t, map[string]any{"representationalPoint": []any{-105.0, 40.0}}, got["spatial"])

	contacts := got["contacts"].([]any)
	require.Len(t, contacts, 3)
	assert.Equal(t, map[string]any{
		"name": "Core Research Center", "type": "Data Owner",
		"contactType": "organization", "oldPartyId": float64(CRCPartyID),
	}, contacts[0])
	assert.Equal(t, map[string]any{
		"name": "Data Manager", "type": "Data Steward",
		"contactType": "person", "oldPartyId": float64(4685),
	}, contacts[1])
	assert.Equal(t, "Site Operator", contacts[2].(map[string]any)["type"])
}

func TestSubmitter_CreatedWithoutLinkFallsBackToItemURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"sb-9"}`))
	}))
	defer srv.Close()

	result := NewSubmitter(newTestClient(srv.URL, "t")).Submit(t.Context(), "p", testRecord())

	require.True(t, result.OK())
	assert.Equal(t, srv.URL+"/item/sb-9", result.URL)
}

func TestSubmitter_ClassifiesResponses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus domain.SubmissionStatus
		wantIs     []error
		wantNotIs  []error
	}{
		{
			name:       "bad request is an explicit failure",
			status:     http.StatusBadRequest,
			wantStatus: domain.SubmissionFailed,
			wantIs:     []error{domain.ErrSubmissionFailed},
			wantNotIs:  []error{domain.ErrAmbiguousOutcome},
		},
		{
			name:       "unauthorised needs a session",
			status:     http.StatusUnauthorized,
			wantStatus: domain.SubmissionFailed,
			wantIs:     []error{domain.ErrSubmissionFailed, domain.ErrAuthRequired},
		},
		{
			name:       "rate limited is a failure",
			status:     http.StatusTooManyRequests,
			wantStatus: domain.SubmissionFailed,
			wantIs:     []error{domain.ErrSubmissionFailed, domain.ErrRateLimited},
		},
		{
			name:       "internal error is a failure",
			status:     http.StatusInternalServerError,
			wantStatus: domain.SubmissionFailed,
			wantIs:     []error{domain.ErrSubmissionFailed},
		},
		{
			name:       "bad gateway is ambiguous",
			status:     http.StatusBadGateway,
			wantStatus: domain.SubmissionUnknown,
			wantIs:     []error{domain.ErrAmbiguousOutcome},
			wantNotIs:  []error{domain.ErrSubmissionFailed},
		},
		{
			name:       "gateway timeout is ambiguous",
			status:     http.StatusGatewayTimeout,
			wantStatus: domain.SubmissionUnknown,
			wantIs:     []error{domain.ErrAmbiguousOutcome},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("rejected"))
			}))
			defer srv.Close()

			result := NewSubmitter(newTestClient(srv.URL, "t")).Submit(t.Context(), "p", testRecord())

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.False(t, result.OK())
			for _, target := range tt.wantIs {
				assert.ErrorIs(t, result.Err, target)
			}
			for _, target := range tt.wantNotIs {
				assert.NotErrorIs(t, result.Err, target)
			}
			// Creates are never retried.
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestSubmitter_DroppedConnectionIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	defer srv.Close()

	result := NewSubmitter(newTestClient(srv.URL, "t")).Submit(t.Context(), "p", testRecord())

	assert.Equal(t, domain.SubmissionUnknown, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrAmbiguousOutcome)
}

func TestSubmitter_TimeoutIsUnknown(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, stubTokens{token: "t"}, 50*time.Millisecond, 0)
	result := NewSubmitter(client).Submit(t.Context(), "p", testRecord())

	assert.Equal(t, domain.SubmissionUnknown, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrAmbiguousOutcome)
}

func TestSubmitter_NothingSentIsFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	t.Run("token unavailable", func(t *testing.T) {
		client := NewClient(srv.URL, stubTokens{err: errTokenUnavailable}, time.Second, 0)
		result := NewSubmitter(client).Submit(t.Context(), "p", testRecord())

		assert.Equal(t, domain.SubmissionFailed, result.Status)
		assert.ErrorIs(t, result.Err, errTokenUnavailable)
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		result := NewSubmitter(newTestClient(srv.URL, "t")).Submit(ctx, "p", testRecord())

		assert.Equal(t, domain.SubmissionFailed, result.Status)
		assert.ErrorIs(t, result.Err, context.Canceled)
	})

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}
