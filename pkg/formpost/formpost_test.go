package formpost

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/mahar/pkg/metrics"
)

func validSubmission() Submission {
	return Submission{
		Name:    " דני ",
		Phone:   "050-123-4567",
		Email:   "dani@example.com",
		Message: "מתי מתחיל המחזור הבא?",
	}
}

func TestSubmissionValidate(t *testing.T) {
	require.NoError(t, validSubmission().Validate())

	s := validSubmission()
	s.Email = ""
	assert.NoError(t, s.Validate(), "email is optional")

	s = Submission{Name: " ", Phone: "123", Email: "nope"}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "phone")
	assert.Contains(t, err.Error(), "email")
}

func TestSubmissionValues(t *testing.T) {
	v := validSubmission().Values()
	assert.Equal(t, DefaultSubject, v.Get("_subject"))
	assert.Equal(t, "דני", v.Get("name"))
	assert.Equal(t, "050-123-4567", v.Get("phone"))

	s := validSubmission()
	s.Subject = "custom"
	assert.Equal(t, "custom", s.Values().Get("_subject"))
}

func TestSubmitPostsForm(t *testing.T) {
	metrics.SetEnabled(true)
	metrics.ResetAll()

	var got url.Values
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		got = r.PostForm
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	require.NoError(t, c.Submit(context.Background(), validSubmission()))

	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, "דני", got.Get("name"))
	assert.Equal(t, "dani@example.com", got.Get("email"))
	assert.Equal(t, int64(1), metrics.FormPosts.Value())
	assert.Equal(t, int64(0), metrics.FormFailures.Value())
}

func TestSubmitRejected(t *testing.T) {
	metrics.SetEnabled(true)
	metrics.ResetAll()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "spam", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Submit(context.Background(), validSubmission())
	var se *StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusUnprocessableEntity, se.Code)
	assert.Equal(t, int64(1), metrics.FormFailures.Value())
}

func TestSubmitWithoutEndpoint(t *testing.T) {
	err := New("  ", 0).Submit(context.Background(), validSubmission())
	assert.ErrorIs(t, err, ErrEndpoint)
}

func TestSubmitInvalidDoesNotPost(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Submit(context.Background(), Submission{})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestSubmitCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(srv.URL, time.Second).Submit(ctx, validSubmission())
	assert.ErrorIs(t, err, context.Canceled)
}
