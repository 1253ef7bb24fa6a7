package nlu

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warungchat/internal/menu"
)

func TestRasaClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/webhooks/rest/webhook", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req webhookRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "web_abc", req.Sender)
		assert.Equal(t, "ada ikan?", req.Message)

		w.Write([]byte(`[{"recipient_id":"web_abc","text":"Ada dong 🐟"},{"image":"http://x/y.png"}]`))
	}))
	defer srv.Close()

	c := NewRasaClient(srv.URL+"/", time.Second, time.Second)
	out, err := c.Send(context.Background(), "web_abc", "ada ikan?")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Ada dong 🐟", out[0].Text)
	require.NotNil(t, out[1].Image)
	assert.Equal(t, "http://x/y.png", *out[1].Image)
}

func TestRasaClient_RecommendedMenus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/web_abc/tracker", r.URL.Path)
		w.Write([]byte(`{"sender_id":"web_abc","slots":{"recommended_menus":[{"id":3,"title":"Pecel Lele","price":"18 ribu"}]}}`))
	}))
	defer srv.Close()

	c := NewRasaClient(srv.URL, time.Second, time.Second)
	menus, err := c.RecommendedMenus(context.Background(), "web_abc")
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, menu.ID("3"), menus[0].ID)
}

func TestRasaClient_TrackerWithoutSlot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sender_id":"x","slots":{}}`))
	}))
	defer srv.Close()

	menus, err := NewRasaClient(srv.URL, time.Second, time.Second).RecommendedMenus(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestRasaClient_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":"3.6.2"}`))
	}))
	defer srv.Close()

	st, err := NewRasaClient(srv.URL, time.Second, time.Second).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.6.2", st.Version)
}

func TestRasaClient_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewRasaClient(srv.URL, time.Second, time.Second).Send(context.Background(), "s", "m")
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestRasaClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewRasaClient(srv.URL, 50*time.Millisecond, time.Second).Send(context.Background(), "s", "m")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRasaClient_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = NewRasaClient("http://"+addr, time.Second, time.Second).Send(context.Background(), "s", "m")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestResponseNormalize(t *testing.T) {
	r := Response{RecipientID: "x", Custom: json.RawMessage("null")}.Normalize()

	assert.NotNil(t, r.Buttons)
	assert.Nil(t, r.Custom)
	assert.Nil(t, r.Image)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"","buttons":[],"image":null,"custom":null}`, string(raw))
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil))

	plain := errors.New("other")
	assert.Equal(t, plain, classify(plain))
	assert.ErrorIs(t, classify(context.DeadlineExceeded), ErrTimeout)
}
