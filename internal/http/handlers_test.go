package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/channel"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/core"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/db"
	httpserver "github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/http"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/triage"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

type fakeLLM struct {
	reply string
	err   error
	calls int32
}

func (f *fakeLLM) Generate(_ context.Context, _ string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type failStore struct{}

func (failStore) SaveExchange(context.Context, pkg.HistoryRecord) error {
	return errors.New("store down")
}
func (failStore) Close() error { return nil }

func newTestServer(fake *fakeLLM, store db.HistoryStore, pusher *channel.TelegramPusher) *httptest.Server {
	if store == nil {
		store = db.NoopStore{}
	}
	if pusher == nil {
		pusher = channel.NewTelegramPusher("https://api.telegram.org", "")
	}
	srv := httpserver.NewServer(triage.NewClassifier(), core.NewComposer(fake), store, pusher)
	return httptest.NewServer(srv)
}

func TestWebhookTelephonyRepliesWithXML(t *testing.T) {
	fake := &fakeLLM{reply: "Come avena integral y consulta a tu médico personal."}
	ts := newTestServer(fake, nil, nil)
	defer ts.Close()

	form := url.Values{"From": {"whatsapp:+521555000"}, "Body": {"Tengo gastritis, que debo comer"}}
	resp, err := http.PostForm(ts.URL+"/webhook", form)
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/xml" {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<Response>") || !strings.Contains(string(body), "<Message>") {
		t.Errorf("body is not a messaging-response envelope: %s", body)
	}
	if atomic.LoadInt32(&fake.calls) != 1 {
		t.Errorf("model invoked %d times, want 1", fake.calls)
	}
}

func TestWebhookWebRepliesWithJSON(t *testing.T) {
	fake := &fakeLLM{reply: "Bebe agua y consulta a tu médico personal."}
	ts := newTestServer(fake, nil, nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json",
		strings.NewReader(`{"mensaje":"qué remedios hay para el insomnio"}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v", resp.Status)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out["respuesta"] == "" {
		t.Fatal("respuesta key missing or empty")
	}
}

func TestWebhookEmergencyShortCircuits(t *testing.T) {
	fake := &fakeLLM{reply: "no debería usarse"}
	ts := newTestServer(fake, nil, nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json",
		strings.NewReader(`{"mensaje":"Tengo dolor intenso de pecho"}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !strings.HasPrefix(out["respuesta"], "🚨 *ALERTA ROJA* 🚨") {
		t.Errorf("respuesta = %q, want the fixed alert header", out["respuesta"])
	}
	if atomic.LoadInt32(&fake.calls) != 0 {
		t.Errorf("model invoked %d times on the emergency path", fake.calls)
	}
}

func TestWebhookModelFailureReturnsFallback(t *testing.T) {
	fake := &fakeLLM{err: errors.New("model down")}
	ts := newTestServer(fake, nil, nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json",
		strings.NewReader(`{"mensaje":"consulta cualquiera"}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want 200 even when the model fails", resp.Status)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out["respuesta"] != core.FallbackMessage {
		t.Errorf("respuesta = %q, want the fixed fallback message", out["respuesta"])
	}
}

func TestWebhookStoreFailureDoesNotChangeReply(t *testing.T) {
	fake := &fakeLLM{reply: "Respuesta estable, consulta a tu médico personal."}
	ts := newTestServer(fake, failStore{}, nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/webhook", "application/json",
		strings.NewReader(`{"mensaje":"qué debo desayunar"}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want 200 despite the store failure", resp.Status)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out["respuesta"] != "Respuesta estable, consulta a tu médico personal." {
		t.Errorf("respuesta = %q changed because of the store failure", out["respuesta"])
	}
}

func TestTelegramWebhookAcksAndPushes(t *testing.T) {
	pushed := make(chan map[string]interface{}, 1)
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		payload["path"] = r.URL.Path
		pushed <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer tg.Close()

	fake := &fakeLLM{reply: "Hola, consulta a tu médico personal."}
	ts := newTestServer(fake, nil, channel.NewTelegramPusher(tg.URL, "tok"))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/telegram", "application/json",
		strings.NewReader(`{"message":{"chat":{"id":99},"from":{"id":5},"text":"Hola"}}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v", resp.Status)
	}

	select {
	case payload := <-pushed:
		if payload["path"] != "/bottok/sendMessage" {
			t.Errorf("push path = %v", payload["path"])
		}
		if payload["chat_id"] != float64(99) {
			t.Errorf("chat_id = %v", payload["chat_id"])
		}
		if payload["text"] == "" {
			t.Error("push carried no text")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no push received by the bot-platform endpoint")
	}
}

func TestTelegramPushFailureKeepsAck(t *testing.T) {
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer tg.Close()

	fake := &fakeLLM{reply: "Hola, consulta a tu médico personal."}
	ts := newTestServer(fake, nil, channel.NewTelegramPusher(tg.URL, "tok"))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/telegram", "application/json",
		strings.NewReader(`{"message":{"chat":{"id":1},"from":{"id":2},"text":"Hola"}}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v, want 200 even when the push fails", resp.Status)
	}
}

func TestTelegramMalformedUpdateIs500(t *testing.T) {
	ts := newTestServer(&fakeLLM{reply: "x"}, nil, nil)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/telegram", "application/json", strings.NewReader(`{{`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %v, want 500", resp.Status)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(&fakeLLM{reply: "x"}, nil, nil)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v", resp.Status)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "OK" {
		t.Errorf("body = %q", body)
	}
}
