package http

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/channel"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/core"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/db"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/triage"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

// Server bundles together the dependencies required by HTTP handlers.  It
// implements http.Handler so it can be passed to http.ListenAndServe.
type Server struct {
	Classifier *triage.Classifier
	Composer   *core.Composer
	Store      db.HistoryStore
	Telegram   *channel.TelegramPusher
}

// NewServer constructs a Server.
func NewServer(classifier *triage.Classifier, composer *core.Composer, store db.HistoryStore, telegram *channel.TelegramPusher) *Server {
	return &Server{
		Classifier: classifier,
		Composer:   composer,
		Store:      store,
		Telegram:   telegram,
	}
}

// ServeHTTP dispatches incoming requests based on the URL path.  Minimal
// routing logic is implemented here to keep dependencies light.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/webhook" && r.Method == http.MethodPost:
		s.handleWebhook(w, r)
	case r.URL.Path == "/telegram" && r.Method == http.MethodPost:
		s.handleTelegram(w, r)
	case r.URL.Path == "/health" && r.Method == http.MethodGet:
		s.handleHealth(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "OK")
}

// handleWebhook serves the telephony and web channels on one endpoint.  A
// form-encoded body is treated as the telephony webhook and answered with the
// XML envelope; everything else is treated as a web JSON message.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var msg pkg.InboundMessage
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "error procesando el webhook", http.StatusInternalServerError)
			return
		}
		msg = channel.ParseTwilioForm(r.PostForm)
	} else {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "error procesando el webhook", http.StatusInternalServerError)
			return
		}
		msg = channel.ParseWebJSON(body)
	}

	reply := s.respond(ctx, msg)
	s.write(w, msg.Channel, reply)
}

// handleTelegram acknowledges the update with a 200 and delivers the reply
// out-of-band through the sendMessage push.  A failed push is logged; the
// acknowledgement already owed to the webhook caller is not changed.
func (s *Server) handleTelegram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "error procesando la actualización", http.StatusInternalServerError)
		return
	}
	msg, chatID, err := channel.ParseTelegramUpdate(body)
	if err != nil {
		http.Error(w, "error procesando la actualización", http.StatusInternalServerError)
		return
	}

	reply := s.respond(ctx, msg)

	if s.Telegram.Enabled() {
		if err := s.Telegram.SendMessage(ctx, chatID, reply.BodyText); err != nil {
			log.Println("telegram push failed:", err)
		}
	}

	s.write(w, msg.Channel, reply)
}

// respond runs the per-request pipeline: classify, compose, then persist the
// exchange without blocking or failing the reply.
func (s *Server) respond(ctx context.Context, msg pkg.InboundMessage) pkg.ComposedReply {
	cls := s.Classifier.Classify(msg.RawText)
	reply := s.Composer.Compose(ctx, msg, cls)

	rec := pkg.HistoryRecord{
		SenderID:  msg.SenderID,
		Mensaje:   msg.RawText,
		Respuesta: reply.BodyText,
		Timestamp: time.Now().UTC(),
	}
	go func() {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Store.SaveExchange(saveCtx, rec); err != nil {
			log.Println("failed to persist exchange:", err)
		}
	}()

	return reply
}

func (s *Server) write(w http.ResponseWriter, ch pkg.Channel, reply pkg.ComposedReply) {
	body, contentType, status := channel.Format(ch, reply)
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(body)
}
