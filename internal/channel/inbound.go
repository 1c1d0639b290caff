package channel

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

// PlaceholderSender is used whenever a channel does not identify the sender.
const PlaceholderSender = "anonimo"

// ParseTwilioForm extracts the sender and body from a telephony-style
// form-encoded webhook (fields From and Body).
func ParseTwilioForm(form url.Values) pkg.InboundMessage {
	sender := form.Get("From")
	if sender == "" {
		sender = PlaceholderSender
	}
	return pkg.InboundMessage{
		SenderID: sender,
		RawText:  form.Get("Body"),
		Channel:  pkg.ChannelTelephony,
	}
}

// ParseWebJSON extracts the message from a web-chat JSON body.  The explicit
// "mensaje" field is preferred over the generic "text" fallback.  Malformed
// or missing fields degrade to empty strings; this never fails.
func ParseWebJSON(body []byte) pkg.InboundMessage {
	var req struct {
		Mensaje string `json:"mensaje"`
		Text    string `json:"text"`
		Usuario string `json:"usuario"`
	}
	_ = json.Unmarshal(body, &req)

	text := req.Mensaje
	if text == "" {
		text = req.Text
	}
	sender := req.Usuario
	if sender == "" {
		sender = PlaceholderSender
	}
	return pkg.InboundMessage{
		SenderID: sender,
		RawText:  text,
		Channel:  pkg.ChannelWeb,
	}
}

type telegramUpdate struct {
	Message struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		From struct {
			ID int64 `json:"id"`
		} `json:"from"`
	} `json:"message"`
}

// ParseTelegramUpdate extracts the chat id and text from a bot-platform
// update object.  Unlike the web channel, a malformed update is an error and
// surfaces as a 500 to the webhook caller.
func ParseTelegramUpdate(body []byte) (pkg.InboundMessage, int64, error) {
	var upd telegramUpdate
	if err := json.Unmarshal(body, &upd); err != nil {
		return pkg.InboundMessage{}, 0, fmt.Errorf("decode telegram update: %w", err)
	}
	sender := PlaceholderSender
	if upd.Message.From.ID != 0 {
		sender = strconv.FormatInt(upd.Message.From.ID, 10)
	}
	msg := pkg.InboundMessage{
		SenderID: sender,
		RawText:  upd.Message.Text,
		Channel:  pkg.ChannelBotPlatform,
	}
	return msg, upd.Message.Chat.ID, nil
}
