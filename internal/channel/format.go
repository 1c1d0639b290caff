package channel

import (
	"encoding/json"
	"encoding/xml"
	"net/http"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

// twimlResponse is the telephony gateway's messaging-response envelope.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Format renders a composed reply into the wire format the origin channel
// expects.  The bot-platform channel gets a bare acknowledgement; its real
// reply travels out-of-band via the push client.
func Format(ch pkg.Channel, reply pkg.ComposedReply) (body []byte, contentType string, status int) {
	switch ch {
	case pkg.ChannelTelephony:
		b, _ := xml.Marshal(twimlResponse{Message: reply.BodyText})
		return append([]byte(xml.Header), b...), "application/xml", http.StatusOK
	case pkg.ChannelWeb:
		b, _ := json.Marshal(pkg.WebResponse{Respuesta: reply.BodyText})
		return b, "application/json", http.StatusOK
	default:
		return []byte("OK"), "text/plain; charset=utf-8", http.StatusOK
	}
}
