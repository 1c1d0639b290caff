package core

import (
	"context"
	"log"
	"strings"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/llm"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/internal/triage"
	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

// Composer builds the outgoing reply text for a classified message.  The
// emergency path never touches the model client; the greeting and clinical
// paths delegate to it and post-process whatever comes back.
type Composer struct {
	llm llm.Client
}

// NewComposer constructs a Composer with the given model client.
func NewComposer(client llm.Client) *Composer {
	return &Composer{llm: client}
}

// Compose produces the reply for one message.  It never returns an error: a
// failed model call yields the fixed fallback apology.
func (c *Composer) Compose(ctx context.Context, msg pkg.InboundMessage, cls pkg.Classification) pkg.ComposedReply {
	switch cls.Category {
	case pkg.CategoryEmergency:
		// Hard rule: no model call on this path.
		return pkg.ComposedReply{BodyText: EmergencyMessage}
	case pkg.CategoryGreeting:
		return c.generate(ctx, greetingPrompt())
	default:
		return c.generate(ctx, clinicalPrompt(msg.RawText))
	}
}

func (c *Composer) generate(ctx context.Context, prompt string) pkg.ComposedReply {
	text, err := c.llm.Generate(ctx, prompt)
	if err != nil {
		log.Println("model call failed:", err)
		return pkg.ComposedReply{BodyText: FallbackMessage}
	}
	return postProcess(text)
}

// postProcess collapses double-delimiter markdown emphasis to the single
// delimiter form used by the messaging channels, then guarantees a referral
// notice is present.
func postProcess(text string) pkg.ComposedReply {
	text = strings.ReplaceAll(text, "**", "*")
	text = strings.ReplaceAll(text, "__", "_")
	if hasReferral(text) {
		return pkg.ComposedReply{BodyText: text}
	}
	return pkg.ComposedReply{BodyText: text + Disclaimer, DisclaimerAppended: true}
}

func hasReferral(text string) bool {
	norm := triage.Normalize(text)
	for _, phrase := range referralPhrases {
		if strings.Contains(norm, phrase) {
			return true
		}
	}
	return false
}
