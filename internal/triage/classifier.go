package triage

import (
	"strings"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

// greetingWordLimit is the maximum word count (exclusive) for a message to be
// considered a greeting or menu request.  Tunable; longer texts with greeting
// words are treated as clinical queries.
const greetingWordLimit = 6

// emergencyKeywords are matched as substrings of the normalized (uppercase,
// unaccented) text.  This is a fixed, enumerable set with known recall
// limitations: synonyms outside this list are not detected.  Partial stems
// ("AHOG", "ATRAGANT") cover common inflections.
var emergencyKeywords = []string{
	"DOLOR DE PECHO",
	"DOLOR EN EL PECHO",
	"PECHO",
	"HEMORRAGIA",
	"SANGRADO ABUNDANTE",
	"INCONSCIENTE",
	"PERDIDA DE CONOCIMIENTO",
	"PERDIDA DEL CONOCIMIENTO",
	"DESMAYO",
	"PARO CARDIACO",
	"INFARTO",
	"ENVENENAMIENTO",
	"INTOXICACION",
	"SOBREDOSIS",
	"ASFIXIA",
	"AHOG",
	"ATRAGANT",
	"NO PUEDO RESPIRAR",
	"NO RESPIRA",
	"CONVULSION",
	"911",
	"EMERGENCIA",
}

var greetingKeywords = []string{
	"HOLA",
	"BUENOS DIAS",
	"BUENAS TARDES",
	"BUENAS NOCHES",
	"BUENAS",
	"SALUDOS",
	"MENU",
	"AYUDA",
	"GRACIAS",
}

// accentReplacer strips the accented vowel variants so that keyword matching
// is robust against inconsistent accent usage.
var accentReplacer = strings.NewReplacer(
	"Á", "A",
	"É", "E",
	"Í", "I",
	"Ó", "O",
	"Ú", "U",
	"Ü", "U",
)

// Normalize uppercases the text and folds accented vowels to their plain
// forms for matching.
func Normalize(s string) string {
	return accentReplacer.Replace(strings.ToUpper(s))
}

// Classifier decides whether a message is an emergency, a greeting/menu
// request, or a normal clinical query.  It is a pure function of the current
// message; no state is kept between calls.
type Classifier struct {
	emergency []string
	greeting  []string
	wordLimit int
}

// NewClassifier returns a classifier with the fixed keyword sets.
func NewClassifier() *Classifier {
	return &Classifier{
		emergency: emergencyKeywords,
		greeting:  greetingKeywords,
		wordLimit: greetingWordLimit,
	}
}

// Classify runs the emergency check first: any emergency keyword match wins
// immediately, before anything else happens with the message.  The greeting
// word-count check uses the original text's whitespace tokens, not the
// normalized string.  Empty text classifies as clinical.
func (c *Classifier) Classify(rawText string) pkg.Classification {
	norm := Normalize(rawText)

	for _, kw := range c.emergency {
		if strings.Contains(norm, kw) {
			return pkg.Classification{Category: pkg.CategoryEmergency, MatchedKeyword: kw}
		}
	}

	if len(strings.Fields(rawText)) < c.wordLimit {
		for _, kw := range c.greeting {
			if strings.Contains(norm, kw) {
				return pkg.Classification{Category: pkg.CategoryGreeting, MatchedKeyword: kw}
			}
		}
	}

	return pkg.Classification{Category: pkg.CategoryClinical}
}
