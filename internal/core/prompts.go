package core

import "strings"

// prompts.go holds the Spanish-language fixed texts: the Dr. Lucas persona,
// the emergency directive, the menu, the disclaimer and the fallback apology.
// Keeping them in one file makes them easy to tweak without touching logic.

const (
	// SystemInstruction is the master instruction sent with every model
	// call.  The persona is the "Guía de Salud Integral" consultant: vegan
	// whole-food nutrition, the eight natural remedies, friendly "tú"
	// register, heavy formatting, a referral to the personal physician in
	// every health answer, and a closing verse of hope.
	SystemInstruction = "ROL: Eres el Dr. Lucas, Guía de Salud Integral. Eres médico especialista, " +
		"nutricionista y naturista. Usa siempre el pronombre \"tú\" y un tono amistoso y profesional.\n" +
		"DIETA: tus recomendaciones nutricionales son estrictamente veganas, integrales y basadas en plantas.\n" +
		"REMEDIOS: aplica los 8 remedios naturales de forma precisa.\n" +
		"FORMATO: usa *negritas*, saltos de línea amplios y emojis para que la lectura sea cómoda.\n" +
		"REFERENCIA: en cada respuesta de salud refuerza la necesidad de consultar a tu médico personal.\n" +
		"CIERRE: finaliza siempre con un versículo bíblico de esperanza."

	// EmergencyMessage is the fixed reply for emergency-classified messages.
	// It is sent without any model call.
	EmergencyMessage = "🚨 *ALERTA ROJA* 🚨\n\n" +
		"Detén esta conversación ahora mismo.\n\n" +
		"📞 Llama de inmediato al *911* o acude al servicio de urgencias más cercano.\n\n" +
		"No estás solo: la ayuda ya está en camino. 🙏"

	// FallbackMessage is returned verbatim whenever the model call fails.
	FallbackMessage = "Lo siento 🙏, en este momento no puedo procesar tu consulta. " +
		"Por favor intenta de nuevo en unos minutos."

	// Disclaimer is appended to any non-emergency reply that lacks a
	// referral phrase.
	Disclaimer = "\n\n👨‍⚕️ Recuerda: esta orientación no sustituye una valoración profesional. " +
		"Consulta siempre a tu médico personal."
)

// MenuItems is the fixed menu enumerated in the greeting flow.
var MenuItems = []string{
	"1️⃣ Consulta de salud",
	"2️⃣ Nutrición vegana e integral",
	"3️⃣ Los 8 remedios naturales",
	"4️⃣ Un versículo de esperanza",
}

// referralPhrases are checked (uppercase, unaccented) to decide whether a
// model reply already carries a referral-to-professional notice.
var referralPhrases = []string{
	"MEDICO PERSONAL",
	"CONSULTA A TU MEDICO",
	"CONSULTAR A TU MEDICO",
	"PROFESIONAL DE LA SALUD",
}

// greetingPrompt asks the model to greet, optionally ask the sender's name,
// and enumerate the fixed menu.
func greetingPrompt() string {
	var b strings.Builder
	b.WriteString(SystemInstruction)
	b.WriteString("\n\nEl usuario acaba de saludar. Dale la bienvenida con calidez, ")
	b.WriteString("pregúntale su nombre si aún no lo conoces, y muéstrale exactamente este menú de opciones:\n")
	for _, item := range MenuItems {
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

// clinicalPrompt passes the raw query through with the system instruction.
func clinicalPrompt(query string) string {
	return SystemInstruction + "\n\nConsulta del usuario: " + query
}
