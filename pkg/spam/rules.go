package spam

import (
	"regexp"
	"strings"
)

// Category names. Kept stable: they key the per-category audit counts
// in clean reports.
const (
	CategoryCustomerService = "customer_service_spam"
	CategoryPhoneNumbers    = "phone_numbers"
	CategoryTravelAirline   = "travel_airline_spam"
	CategoryQuestion        = "question_spam"
	CategoryCommercial      = "commercial_advertising"
	CategoryURL             = "url_spam"
	CategorySpanish         = "spanish_spam"

	CategoryQuestionPhone  = "question_phone_spam"
	CategoryTravelPhone    = "travel_phone_spam"
	CategoryQuestionTravel = "question_travel_spam"
	CategoryStructural     = "structural"
)

// sep matches the separators spammers use between words: whitespace,
// hyphens (dataset slugs are hyphenated), underscores.
const sep = `[\s_-]+`

// digitSep matches the separator zoo observed between phone-number
// groups, including the obfuscated arrow and tilde variants.
const digitSep = `[\s.()~⇌→➤-]*`

// DefaultRules is the starting rule table. Categories are additive
// and patterns are expected to be tuned as new spam shapes show up.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: CategoryCustomerService,
			Patterns: compile(
				`customer`+sep+`service`,
				`support`+sep+`line`,
				`helpline`,
				`toll`+sep+`free`,
				`call`+sep+`center`,
				`24/7`+sep+`customer`,
				`contact`+sep+`us`+sep+`support`,
				`speak`+sep+`to`+sep+`a`+sep+`real`+sep+`person`,
				`get`+sep+`human`+sep+`immediately`,
				`bypass`+sep+`automated`+sep+`system`,
				`atencion`+sep+`al`+sep+`cliente`,
				`soporte`+sep+`en`+sep+`español`,
			),
		},
		{
			Category: CategoryPhoneNumbers,
			Patterns: compile(
				`\+?1`+digitSep+`\(?\d{3}\)?`+digitSep+`\d{3}`+digitSep+`\d{4}`,
				`\(\d{3}\)`+digitSep+`\d{3}`+digitSep+`\d{4}`,
				`\d{3}-\d{3}-\d{4}`,
				`1`+digitSep+`8\d{2}`+digitSep+`\(?\d{3}\)?`+digitSep+`\(?\d{3,4}\)?`,
				`[☎🔰]`,
				`\+\d{1,3}`+digitSep+`\(\d+\)`+digitSep+`\d{5,}`,
			),
		},
		{
			Category: CategoryTravelAirline,
			Patterns: compile(
				`american`+sep+`airlines?`,
				`british`+sep+`airways?`,
				`lufthansa`,
				`delta`+sep+`airlines?`,
				`expedia`,
				`flight`+sep+`booking`,
				`hotel`+sep+`reservation`,
				`travel`+sep+`emergency`,
				`cancel`+sep+`flight`,
				`canceled`+sep+`flight`,
				`last`+sep+`minute`+sep+`booking`,
				`refund`+sep+`delays?`,
				`itinerary`+sep+`number`,
				`booking`+sep+`issue`,
				`cambio`+sep+`de`+sep+`vuelo`,
			),
		},
		{
			Category: CategoryQuestion,
			Patterns: compile(
				`how`+sep+`do`+sep+`i`+sep+`(get|talk|speak|contact|reach|cancel)`,
				`how`+sep+`to`+sep+`cancel`,
				`how`+sep+`much`+sep+`does`,
				`how`+sep+`can`+sep+`i`+sep+`change`,
				`what`+sep+`if`+sep+`i`,
				`what`+sep+`are`+sep+`the`+sep+`policies`,
				`can`+sep+`you`+sep+`change`,
				`can`+sep+`i`+sep+`cancel`,
				`cómo`+sep+`(hablar|llamar|contactar|hablo|puedo)`,
				`cuál`+sep+`es`+sep+`el`+sep+`número`,
			),
		},
		{
			Category: CategoryCommercial,
			Patterns: compile(
				`available`+sep+`24/7`,
				`fastest`+sep+`way`,
				`most`+sep+`effective`+sep+`way`,
				`help`+sep+`resolve`+sep+`your`+sep+`issue`,
				`related`+sep+`search`+sep+`phrases`,
				`best`+sep+`for`+sep+`help`+sep+`with`,
				`brinda`+sep+`soporte`,
				`te`+sep+`conecta`+sep+`con`,
				`ofrece`+sep+`asistencia`,
			),
		},
		{
			Category: CategoryURL,
			Patterns: compile(
				`facebook\.com`,
				`twitter\.com`,
				`linkedin\.com`,
			),
		},
		{
			Category: CategorySpanish,
			Patterns: compile(
				`¿cómo`+sep,
				`para`+sep+`(hablar|llamar)`+sep+`(con|a)`,
				`el`+sep+`centro`+sep+`de`+sep+`llamadas`,
				`cualquier`+sep+`consulta`,
				`relacionada`+sep+`a`+sep+`tu`+sep+`viaje`,
				`disponibles`+sep+`para`+sep+`resolver`,
			),
		},
	}
}

// Weak signals feeding the combinator rules. None of these classifies
// alone. Matched on word boundaries so "cancel" never lights up the
// "can" signal.
var questionSignal = wordPattern(
	"how", "what", "can", "when", "why",
	"cómo", "qué", "cuál", "por qué",
)

var travelSignal = wordPattern(
	"airline", "airlines", "flight", "flights", "vuelo", "reserva",
	"booking", "reservation", "cancel", "cancelar", "check-in",
)

// phoneShape is the broadest phone-like detector: three digit groups
// joined by any separator from the obfuscation zoo.
var phoneShape = regexp.MustCompile(
	`\+?\d{1,3}` + digitSep + `\d{2,4}` + digitSep + `\d{2,4}` + digitSep + `\d{2,4}`)

func wordPattern(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(
		`(?:^|[^\p{L}])(?:` + strings.Join(quoted, "|") + `)(?:[^\p{L}]|$)`)
}

func compile(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}
