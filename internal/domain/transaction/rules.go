package transaction

import "regexp"

// The extractor is table-driven: every field is resolved by walking an
// ordered list of tagged rules, first match wins. Adding support for a new
// bank phrasing means adding a row here, not a branch in extractor.go.

// numberPat matches a currency figure with optional thousands separators
// and an optional two-digit decimal part, e.g. "5,000.00" or "47500.00".
const numberPat = `\d+(?:,\d+)*(?:\.\d{1,2})?`

// currencyPat matches the currency marker that must precede any amount.
// Requiring the marker keeps partial account numbers ("A/c XX7312") from
// ever being read as amounts.
const currencyPat = `(?:\brs\.?|\binr|₹)\s*`

type amountRule struct {
	name string
	re   *regexp.Regexp
}

// amountRules is ordered by specificity: rules anchored to a direction verb
// outrank the generic currency-token rule, so a message that mentions both a
// transaction amount and a balance resolves the amount from the anchored
// phrasing first.
var amountRules = []amountRule{
	{
		name: "amount-before-verb",
		re:   regexp.MustCompile(`(?i)` + currencyPat + `(` + numberPat + `)\s+(?:has\s+been\s+)?(?:credited|debited)`),
	},
	{
		name: "verb-before-amount",
		re:   regexp.MustCompile(`(?i)(?:credited|debited|charged|paid|sent|received)\b\D{0,30}?` + currencyPat + `(` + numberPat + `)`),
	},
	{
		name: "for-amount",
		re:   regexp.MustCompile(`(?i)\bfor\s+` + currencyPat + `(` + numberPat + `)`),
	},
	{
		name: "currency-token",
		re:   regexp.MustCompile(`(?i)` + currencyPat + `(` + numberPat + `)`),
	},
}

// balanceRules locate the running-balance figure. The balance span is
// resolved before amounts so the two can never be confused.
var balanceRules = []amountRule{
	{
		name: "available-balance",
		re:   regexp.MustCompile(`(?i)(?:avl\.?|available)\s*(?:bal(?:ance)?|limit)\s*(?:is\s+now|is|:)?\s*` + currencyPat + `(` + numberPat + `)`),
	},
	{
		name: "balance",
		re:   regexp.MustCompile(`(?i)\bbal(?:ance)?\s*(?:is|:)\s*` + currencyPat + `(` + numberPat + `)`),
	},
}

// Keyword gate: a message with none of these never reaches the pattern
// tables. Matches are plain substring checks on the lowercased message.
var transactionKeywords = []string{
	"transaction", "payment", "transfer", "credited", "debited",
	"upi", "imps", "neft", "rtgs", "atm", "card", "account", "balance",
	"sent", "received", "withdraw", "deposit", "successful", "failed",
}

// Direction keyword families, checked credit-first. Stem forms so
// "deposit" also covers "deposited" and "withdraw" covers "withdrawn".
// A message matching neither family falls back to Debited.
var (
	creditWords = []string{"credited", "received", "deposit", "refund"}
	debitWords  = []string{"debited", "sent", "withdraw", "paid", "payment", "charged", "spent"}
)

type wordRule struct {
	value   string
	needles []*regexp.Regexp
}

func wordMatchers(words ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return res
}

// modeRules map payment-rail markers to a mode tag, first match wins.
var modeRules = []wordRule{
	{ModeUPI, wordMatchers("upi", "paytm", "phonepe", "googlepay")},
	{ModeIMPS, wordMatchers("imps")},
	{ModeNEFT, wordMatchers("neft")},
	{ModeRTGS, wordMatchers("rtgs")},
	{ModeACH, wordMatchers("ach", "nach", "ecs")},
	{ModeATM, wordMatchers("atm")},
	{ModeCard, wordMatchers("card")},
	{ModeTransfer, wordMatchers("transfer")},
	{ModeCash, wordMatchers("cash")},
}

// bankRules map bank mentions to their canonical display name.
var bankRules = []wordRule{
	{"HDFC", wordMatchers("hdfc")},
	{"SBI", wordMatchers("sbi", "state bank")},
	{"ICICI", wordMatchers("icici")},
	{"Axis", wordMatchers("axis")},
	{"Kotak", wordMatchers("kotak")},
	{"PNB", wordMatchers("pnb", "punjab national")},
	{"Canara", wordMatchers("canara")},
	{"Union", wordMatchers("union bank", "union")},
	{"Federal", wordMatchers("federal")},
	{"IDBI", wordMatchers("idbi")},
	{"Yes Bank", wordMatchers("yes bank")},
	{"IndusInd", wordMatchers("indusind")},
	{"Paytm", wordMatchers("paytm")},
	{"PhonePe", wordMatchers("phonepe")},
	{"Airtel", wordMatchers("airtel")},
}

// descriptionRules pick the counterparty out of "to X" / "from X" phrasing.
var descriptionRules = []amountRule{
	{
		name: "to-from",
		re:   regexp.MustCompile(`(?i)\b(?:to|from)\s+(?:vpa\s+)?([a-zA-Z0-9@._-][a-zA-Z0-9@.\s_-]*?)(?:\s+(?:rs\.?|inr|₹|is|for|on|at|a/c|via|ref)\b|\s*[.,(]|\s*$)`),
	},
	{
		name: "payment-to",
		re:   regexp.MustCompile(`(?i)\bpayment\s+(?:successful\s+)?for\s+([a-zA-Z][a-zA-Z\s]*?)(?:\s+please\b|\s*[.,(]|\s*$)`),
	},
}

// merchants is the fallback counterparty list when no "to/from" phrasing
// is present.
var merchants = []wordRule{
	{"Amazon", wordMatchers("amazon")},
	{"Flipkart", wordMatchers("flipkart")},
	{"Zomato", wordMatchers("zomato")},
	{"Swiggy", wordMatchers("swiggy")},
	{"Uber", wordMatchers("uber")},
	{"Ola", wordMatchers("ola")},
	{"Netflix", wordMatchers("netflix")},
	{"Spotify", wordMatchers("spotify")},
	{"IRCTC", wordMatchers("irctc")},
	{"BigBasket", wordMatchers("bigbasket")},
	{"Blinkit", wordMatchers("blinkit")},
	{"Zepto", wordMatchers("zepto")},
}

// referenceRules extract a transaction reference, most specific first.
var referenceRules = []amountRule{
	{
		name: "payment-id",
		re:   regexp.MustCompile(`(pay_[A-Za-z0-9_]{10,})`),
	},
	{
		name: "reference-number",
		re:   regexp.MustCompile(`(?i)\bref(?:erence)?\s*(?:no\.?|number)?\s*(?:is|:)?\s*([A-Za-z0-9]{6,})`),
	},
	{
		name: "txn-id",
		re:   regexp.MustCompile(`(?i)\btxn\s*id\s*:?\s*([A-Za-z0-9]{6,})`),
	},
	{
		name: "upi-reference",
		re:   regexp.MustCompile(`(?i)\bupi\b\D{0,24}?(\d{9,14})`),
	},
}

// cardRules extract the last four digits of a card. Every rule requires
// explicit card context so masked account numbers never match.
var cardRules = []amountRule{
	{
		name: "card-masked",
		re:   regexp.MustCompile(`(?i)\bcard\s+(?:no\.?\s+)?(?:xx|x{4}\s*|\*+)(\d{4})`),
	},
	{
		name: "card-ending",
		re:   regexp.MustCompile(`(?i)\bcard\s+ending\s+(?:in\s+)?(\d{4})`),
	},
}
