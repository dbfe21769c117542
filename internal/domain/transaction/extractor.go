package transaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Extraction failure taxonomy. Every failure here is recoverable: callers
// are expected to keep the raw message for manual review and carry on.
var (
	// ErrNotTransaction means the message carries no transaction vocabulary
	// at all and was rejected before any pattern work.
	ErrNotTransaction = errors.New("message does not contain transaction keywords")
	// ErrNoAmount means no rule could locate an amount token.
	ErrNoAmount = errors.New("no recognizable amount in message")
	// ErrMalformedNumber means an amount token was found but did not
	// normalize to a decimal value.
	ErrMalformedNumber = errors.New("currency value failed to normalize")
)

// NormalizeAmount converts a currency figure with optional thousands
// separators into its exact decimal value ("5,000.00" -> 5000.00).
func NormalizeAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return d, nil
}

// Extract maps a free-form bank notification string to a structured
// best-effort extraction, or reports that no confident extraction is
// possible. It is a pure function: identical input always yields an
// identical result, and a failed extraction is an error value, never a
// zero amount presented as success.
func Extract(message string) (*Extraction, error) {
	lower := strings.ToLower(message)

	if !hasTransactionKeyword(lower) {
		return nil, ErrNotTransaction
	}

	ext := &Extraction{}

	// Resolve the balance span first so a balance figure is never read as
	// the transaction amount.
	balStart, balEnd := -1, -1
	for _, rule := range balanceRules {
		loc := rule.re.FindStringSubmatchIndex(message)
		if loc == nil {
			continue
		}
		val, err := NormalizeAmount(message[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		ext.Balance = &val
		balStart, balEnd = loc[0], loc[1]
		break
	}

	amount, ruleName, err := findAmount(message, balStart, balEnd)
	if err != nil {
		return nil, err
	}
	ext.Amount = amount
	ext.AmountRule = ruleName

	ext.Direction, ext.DirectionGuessed = classifyDirection(lower)
	ext.Bank = matchWordRules(bankRules, message, BankUnknown)
	ext.Mode = matchWordRules(modeRules, message, ModeOther)
	ext.Description = extractDescription(message)
	ext.Reference = firstSubmatch(referenceRules, message)
	ext.CardLastFour = firstSubmatch(cardRules, message)
	ext.Confidence = confidence(ext)

	return ext, nil
}

func hasTransactionKeyword(lower string) bool {
	for _, kw := range transactionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// findAmount walks the ordered amount rules and returns the first candidate
// that normalizes, skipping any token inside the balance span.
func findAmount(message string, balStart, balEnd int) (decimal.Decimal, string, error) {
	sawMalformed := false
	for _, rule := range amountRules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(message, -1) {
			if balStart >= 0 && loc[2] < balEnd && loc[3] > balStart {
				continue
			}
			val, err := NormalizeAmount(message[loc[2]:loc[3]])
			if err != nil {
				sawMalformed = true
				continue
			}
			return val, rule.name, nil
		}
	}
	if sawMalformed {
		return decimal.Decimal{}, "", ErrMalformedNumber
	}
	return decimal.Decimal{}, "", ErrNoAmount
}

// classifyDirection infers credit/debit from keyword families. The credit
// family is checked first, so "payment received" reads as money in even
// though "payment" alone reads as money out. A message matching neither
// family falls back to Debited, flagged as guessed.
func classifyDirection(lower string) (Direction, bool) {
	switch {
	case containsAny(lower, creditWords):
		return Credited, false
	case containsAny(lower, debitWords):
		return Debited, false
	default:
		return Debited, true
	}
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func matchWordRules(rules []wordRule, message, fallback string) string {
	for _, rule := range rules {
		for _, re := range rule.needles {
			if re.MatchString(message) {
				return rule.value
			}
		}
	}
	return fallback
}

func extractDescription(message string) string {
	for _, rule := range descriptionRules {
		if m := rule.re.FindStringSubmatch(message); m != nil {
			desc := strings.Join(strings.Fields(m[1]), " ")
			if len(desc) > 1 {
				return desc
			}
		}
	}
	if name := matchWordRules(merchants, message, ""); name != "" {
		return name
	}
	return "Transaction"
}

func firstSubmatch(rules []amountRule, message string) string {
	for _, rule := range rules {
		if m := rule.re.FindStringSubmatch(message); m != nil {
			return m[1]
		}
	}
	return ""
}

// confidence scores how many optional fields were populated, 0..1.
func confidence(ext *Extraction) float64 {
	score := 1.0 // amount is always present on success
	total := 7.0

	if !ext.DirectionGuessed {
		score++
	}
	if ext.Bank != BankUnknown {
		score++
	}
	if ext.Mode != ModeOther {
		score++
	}
	if ext.Balance != nil {
		score++
	}
	if ext.Description != "" && ext.Description != "Transaction" {
		score++
	}
	if ext.Reference != "" {
		score++
	}
	return score / total
}
