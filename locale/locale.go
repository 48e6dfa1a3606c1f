// Package locale holds every string the user can read and formats money for
// display.
package locale

import (
	"embed"
	"fmt"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/fabriqs/paysheet/payment"
)

//go:embed active.*.toml
var files embed.FS

const (
	ScreenTitle           = "ScreenTitle"
	PayButton             = "PayButton"
	LoadingButton         = "LoadingButton"
	ProcessingButton      = "ProcessingButton"
	SecureNote            = "SecureNote"
	KeyHint               = "KeyHint"
	StillLoadingTitle     = "StillLoadingTitle"
	StillLoadingBody      = "StillLoadingBody"
	ErrorTitle            = "ErrorTitle"
	NetworkErrorBody      = "NetworkErrorBody"
	PresentationErrorBody = "PresentationErrorBody"
	CancelledTitle        = "CancelledTitle"
	CancelledBody         = "CancelledBody"
	SuccessTitle          = "SuccessTitle"
	SuccessBody           = "SuccessBody"
	SheetTitle            = "SheetTitle"
	SheetMethod           = "SheetMethod"
	SheetTestMode         = "SheetTestMode"
	SheetPrompt           = "SheetPrompt"
	SheetCancelled        = "SheetCancelled"
)

// Messages resolves message IDs for one language.
type Messages struct {
	tag       language.Tag
	localizer *i18n.Localizer
	printer   *message.Printer
}

func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.Spanish)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		buf, err := files.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(buf, entry.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
	}
	return bundle, nil
}

// New loads the embedded catalogue and returns the messages for lang, falling
// back to Spanish for anything missing.
func New(lang string) (*Messages, error) {
	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", lang, err)
	}
	return &Messages{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, lang),
		printer:   message.NewPrinter(tag),
	}, nil
}

func (m *Messages) Language() language.Tag { return m.tag }

// Text returns the message, or its ID when the catalogue has no entry.
func (m *Messages) Text(id string, data map[string]any) string {
	s, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return s
}

// Amount renders the amount with the narrow currency symbol, e.g. "$1".
// Whole amounts drop the decimals.
func (m *Messages) Amount(price payment.Money) string {
	var n string
	if price.Whole() {
		n = m.printer.Sprint(number.Decimal(int64(price.Major())))
	} else {
		n = m.printer.Sprint(number.Decimal(price.Major(), number.Scale(price.Scale())))
	}
	symbol := m.printer.Sprint(currency.NarrowSymbol(price.Unit()))
	return strings.TrimSpace(symbol) + n
}

// Price renders amount and ISO code, e.g. "$1 MXN".
func (m *Messages) Price(price payment.Money) string {
	return m.Amount(price) + " " + price.Currency
}
