package locale

import (
	"strings"

	"github.com/locaudit/locaudit/internal/domain"
)

// Plan is the transformation chosen for one locale pass.
type Plan struct {
	Locale string
	Kind   domain.TransformKind
	Factor float64
	Reason string
}

// PlanOptions are the facts PlanFor decides on.
type PlanOptions struct {
	SourceLocale    string
	ServerRendered  bool
	HasTranslations bool
	Factor          float64
}

// PlanFor decides how to simulate locale. The source locale and locales the
// app already renders from a real translation file are left untouched.
func PlanFor(locale string, opts PlanOptions) Plan {
	p := Plan{Locale: locale, Kind: domain.TransformNone}

	switch {
	case opts.SourceLocale != "" && strings.EqualFold(locale, opts.SourceLocale):
		p.Reason = "source locale"
	case opts.ServerRendered && opts.HasTranslations:
		p.Reason = "rendered by the app from a translation file"
	case IsRTL(locale):
		p.Kind = domain.TransformRTL
		p.Reason = "right-to-left script"
	default:
		p.Kind = domain.TransformPseudo
		p.Factor = opts.Factor
		if p.Factor <= 0 {
			p.Factor = domain.DefaultPseudoFactor
		}
		p.Reason = "no translation rendered"
	}
	return p
}
