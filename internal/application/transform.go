package application

import (
	"context"
	"fmt"

	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/locale"
	"github.com/locaudit/locaudit/internal/pagescript"
	auditerrors "github.com/locaudit/locaudit/internal/pkg/errors"
)

// applyPlan runs the collect, transform, apply round trip for plan. A plan of
// kind none is a no-op.
func applyPlan(ctx context.Context, page domain.Page, plan locale.Plan) (domain.ApplyResult, error) {
	switch plan.Kind {
	case domain.TransformPseudo:
		return applyPseudo(ctx, page, plan.Factor)
	case domain.TransformRTL:
		return applyRTL(ctx, page, plan.Locale)
	default:
		return domain.ApplyResult{}, nil
	}
}

func applyPseudo(ctx context.Context, page domain.Page, factor float64) (domain.ApplyResult, error) {
	var res domain.ApplyResult

	var texts domain.TextCollection
	args := domain.TextCollectArgs{SkipTags: pagescript.TextSkipTags, Attributes: pagescript.TranslatableAttributes}
	if err := page.Evaluate(ctx, pagescript.CollectText, args, &texts); err != nil {
		return res, auditerrors.Wrap(err, auditerrors.CodeTransform, "collect text")
	}

	patch := domain.TextPatch{SkipTags: args.SkipTags, Attributes: args.Attributes}
	for _, it := range texts.Items {
		to := locale.Pseudolocalize(it.Value, factor)
		if to == it.Value {
			continue
		}
		patch.Replacements = append(patch.Replacements, domain.TextReplacement{
			Index: it.Index, Attr: it.Attr, From: it.Value, To: to,
		})
	}
	if len(patch.Replacements) == 0 {
		return res, nil
	}

	if err := page.Evaluate(ctx, pagescript.ApplyText, patch, &res); err != nil {
		return res, auditerrors.Wrap(err, auditerrors.CodeTransform, "apply pseudo-locale")
	}
	return res, nil
}

func applyRTL(ctx context.Context, page domain.Page, lang string) (domain.ApplyResult, error) {
	var res domain.ApplyResult

	var styles domain.StyleCollection
	if err := page.Evaluate(ctx, pagescript.CollectStyles, nil, &styles); err != nil {
		return res, auditerrors.Wrap(err, auditerrors.CodeTransform, "collect inline styles")
	}

	patch := domain.RTLPatch{Lang: lang, Stylesheet: locale.RTLStylesheet(), LintAttribute: locale.RTLLintAttribute}
	for _, it := range styles.Items {
		if locale.IsOneSided(it.Style) {
			patch.Lint = append(patch.Lint, it.Index)
		}
		if flipped := locale.FlipInlineStyle(it.Style); flipped != it.Style {
			patch.Replacements = append(patch.Replacements, domain.StyleReplacement{
				Index: it.Index, From: it.Style, To: flipped,
			})
		}
	}

	if err := page.Evaluate(ctx, pagescript.ApplyRTL, patch, &res); err != nil {
		return res, auditerrors.Wrap(err, auditerrors.CodeTransform, fmt.Sprintf("apply rtl for %s", lang))
	}
	return res, nil
}
