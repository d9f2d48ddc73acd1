package blocks

import (
	"github.com/expr-lang/expr"

	"github.com/demizer/ftml-go/pkg/parsing"
	"github.com/demizer/ftml-go/pkg/tree"
)

// Ifexpr is SPEC_FULL.md's supplemented boolean-expression conditional:
// `[[ifexpr EXPR]] ... [[/ifexpr]]`, where EXPR is evaluated against the
// parser's script-variable scope plus the page's tags (as a `tags`
// string-set variable), true/false deciding inclusion exactly like
// iftags. Grounded on iftags' transaction/rollback shape (spec.md §4.3);
// expression evaluation is delegated to expr-lang/expr rather than a
// hand-rolled boolean mini-parser, since SPEC_FULL.md §2 names expr as
// the wired dependency for this feature.
var Ifexpr = &parsing.BlockRule{
	Name:           "ifexpr",
	AcceptsStar:    false,
	AcceptsScore:   false,
	AcceptsPartial: parsing.PartialNone,
	ParseFn:        parseIfexpr,
}

func parseIfexpr(p *parsing.Parser, block parsing.Block, table *parsing.RuleTable) parsing.ParseResult[tree.Elements] {
	// As in iftags, the cursor is not guarded: a discarded branch stays
	// consumed.
	tx := p.Transaction(parsing.AllTransactionFlags() &^ parsing.FlagCursor)

	// Get body content, never with paragraphs: our own paragraph safety is
	// propagated to the caller below rather than decided twice.
	body, exceptions, paragraphSafe, warn := parsing.GetBodyElements(p, block.Name, false, table)
	if warn != nil {
		tx.Rollback()
		return parsing.Err[tree.Elements](*warn)
	}

	env := exprEnv(p)
	program, compileErr := expr.Compile(block.HeadText, expr.Env(env), expr.AsBool())
	if compileErr != nil {
		tx.Rollback()
		w := p.MakeWarn(parsing.WarnBlockMalformedArguments)
		return parsing.Err[tree.Elements](w)
	}
	result, evalErr := expr.Run(program, env)
	include := evalErr == nil
	if include {
		include, _ = result.(bool)
	}

	if p.Settings().NoConditionals || include {
		tx.Commit()
		return parsing.Ok(tree.ManyElements(body), exceptions, paragraphSafe)
	}

	var kept []parsing.ParseException
	for _, exc := range exceptions {
		if exc.IsWarning() {
			kept = append(kept, exc)
		}
	}
	tx.Rollback()
	return parsing.Ok(tree.NoElements(), kept, paragraphSafe)
}

// exprEnv builds the variable environment ifexpr compiles against: the
// current page's tags as a []string, and the parser's script scope
// values flattened to plain strings.
func exprEnv(p *parsing.Parser) map[string]interface{} {
	env := make(map[string]interface{})
	tags := []string{}
	if info := p.PageInfo(); info != nil {
		tags = info.Tags
	}
	env["tags"] = tags
	for k, v := range p.Scope() {
		env[k] = v.Value
	}
	return env
}
