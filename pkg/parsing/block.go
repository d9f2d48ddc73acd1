package parsing

import (
	"strings"

	"github.com/demizer/ftml-go/pkg/token"
	"github.com/demizer/ftml-go/pkg/tree"
)

// PartialAcceptance says which sub-forms of a block are valid standalone
// (spec.md §4.3): a head-only block like `[[include page]]`, or a
// body-only closing tag appearing without its own head.
type PartialAcceptance int

const (
	PartialNone PartialAcceptance = iota
	PartialHead
	PartialBody
)

// Block is one parsed `[[name args]] ... [[/name]]` occurrence: the
// resolved name, whether it was starred/scored, whether the cursor is
// presently inside its head, and the raw head text. It records nothing
// about the body; body elements are produced separately through
// GetBodyElements.
type Block struct {
	Name      string
	FlagStar  bool
	FlagScore bool
	InHead    bool
	HeadText  string
}

// BlockRule declares one block construct's grammar and hands control to
// ParseFn once the generic block-entry rule has recognized and tokenized
// `[[name ...]]` (spec.md §4.3).
type BlockRule struct {
	Name            string
	AcceptsNames    []string
	AcceptsStar     bool
	AcceptsScore    bool
	AcceptsNewlines bool
	AcceptsPartial  PartialAcceptance
	ParseFn         func(p *Parser, block Block, table *RuleTable) ParseResult[tree.Elements]
}

// matchesName reports whether candidate is this block's canonical name
// or one of its declared synonyms.
func (b *BlockRule) matchesName(candidate string) bool {
	if strings.EqualFold(candidate, b.Name) {
		return true
	}
	for _, alt := range b.AcceptsNames {
		if strings.EqualFold(candidate, alt) {
			return true
		}
	}
	return false
}

// GetHeadValue interprets the block's head as a single trimmed value
// string, invoking f to convert it. If the head is empty,
// BlockMissingArguments is raised instead of calling f (spec.md §4.3).
func GetHeadValue[T any](p *Parser, block Block, f func(p *Parser, value string) (T, *ParseWarning)) (T, *ParseWarning) {
	var zero T
	value := strings.TrimSpace(block.HeadText)
	if value == "" {
		w := p.MakeWarn(WarnBlockMissingArguments)
		return zero, &w
	}
	return f(p, value)
}

// GetHeadMap parses `key=value` pairs (whitespace-separated) out of the
// block's head, rejecting any key not present in allowedKeys; a nil or
// empty allowedKeys accepts every key. Values may be double-quoted to
// contain spaces (spec.md §4.3).
func GetHeadMap(p *Parser, block Block, allowedKeys []string) (tree.AttributeMap, *ParseWarning) {
	attrs := tree.NewAttributeMap()
	allowed := make(map[string]bool, len(allowedKeys))
	for _, k := range allowedKeys {
		allowed[k] = true
	}

	for _, pair := range splitHeadPairs(block.HeadText) {
		eq := strings.IndexByte(pair, '=')
		if eq < 0 {
			w := p.MakeWarn(WarnBlockMalformedArguments)
			return attrs, &w
		}
		key := strings.TrimSpace(pair[:eq])
		val := strings.Trim(strings.TrimSpace(pair[eq+1:]), `"`)
		if len(allowed) > 0 && !allowed[key] {
			w := p.MakeWarn(WarnBlockMalformedArguments)
			return attrs, &w
		}
		attrs.Insert(key, val)
	}
	return attrs, nil
}

// splitHeadPairs splits a head string into `key=value` tokens, keeping
// double-quoted values (which may themselves contain spaces) intact.
func splitHeadPairs(head string) []string {
	var pairs []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			pairs = append(pairs, cur.String())
			cur.Reset()
		}
	}
	for _, r := range head {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ' ' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return pairs
}

// GetBodyElements gathers elements until the matching `[[/name]]` close
// tag, recursing through the paragraph gatherer under a bounded depth
// (spec.md §4.3, §9 "Recursion").
func GetBodyElements(p *Parser, name string, allowParagraphs bool, table *RuleTable) ([]tree.Element, []ParseException, bool, *ParseWarning) {
	warn, exit := p.EnterRecursion()
	if warn != nil {
		return nil, nil, false, warn
	}
	defer exit()

	close := CloseCondition{BlockName: name}
	gathered := GatherParagraphs(p, table, close, allowParagraphs)
	if gathered.Fatal != nil {
		return nil, nil, false, gathered.Fatal
	}
	return gathered.Elements, gathered.Exceptions, gathered.ParagraphSafe, nil
}

// isBlockOpen reports whether the token at the cursor begins `[[`.
func isBlockOpen(p *Parser) bool {
	cur := p.Peek()
	return cur != nil && cur.Kind == token.BlockOpen
}

// EntryRule builds the generic block-entry Rule for one BlockRule: it
// recognizes `[[`, an optional `*`/`_` flag, the block name, head
// arguments up to `]]`, and then hands control to rule.ParseFn — which
// is responsible for gathering any body via GetBodyElements (spec.md
// §4.3). table is threaded through so ParseFn can recurse into the
// paragraph gatherer for its body.
func EntryRule(rule *BlockRule, table *RuleTable) *Rule {
	return &Rule{
		Name: "block:" + rule.Name,
		Parse: func(p *Parser) ParseResult[tree.Elements] {
			if _, warn := p.Expect(token.BlockOpen); warn != nil {
				return Err[tree.Elements](*warn)
			}

			block := Block{}
			if cur := p.Peek(); cur != nil && cur.Kind == token.Punctuation {
				switch cur.Slice {
				case "*":
					if !rule.AcceptsStar {
						break
					}
					block.FlagStar = true
					p.Step()
				case "_":
					if !rule.AcceptsScore {
						break
					}
					block.FlagScore = true
					p.Step()
				}
			}

			nameTok, warn := p.Expect(token.Word)
			if warn != nil {
				w := p.MakeWarn(WarnBlockMissingName)
				return Err[tree.Elements](w)
			}
			if !rule.matchesName(nameTok.Slice) {
				w := p.MakeWarn(WarnBlockMissingName)
				return Err[tree.Elements](w)
			}
			block.Name = rule.Name

			var head strings.Builder
			for {
				cur := p.Peek()
				if cur == nil {
					w := p.MakeWarn(WarnBlockMissingCloseBrackets)
					return Err[tree.Elements](w)
				}
				if cur.Kind == token.BlockClose {
					p.Step()
					break
				}
				head.WriteString(cur.Slice)
				p.Step()
			}
			block.HeadText = head.String()

			prevHead := p.SetInHead(false)
			result := rule.ParseFn(p, block, table)
			p.SetInHead(prevHead)
			return result
		},
	}
}
