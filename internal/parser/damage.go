package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/KirkDiggler/steel-compendium/internal/entities/drawsteel"
	"github.com/KirkDiggler/steel-compendium/internal/markdown"
)

var (
	damageWordPattern    = regexp.MustCompile(`(?i)\bdamage\b`)
	damageEqualToPattern = regexp.MustCompile(`(?i)([A-Za-z]+)\s+damage\s+equal\s+to\s+([^;]+)`)
	alternativesPattern  = regexp.MustCompile(`(?i),|\bor\b`)
	operatorPattern      = regexp.MustCompile(`\s*([+\-*/×])\s*`)
	formulaTokenPattern  = regexp.MustCompile(`^[()0-9A-Za-z+\-–—−*/×]+$`)
	levelWordPattern     = regexp.MustCompile(`(?i)\blevel\b`)
	digitPattern         = regexp.MustCompile(`\d`)
)

// words that can sit inside a formula run but never name a damage type
var formulaWords = map[string]bool{"or": true, "your": true, "level": true}

var dashReplacer = strings.NewReplacer("–", "-", "—", "-", "−", "-")

// Damage normalizes a damage clause such as "2d6 + A fire damage". It returns
// nil when the clause does not mention damage or when the text before
// "damage" does not look like a formula; the caller keeps such clauses as
// plain effects.
func (p *Parser) Damage(clause string) *drawsteel.DamageClause {
	if !strings.Contains(strings.ToLower(clause), "damage") {
		return nil
	}

	text := markdown.StripBold(clause)
	for _, loc := range damageWordPattern.FindAllStringIndex(text, -1) {
		if dc := p.damageBefore(text[:loc[0]]); dc != nil {
			return dc
		}
	}

	if m := damageEqualToPattern.FindStringSubmatch(text); m != nil {
		formula := strings.TrimRight(markdown.CollapseSpace(m[2]), ". ")
		if formula != "" {
			return &drawsteel.DamageClause{
				Formula: formula,
				Type:    strings.ToLower(m[1]),
			}
		}
	}

	return nil
}

// damageBefore reads the words leading up to "damage" right to left: first
// the type phrase, then the formula run.
func (p *Parser) damageBefore(prefix string) *drawsteel.DamageClause {
	words := strings.Fields(prefix)
	i := len(words)

	var typeWords []string
	for i > 0 && isTypeWord(words[i-1]) {
		typeWords = append([]string{words[i-1]}, typeWords...)
		i--
	}

	end := i
	for i > 0 && isFormulaToken(words[i-1]) {
		i--
	}
	if i == end {
		return nil
	}

	run := strings.TrimRight(strings.Join(words[i:end], " "), ", ")
	formula, characteristics := p.splitAlternatives(run)
	if !p.looksLikeFormula(formula) {
		return nil
	}

	return &drawsteel.DamageClause{
		Formula:         normalizeFormula(formula),
		Type:            strings.ToLower(strings.Join(typeWords, " ")),
		Characteristics: characteristics,
	}
}

// splitAlternatives separates "5 + A, R, I, or P" into the formula "5 + A"
// and the characteristic codes it may use. Only trailing single letters
// count as alternatives.
func (p *Parser) splitAlternatives(run string) (string, []string) {
	var tokens []string
	for _, t := range alternativesPattern.Split(run, -1) {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return run, nil
	}

	formula := tokens[0]
	if len(tokens) == 1 {
		return formula, nil
	}

	var alternatives []string
	for _, t := range tokens[1:] {
		if !isSingleLetter(t) {
			return formula, nil
		}
		alternatives = append(alternatives, strings.ToUpper(t))
	}

	fields := strings.Fields(formula)
	if last := fields[len(fields)-1]; p.isCharacteristicCode(last) {
		alternatives = append([]string{strings.ToUpper(last)}, alternatives...)
	}

	return formula, alternatives
}

// looksLikeFormula holds a candidate to a digit, dice, an upper-case
// characteristic code or the word "level"
func (p *Parser) looksLikeFormula(candidate string) bool {
	if digitPattern.MatchString(candidate) || levelWordPattern.MatchString(candidate) {
		return true
	}
	for _, f := range strings.Fields(candidate) {
		if f = strings.Trim(f, "(),"); p.isCharacteristicCode(f) {
			return true
		}
	}
	return false
}

// isCharacteristicCode keeps the article "a" from reading as Agility
func (p *Parser) isCharacteristicCode(s string) bool {
	r := []rune(s)
	return len(r) == 1 && unicode.IsUpper(r[0]) && p.vocab.IsCharacteristic(s)
}

func normalizeFormula(formula string) string {
	formula = dashReplacer.Replace(formula)
	formula = operatorPattern.ReplaceAllString(formula, " $1 ")
	return markdown.CollapseSpace(formula)
}

func isTypeWord(w string) bool {
	if len([]rune(w)) < 2 || formulaWords[strings.ToLower(w)] || strings.EqualFold(w, "damage") {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) && r != '-' {
			return false
		}
	}
	return true
}

func isFormulaToken(w string) bool {
	w = strings.TrimRight(w, ",")
	core := strings.Trim(w, "()")
	switch {
	case core == "":
		return w != ""
	case formulaWords[strings.ToLower(core)]:
		return true
	case isSingleLetter(core):
		return true
	case strings.Trim(core, "+-–—−*/×") == "":
		return true
	}
	return formulaTokenPattern.MatchString(w) && digitPattern.MatchString(w)
}

func isSingleLetter(s string) bool {
	r := []rune(s)
	return len(r) == 1 && unicode.IsLetter(r[0])
}
