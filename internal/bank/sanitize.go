package bank

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// The source spreadsheets arrive with three recurring defects: several
// options glued into a single cell line, one word per line that should
// be a phrase, and answers that almost but not quite match an option.
// SanitizeRow repairs all three so that every answer resolves to an
// option by normalized equality.

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// SplitAnswers breaks the "Respuesta Correcta" cell on semicolons.
// Multi-answer questions list every correct option separated by ";".
func SplitAnswers(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ";") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// A line counts as a sentence when it is long enough, has enough words
// or carries final punctuation. Regrouping never runs over sentences.
func isSentence(line string) bool {
	txt := strings.TrimSpace(line)
	if txt == "" {
		return false
	}
	if utf8.RuneCountInString(txt) >= 20 || len(strings.Fields(txt)) >= 4 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(txt)
	return r == '.' || r == '!' || r == '?'
}

func mostlySentences(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	sents := 0
	for _, l := range lines {
		if isSentence(l) {
			sents++
		}
	}
	threshold := int(0.6 * float64(len(lines)))
	if threshold < 1 {
		threshold = 1
	}
	return sents >= threshold
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Probable start of a new sentence: capital, digit, parenthesis or quote.
func isSentenceStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		r == '(' || r == '"' || r == '“'
}

// splitSentences cuts a line at every "end punctuation, whitespace,
// sentence start" boundary, keeping the punctuation on the left side.
func splitSentences(s string) []string {
	runes := []rune(s)
	var parts []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || !isSentenceStart(runes[j]) {
			continue
		}
		if seg := strings.TrimSpace(string(runes[start : i+1])); seg != "" {
			parts = append(parts, seg)
		}
		start = j
		i = j - 1
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		parts = append(parts, tail)
	}
	return parts
}

func hasSentenceBoundary(s string) bool {
	return len(splitSentences(s)) > 1
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// capitalSplit is the last-resort cut for text with no punctuation at
// all, e.g. "Define the strategy Establish budgets". A segment starts
// at a capital letter, runs over non-capitals and must end right before
// a space-separated capital or at the end of the text.
func capitalSplit(s string) []string {
	runes := []rune(s)
	var parts []string
	i := 0
	for i < len(runes) {
		if !isASCIIUpper(runes[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && !isASCIIUpper(runes[j]) {
			j++
		}
		if j == i+1 {
			i++
			continue
		}
		if j == len(runes) {
			if part := strings.TrimSpace(string(runes[i:j])); part != "" {
				parts = append(parts, part)
			}
			i = j
			continue
		}
		if runes[j-1] == ' ' {
			if part := strings.TrimSpace(string(runes[i : j-1])); part != "" {
				parts = append(parts, part)
			}
			i = j
			continue
		}
		i++
	}
	return parts
}

// explodeOptions guarantees one option per line. Cells that already
// hold several boundary-free lines pass through untouched; otherwise
// each line is split at sentence boundaries, and as a fallback the
// joined text is cut at capitals.
func explodeOptions(text string) []string {
	raw := splitLines(text)
	if len(raw) == 0 {
		return nil
	}

	if len(raw) >= 2 {
		boundary := false
		for _, l := range raw {
			if hasSentenceBoundary(l) {
				boundary = true
				break
			}
		}
		if !boundary {
			return raw
		}
	}

	var parts []string
	changed := false
	for _, l := range raw {
		sents := splitSentences(l)
		if len(sents) >= 2 {
			parts = append(parts, sents...)
			changed = true
		} else {
			parts = append(parts, l)
		}
	}
	if changed {
		return parts
	}

	if caps := capitalSplit(strings.Join(raw, " ")); len(caps) >= 2 {
		return caps
	}
	return raw
}

var dashCompactor = strings.NewReplacer(" - ", "-", "- ", "-")

// regroupTokens rebuilds phrases out of word-per-line cells by joining
// contiguous windows of 2 to 6 lines until every answer matches an
// option. It never runs when the lines already look like sentences,
// which would merge real options into one.
func regroupTokens(lines []string, answers []string) []string {
	if len(lines) == 0 {
		return nil
	}
	raw := make([]string, len(lines))
	copy(raw, lines)

	if len(answers) > 0 && allAnswersMatch(answers, raw) {
		return raw
	}
	if mostlySentences(raw) {
		return raw
	}

	const maxWin = 6
	for changed := true; changed; {
		changed = false
		for _, ans := range answers {
			ansn := Normalize(ans)
			if anyNormalizedEqual(raw, ansn) {
				continue
			}
			found := false
			for start := 0; start < len(raw) && !found; start++ {
				for win := 2; win <= maxWin; win++ {
					end := start + win
					if end > len(raw) {
						break
					}
					cand := dashCompactor.Replace(strings.Join(raw[start:end], " "))
					if Normalize(cand) == ansn {
						merged := make([]string, 0, len(raw)-win+1)
						merged = append(merged, raw[:start]...)
						merged = append(merged, cand)
						raw = append(merged, raw[end:]...)
						changed, found = true, true
						break
					}
				}
			}
		}
		if len(raw) == 0 {
			break
		}
	}
	return raw
}

func allAnswersMatch(answers, options []string) bool {
	on := make(map[string]bool, len(options))
	for _, o := range options {
		on[Normalize(o)] = true
	}
	for _, a := range answers {
		if !on[Normalize(a)] {
			return false
		}
	}
	return true
}

func anyNormalizedEqual(lines []string, target string) bool {
	for _, l := range lines {
		if Normalize(l) == target {
			return true
		}
	}
	return false
}

// fixAnswers reconciles answers with options. An answer with no exact
// normalized match is remapped to the longest option related to it by
// containment; failing that, the answer itself becomes a new option.
func fixAnswers(options, answers []string) ([]string, []string, bool) {
	on := make(map[string]bool, len(options))
	for _, o := range options {
		on[Normalize(o)] = true
	}

	fixed := make([]string, len(answers))
	copy(fixed, answers)
	changed := false

	for j, a := range answers {
		an := Normalize(a)
		if on[an] {
			continue
		}
		var best string
		bestLen := -1
		for _, o := range options {
			onorm := Normalize(o)
			if !strings.Contains(an, onorm) && !strings.Contains(onorm, an) {
				continue
			}
			if l := utf8.RuneCountInString(o); l > bestLen {
				best, bestLen = o, l
			}
		}
		if bestLen >= 0 {
			fixed[j] = best
			changed = true
			continue
		}
		if !containsExact(options, a) {
			options = append(options, a)
			on[an] = true
		}
	}
	return options, fixed, changed
}

func containsExact(ss []string, target string) bool {
	for _, s := range ss {
		if s == target {
			return true
		}
	}
	return false
}

// SanitizeRow runs the full repair pipeline over one bank row and
// returns the final option lines and answer texts. After it returns,
// every answer has a normalized-equal option.
func SanitizeRow(optionsCell, answersCell string) (options, answers []string) {
	answers = SplitAnswers(answersCell)
	lines := explodeOptions(optionsCell)
	options = regroupTokens(lines, answers)
	options, answers, _ = fixAnswers(options, answers)
	return options, answers
}
