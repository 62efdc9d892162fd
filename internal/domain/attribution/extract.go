package attribution

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/locaudit/locaudit/internal/domain"
)

// MinCandidateLength is the shortest rendered or literal text indexed.
const MinCandidateLength = 3

const quoted = `'([^'\\\n]*(?:\\.[^'\\\n]*)*)'|"([^"\\\n]*(?:\\.[^"\\\n]*)*)"|` + "`([^`\\\\]*(?:\\\\.[^`\\\\]*)*)`"

var (
	i18nCall    = regexp.MustCompile(`(?:\bi18n\.t|\$t|\btranslate|\bt)\(\s*(?:` + quoted + `)`)
	renderedTxt = regexp.MustCompile(`>([^<>]+)<`)
	literal     = regexp.MustCompile(quoted)
)

// ExtractFile extracts candidates from every line of a source file.
func ExtractFile(content []byte) []domain.Candidate {
	var out []domain.Candidate
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		out = append(out, ExtractLine(sc.Text(), lineNo)...)
	}
	return out
}

// ExtractLine yields i18n, rendered-text and string-literal candidates found
// on one line. Keys are normalized; columns are 1-based rune offsets.
func ExtractLine(line string, lineNo int) []domain.Candidate {
	var out []domain.Candidate

	for _, m := range i18nCall.FindAllStringSubmatchIndex(line, -1) {
		start, end := firstGroup(m)
		if start < 0 {
			continue
		}
		if key := domain.Normalize(unescape(line[start:end])); key != "" {
			out = append(out, candidate(domain.PriorityI18n, key, line, lineNo, start))
		}
	}

	for _, m := range renderedTxt.FindAllStringSubmatchIndex(line, -1) {
		raw := line[m[2]:m[3]]
		text := strings.TrimSpace(raw)
		if utf8.RuneCountInString(text) < MinCandidateLength || strings.HasPrefix(text, "{") {
			continue
		}
		offset := m[2] + strings.Index(raw, text)
		out = append(out, candidate(domain.PriorityJSX, domain.Normalize(text), line, lineNo, offset))
	}

	if isModuleLine(line) {
		return out
	}
	for _, m := range literal.FindAllStringSubmatchIndex(line, -1) {
		start, end := firstGroup(m)
		if start < 0 || followedByColon(line, m[1]) {
			continue
		}
		text := strings.TrimSpace(unescape(line[start:end]))
		if utf8.RuneCountInString(text) < MinCandidateLength {
			continue
		}
		out = append(out, candidate(domain.PriorityString, domain.Normalize(text), line, lineNo, start))
	}
	return out
}

func candidate(p domain.SourcePriority, key, line string, lineNo, byteOffset int) domain.Candidate {
	return domain.Candidate{
		Priority: p,
		Key:      key,
		Line:     lineNo,
		Column:   utf8.RuneCountInString(line[:byteOffset]) + 1,
	}
}

// firstGroup returns the bounds of the first participating capture group.
func firstGroup(m []int) (int, int) {
	for i := 2; i+1 < len(m); i += 2 {
		if m[i] >= 0 {
			return m[i], m[i+1]
		}
	}
	return -1, -1
}

func isModuleLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "import ") || strings.Contains(line, "require(")
}

// followedByColon approximates "this literal is an object key". It only
// looks at the rest of the same line.
func followedByColon(line string, end int) bool {
	rest := strings.TrimLeft(line[end:], " \t")
	return strings.HasPrefix(rest, ":")
}

var unescaper = strings.NewReplacer(`\'`, `'`, `\"`, `"`, "\\`", "`", `\\`, `\`, `\n`, " ", `\t`, " ")

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return unescaper.Replace(s)
}
