package circuit

import (
	"strconv"
	"strings"

	"github.com/quantumsim/stabsim/gate"
	"github.com/quantumsim/stabsim/internal/xerr"
)

// ToText renders the circuit in the text format spec.md §6 defines:
// `NAME[(a1,a2,…)] [TAG] t1 t2 … tk` per line, REPEAT blocks as
// `REPEAT n {` … `}` with a nested, indented body.
func (c *Circuit) ToText() string {
	var b strings.Builder
	c.writeText(&b, 0)
	return b.String()
}

func (c *Circuit) writeText(b *strings.Builder, indent int) {
	pad := strings.Repeat("    ", indent)
	for _, ir := range c.instrs {
		in := c.view(ir)
		if in.IsRepeat() {
			b.WriteString(pad)
			b.WriteString("REPEAT ")
			b.WriteString(strconv.Itoa(in.RepeatCount))
			b.WriteString(" {\n")
			in.Body.writeText(b, indent+1)
			b.WriteString(pad)
			b.WriteString("}\n")
			continue
		}
		b.WriteString(pad)
		b.WriteString(gate.ByID(in.Gate).Name)
		if len(in.Args) > 0 {
			b.WriteByte('(')
			for i, a := range in.Args {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
			}
			b.WriteByte(')')
		}
		if in.Tag != "" {
			b.WriteString(" [")
			b.WriteString(in.Tag)
			b.WriteByte(']')
		}
		for _, t := range in.Targets {
			b.WriteByte(' ')
			b.WriteString(t.String())
		}
		b.WriteByte('\n')
	}
}

// AppendFromText parses text (one or more lines) and appends the
// resulting instructions to c.
func (c *Circuit) AppendFromText(text string) error {
	lines := strings.Split(text, "\n")
	idx := 0
	return parseLines(lines, &idx, c, 0)
}

// ParseCircuit parses a standalone circuit text document.
func ParseCircuit(text string) (*Circuit, error) {
	c := New()
	if err := c.AppendFromText(text); err != nil {
		return nil, err
	}
	return c, nil
}

// parseLines consumes lines[*idx:] until it runs out or (when depth>0)
// hits a line that is exactly "}", recursing into AppendRepeatBlock
// for nested REPEAT blocks.
func parseLines(lines []string, idx *int, into *Circuit, depth int) error {
	for *idx < len(lines) {
		raw := lines[*idx]
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			*idx++
			continue
		}
		if line == "}" {
			if depth == 0 {
				return xerr.New(xerr.KindParse, "unmatched '}' at line %d", *idx+1)
			}
			*idx++
			return nil
		}
		if n, ok, err := parseRepeatHeader(line); ok || err != nil {
			if err != nil {
				return err
			}
			*idx++
			body := New()
			if err := parseLines(lines, idx, body, depth+1); err != nil {
				return err
			}
			if err := into.AppendRepeatBlock(n, body, ""); err != nil {
				return err
			}
			continue
		}
		if err := parseInstructionLine(line, into); err != nil {
			return xerr.Wrap(xerr.KindParse, err, "line %d: %q", *idx+1, raw)
		}
		*idx++
	}
	if depth != 0 {
		return xerr.New(xerr.KindParse, "unterminated REPEAT block (missing '}')")
	}
	return nil
}

func parseRepeatHeader(line string) (n int, ok bool, err error) {
	if !strings.HasPrefix(line, "REPEAT") || (len(line) > 6 && !isSpace(line[6])) {
		return 0, false, nil
	}
	rest := strings.TrimSpace(line[len("REPEAT"):])
	if !strings.HasSuffix(rest, "{") {
		return 0, false, xerr.New(xerr.KindParse, "REPEAT block must end with '{': %q", line)
	}
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "{"))
	n, convErr := strconv.Atoi(rest)
	if convErr != nil {
		return 0, false, xerr.New(xerr.KindParse, "invalid REPEAT count %q", rest)
	}
	return n, true, nil
}

func parseInstructionLine(line string, into *Circuit) error {
	name, argsStr, tag, rest, err := splitInstructionHead(line)
	if err != nil {
		return err
	}
	args, err := parseArgs(argsStr)
	if err != nil {
		return err
	}
	targets, err := parseTargets(rest)
	if err != nil {
		return err
	}
	return into.Append(name, targets, args, tag)
}

// splitInstructionHead splits "NAME[(args)] [tag] t1 t2 ..." into its
// four components.
func splitInstructionHead(line string) (name, args, tag, rest string, err error) {
	i := 0
	for i < len(line) && !isSpace(line[i]) && line[i] != '(' && line[i] != '[' {
		i++
	}
	name = line[:i]
	if name == "" {
		return "", "", "", "", xerr.New(xerr.KindParse, "missing gate name")
	}
	if i < len(line) && line[i] == '(' {
		end := strings.IndexByte(line[i:], ')')
		if end < 0 {
			return "", "", "", "", xerr.New(xerr.KindParse, "unterminated '(' in %q", line)
		}
		args = line[i+1 : i+end]
		i += end + 1
	}
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	if i < len(line) && line[i] == '[' {
		end := strings.IndexByte(line[i:], ']')
		if end < 0 {
			return "", "", "", "", xerr.New(xerr.KindParse, "unterminated '[' in %q", line)
		}
		tag = line[i+1 : i+end]
		i += end + 1
	}
	rest = strings.TrimSpace(line[i:])
	return name, args, tag, rest, nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func parseArgs(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, xerr.Wrap(xerr.KindParse, err, "invalid arg %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseTargets(s string) ([]Target, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Fields(s)
	out := make([]Target, 0, len(fields))
	for _, f := range fields {
		t, err := parseTarget(f)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseTarget(tok string) (Target, error) {
	if tok == "*" {
		return Combiner, nil
	}
	inverted := false
	if strings.HasPrefix(tok, "!") {
		inverted = true
		tok = tok[1:]
	}
	switch {
	case strings.HasPrefix(tok, "rec[-") && strings.HasSuffix(tok, "]"):
		k, err := strconv.Atoi(tok[len("rec[-") : len(tok)-1])
		if err != nil || k < 1 {
			return 0, xerr.New(xerr.KindParse, "invalid rec[] target %q", tok)
		}
		return RecordTarget(k), nil
	case strings.HasPrefix(tok, "sweep[") && strings.HasSuffix(tok, "]"):
		k, err := strconv.Atoi(tok[len("sweep[") : len(tok)-1])
		if err != nil || k < 0 {
			return 0, xerr.New(xerr.KindParse, "invalid sweep[] target %q", tok)
		}
		return SweepTarget(k), nil
	case len(tok) > 1 && (tok[0] == 'X' || tok[0] == 'Y' || tok[0] == 'Z'):
		q, err := strconv.Atoi(tok[1:])
		if err != nil || q < 0 {
			return 0, xerr.New(xerr.KindParse, "invalid Pauli target %q", tok)
		}
		return PauliTarget(q, tok[0], inverted), nil
	default:
		q, err := strconv.Atoi(tok)
		if err != nil || q < 0 {
			return 0, xerr.New(xerr.KindParse, "invalid target %q", tok)
		}
		if inverted {
			return InvertedQubitTarget(q), nil
		}
		return QubitTarget(q), nil
	}
}
