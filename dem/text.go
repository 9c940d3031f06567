package dem

import (
	"strconv"
	"strings"

	"github.com/quantumsim/stabsim/internal/xerr"
)

// ToText renders the model in the DEM text format spec.md §6 defines.
func (m *Model) ToText() string {
	var b strings.Builder
	m.writeText(&b, 0)
	return b.String()
}

func (m *Model) writeText(b *strings.Builder, indent int) {
	pad := strings.Repeat("    ", indent)
	for _, in := range m.instrs {
		b.WriteString(pad)
		switch in.Kind {
		case KindError:
			b.WriteString("error(")
			b.WriteString(strconv.FormatFloat(in.Probability, 'g', -1, 64))
			b.WriteByte(')')
			writeTargets(b, in.Targets)
			b.WriteByte('\n')
		case KindDetector:
			b.WriteString("detector")
			writeArgs(b, in.Args)
			writeTargets(b, in.Targets)
			b.WriteByte('\n')
		case KindLogicalObservable:
			b.WriteString("logical_observable ")
			b.WriteString(in.Targets[0].String())
			b.WriteByte('\n')
		case KindShiftDetectors:
			b.WriteString("shift_detectors")
			writeArgs(b, in.Args)
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(in.RepeatCount))
			b.WriteByte('\n')
		case KindRepeatBlock:
			b.WriteString("repeat ")
			b.WriteString(strconv.Itoa(in.RepeatCount))
			b.WriteString(" {\n")
			in.Body.writeText(b, indent+1)
			b.WriteString(pad)
			b.WriteString("}\n")
		}
	}
}

func writeArgs(b *strings.Builder, args []float64) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
	}
	b.WriteByte(')')
}

func writeTargets(b *strings.Builder, targets []Target) {
	for _, t := range targets {
		b.WriteByte(' ')
		b.WriteString(t.String())
	}
}

// ParseModel parses a standalone DEM text document.
func ParseModel(text string) (*Model, error) {
	lines := strings.Split(text, "\n")
	idx := 0
	m := New()
	if err := parseDemLines(lines, &idx, m, 0); err != nil {
		return nil, err
	}
	return m, nil
}

func parseDemLines(lines []string, idx *int, into *Model, depth int) error {
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
		if k, ok, err := parseRepeatHeader(line); ok || err != nil {
			if err != nil {
				return err
			}
			*idx++
			body := New()
			if err := parseDemLines(lines, idx, body, depth+1); err != nil {
				return err
			}
			if err := into.AddRepeatBlock(k, body); err != nil {
				return err
			}
			continue
		}
		if err := parseDemLine(line, into); err != nil {
			return xerr.Wrap(xerr.KindParse, err, "line %d: %q", *idx+1, raw)
		}
		*idx++
	}
	if depth != 0 {
		return xerr.New(xerr.KindParse, "unterminated repeat block (missing '}')")
	}
	return nil
}

func parseRepeatHeader(line string) (k int, ok bool, err error) {
	if !strings.HasPrefix(line, "repeat") || (len(line) > 6 && !isSpace(line[6])) {
		return 0, false, nil
	}
	rest := strings.TrimSpace(line[len("repeat"):])
	if !strings.HasSuffix(rest, "{") {
		return 0, false, xerr.New(xerr.KindParse, "repeat block must end with '{': %q", line)
	}
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "{"))
	k, convErr := strconv.Atoi(rest)
	if convErr != nil {
		return 0, false, xerr.New(xerr.KindParse, "invalid repeat count %q", rest)
	}
	return k, true, nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func parseDemLine(line string, into *Model) error {
	keyword, argsStr, rest := splitDemHead(line)
	args, err := parseFloatArgs(argsStr)
	if err != nil {
		return err
	}
	switch keyword {
	case "error":
		if len(args) != 1 {
			return xerr.New(xerr.KindParse, "error: expected exactly one probability arg")
		}
		targets, err := parseDemTargets(rest)
		if err != nil {
			return err
		}
		return into.AddError(args[0], targets)
	case "detector":
		targets, err := parseDemTargets(rest)
		if err != nil {
			return err
		}
		return into.AddDetector(args, targets)
	case "logical_observable":
		targets, err := parseDemTargets(rest)
		if err != nil {
			return err
		}
		if len(targets) != 1 {
			return xerr.New(xerr.KindParse, "logical_observable: expected exactly one target")
		}
		return into.AddLogicalObservable(targets[0])
	case "shift_detectors":
		k, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return xerr.Wrap(xerr.KindParse, err, "shift_detectors: invalid count %q", rest)
		}
		return into.AddShiftDetectors(args, k)
	default:
		return xerr.New(xerr.KindParse, "unknown DEM instruction %q", keyword)
	}
}

func splitDemHead(line string) (keyword, args, rest string) {
	i := 0
	for i < len(line) && !isSpace(line[i]) && line[i] != '(' {
		i++
	}
	keyword = line[:i]
	if i < len(line) && line[i] == '(' {
		end := strings.IndexByte(line[i:], ')')
		if end >= 0 {
			args = line[i+1 : i+end]
			i += end + 1
		}
	}
	rest = strings.TrimSpace(line[i:])
	return keyword, args, rest
}

func parseFloatArgs(s string) ([]float64, error) {
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

func parseDemTargets(s string) ([]Target, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Fields(s)
	out := make([]Target, 0, len(fields))
	for _, f := range fields {
		t, err := parseDemTarget(f)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func parseDemTarget(tok string) (Target, error) {
	if tok == "^" {
		return Separator, nil
	}
	if len(tok) < 2 {
		return 0, xerr.New(xerr.KindParse, "invalid DEM target %q", tok)
	}
	id, err := strconv.Atoi(tok[1:])
	if err != nil || id < 0 {
		return 0, xerr.New(xerr.KindParse, "invalid DEM target %q", tok)
	}
	switch tok[0] {
	case 'D':
		return DetectorTarget(id), nil
	case 'L':
		return ObservableTarget(id), nil
	default:
		return 0, xerr.New(xerr.KindParse, "invalid DEM target %q", tok)
	}
}
