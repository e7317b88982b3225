package mach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// ErrLabelSyntax is returned when label source cannot be typeset.
var ErrLabelSyntax = errors.New("mach: label syntax")

// Label is a math caption typeset from a small TeX subset: Greek letters and
// common symbols, \frac, \sqrt, \text, ^ and _ with or without braces, and
// \\ line breaks. Conversion happens once at construction; Render only draws.
//
// Labels are drawn in screen space at a Cartesian anchor and are not scaled
// by the zoom level.
type Label struct {
	canvas *Canvas
	source string
	text   string
	hidden bool
}

// NewLabel typesets src for drawing on c. Malformed source returns an error
// wrapping ErrLabelSyntax.
func NewLabel(ctx context.Context, c *Canvas, src string) (*Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := typesetTeX(src)
	if err != nil {
		return nil, err
	}
	return &Label{canvas: c, source: src, text: out}, nil
}

// LoadLabels typesets every source concurrently. Labels are returned in the
// order of srcs; the first failure cancels the rest.
func LoadLabels(ctx context.Context, c *Canvas, srcs ...string) ([]*Label, error) {
	labels := make([]*Label, len(srcs))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range srcs {
		g.Go(func() error {
			l, err := NewLabel(ctx, c, src)
			if err != nil {
				return fmt.Errorf("label %d: %w", i, err)
			}
			labels[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return labels, nil
}

// Source returns the TeX source the label was built from.
func (l *Label) Source() string { return l.source }

// Text returns the typeset display text.
func (l *Label) Text() string { return l.text }

// Render draws the label with its anchor at Cartesian (x, y). Nothing is
// drawn for an undefined anchor or a hidden label.
func (l *Label) Render(x, y float64, color Color, alignX, alignY Align) {
	if l.hidden {
		return
	}
	dx, dy, ok := l.canvas.CartesianToDevice(x, y)
	if !ok {
		return
	}
	l.canvas.Text(l.text, dx, dy, color, alignX, alignY)
}

// Hide stops the label from drawing until Show is called.
func (l *Label) Hide() { l.hidden = true }

// Show undoes Hide.
func (l *Label) Show() { l.hidden = false }

// Hidden reports whether the label is hidden.
func (l *Label) Hidden() bool { return l.hidden }

// GraphPointLabel draws a point marker at (x, y) like GraphPoint, captioned
// with l instead of plain text.
func GraphPointLabel(c *Canvas, x, y float64, color Color, l *Label, alignX, alignY Align) {
	dx, dy, ok := c.CartesianToDevice(x, y)
	if !ok {
		return
	}
	drawPointMarker(c, dx, dy, color)
	if l == nil || l.hidden {
		return
	}
	tx := Lerp(dx-labelGapBefore, dx+labelGapAfter, float64(alignX))
	ty := Lerp(dy-labelGapAfter, dy, float64(alignY))
	c.Text(l.text, tx, ty, ColorWhite.WithAlpha(color.A), alignX, alignY)
}

const (
	labelGapBefore = 5
	labelGapAfter  = 10
)

var texSymbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"pi": "π", "varpi": "ϖ", "rho": "ρ", "sigma": "σ", "varsigma": "ς",
	"tau": "τ", "upsilon": "υ", "phi": "φ", "varphi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",

	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ", "Psi": "Ψ",
	"Omega": "Ω",

	"cdot": "·", "times": "×", "div": "÷", "pm": "±", "mp": "∓",
	"infty": "∞", "leq": "≤", "le": "≤", "geq": "≥", "ge": "≥",
	"neq": "≠", "ne": "≠", "approx": "≈", "equiv": "≡", "sim": "∼",
	"propto": "∝", "to": "→", "rightarrow": "→", "leftarrow": "←",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "iff": "⇔", "mapsto": "↦",
	"partial": "∂", "nabla": "∇", "sum": "∑", "prod": "∏", "int": "∫",
	"oint": "∮", "in": "∈", "notin": "∉", "subset": "⊂", "subseteq": "⊆",
	"cup": "∪", "cap": "∩", "forall": "∀", "exists": "∃", "emptyset": "∅",
	"circ": "∘", "degree": "°", "ldots": "…", "dots": "…", "cdots": "⋯",
	"prime": "′", "angle": "∠", "perp": "⊥", "parallel": "∥", "ell": "ℓ",
	"hbar": "ℏ", "neg": "¬", "land": "∧", "lor": "∨",

	"sin": "sin", "cos": "cos", "tan": "tan", "cot": "cot", "sec": "sec",
	"csc": "csc", "arcsin": "arcsin", "arccos": "arccos", "arctan": "arctan",
	"sinh": "sinh", "cosh": "cosh", "tanh": "tanh", "log": "log", "ln": "ln",
	"exp": "exp", "lim": "lim", "max": "max", "min": "min", "det": "det",

	"quad": "  ", "qquad": "    ",
}

// Sizing and delimiter commands that only affect layout.
var texIgnored = map[string]bool{
	"left": true, "right": true, "big": true, "Big": true, "bigg": true,
	"Bigg": true, "displaystyle": true, "limits": true,
}

// Commands whose single argument is copied through unchanged.
var texPassThrough = map[string]bool{
	"text": true, "mathrm": true, "mathbf": true, "mathit": true,
	"mathsf": true, "mathtt": true, "operatorname": true, "boldsymbol": true,
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵', '6': '⁶',
	'7': '⁷', '8': '⁸', '9': '⁹', '+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽',
	')': '⁾', 'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅', '6': '₆',
	'7': '₇', '8': '₈', '9': '₉', '+': '₊', '-': '₋', '=': '₌', '(': '₍',
	')': '₎', 'a': 'ₐ', 'e': 'ₑ', 'o': 'ₒ', 'x': 'ₓ', 'h': 'ₕ', 'k': 'ₖ',
	'l': 'ₗ', 'm': 'ₘ', 'n': 'ₙ', 'p': 'ₚ', 's': 'ₛ', 't': 'ₜ', 'i': 'ᵢ',
	'j': 'ⱼ', 'r': 'ᵣ', 'u': 'ᵤ', 'v': 'ᵥ',
}

// typesetTeX converts src to display text.
func typesetTeX(src string) (string, error) {
	p := &texParser{src: src}
	out, err := p.group(false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

type texParser struct {
	src string
	pos int
}

func (p *texParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: offset %d: %s", ErrLabelSyntax, p.pos, fmt.Sprintf(format, args...))
}

// group converts until the end of input, or until the closing brace when
// nested is true.
func (p *texParser) group(nested bool) (string, error) {
	var b strings.Builder
	space := false
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if unicode.IsSpace(r) {
			space = true
			p.pos += size
			continue
		}
		if space && b.Len() > 0 && r != '}' {
			b.WriteByte(' ')
		}
		space = false

		switch r {
		case '}':
			if !nested {
				return "", p.errorf("unexpected }")
			}
			p.pos++
			return b.String(), nil
		case '{':
			p.pos++
			s, err := p.group(true)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case '\\':
			s, err := p.command()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case '^', '_':
			p.pos++
			arg, err := p.argument()
			if err != nil {
				return "", err
			}
			b.WriteString(script(arg, r == '^'))
		case '~':
			p.pos++
			b.WriteByte(' ')
		default:
			p.pos += size
			b.WriteRune(r)
		}
	}
	if nested {
		return "", p.errorf("missing }")
	}
	return b.String(), nil
}

// argument reads one braced group, command or single rune.
func (p *texParser) argument() (string, error) {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", p.errorf("missing argument")
	}
	switch p.src[p.pos] {
	case '{':
		p.pos++
		return p.group(true)
	case '}':
		return "", p.errorf("missing argument")
	case '\\':
		return p.command()
	}
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return string(r), nil
}

// command converts the control sequence at p.pos.
func (p *texParser) command() (string, error) {
	p.pos++
	if p.pos >= len(p.src) {
		return "", p.errorf("trailing \\")
	}

	c := p.src[p.pos]
	if !isASCIILetter(c) {
		p.pos++
		switch c {
		case ',', ':', ';', ' ':
			return " ", nil
		case '!':
			return "", nil
		case '\\':
			return "\n", nil
		case '{', '}', '%', '$', '&', '#', '_', '|':
			return string(c), nil
		}
		return "", p.errorf("unknown command \\%c", c)
	}

	start := p.pos
	for p.pos < len(p.src) && isASCIILetter(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]

	if s, ok := texSymbols[name]; ok {
		return s, nil
	}
	switch {
	case texIgnored[name]:
		return "", nil
	case texPassThrough[name]:
		return p.argument()
	case name == "frac" || name == "dfrac" || name == "tfrac":
		num, err := p.argument()
		if err != nil {
			return "", err
		}
		den, err := p.argument()
		if err != nil {
			return "", err
		}
		return parenthesize(num) + "/" + parenthesize(den), nil
	case name == "sqrt":
		arg, err := p.argument()
		if err != nil {
			return "", err
		}
		return "√" + parenthesize(arg), nil
	}
	return "", p.errorf("unknown command \\%s", name)
}

// script renders arg as a superscript or subscript. Unicode has no raised or
// lowered form for most letters; when any rune lacks one the whole argument
// falls back to caret or underscore notation.
func script(arg string, super bool) string {
	table, mark := subscripts, "_"
	if super {
		table, mark = superscripts, "^"
	}
	var b strings.Builder
	for _, r := range arg {
		m, ok := table[r]
		if !ok {
			return mark + parenthesize(arg)
		}
		b.WriteRune(m)
	}
	return b.String()
}

// parenthesize wraps s in parentheses unless it is a single rune.
func parenthesize(s string) string {
	if utf8.RuneCountInString(s) <= 1 {
		return s
	}
	return "(" + s + ")"
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
