package xmlprinter

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/vanilla/internal/lexer"
	"github.com/cwbudde/vanilla/internal/parser"
)

func parseForPrinting(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(lexer.New(src))
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return Print(program)
}

func TestPrintArithmeticExpression(t *testing.T) {
	snaps.MatchSnapshot(t, parseForPrinting(t, `1 + 2 * 3;`))
}

func TestPrintFunctionDefWithDefaults(t *testing.T) {
	snaps.MatchSnapshot(t, parseForPrinting(t, `
		function add(a, b = 10) {
			return a + b;
		}
	`))
}

func TestPrintIfElseifElse(t *testing.T) {
	snaps.MatchSnapshot(t, parseForPrinting(t, `
		if (a) { 1; }
		elseif (b) { 2; }
		else { 3; }
	`))
}

func TestPrintNativeFunctionExpressionAttributesAreOrderedDeterministically(t *testing.T) {
	out := parseForPrinting(t, `native "puts" from "libc.so.6" declared "int32"("const char*");`)
	snaps.MatchSnapshot(t, out)
}

func TestPrintSubscriptAndMemberChain(t *testing.T) {
	snaps.MatchSnapshot(t, parseForPrinting(t, `a[0].length;`))
}
