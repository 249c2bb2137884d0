package entry

import (
	"regexp"
	"strings"
	"testing"

	"github.com/Klingon-tech/klingsend/pkg/amount"
)

// shapePattern is the reference language for accepted field text, used as
// an oracle against the hand-rolled single-pass check.
var shapePattern = regexp.MustCompile(`^\d*[.,]?\d*$`)

func TestAllow(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		inserted    string
		kind        EditKind
		maxDecimals uint8
		want        bool
	}{
		{"first digit", "", "1", EditInsert, 2, true},
		{"append digit", "1", "2", EditInsert, 2, true},
		{"dot after digit", "1", ".", EditInsert, 2, true},
		{"comma after digit", "1", ",", EditInsert, 2, true},
		{"leading dot", "", ".", EditInsert, 2, true},
		{"digit after dot", "1.", "5", EditInsert, 2, true},
		{"fills precision", "1.2", "3", EditInsert, 2, true},
		{"exceeds precision", "1.23", "4", EditInsert, 2, false},
		{"comma exceeds precision", "1,23", "4", EditInsert, 2, false},
		{"second dot", "1.2", ".", EditInsert, 2, false},
		{"second comma", "1,2", ",", EditInsert, 2, false},
		{"mixed separators", "1.2", ",", EditInsert, 2, false},
		{"letter", "1", "a", EditInsert, 2, false},
		{"minus", "", "-", EditInsert, 2, false},
		{"space", "1", " ", EditInsert, 2, false},
		{"double leading zero", "0", "0", EditInsert, 2, false},
		{"zero dot zero", "0.", "0", EditInsert, 2, true},
		{"leading zero then digit", "0", "5", EditInsert, 2, true},
		{"paste fragment", "1", ".25", EditInsert, 2, true},
		{"paste too precise", "", "1.234", EditInsert, 2, false},
		{"paste malformed", "", "1a2", EditInsert, 2, false},
		{"paste with comma", "", "12,5", EditInsert, 2, true},
		{"dot at zero precision", "1", ".", EditInsert, 0, true},
		{"fraction at zero precision", "1.", "5", EditInsert, 0, false},
		{"delete always", "1..2", "", EditDelete, 2, true},
		{"delete over-precise remainder", "1.2345", "", EditDelete, 2, true},
		{"delete to empty", "", "", EditDelete, 2, true},
		{"delete leaves double zero", "00", "", EditDelete, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := EditProposal{Current: tt.current, Inserted: tt.inserted, Kind: tt.kind}
			got := Allow(p, tt.maxDecimals)
			if got != tt.want {
				t.Errorf("Allow({%q, %q, %s}, %d) = %v, want %v",
					tt.current, tt.inserted, tt.kind, tt.maxDecimals, got, tt.want)
			}
		})
	}
}

func TestProposed(t *testing.T) {
	tests := []struct {
		name string
		p    EditProposal
		want string
	}{
		{"insert appends", EditProposal{Current: "1.2", Inserted: "5", Kind: EditInsert}, "1.25"},
		{"insert into empty", EditProposal{Current: "", Inserted: "7", Kind: EditInsert}, "7"},
		{"delete carries reduced text", EditProposal{Current: "1.2", Inserted: "", Kind: EditDelete}, "1.2"},
		{"delete ignores inserted", EditProposal{Current: "1", Inserted: "x", Kind: EditDelete}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Proposed(); got != tt.want {
				t.Errorf("Proposed() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestAllowAgainstOracle checks every decision against the reference rules:
// accepted text matches the shape language, respects the precision bound,
// and has no duplicate leading zero; rejected text violates at least one.
func TestAllowAgainstOracle(t *testing.T) {
	inputs := []string{
		"", "0", "1", "12", "05", "00", "000",
		".", ",", "1.", "1,", ".5", ",5",
		"1.2", "1,2", "1.23", "1.234", "0.00", "0,00",
		"1..2", "1.2,3", "1,2.3", "..",
		"a", "1a", "-1", "+1", "1 2", "1.2e3",
	}
	const maxDecimals = 2
	for _, s := range inputs {
		p := EditProposal{Current: "", Inserted: s, Kind: EditInsert}
		got := Allow(p, maxDecimals)

		ok := shapePattern.MatchString(s) &&
			amount.FractionLength(s) <= maxDecimals &&
			!strings.HasPrefix(s, "00")
		if got != ok {
			t.Errorf("Allow(%q) = %v, oracle says %v", s, got, ok)
		}
	}
}
