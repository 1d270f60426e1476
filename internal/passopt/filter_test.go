package passopt

import (
	"context"
	"testing"

	"github.com/Skpow1234/passkit/internal/pass"
)

func newNop() pass.Pass {
	return pass.Func(func(_ context.Context, in []byte) ([]byte, error) { return in, nil })
}

func desc(arg string) *pass.Descriptor {
	return &pass.Descriptor{Arg: arg, Name: arg + " pass", New: newNop}
}

func TestAdmit_BaseRule(t *testing.T) {
	always := func(*pass.Descriptor) bool { return true }
	tests := []struct {
		name   string
		d      *pass.Descriptor
		refine Filter
		want   bool
	}{
		{"eligible", desc("dce"), nil, true},
		{"eligible accept all", desc("dce"), AcceptAll, true},
		{"empty arg", &pass.Descriptor{Name: "anonymous", New: newNop}, always, false},
		{"not constructible", &pass.Descriptor{Arg: "domtree", Name: "Dominator Tree"}, always, false},
		{"nil descriptor", nil, always, false},
		{"refinement rejects", desc("dce"), func(*pass.Descriptor) bool { return false }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Admit(tt.d, tt.refine); got != tt.want {
				t.Errorf("Admit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowList(t *testing.T) {
	f := AllowList("dse", "anders_aa")
	tests := []struct {
		arg  string
		want bool
	}{
		{"dse", true},
		{"anders_aa", true},
		{"inline", false},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			if got := Admit(desc(tt.arg), f); got != tt.want {
				t.Errorf("Admit(%s) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// A plain substring check against "-optimize -dse" would accept "opt";
// membership must be exact.
func TestAllowList_ExactMembershipNotSubstring(t *testing.T) {
	f := AllowList(ParseAllowList("-optimize -dse")...)
	for _, arg := range []string{"opt", "optimize-more", "ds", "e"} {
		if Admit(desc(arg), f) {
			t.Errorf("Admit(%q) = true, want false", arg)
		}
	}
	if !Admit(desc("optimize"), f) {
		t.Error("Admit(optimize) = false, want true")
	}
}

func TestAllowList_CopiesInput(t *testing.T) {
	list := []string{"dse"}
	f := AllowList(list...)
	list[0] = "inline"
	if !Admit(desc("dse"), f) {
		t.Error("allow list must not follow later changes to its input")
	}
	if Admit(desc("inline"), f) {
		t.Error("allow list must not follow later changes to its input")
	}
}

func TestParseAllowList(t *testing.T) {
	got := ParseAllowList("  -anders_aa\t-dse  inline -- ")
	want := []string{"anders_aa", "dse", "inline"}
	if len(got) != len(want) {
		t.Fatalf("ParseAllowList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseAllowList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := ParseAllowList(""); len(got) != 0 {
		t.Errorf("ParseAllowList(\"\") = %v, want empty", got)
	}
	if got := ParseAllowList("-hex,base64"); len(got) != 2 || got[0] != "hex" || got[1] != "base64" {
		t.Errorf("ParseAllowList with commas = %v, want [hex base64]", got)
	}
}
