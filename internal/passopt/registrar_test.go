package passopt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Skpow1234/passkit/internal/cliopt"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/util"
	"github.com/rs/zerolog"
)

type fatalRecorder struct {
	errs []error
}

func (f *fatalRecorder) fatal(err error) { f.errs = append(f.errs, err) }

func newOpt() *cliopt.Option[*pass.Descriptor] {
	return cliopt.NewList[*pass.Descriptor]("pass", "pass")
}

func entryArgs(es []Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Arg
	}
	return out
}

func sameArgs(t *testing.T, what string, got, want []string) {
	t.Helper()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestRegistrar_ReplayOnAttach(t *testing.T) {
	reg := pass.NewRegistry()
	reg.Register(desc("a"))
	reg.Register(desc("b"))

	r := New()
	opt := newOpt()
	r.Attach(opt, reg)

	sameArgs(t, "Entries()", entryArgs(r.Entries()), []string{"a", "b"})
	if !opt.Has("a") || !opt.Has("b") {
		t.Error("replayed passes must be legal option values")
	}
}

func TestRegistrar_ForwardsLiveRegistrations(t *testing.T) {
	reg := pass.NewRegistry()
	reg.Register(desc("early"))

	r := New()
	opt := newOpt()
	r.Attach(opt, reg)
	reg.Register(desc("late"))

	sameArgs(t, "Entries()", entryArgs(r.Entries()), []string{"early", "late"})
	if err := opt.Set("late"); err != nil {
		t.Errorf("Set(late): %v", err)
	}
}

func TestRegistrar_ExactlyTheEligibleSet(t *testing.T) {
	reg := pass.NewRegistry()
	reg.Register(desc("licm"))
	reg.Register(&pass.Descriptor{Arg: "", Name: "hidden", New: newNop})
	reg.Register(&pass.Descriptor{Arg: "domtree", Name: "analysis only"})
	reg.Register(desc("gvn"))

	r := New()
	opt := newOpt()
	r.Attach(opt, reg)
	reg.Register(desc("sroa"))

	sameArgs(t, "Entries()", entryArgs(r.Entries()), []string{"licm", "gvn", "sroa"})
	lits := opt.Literals()
	if len(lits) != 3 {
		t.Fatalf("option has %d literals, want 3", len(lits))
	}
	for _, l := range lits {
		if l.Value.Arg != l.Token || l.Help != l.Value.Name {
			t.Errorf("literal %+v does not match its descriptor", l)
		}
	}
}

func TestRegistrar_UnattachedDropsThenReplays(t *testing.T) {
	reg := pass.NewRegistry()
	r := New()
	r.PassRegistered(desc("orphan"))
	if len(r.Entries()) != 0 {
		t.Fatal("unattached registrar must not record entries")
	}

	reg.Register(desc("orphan"))
	r.Attach(newOpt(), reg)
	sameArgs(t, "Entries()", entryArgs(r.Entries()), []string{"orphan"})
}

func TestRegistrar_DuplicateTokenIsFatal(t *testing.T) {
	rec := &fatalRecorder{}
	reg := pass.NewRegistry()
	first := &pass.Descriptor{Arg: "dce", Name: "Dead Code Elimination", New: newNop}
	reg.Register(first)

	r := New(WithFatal(rec.fatal))
	opt := newOpt()
	r.Attach(opt, reg)
	reg.Register(&pass.Descriptor{Arg: "dce", Name: "Other DCE", New: newNop})

	if len(rec.errs) != 1 {
		t.Fatalf("fatal called %d times, want 1", len(rec.errs))
	}
	err := rec.errs[0]
	if !errors.Is(err, util.ErrDuplicatePass) {
		t.Errorf("error %v should wrap ErrDuplicatePass", err)
	}
	var dup *DuplicateTokenError
	if !errors.As(err, &dup) {
		t.Fatalf("error %T is not *DuplicateTokenError", err)
	}
	if dup.Arg != "dce" || dup.Existing != "Dead Code Elimination" || dup.Incoming != "Other DCE" {
		t.Errorf("unexpected conflict details: %+v", dup)
	}
	msg := err.Error()
	for _, s := range []string{"--dce", "Dead Code Elimination", "Other DCE"} {
		if !strings.Contains(msg, s) {
			t.Errorf("message %q should mention %q", msg, s)
		}
	}

	entries := r.Entries()
	if len(entries) != 1 || entries[0].Desc != first {
		t.Error("the first registration must not be overwritten")
	}
	if len(opt.Literals()) != 1 {
		t.Errorf("option has %d literals, want 1", len(opt.Literals()))
	}
}

func TestRegistrar_DuplicateDuringReplay(t *testing.T) {
	rec := &fatalRecorder{}
	reg := pass.NewRegistry()
	reg.Register(desc("gvn"))
	reg.Register(desc("gvn"))

	r := New(WithFatal(rec.fatal))
	r.Attach(newOpt(), reg)
	if len(rec.errs) != 1 {
		t.Fatalf("fatal called %d times, want 1", len(rec.errs))
	}
}

func TestRegistrar_DuplicateIgnoredWhenFiltered(t *testing.T) {
	rec := &fatalRecorder{}
	reg := pass.NewRegistry()
	reg.Register(desc("inline"))
	reg.Register(desc("inline"))
	reg.Register(desc("dse"))

	r := New(WithFilter(AllowList("dse")), WithFatal(rec.fatal))
	r.Attach(newOpt(), reg)
	if len(rec.errs) != 0 {
		t.Errorf("filtered duplicates must not be fatal, got %v", rec.errs)
	}
	sameArgs(t, "Entries()", entryArgs(r.Entries()), []string{"dse"})
}

func TestRegistrar_AllowListVariant(t *testing.T) {
	reg := pass.NewRegistry()
	for _, a := range []string{"dse", "anders_aa", "inline"} {
		reg.Register(desc(a))
	}
	r := New(WithFilter(AllowList("dse", "anders_aa")))
	r.Attach(newOpt(), reg)
	sameArgs(t, "Entries()", entryArgs(r.Entries()), []string{"dse", "anders_aa"})
}

func TestRegistrar_RenderHelpSortsWithoutMutating(t *testing.T) {
	reg := pass.NewRegistry()
	reg.Register(&pass.Descriptor{Arg: "mem2reg", Name: "Promote Memory to Register", New: newNop})
	reg.Register(&pass.Descriptor{Arg: "dce", Name: "Dead Code Elimination", New: newNop})
	reg.Register(&pass.Descriptor{Arg: "adce", Name: "Aggressive Dead Code Elimination", New: newNop})

	r := New()
	opt := newOpt()
	r.Attach(opt, reg)

	var first, second bytes.Buffer
	if err := r.RenderHelp(&first, 0); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderHelp(&second, 0); err != nil {
		t.Fatal(err)
	}

	want := "  adce     - Aggressive Dead Code Elimination\n" +
		"  dce      - Dead Code Elimination\n" +
		"  mem2reg  - Promote Memory to Register\n"
	if first.String() != want {
		t.Errorf("RenderHelp:\n%s\nwant:\n%s", first.String(), want)
	}
	if first.String() != second.String() {
		t.Error("rendering twice must produce identical output")
	}

	sameArgs(t, "Entries()", entryArgs(r.Entries()), []string{"mem2reg", "dce", "adce"})
	var lits []string
	for _, l := range opt.Literals() {
		lits = append(lits, l.Token)
	}
	sameArgs(t, "option literals", lits, []string{"mem2reg", "dce", "adce"})
	sameArgs(t, "Sorted()", entryArgs(r.Sorted()), []string{"adce", "dce", "mem2reg"})
}

func TestRegistrar_TwoOptionsShareOneRegistry(t *testing.T) {
	reg := pass.NewRegistry()
	all := New()
	some := New(WithFilter(AllowList("b")))
	all.Attach(newOpt(), reg)
	reg.Register(desc("a"))
	some.Attach(newOpt(), reg)
	reg.Register(desc("b"))

	sameArgs(t, "all", entryArgs(all.Entries()), []string{"a", "b"})
	sameArgs(t, "some", entryArgs(some.Entries()), []string{"b"})
}

func TestRegistrar_LogsEachFieldOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel).With().Str("option", "pass").Logger()
	reg := pass.NewRegistry()
	New(WithLogger(logger)).Attach(newOpt(), reg)
	reg.Register(desc("licm"))

	line := buf.String()
	if !strings.Contains(line, `"pass":"licm"`) {
		t.Fatalf("missing admission log:\n%s", line)
	}
	if n := strings.Count(line, `"option"`); n != 1 {
		t.Errorf("option field appears %d times:\n%s", n, line)
	}
}
