package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stemsi/kinderbook/internal/command"
	"github.com/stemsi/kinderbook/internal/subject"
)

func newParser() (*Parser, *subject.Registry) {
	r := subject.NewDefaultRegistry()
	return New(r), r
}

func TestTokenize(t *testing.T) {
	a := Tokenize("1 2  s/math s/ Science  g/90", PrefixSubject, PrefixScore)

	if a.Preamble() != "1 2" {
		t.Fatalf("preamble: got %q", a.Preamble())
	}
	if got := a.All(PrefixSubject); !reflect.DeepEqual(got, []string{"math", "Science"}) {
		t.Fatalf("subjects: got %v", got)
	}
	if v, ok := a.Value(PrefixScore); !ok || v != "90" {
		t.Fatalf("score: got %q ok=%v", v, ok)
	}
	if dups := a.Duplicates(PrefixSubject, PrefixScore); !reflect.DeepEqual(dups, []Prefix{PrefixSubject}) {
		t.Fatalf("duplicates: got %v", dups)
	}
}

func TestTokenize_PrefixMustStartWord(t *testing.T) {
	a := Tokenize(" a/Blk 5 data/x c/Alex", PrefixAddress, PrefixChild)
	if v, _ := a.Value(PrefixAddress); v != "Blk 5 data/x" {
		t.Fatalf("address: got %q", v)
	}
	if v, _ := a.Value(PrefixChild); v != "Alex" {
		t.Fatalf("child: got %q", v)
	}
}

func TestParse_Enroll(t *testing.T) {
	p, r := newParser()

	cmd, err := p.Parse("enroll 3 1 3 s/math s/SCIENCE s/Math")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	enroll, ok := cmd.(command.Enroll)
	if !ok {
		t.Fatalf("expected Enroll, got %T", cmd)
	}
	if want := []command.Index{3, 1}; !reflect.DeepEqual(enroll.Targets.Indexes, want) {
		t.Fatalf("indexes: want %v, got %v", want, enroll.Targets.Indexes)
	}
	math, _ := r.Resolve("math")
	science, _ := r.Resolve("science")
	if !reflect.DeepEqual(enroll.Subjects, []*subject.Subject{math, science}) {
		t.Fatalf("subjects: got %v", enroll.Subjects)
	}

	cmd, err = p.Parse("UNENROLL All s/english")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if un, ok := cmd.(command.Unenroll); !ok || !un.Targets.All {
		t.Fatalf("expected unenroll all, got %#v", cmd)
	}
}

func TestParse_EnrollErrors(t *testing.T) {
	p, _ := newParser()

	tests := []struct {
		input string
		want  error
	}{
		{"enroll s/math", ErrInvalidFormat},
		{"enroll 1 2", ErrInvalidFormat},
		{"enroll 0 s/math", ErrInvalidFormat},
		{"enroll -1 s/math", ErrInvalidFormat},
		{"enroll one s/math", ErrInvalidFormat},
		{"enroll 1 s/math x/extra", ErrInvalidFormat},
		{"enroll 1 s/history", subject.ErrUnknownSubject},
		{"setscore 1 s/math", ErrInvalidFormat},
		{"setscore 1 s/math s/english g/5", ErrInvalidFormat},
		{"setscore 1 s/art g/5", subject.ErrUnknownSubject},
		{"setscore 1 s/math g/101", subject.ErrInvalidScore},
		{"setscore 1 s/math g/-2", subject.ErrInvalidScore},
		{"setscore 1 s/math g/abc", subject.ErrInvalidScore},
	}
	for _, tt := range tests {
		if _, err := p.Parse(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q): want %v, got %v", tt.input, tt.want, err)
		}
	}
}

func TestParse_SetScore(t *testing.T) {
	p, _ := newParser()
	for _, tc := range []struct {
		input string
		score subject.Score
	}{
		{"setscore 1 2 s/math g/0", 0},
		{"setscore all s/Math g/100", 100},
	} {
		cmd, err := p.Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.input, err)
		}
		set := cmd.(command.SetScore)
		if set.Score != tc.score || set.Subject.Name() != subject.Math {
			t.Fatalf("Parse(%q): got %+v", tc.input, set)
		}
	}
}

func TestParse_AddAndEdit(t *testing.T) {
	p, _ := newParser()

	cmd, err := p.Parse("add c/Alex Yeoh b/Sam Yeoh p/98765432 e/sam@example.com a/311, Clementi Ave 2 r/peanuts r/milk t/twins")
	if err != nil {
		t.Fatalf("Parse add: %v", err)
	}
	add := cmd.(command.Add)
	if add.Fields.ChildName != "Alex Yeoh" || add.Fields.Address != "311, Clementi Ave 2" {
		t.Fatalf("unexpected fields %+v", add.Fields)
	}
	if !reflect.DeepEqual(add.Fields.Allergies, []string{"peanuts", "milk"}) {
		t.Fatalf("allergies: got %v", add.Fields.Allergies)
	}

	cmd, err = p.Parse("edit 2 p/91234567 t/")
	if err != nil {
		t.Fatalf("Parse edit: %v", err)
	}
	edit := cmd.(command.Edit)
	if edit.Index != 2 || edit.Patch.Phone == nil || *edit.Patch.Phone != "91234567" {
		t.Fatalf("unexpected edit %+v", edit)
	}
	if edit.Patch.Tags == nil || len(*edit.Patch.Tags) != 0 {
		t.Fatalf("expected tags cleared, got %v", edit.Patch.Tags)
	}
	if edit.Patch.ChildName != nil {
		t.Fatalf("child name should be untouched")
	}
}

func TestParse_AddAndEditErrors(t *testing.T) {
	p, _ := newParser()

	tests := []struct {
		input string
		want  error
	}{
		{"add c/Alex b/Sam p/98765432 e/sam@example.com", ErrInvalidFormat},
		{"add c/Alex c/Al b/Sam p/98765432 e/sam@example.com a/Home", ErrInvalidFormat},
		{"add c/R2D2 b/Sam p/98765432 e/sam@example.com a/Home", ErrInvalidValue},
		{"add c/Alex b/Sam p/98 e/sam@example.com a/Home", ErrInvalidValue},
		{"add c/Alex b/Sam p/98765432 e/not-an-email a/Home", ErrInvalidValue},
		{"add c/Alex b/Sam p/98765432 e/sam@example.com a/Home t/bad!", ErrInvalidValue},
		{"edit 1", command.ErrNothingToEdit},
		{"edit c/Alex", ErrInvalidFormat},
		{"edit 1 p/12 ", ErrInvalidValue},
	}
	for _, tt := range tests {
		if _, err := p.Parse(tt.input); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q): want %v, got %v", tt.input, tt.want, err)
		}
	}
}

func TestParse_Other(t *testing.T) {
	p, _ := newParser()

	cmd, err := p.Parse("delete 3 1 3")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := cmd.(command.Delete).Indexes; !reflect.DeepEqual(got, []command.Index{3, 1}) {
		t.Fatalf("delete indexes: got %v", got)
	}

	cmd, err = p.Parse("find c/alex yeoh r/peanuts")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	pred := cmd.(command.Find).Predicate
	if !reflect.DeepEqual(pred.ChildName, []string{"alex", "yeoh"}) || !reflect.DeepEqual(pred.Allergies, []string{"peanuts"}) {
		t.Fatalf("find predicate: %+v", pred)
	}

	if _, err := p.Parse("find"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("empty find: got %v", err)
	}
	if cmd, _ := p.Parse("scores 2"); cmd.(command.Scores).Index != 2 {
		t.Fatalf("scores: got %#v", cmd)
	}
	if cmd, _ := p.Parse("list"); cmd.Name() != "list" {
		t.Fatalf("list: got %#v", cmd)
	}
	if cmd, _ := p.Parse("clear"); cmd.Name() != "clear" {
		t.Fatalf("clear: got %#v", cmd)
	}
	if _, err := p.Parse("dance 1"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("unknown: got %v", err)
	}
}

func TestError_CarriesUsage(t *testing.T) {
	p, _ := newParser()
	_, err := p.Parse("setscore 1 s/math")

	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !strings.Contains(err.Error(), "setscore 1 2 3 s/math g/100") {
		t.Fatalf("usage missing from %q", err.Error())
	}
}
