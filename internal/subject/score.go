package subject

import "strconv"

// Score is a grade in one subject. Defined scores are 0–100; Unset marks a
// child that is enrolled but not graded yet.
type Score int

const (
	Unset    Score = -1
	MinScore Score = 0
	MaxScore Score = 100
)

// IsDefined reports whether s is a real grade.
func (s Score) IsDefined() bool {
	return s >= MinScore && s <= MaxScore
}

// IsValid reports whether s may be stored: a defined grade or Unset.
func (s Score) IsValid() bool {
	return s == Unset || s.IsDefined()
}

func (s Score) String() string {
	if s == Unset {
		return "N/A"
	}
	return strconv.Itoa(int(s))
}

// DefinedScore checks that v is a grade a user may record.
func DefinedScore(v int) (Score, error) {
	s := Score(v)
	if !s.IsDefined() {
		return 0, invalidScore(v)
	}
	return s, nil
}
