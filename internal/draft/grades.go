package draft

type Grade string

const (
	GradeAPlus  Grade = "A+"
	GradeA      Grade = "A"
	GradeAMinus Grade = "A-"
	GradeBPlus  Grade = "B+"
	GradeB      Grade = "B"
	GradeBMinus Grade = "B-"
	GradeCPlus  Grade = "C+"
	GradeC      Grade = "C"
	GradeCMinus Grade = "C-"
	GradeDPlus  Grade = "D+"
	GradeD      Grade = "D"
	GradeDMinus Grade = "D-"
	GradeF      Grade = "F"
)

type gradeThreshold struct {
	min   float64
	grade Grade
}

// gradeTable is ordered best first; a score equal to a minimum earns that grade.
var gradeTable = []gradeThreshold{
	{95, GradeAPlus},
	{90, GradeA},
	{85, GradeAMinus},
	{80, GradeBPlus},
	{75, GradeB},
	{70, GradeBMinus},
	{65, GradeCPlus},
	{60, GradeC},
	{55, GradeCMinus},
	{50, GradeDPlus},
	{45, GradeD},
	{40, GradeDMinus},
}

// GradeFor maps a 0-100 score to a letter grade.
func GradeFor(score float64) Grade {
	for _, t := range gradeTable {
		if score >= t.min {
			return t.grade
		}
	}
	return GradeF
}

// Grades lists every grade from best to worst
func Grades() []Grade {
	out := make([]Grade, 0, len(gradeTable)+1)
	for _, t := range gradeTable {
		out = append(out, t.grade)
	}
	return append(out, GradeF)
}

// Rank is the grade's position in Grades(), 0 being the best.
func (g Grade) Rank() int {
	for i, grade := range Grades() {
		if grade == g {
			return i
		}
	}
	return len(gradeTable)
}
