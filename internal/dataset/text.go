package dataset

import (
	"fmt"
	"strings"

	"medirag/internal/models"
)

// SearchableText flattens a profile into the natural-language block that gets
// embedded and later echoed back to the language model. Field order and labels
// are part of the behavioral contract: identical profiles must produce
// byte-identical text, or the fingerprint cache would churn on every run.
func SearchableText(p models.DoctorProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "의사명: %s\n", p.DoctorName)
	fmt.Fprintf(&b, "병원: %s\n", p.Hospital)
	fmt.Fprintf(&b, "진료과: %s\n", p.Department)
	fmt.Fprintf(&b, "전문 분야: %s\n", p.Specialty)
	fmt.Fprintf(&b, "주요 진료: %s\n", p.MainFocus)
	fmt.Fprintf(&b, "\n학력:\n%s\n", p.Education)
	fmt.Fprintf(&b, "\n경력:\n%s\n", p.Experience)
	fmt.Fprintf(&b, "\n진료 스타일:\n%s\n", p.TreatmentStyle)
	fmt.Fprintf(&b, "\n특징:\n%s\n", p.Uniqueness)
	fmt.Fprintf(&b, "\n환자 평가:\n%s\n", p.PatientEvaluation)
	fmt.Fprintf(&b, "\n상담 스타일:\n%s\n", p.ConsultationStyle)
	fmt.Fprintf(&b, "\n키워드:\n%s\n", p.Keywords)
	return b.String()
}
