// Package questions generates interview question sets and caches them by
// request fingerprint.
package questions

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/abhishek622/mockmate/pkg/model"
)

// Fingerprint keys the question cache. Only the presence of a résumé or job
// description is hashed, never their content, so fingerprints stay stable
// across candidates asking for the same kind of interview.
func Fingerprint(role string, level model.ExperienceLevel, format model.SessionType, hasResume, hasJD bool) string {
	resume := "no-resume"
	if hasResume {
		resume = "resume"
	}
	jd := "no-jd"
	if hasJD {
		jd = "jd"
	}
	content := fmt.Sprintf("%s-%s-%s-%s-%s", strings.ToLower(role), level, format, resume, jd)
	return hash36(content)
}

// FingerprintParams is Fingerprint over generator input.
func FingerprintParams(p model.GenerateParams) string {
	return Fingerprint(p.Role, p.ExperienceLevel, p.ResponseFormat, p.HasResume(), p.HasJobDescription())
}

// 32-bit rolling hash over UTF-16 code units with wrap-around, rendered as
// the base-36 absolute value. Rows written by earlier deployments use the
// same encoding.
func hash36(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
