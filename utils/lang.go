package utils

import (
	"fmt"

	"golang.org/x/text/language"
)

// CanonicalLanguage แปลง "EN-us" -> "en-US" และปฏิเสธ tag ที่ไม่ถูกต้อง
func CanonicalLanguage(s string) (string, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid language %q", s)
	}
	return tag.String(), nil
}

// CanonicalLanguages ตัดตัวซ้ำ คงลำดับเดิม
func CanonicalLanguages(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		l, err := CanonicalLanguage(s)
		if err != nil {
			return nil, err
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, nil
}

// MatchLanguage หา tag ใน supported ที่ตรงกับ requested มากที่สุด
// requested ไม่ต้อง canonical ("th-th", "TH" ก็ได้) ไม่ตรงเลย = false
func MatchLanguage(requested string, supported []string) (string, bool) {
	req, err := language.Parse(requested)
	if err != nil {
		return "", false
	}
	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, s := range supported {
		t, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, t)
		names = append(names, s)
	}
	if len(tags) == 0 {
		return "", false
	}
	_, idx, conf := language.NewMatcher(tags).Match(req)
	if conf == language.No {
		return "", false
	}
	return names[idx], true
}
