package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	fallbackSubjectSlug = "geral"
	fallbackColorHex    = "#4F46E5"
)

// SubjectMeta summarizes one distinct subject tag across the catalog.
type SubjectMeta struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Lessons int    `json:"lessons"`
}

// SubjectGroup is the lessons of one subject tag in catalog order.
type SubjectGroup struct {
	Slug    string           `json:"slug"`
	Lessons []LessonWithMeta `json:"lessons"`
}

// Featured returns the lessons flagged as featured, in catalog order.
func (s *Store) Featured() []LessonWithMeta {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []LessonWithMeta
	for _, lesson := range s.lessons {
		if lesson.IsFeatured {
			out = append(out, lesson)
		}
	}
	return out
}

// SubjectsMeta derives one entry per distinct subject tag, first-seen
// order. Display name and color come from the joined subject row when
// present, otherwise from the denormalized tag.
func (s *Store) SubjectsMeta() []SubjectMeta {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int)
	var out []SubjectMeta
	for _, lesson := range s.lessons {
		slug := subjectKey(lesson)
		if i, ok := index[slug]; ok {
			out[i].Lessons++
			continue
		}
		name := ""
		color := ""
		if lesson.Subject != nil {
			name = lesson.Subject.Name
			color = lesson.Subject.ColorHex
		}
		if name == "" {
			name = capitalize(lesson.SubjectTag)
		}
		if color == "" {
			color = fallbackColorHex
		}
		index[slug] = len(out)
		out = append(out, SubjectMeta{Slug: slug, Name: name, Color: color, Lessons: 1})
	}
	return out
}

// BySubject groups the lessons by subject tag, preserving catalog order
// within each group and first-seen order across groups.
func (s *Store) BySubject() []SubjectGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int)
	var out []SubjectGroup
	for _, lesson := range s.lessons {
		slug := subjectKey(lesson)
		i, ok := index[slug]
		if !ok {
			i = len(out)
			index[slug] = i
			out = append(out, SubjectGroup{Slug: slug})
		}
		out[i].Lessons = append(out[i].Lessons, lesson)
	}
	return out
}

func subjectKey(lesson LessonWithMeta) string {
	if lesson.SubjectTag != "" {
		return lesson.SubjectTag
	}
	if lesson.Subject != nil && lesson.Subject.Slug != "" {
		return lesson.Subject.Slug
	}
	return fallbackSubjectSlug
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
