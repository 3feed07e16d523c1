package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
)

type courseKind int

const (
	courseDelimited courseKind = iota
	courseSequence
)

// CourseInput — поле course в том виде, в котором оно пришло от клиента:
// либо одна строка через запятую, либо список строк.
type CourseInput struct {
	kind      courseKind
	delimited string
	sequence  []string
}

// DelimitedCourses создает вход из строки вида "MCA,BCA"
func DelimitedCourses(s string) CourseInput {
	return CourseInput{kind: courseDelimited, delimited: s}
}

// CourseSequence создает вход из списка значений
func CourseSequence(items ...string) CourseInput {
	return CourseInput{kind: courseSequence, sequence: items}
}

// CourseFormValues строит вход из значений multipart-формы:
// одно значение считается строкой через запятую, несколько — списком.
func CourseFormValues(values []string) CourseInput {
	if len(values) == 1 {
		return DelimitedCourses(values[0])
	}
	return CourseSequence(values...)
}

// UnmarshalJSON принимает и строку, и массив строк
func (c *CourseInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = CourseSequence()
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("course: %w", err)
		}
		*c = DelimitedCourses(s)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("course must be a string or an array of strings: %w", err)
	}
	*c = CourseSequence(items...)
	return nil
}

// NormalizeCourses приводит вход к каноническому списку: пробелы обрезаны,
// пустые значения и повторы удалены, порядок первого вхождения сохранен.
// Повторная нормализация результата ничего не меняет.
func NormalizeCourses(in CourseInput) domain.Courses {
	var items []string
	switch in.kind {
	case courseDelimited:
		items = strings.Split(in.delimited, ",")
	default:
		items = in.sequence
	}
	return normalizeCourseList(items)
}

func normalizeCourseList(items []string) domain.Courses {
	out := make(domain.Courses, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
