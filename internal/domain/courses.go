package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/lib/pq"
)

// Courses — упорядоченный список курсов без повторов.
// В postgres хранится как text[].
type Courses []string

// Value реализует driver.Valuer
func (c Courses) Value() (driver.Value, error) {
	if c == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(c).Value()
}

// Scan реализует sql.Scanner
func (c *Courses) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan courses: %w", err)
	}
	*c = Courses(arr)
	return nil
}
