package domain

import (
	"time"

	"github.com/google/uuid"
)

// Допустимые значения должности
const (
	DesignationHR      = "HR"
	DesignationManager = "Manager"
	DesignationSales   = "Sales"
)

// Допустимые значения пола
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Допустимые курсы
const (
	CourseMCA = "MCA"
	CourseBCA = "BCA"
	CourseBSC = "BSC"
)

// Employee представляет запись о сотруднике,
// соответствует таблице employees в бд
type Employee struct {
	ID          uuid.UUID `json:"_id" db:"id"`
	UniqueID    int64     `json:"uniqueId" db:"unique_id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Mobile      string    `json:"mobile" db:"mobile"`
	Designation string    `json:"designation" db:"designation"`
	Gender      string    `json:"gender" db:"gender"`
	Course      Courses   `json:"course" db:"course"`
	Image       *string   `json:"image" db:"image"`
	CreatedDate time.Time `json:"createdDate" db:"created_date"`
}

// ImageRef возвращает путь к изображению или пустую строку
func (e *Employee) ImageRef() string {
	if e.Image == nil {
		return ""
	}
	return *e.Image
}

// EmployeeUpdate — результат обновления: сохраненная запись и изображение,
// на которое она ссылалась непосредственно перед обновлением
type EmployeeUpdate struct {
	Employee      *Employee
	PreviousImage string
}

// SupersededImage возвращает прежнее изображение, если обновление его заменило
func (u *EmployeeUpdate) SupersededImage() string {
	if u.PreviousImage == u.Employee.ImageRef() {
		return ""
	}
	return u.PreviousImage
}
