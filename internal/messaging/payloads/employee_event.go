package payloads

import "time"

// Типы событий
const (
	EventEmployeeCreated = "employee.created"
	EventEmployeeUpdated = "employee.updated"
	EventEmployeeDeleted = "employee.deleted"
	EventImageDiscarded  = "image.discarded"
)

// EmployeeEvent публикуется после изменения записи сотрудника
// и используется воркером для удаления неиспользуемых изображений.
type EmployeeEvent struct {
	Type            string    `json:"type"`
	EmployeeID      string    `json:"employee_id,omitempty"`
	UniqueID        int64     `json:"unique_id,omitempty"`
	Image           string    `json:"image,omitempty"`
	SupersededImage string    `json:"superseded_image,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// UnreferencedImage возвращает изображение, на которое после события
// больше не ссылается ни одна запись
func (e EmployeeEvent) UnreferencedImage() string {
	switch e.Type {
	case EventEmployeeUpdated:
		if e.SupersededImage != e.Image {
			return e.SupersededImage
		}
	case EventEmployeeDeleted, EventImageDiscarded:
		return e.Image
	}
	return ""
}
