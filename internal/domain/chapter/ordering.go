package chapter

import (
	"errors"

	"github.com/google/uuid"
)

// ErrOrderMismatch возвращается, когда списки идентификаторов и номеров разной длины.
var ErrOrderMismatch = errors.New("ids and numbers must have the same length")

// NextNumber возвращает номер для нового элемента, добавляемого в конец: max + 1 (1 для пустого списка).
func NextNumber(numbers []int) int {
	max := 0
	for _, n := range numbers {
		if n > max {
			max = n
		}
	}
	return max + 1
}

// Assignment — новый номер для элемента с идентификатором ID.
type Assignment struct {
	ID     uuid.UUID
	Number int
}

// PlanOrder сопоставляет ids[i] и numbers[i] в порядке входа.
// Номера не проверяются на уникальность и непрерывность.
func PlanOrder(ids []uuid.UUID, numbers []int) ([]Assignment, error) {
	if len(ids) != len(numbers) {
		return nil, ErrOrderMismatch
	}
	plan := make([]Assignment, len(ids))
	for i := range ids {
		plan[i] = Assignment{ID: ids[i], Number: numbers[i]}
	}
	return plan, nil
}

// ShiftAfter возвращает индексы элементов, у которых номер больше deleted.
// Каждому из них после удаления нужно уменьшить номер на 1.
func ShiftAfter(numbers []int, deleted int) []int {
	var idx []int
	for i, n := range numbers {
		if n > deleted {
			idx = append(idx, i)
		}
	}
	return idx
}
