package pager

// Criterion определяет проверку, имеет ли пользователь право управлять
// сессией пагинации.
type Criterion interface {
	Matches(userID int64) bool
}

// CriterionFunc адаптирует обычную функцию к интерфейсу Criterion.
type CriterionFunc func(userID int64) bool

// Matches реализует интерфейс Criterion.
func (f CriterionFunc) Matches(userID int64) bool {
	return f(userID)
}

// SameUser разрешает управление только пользователю, открывшему сессию.
func SameUser(ownerID int64) Criterion {
	return CriterionFunc(func(userID int64) bool {
		return userID == ownerID
	})
}

// AllOf объединяет критерии по И: кандидат должен пройти все проверки.
// Пустой список пропускает всех.
func AllOf(criteria ...Criterion) Criterion {
	return CriterionFunc(func(userID int64) bool {
		for _, c := range criteria {
			if !c.Matches(userID) {
				return false
			}
		}
		return true
	})
}
