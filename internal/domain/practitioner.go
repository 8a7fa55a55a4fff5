package domain

// Practitioner represents static reference data about a practitioner
// Данные неизменяемы в рантайме и принадлежат конфигурации, не движку
type Practitioner struct {
	ID                     string
	Name                   string
	Title                  string
	SessionPrice           float64
	Currency               string
	SessionDurationMinutes int
}

// Practitioners справочник практикующих, загруженный из конфигурации
type Practitioners []Practitioner

// ByID находит практикующего по идентификатору
func (p Practitioners) ByID(id string) (Practitioner, bool) {
	for _, pr := range p {
		if pr.ID == id {
			return pr, true
		}
	}
	return Practitioner{}, false
}
