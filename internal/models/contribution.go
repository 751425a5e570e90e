package models

import "time"

// Формы представления доклада.
const (
	PresentationOral   = "oral"
	PresentationPoster = "poster"
)

// Contribution представляет доклад, поданный пользователем.
// Поле Created выставляется хранилищем при вставке и никогда не меняется,
// LastModified обновляется хранилищем при каждой мутации.
// Discount — знаковая корректировка взноса, назначается администратором.
type Contribution struct {
	ID               int       // Идентификатор доклада
	UserUID          string    // Владелец доклада (неизменяемый после создания)
	Title            string    // Название доклада
	PresentationForm string    // Форма представления: oral или poster
	Created          time.Time // Дата подачи, выставляется при вставке
	LastModified     time.Time // Дата последнего изменения
	Discount         int       // Скидка в валютных единицах, обычно отрицательная
	Authorships      []*Authorship
}

// Author представляет автора доклада. Уникальность имени не требуется:
// авторы с одинаковыми именами — разные записи.
type Author struct {
	ID   int
	Name string
}

// Authorship связывает автора с конкретным докладом.
// Пара (author, contribution) уникальна: автор встречается в списке
// авторов доклада не более одного раза. Аффилиации принадлежат именно
// этой связи, а не автору как таковому.
type Authorship struct {
	ID             int
	AuthorID       int
	AuthorName     string
	ContributionID int
	IsMainAuthor   bool
	Affiliations   []*Affiliation
}

// Affiliation представляет институциональный адрес, который автор
// указывает для конкретного доклада. Неизменяемые справочные данные.
type Affiliation struct {
	ID            int
	Institution   string
	Department    string
	StreetAddress string
	City          string
	ZipCode       int
	Country       string
}

// ContributionInfo — доклад, дополненный производными полями взноса.
// Период и сумма пересчитываются при каждом чтении и нигде не хранятся.
type ContributionInfo struct {
	Contribution
	RegistrationPeriod string `json:"registration_period"`
	RegistrationFee    int    `json:"registration_fee"`
}

// DummyContribution используется для приёма данных нового доклада из JSON-запроса.
type DummyContribution struct {
	Title            string            `json:"title" validate:"required,max=255"`
	PresentationForm string            `json:"presentation_form" validate:"required,oneof=oral poster"`
	Authorships      []DummyAuthorship `json:"authorships" validate:"omitempty,dive"`
}

// DummyAuthorship — одна запись авторства в запросе на создание доклада.
// AffiliationIDs ссылаются на уже существующие аффилиации.
type DummyAuthorship struct {
	AuthorName     string `json:"author_name" validate:"required,max=255"`
	IsMainAuthor   bool   `json:"is_main_author"`
	AffiliationIDs []int  `json:"affiliation_ids" validate:"omitempty,dive,gt=0"`
}

// DummyAffiliation используется для приёма данных новой аффилиации из JSON-запроса.
type DummyAffiliation struct {
	Institution   string `json:"institution" validate:"omitempty,max=255"`
	Department    string `json:"department" validate:"omitempty,max=255"`
	StreetAddress string `json:"street_address" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=255"`
	ZipCode       int    `json:"zip_code" validate:"required,gt=0"`
	Country       string `json:"country" validate:"required,max=255"`
}
