// =====================================================================
// 🏛️ ДОМЕННАЯ СУЩНОСТЬ TENDER - Центральная модель системы
// =====================================================================
//
// Пакет tender содержит доменную модель тендера — закупочное извещение с
// портала zakupki.gov.ru. В отличие от типичного CRUD-агрегата, Tender здесь
// — value object: он не имеет собственного жизненного цикла в хранилище,
// а проходит через конвейер C1→C2→C3→C5 и либо оседает в виде Notification,
// либо отбрасывается. Его "персистентность" — это только content-addressed
// TenderCache (см. internal/domain/tendercache), нужный для пропуска
// повторного обогащения/скоринга неизменившихся тендеров.
//
// ПРИНЦИПЫ CLEAN ARCHITECTURE:
// 1. Содержит ТОЛЬКО бизнес-логику, никаких зависимостей от внешних систем
// 2. Не знает о RSS, HTML-карточках, базах данных
// 3. Может быть протестирована изолированно

package tender

import (
	"fmt"
	"strings"
	"time"
)

// Tender представляет закупочное извещение: стабильные поля из RSS плюс
// поля, полученные при обогащении карточки.
//
// ВАЖНО: эта структура не содержит тегов сериализации (json, db) — это
// зона ответственности внешних слоёв (infrastructure, interfaces).
type Tender struct {
	// 🔑 Стабильные поля из RSS
	Number        string    // регистрационный номер на портале, глобально уникален
	Name          string    // название закупки
	URL           string    // прямая ссылка на извещение
	Description   string    // HTML-описание из RSS (используется SmartMatcher'ом)
	PublishedDate time.Time // дата публикации извещения

	// 🧾 Поля, полученные при обогащении карточки (может быть не заполнено)
	Price               *float64   // начальная (максимальная) цена контракта
	CustomerName        string     // наименование заказчика
	CustomerRegion      string     // регион заказчика (официальное название)
	CustomerCity        string     // город заказчика
	CustomerAddress     string     // адрес заказчика
	SubmissionDeadline  *time.Time // срок подачи заявок

	// EnrichmentAttempted — true once enrichFromCard has run for this tender,
	// even if the card fetch failed and the card fields remain unset.
	EnrichmentAttempted bool
}

// NewTender строит value object из обязательных RSS-полей.
func NewTender(number, name, url string, publishedDate time.Time) (*Tender, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyNumber
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}

	return &Tender{
		Number:        number,
		Name:          name,
		URL:           url,
		PublishedDate: publishedDate,
	}, nil
}

// SearchableText is the lowercased concatenation SmartMatcher scores against:
// name + description + customer_name.
func (t *Tender) SearchableText() string {
	return strings.ToLower(t.Name + " " + t.Description + " " + t.CustomerName)
}

// IsArchival reports whether the submission deadline has already passed.
// A tender with submission_deadline < now is archival and
// excluded from the default "submission" stage. Unknown deadlines are never
// archival — the caller must decide how to treat that case.
func (t *Tender) IsArchival(now time.Time) bool {
	return t.SubmissionDeadline != nil && t.SubmissionDeadline.Before(now)
}

// DaysSincePublished returns whole days elapsed since PublishedDate.
func (t *Tender) DaysSincePublished(now time.Time) int {
	d := now.Sub(t.PublishedDate)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// ApplyEnrichment copies enrichment-card fields onto the tender. Called by
// the Portal Client's enrichFromCard; on any card-fetch failure the caller
// leaves the tender unmodified but still marks EnrichmentAttempted, and
// records a warning.
func (t *Tender) ApplyEnrichment(price *float64, customerName, region, city, address string, deadline *time.Time) {
	t.EnrichmentAttempted = true
	if price != nil {
		t.Price = price
	}
	if customerName != "" {
		t.CustomerName = customerName
	}
	if region != "" {
		t.CustomerRegion = region
	}
	if city != "" {
		t.CustomerCity = city
	}
	if address != "" {
		t.CustomerAddress = address
	}
	if deadline != nil {
		t.SubmissionDeadline = deadline
	}
}

// ScoringFields is the basis for TenderCache's (tender_number, content_hash)
// key — only fields that feed SmartMatcher scoring participate, per the
// cache's invariant ("a cache hit implies the tender snapshot is byte-equal
// for the fields used in scoring"). Computed by internal/domain/tendercache
// to keep the hashing algorithm (and its dependency) out of this package.
func (t *Tender) ScoringFields() string {
	var price string
	if t.Price != nil {
		price = fmt.Sprintf("%.2f", *t.Price)
	}
	var deadline string
	if t.SubmissionDeadline != nil {
		deadline = t.SubmissionDeadline.Format(time.RFC3339)
	}
	return strings.Join([]string{
		t.Number, t.Name, t.Description, price,
		t.CustomerName, t.CustomerRegion, deadline,
	}, "\x1f")
}

func (t *Tender) String() string {
	return fmt.Sprintf("Tender{Number: %s, Name: %.40q}", t.Number, t.Name)
}
