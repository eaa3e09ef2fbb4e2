// Package sheets implements the Google Sheets export collaborator: one
// appended row per delivered notification, into one operator-configured
// spreadsheet shared by all users (Premium-gated AI columns).
package sheets

// Row is one spreadsheet row's data, pre-flattened from a Tender + Match (+
// optional AI extraction).
type Row struct {
	Link       string
	Name       string
	Customer   string
	Region     string
	Deadline   string
	Price      string
	Published  string
	FilterName string
	Score      string
	RedFlags   string

	AI *AIFields // nil unless the owning user's tier grants AI columns
}

// AIFields mirrors google_sheets_sync.py's AI_COLUMNS set, populated from
// ai.ExtractedDocs via flatten_ai_extraction's field mapping.
type AIFields struct {
	DeliveryDate     string
	Quantities       string
	ContractSecurity string
	PaymentTerms     string
	Summary          string
	Licenses         string
	Experience       string
}

// headers, in column order, matching DEFAULT_COLUMNS plus AI_COLUMNS.
var baseHeaders = []string{
	"Ссылка", "Объект закупки", "Заказчик", "Локация", "Срок подачи",
	"Начальная цена", "Дата публикации", "Фильтр", "Score", "Красные флаги",
}

var aiHeaders = []string{
	"Дата поставки", "Кол-во наименований", "Обеспечение",
	"Способ оплаты", "Комментарий (AI)", "Лицензии", "Требования к опыту",
}

// statusHeader is DEFAULT_COLUMNS' trailing empty-for-manual-entry column.
const statusHeader = "Статус"

func headers(includeAI bool) []string {
	out := append([]string{}, baseHeaders...)
	if includeAI {
		out = append(out, aiHeaders...)
	}
	return append(out, statusHeader)
}

func (r Row) values(includeAI bool) []any {
	out := []any{
		r.Link, r.Name, r.Customer, r.Region, r.Deadline,
		r.Price, r.Published, r.FilterName, r.Score, r.RedFlags,
	}
	if includeAI {
		ai := r.AI
		if ai == nil {
			ai = &AIFields{}
		}
		out = append(out,
			ai.DeliveryDate, ai.Quantities, ai.ContractSecurity,
			ai.PaymentTerms, ai.Summary, ai.Licenses, ai.Experience,
		)
	}
	return append(out, "") // status column left blank for manual entry
}
