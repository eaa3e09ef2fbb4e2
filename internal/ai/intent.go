package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RecommendationSource distinguishes an 'ai' from a 'static' recommendation:
// static is the always-available dictionary fallback, ai is the
// Premium-gated LLM expansion.
type RecommendationSource string

const (
	RecommendationSourceAI     RecommendationSource = "ai"
	RecommendationSourceStatic RecommendationSource = "static"
)

// Recommendations is the Query Expander's related-keyword suggestion output.
type Recommendations struct {
	Terms    []string
	Source   RecommendationSource
	IsPremium bool
}

// nonPremiumRecommendationLimit/premiumRecommendationLimit cap recommendation counts exactly as the
// original does (non-Premium callers get 5, Premium up to 15).
const (
	nonPremiumRecommendationLimit = 5
	premiumRecommendationLimit    = 15
)

// keywordRecommendations is the static fallback dictionary recovered
// verbatim from ai_keyword_recommender.py's KEYWORD_RECOMMENDATIONS, grouped
// by domain (IT hardware/software/networking/security/office/construction/
// medicine/transport).
var keywordRecommendations = map[string][]string{
	// IT оборудование
	"сервер":  {"серверное оборудование", "blade-сервер", "стоечный сервер", "СХД", "ИБП"},
	"серверы": {"серверное оборудование", "blade-сервер", "стоечный сервер", "СХД", "ИБП"},
	"компьютер": {"ноутбук", "моноблок", "рабочая станция", "ПК", "монитор"},
	"ноутбук":   {"компьютер", "ультрабук", "лэптоп", "трансформер"},
	"схд":       {"система хранения данных", "СХД", "дисковый массив", "NAS", "SAN"},
	"ибп":       {"источник бесперебойного питания", "UPS", "ИБП", "бесперебойник"},

	// ПО
	"linux":     {"линукс", "astra linux", "альт линукс", "ubuntu", "centos", "ос"},
	"windows":   {"виндовс", "microsoft windows", "операционная система", "ОС"},
	"антивирус": {"kaspersky", "касперский", "dr.web", "eset", "защита информации"},
	"1с":        {"1c", "бухгалтерия", "erp", "автоматизация"},

	// Сети
	"коммутатор":   {"switch", "свитч", "сетевое оборудование", "маршрутизатор"},
	"маршрутизатор": {"router", "роутер", "сетевое оборудование", "коммутатор"},
	"firewall":     {"межсетевой экран", "брандмауэр", "utm", "ngfw"},

	// Безопасность
	"видеонаблюдение": {"камера", "CCTV", "DVR", "NVR", "регистратор"},
	"скуд":            {"контроль доступа", "турникет", "домофон", "биометрия"},
	"сигнализация":    {"охранная сигнализация", "ОПС", "датчики", "пожарная"},

	// Офис
	"мебель":     {"офисная мебель", "столы", "стулья", "шкафы", "кресла"},
	"канцелярия": {"канцтовары", "бумага", "офисные принадлежности"},
	"принтер":    {"МФУ", "сканер", "копир", "печатающее устройство"},

	// Строительство
	"ремонт":        {"капитальный ремонт", "текущий ремонт", "отделка", "реконструкция"},
	"строительство": {"СМР", "возведение", "монтаж", "благоустройство"},

	// Медицина
	"медицинское оборудование": {"медтехника", "диагностическое оборудование", "УЗИ", "рентген", "томограф"},
	"лекарства":                {"медикаменты", "препараты", "фармацевтика", "лекарственные средства"},

	// Транспорт
	"автомобиль": {"транспорт", "машина", "автотранспорт", "спецтехника"},
	"автобус":    {"пассажирский транспорт", "маршрутка", "микроавтобус"},
}

// QueryExpander is the C9 collaborator: it generates a filter's AI intent
// description and, separately, related-keyword recommendations, blending
// the always-on static dictionary with an optional AI expansion.
type QueryExpander struct {
	client *Client
	log    *zap.SugaredLogger
}

func NewQueryExpander(client *Client, log *zap.SugaredLogger) *QueryExpander {
	return &QueryExpander{client: client, log: log}
}

// GenerateIntent produces the natural-language intent description stored on
// the filter as AIIntent, used later as the Relevance Checker's cache key
// and prompt context. Returns "" if no AI backend is configured —
// callers fall back to the filter's keyword list as intent text.
func (q *QueryExpander) GenerateIntent(ctx context.Context, filterName string, keywords, excludeKeywords []string) string {
	if !q.client.Configured() {
		return ""
	}

	excludeClause := ""
	if len(excludeKeywords) > 0 {
		excludeClause = fmt.Sprintf("\n- Исключающие слова: %s", strings.Join(excludeKeywords, ", "))
	}

	prompt := fmt.Sprintf(intentUserPromptTemplate, filterName, strings.Join(keywords, ", "), excludeClause)
	raw, err := q.client.complete(ctx, "ai.intent", intentSystemPrompt, prompt, 400)
	if err != nil {
		q.log.Warnw("ai intent generation failed", "error", err)
		return ""
	}

	var resp intentResponse
	if err := extractJSON(raw, &resp); err != nil {
		// The model is also allowed to answer in free text with no JSON
		// payload at all — that's still a usable intent description.
		return strings.TrimSpace(raw)
	}
	return resp.Intent
}

// Recommend returns related-keyword suggestions for keywords.
// Non-Premium tiers (isPremium=false) only ever get the static dictionary,
// capped at 5. Premium tiers try the AI expansion first and fall back to
// the static dictionary, capped at 15, on any failure or empty result.
func (q *QueryExpander) Recommend(ctx context.Context, keywords []string, isPremium bool) Recommendations {
	if !isPremium {
		return Recommendations{
			Terms:  capRecommendations(staticRecommendations(keywords), nonPremiumRecommendationLimit),
			Source: RecommendationSourceStatic,
		}
	}

	if q.client.Configured() {
		if terms, err := q.aiRecommendations(ctx, keywords); err == nil && len(terms) > 0 {
			return Recommendations{
				Terms:     capRecommendations(terms, premiumRecommendationLimit),
				Source:    RecommendationSourceAI,
				IsPremium: true,
			}
		} else if err != nil {
			q.log.Warnw("ai keyword recommendations unavailable, falling back to static", "error", err)
		}
	}

	return Recommendations{
		Terms:     capRecommendations(staticRecommendations(keywords), premiumRecommendationLimit),
		Source:    RecommendationSourceStatic,
		IsPremium: true,
	}
}

func (q *QueryExpander) aiRecommendations(ctx context.Context, keywords []string) ([]string, error) {
	prompt := fmt.Sprintf(intentUserPromptTemplate, strings.Join(keywords, ", "), strings.Join(keywords, ", "), "")
	raw, err := q.client.complete(ctx, "ai.recommend", intentSystemPrompt, prompt, 300)
	if err != nil {
		return nil, err
	}

	var resp intentResponse
	if err := extractJSON(raw, &resp); err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		excluded[strings.ToLower(k)] = struct{}{}
	}

	out := make([]string, 0, len(resp.RelatedTerms))
	seen := make(map[string]struct{})
	for _, term := range resp.RelatedTerms {
		lower := strings.ToLower(term)
		if _, isInput := excluded[lower]; isInput {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, term)
	}
	return out, nil
}

// staticRecommendations mirrors _get_static_recommendations: an exact-key
// match contributes its whole list, then every dictionary key that is a
// substring of (or contains) the input keyword also contributes, skipping
// anything already present in the input keyword set.
func staticRecommendations(keywords []string) []string {
	excluded := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		excluded[strings.ToLower(k)] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(rec string) {
		lower := strings.ToLower(rec)
		if _, isInput := excluded[lower]; isInput {
			return
		}
		if _, dup := seen[lower]; dup {
			return
		}
		seen[lower] = struct{}{}
		out = append(out, rec)
	}

	for _, keyword := range keywords {
		lowerKeyword := strings.ToLower(keyword)

		if recs, ok := keywordRecommendations[lowerKeyword]; ok {
			for _, rec := range recs {
				add(rec)
			}
		}

		for key, recs := range keywordRecommendations {
			if key == lowerKeyword {
				continue
			}
			if strings.Contains(lowerKeyword, key) || strings.Contains(key, lowerKeyword) {
				for _, rec := range recs {
					add(rec)
				}
			}
		}
	}
	return out
}

func capRecommendations(terms []string, limit int) []string {
	if len(terms) <= limit {
		return terms
	}
	return terms[:limit]
}
