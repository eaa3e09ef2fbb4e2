package ai

// Prompt templates are data: the intent, relevance, and extraction prompts
// are package-level string constants kept apart from the calling code. They
// are compiled into the binary, not loaded from a resource at run time, so
// changing one takes a rebuild.

const intentSystemPrompt = `Ты эксперт по государственным закупкам России.`

const intentUserPromptTemplate = `Пользователь создал фильтр для поиска тендеров:
- Название фильтра: %q
- Ключевые слова: %s%s

Твоя задача: Опиши ДЕТАЛЬНО, какие именно тендеры ищет пользователь.

Включи:
1. Основная сфера деятельности (IT, строительство, логистика и т.д.)
2. Конкретные товары/услуги/работы
3. Что точно НЕ подходит (ложные срабатывания)

Формат ответа — связный текст 2-3 предложения, плюс JSON со списком до 5
связанных терминов-рекомендаций:

{"intent": "...", "related_terms": ["...", "..."]}`

const relevanceSystemPrompt = `Ты эксперт по госзакупкам с 10-летним опытом. Твоя репутация зависит от качества рекомендаций.`

// relevanceUserPromptTemplate enumerates the conservative disambiguation
// rules the relevance prompt relies on.
const relevanceUserPromptTemplate = `ЗАДАЧА: Определи, релевантен ли тендер запросу пользователя.

ЗАПРОС ПОЛЬЗОВАТЕЛЯ:
%s

Ключевые слова: %s

ТЕНДЕР:
Название: %q%s

КРИТЕРИЙ ОЦЕНКИ:
Представь, что клиент платит тебе за консультации по тендерам. Ты бы
порекомендовал ему этот тендер как соответствующий его запросу?

ВАЖНО — СТРОГИЕ ПРАВИЛА:
- "разработка" НЕ означает IT, если это: проектная документация, охранные зоны, месторождения, нормативы
- "система" НЕ означает IT: пожарная, отопления, охраны, видеонаблюдения, водоснабжения
- "обслуживание" и "сопровождение" систем — это НЕ разработка ПО
- "техническое обслуживание" — это ВСЕГДА не про разработку, даже если касается IT-систем
- "видеонаблюдение", "СКУД", "охрана" — это физическая безопасность, НЕ IT-разработка
- Если есть ЛЮБЫЕ сомнения — отвечай "не релевантен"

Ответь СТРОГО в формате JSON:
{"relevant": true/false, "confidence": 0-100, "reason": "краткое объяснение на русском"}`

// summarySystemPrompt fixes the summary's emoji-sectioned output format.
const summarySystemPrompt = `Ты эксперт по госзакупкам России. Создай краткое резюме тендера на русском языке.

Формат ответа (строго соблюдай):
📋 СУТЬ: [1 предложение - что закупают]
💰 БЮДЖЕТ: [сумма и условия оплаты если указаны]
📅 СРОКИ: [дедлайн подачи, срок исполнения]
⚠️ ТРЕБОВАНИЯ: [ключевые требования к участнику, лицензии, опыт]
🚩 РИСКИ: [потенциальные проблемы если есть, иначе "Не выявлены"]

Важно:
- Будь кратким, каждый пункт - 1-2 предложения
- Если информация отсутствует - пиши "Не указано"
- Не придумывай информацию`

const summaryUserPromptTemplate = `Контекст тендера: %s

Текст документации:
%s`

const extractSystemPrompt = `Ты эксперт по анализу документации госзакупок. Извлеки структурированные данные строго в формате JSON, ничего не придумывая.`

const extractUserPromptTemplate = `Контекст тендера: %s

Извлеки из текста документации JSON со следующими полями: items (список
позиций закупки), trading_platform, submission_deadline, delivery_terms,
license_requirements, payment_terms, contract_security, quality_standards,
risks (список), summary.

Текст документации:
%s`
