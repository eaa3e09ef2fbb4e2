// Package matching implements SmartMatcher (C2): a deterministic,
// explainable relevance scorer with hard filters.
//
// Dictionaries are data, not control flow — every table in this
// file is a plain Go literal so it can be extended without touching the
// scoring algorithm in smartmatcher.go.
package matching

// stopWords are generic procurement terms dropped from a filter's keyword
// list before scoring. Seeded from the original SmartMatcher
// implementation's STOP_WORDS table.
var stopWords = map[string]bool{
	"закупка": true, "закупки": true, "закупок": true,
	"услуга": true, "услуги": true, "услуг": true,
	"поставка": true, "поставки": true, "поставок": true,
	"работа": true, "работы": true, "работ": true,
	"оказание": true, "выполнение": true, "обеспечение": true,
	"приобретение": true, "покупка": true,
	"товар": true, "товары": true, "товаров": true,
	"для": true, "нужд": true, "целей": true,
	"служба": true, "службы": true, "служб": true,
	"система": true, "системы": true, "систем": true,
	"обслуживание": true, "сопровождение": true,
}

// synonyms maps a normalized keyword to alternate spellings/terms that count
// as a match. Seeded verbatim from the original
// SmartMatcher's SYNONYMS table.
var synonyms = map[string][]string{
	"компьютер":  {"ноутбук", "пк", "pc", "ноутбуков", "компьютеры", "компьютерное", "компьютерный"},
	"компьютеры": {"компьютер", "ноутбук", "пк", "pc", "компьютерное", "компьютерный"},
	"ноутбук":    {"компьютер", "пк", "pc", "ноутбуки", "ноутбуков", "лэптоп"},
	"ноутбуки":   {"ноутбук", "компьютер", "пк", "лэптоп", "ноутбуков"},
	"медицина":   {"медицинские", "здравоохранение", "больница", "поликлиника"},
	"канцелярия": {"канцтовары", "офис", "письменные принадлежности"},
	"мебель":     {"столы", "стулья", "шкафы", "офисная мебель"},
	"linux":      {"линукс", "убунту", "ubuntu", "debian", "centos", "redhat", "astra linux", "астра", "альт линукс"},
	"аутентификация":        {"авторизация", "2fa", "mfa", "двухфакторная", "многофакторная", "токен", "смарт-карт"},
	"каталог":               {"ldap", "active directory", "ad", "домен", "directory"},
	"сервер":                {"серверное оборудование", "серверная платформа", "blade", "серверы"},
	"серверы":                {"сервер", "серверное оборудование", "серверная платформа"},
	"сеть":                  {"сетевое оборудование", "коммутатор", "маршрутизатор", "switch", "router"},
	"программное обеспечение": {"по", "софт", "software", "лицензия", "лицензии"},
	"оборудование":          {"техника", "устройства", "аппаратура"},
}

// compoundPhrase is one row of the compound-phrase dictionary: a multi-word
// technical term plus the synonyms that also count as a verbatim hit.
type compoundPhrase struct {
	Phrase   string
	Synonyms []string
}

// compoundPhrases are matched as whole phrases, not word-by-word. Seeded verbatim from the original COMPOUND_PHRASES.
var compoundPhrases = []compoundPhrase{
	{"служба каталогов", []string{"directory service", "ldap", "active directory", "ad ds"}},
	{"двухфакторная аутентификация", []string{"2fa", "two-factor", "мультифакторная"}},
	{"операционная система", []string{"ос", "os", "windows", "linux"}},
	{"программное обеспечение", []string{"по", "софт", "software"}},
	{"антивирусная защита", []string{"антивирус", "касперский", "dr.web", "eset"}},
	{"информационная безопасность", []string{"ибп", "cybersecurity", "защита информации"}},
	{"виртуализация серверов", []string{"vmware", "hyper-v", "proxmox", "виртуальные машины"}},
	{"резервное копирование", []string{"бэкап", "backup", "архивирование"}},
	{"электронная подпись", []string{"эцп", "эп", "криптопро", "цифровая подпись"}},
	{"медицинское оборудование", []string{"медтехника", "мед. оборудование"}},
	{"офисная мебель", []string{"рабочие места", "столы офисные"}},
}

// negativePatterns are fixed phrases that, empirically, indicate the tender
// belongs to an unrelated domain that keyword searches tend to false-positive
// into. Seeded from NEGATIVE_PATTERNS.
var negativePatterns = []string{
	// военная/силовая тематика (путается со "службой")
	"военная служба", "воинская служба", "контрактная служба",
	"служба по контракту", "призыв на службу", "привлечение граждан",
	"агитационные материалы", "мобилизация", "военкомат",
	// медицинская тематика (путается с "системой")
	"медицинская помощь", "скорая помощь", "лечебное учреждение",
	// строительная тематика
	"капитальный ремонт", "строительство здания", "реконструкция здания",
	// продовольственная тематика
	"продукты питания", "пищевые продукты", "столовая",
}

// serviceIndicatorPhrases mark a tender as services/works rather than goods.
var serviceIndicatorPhrases = []string{
	"оказание услуг", "выполнение работ", "ремонт",
	"техническое обслуживание", "монтаж",
}

// brandSynonyms is a bidirectional Latin↔Cyrillic brand-name map. Seeded verbatim from
// BRAND_SYNONYMS — already stored bidirectionally in the original table, so
// no closure computation is needed here.
var brandSynonyms = map[string][]string{
	"atlas copco":     {"атлас копко", "атлас-копко", "atlascopco"},
	"атлас копко":     {"atlas copco", "atlascopco"},
	"ingersoll rand":  {"ингерсолл рэнд", "ingersoll"},
	"kaeser":          {"кайзер"},
	"cisco":           {"циско", "сиско"},
	"циско":           {"cisco", "сиско"},
	"hewlett packard": {"хьюлетт паккард", "hp", "хп"},
	"hp":              {"hewlett packard", "хьюлетт паккард", "хп"},
	"dell":            {"делл"},
	"lenovo":          {"леново"},
	"ibm":             {"ибм", "айбиэм"},
	"apple":           {"эпл", "эппл"},
	"intel":           {"интел"},
	"amd":             {"амд"},
	"komatsu":         {"комацу"},
	"комацу":          {"komatsu"},
	"caterpillar":     {"катерпиллер", "катерпиллар", "cat", "кат"},
	"cat":             {"caterpillar", "катерпиллер"},
	"hitachi":         {"хитачи"},
	"volvo":           {"вольво"},
	"bosch":           {"бош"},
	"бош":              {"bosch"},
	"makita":          {"макита"},
	"макита":          {"makita"},
	"hilti":           {"хилти"},
	"хилти":           {"hilti"},
	"dewalt":          {"деволт", "девольт"},
	"metabo":          {"метабо"},
	"siemens":         {"сименс"},
	"сименс":          {"siemens"},
	"schneider electric": {"шнейдер электрик", "schneider"},
	"abb":             {"абб"},
	"legrand":         {"легранд"},
	"microsoft":       {"майкрософт", "ms"},
	"майкрософт":      {"microsoft", "ms"},
	"kaspersky":       {"касперский", "kaspersky lab"},
	"касперский":      {"kaspersky"},
	"oracle":          {"оракл"},
	"sap":             {"сап"},
	"vmware":          {"вмваре", "vmvare"},
	"1c":              {"1с", "один эс"},
	"1с":              {"1c", "один эс"},
	"grundfos":        {"грундфос"},
	"wilo":            {"вило"},
	"danfoss":         {"данфосс"},
	"daikin":          {"дайкин"},
	"philips":         {"филипс"},
	"ge healthcare":   {"джи хелскеа", "ge"},
	"mindray":         {"миндрей"},
	"mercedes":        {"мерседес", "mercedes-benz"},
	"volkswagen":      {"фольксваген", "vw"},
	"toyota":          {"тойота"},
	"scania":          {"скания"},
	"man":             {"ман"},
}

// abbreviations maps an acronym to the phrases that expand it, and vice
// versa. Seeded verbatim from ABBREVIATIONS.
var abbreviations = map[string][]string{
	"scada": {"скада", "scada-система", "ску"},
	"скада": {"scada", "scada-система"},
	"erp":   {"ерп", "erp-система", "система планирования ресурсов"},
	"crm":   {"црм", "crm-система", "система управления клиентами"},
	"mes":   {"мес", "система управления производством"},
	"vpn":   {"впн", "виртуальная частная сеть"},
	"впн":   {"vpn"},
	"utm":   {"ютм", "unified threat management"},
	"ngfw":  {"межсетевой экран нового поколения"},
	"ids":   {"система обнаружения вторжений"},
	"ips":   {"система предотвращения вторжений"},
	"ups":   {"ибп", "источник бесперебойного питания"},
	"ибп":   {"ups", "источник бесперебойного питания"},
	"pdu":   {"пду", "распределитель питания", "блок розеток"},
	"kvm":   {"квм", "переключатель консоли"},
	"nas":   {"нас", "сетевое хранилище"},
	"san":   {"сан", "сеть хранения данных"},
	"ssd":   {"ссд", "твердотельный накопитель", "solid state"},
	"hdd":   {"хдд", "жёсткий диск", "жесткий диск"},
	"cpu":   {"цпу", "процессор", "центральный процессор"},
	"gpu":   {"гпу", "видеокарта", "графический процессор"},
	"ram":   {"озу", "оперативная память", "оперативка"},
	"озу":   {"ram", "оперативная память"},
	"plc":   {"плк", "программируемый логический контроллер", "plc-контроллер"},
	"плк":   {"plc", "программируемый логический контроллер"},
	"hmi":   {"чми", "человеко-машинный интерфейс", "панель оператора"},
	"dcs":   {"рсу", "распределённая система управления"},
	"voip":  {"воип", "ip-телефония", "интернет-телефония"},
	"pbx":   {"атс", "автоматическая телефонная станция"},
	"атс":   {"pbx", "телефонная станция"},
	"cad":   {"сапр", "система автоматизированного проектирования"},
	"сапр":  {"cad", "autocad"},
	"bim":   {"бим", "информационная модель здания"},
	"gis":   {"гис", "геоинформационная система"},
	"гис":   {"gis", "геоинформационная"},
}
