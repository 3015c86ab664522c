package recommend

// Keyword tables for the free-text strategy: each survey dimension value maps
// to substrings scanned against the lowercase product text (name +
// description + category). Point values differ per dimension category; see
// keyword_strategy.go for how they accumulate.

// goalKeywords maps a selected goal to its keyword set.
var goalKeywords = map[string][]string{
	"Улучшить энергию и бодрость":          {"витамин b", "магний", "железо", "коэнзим", "энергия", "бодрость", "усталость"},
	"Укрепить иммунитет":                   {"витамин c", "витамин d", "цинк", "селен", "иммун", "защита"},
	"Поддержать здоровье кожи и волос":     {"биотин", "витамин e", "коллаген", "омега", "кожа", "волос", "ногти"},
	"Снизить стресс":                       {"магний", "витамин b", "ашваганда", "l-теанин", "стресс", "тревож", "успокоение"},
	"Улучшить сон":                         {"магний", "мелатонин", "глицин", "витамин b6", "сон", "засыпание"},
	"Поддержать здоровье сердца":           {"омега-3", "коэнзим q10", "магний", "калий", "сердце", "сосуды"},
}

// issueKeywords maps a health issue to its keyword set. "Нет особенностей"
// is deliberately absent: it contributes nothing.
var issueKeywords = map[string][]string{
	"Проблемы с ЖКТ":         {"пробиотик", "витамин d", "омега", "жкт", "пищеварение", "кишечник"},
	"Гормональный дисбаланс": {"витамин d", "омега-3", "магний", "цинк", "гормон", "баланс"},
	"Частые простуды":        {"витамин c", "витамин d", "цинк", "иммун", "защита", "простуд"},
	"Хроническая усталость":  {"витамин b", "железо", "магний", "коэнзим", "энергия", "усталость"},
	"Проблемы со сном":       {"магний", "мелатонин", "витамин b6", "глицин", "сон"},
	"Стресс и тревожность":   {"магний", "витамин b", "ашваганда", "стресс", "тревож", "успокоение"},
}

// activityKeywords maps an activity level to its keyword set. The two
// highest levels score more points per hit than the rest.
var activityKeywords = map[string][]string{
	"Высокая":          {"магний", "витамин b", "электролит", "восстановление", "мышц", "белок", "bcaa"},
	"Профессиональная": {"магний", "витамин b", "омега-3", "коэнзим", "восстановление", "выносливость", "bcaa"},
	"Умеренная":        {"витамин d", "магний", "витамин b"},
	"Легкая":           {"витамин d", "омега-3"},
	"Минимальная":      {"витамин d", "витамин b12"},
}

// dietDeficiency describes the supplements a restrictive diet tends to lack.
type dietDeficiency struct {
	keywords []string
	reason   string
}

var dietDeficiencies = map[string]dietDeficiency{
	"Вегетарианство": {
		keywords: []string{"витамин b12", "железо", "омега-3", "цинк", "витамин d"},
		reason:   "Восполняет дефициты при вегетарианской диете",
	},
	"Веганство": {
		keywords: []string{"витамин b12", "витамин d", "железо", "омега-3", "цинк", "йод"},
		reason:   "Необходим при веганском питании",
	},
	"Кето-диета": {
		keywords: []string{"магний", "калий", "натрий", "электролит", "витамин b"},
		reason:   "Поддерживает баланс на кето-диете",
	},
}

// habitRemedy describes what a harmful habit depletes. "Нет вредных привычек"
// is deliberately absent.
type habitRemedy struct {
	keywords []string
	reason   string
}

var habitRemedies = map[string]habitRemedy{
	"Курение": {
		keywords: []string{"витамин c", "витамин e", "селен", "антиоксидант"},
		reason:   "Защищает от окислительного стресса при курении",
	},
	"Алкоголь регулярно": {
		keywords: []string{"витамин b", "магний", "печень", "детокс"},
		reason:   "Поддерживает печень и восполняет дефицит витаминов группы B",
	},
	"Много кофе": {
		keywords: []string{"магний", "кальций", "витамин d"},
		reason:   "Восполняет минералы, вымываемые кофеином",
	},
	"Недостаток сна": {
		keywords: []string{"магний", "мелатонин", "витамин b", "глицин"},
		reason:   "Помогает улучшить качество сна",
	},
}

// workTypeKeywords maps a work type to its keyword set.
var workTypeKeywords = map[string][]string{
	"Умственная работа":    {"витамин b", "омега-3", "магний", "гинкго", "память", "концентрация", "мозг"},
	"Физическая работа":    {"магний", "витамин b", "витамин d", "электролит", "восстановление"},
	"Работа за компьютером": {"витамин a", "лютеин", "зрение", "глаза", "омега-3"},
}
