package recommend

import "github.com/tbourn/go-vitamins-backend/internal/domain"

// Stable product keys for the curated catalog. Rules are authored against
// these, never against display names, so a catalog rename cannot silently
// detach a product from its rules.
const (
	KeyVitaminD3       domain.ProductKey = "vitamin-d3"
	KeyOmega3          domain.ProductKey = "omega-3-premium"
	KeyMagnesiumCitrate domain.ProductKey = "magnesium-citrate"
	KeyBComplex        domain.ProductKey = "b-complex"
	KeyVitaminC        domain.ProductKey = "vitamin-c-liposomal"
	KeyZincChelate     domain.ProductKey = "zinc-chelate"
	KeyCoQ10           domain.ProductKey = "coenzyme-q10"
	KeyIronBisglycinate domain.ProductKey = "iron-bisglycinate"
	KeyCurcumin        domain.ProductKey = "curcumin"
	KeyProbiotics      domain.ProductKey = "probiotics-premium"
	KeyMarineCollagen  domain.ProductKey = "marine-collagen"
	KeyAshwagandha     domain.ProductKey = "ashwagandha"
	KeyLTheanine       domain.ProductKey = "l-theanine"
	KeyMelatonin       domain.ProductKey = "melatonin"
	KeyCreatine        domain.ProductKey = "creatine-monohydrate"
	KeyRhodiola        domain.ProductKey = "rhodiola-rosea"
)

// Rule is one weighted predicate over survey dimensions, associated with a
// single product. A rule contributes score only through the fields it
// defines: a nil predicate slice is never matched (absence is not a
// wildcard and not an empty-set match).
type Rule struct {
	Goals        []string
	HealthIssues []string
	Activity     []string
	Diet         []string
	Habits       []string
	WorkType     []string
	Gender       []string

	// Reason is the human-readable explanation shown when this rule is the
	// best-priority match for its product.
	Reason string

	// Priority is the base weight of the rule; it also selects the displayed
	// reason (highest priority among matched rules wins).
	Priority float64
}

// RuleTable maps stable product identity to its curated rule list.
type RuleTable map[domain.ProductKey][]Rule

// DefaultRules returns the curated rule table. The returned value is shared;
// callers must treat it as read-only.
func DefaultRules() RuleTable { return productRules }

var productRules = RuleTable{
	KeyVitaminD3: {
		{Goals: []string{"Укрепить иммунитет", "Улучшить настроение"}, Reason: "поддерживает иммунную систему и регулирует настроение", Priority: 10},
		{HealthIssues: []string{"Частые простуды", "Усталость", "Плохое настроение"}, Reason: "помогает бороться с усталостью и укрепляет защитные силы организма", Priority: 9},
		{WorkType: []string{"Офисная работа"}, Reason: "компенсирует недостаток солнца при работе в помещении", Priority: 7},
		{Activity: []string{"Низкая активность"}, Reason: "важен при малоподвижном образе жизни", Priority: 6},
	},
	KeyOmega3: {
		{Goals: []string{"Улучшить концентрацию", "Здоровье сердца"}, Reason: "поддерживает работу мозга и сердечно-сосудистую систему", Priority: 10},
		{HealthIssues: []string{"Проблемы с концентрацией", "Сухость кожи"}, Reason: "улучшает когнитивные функции и состояние кожи", Priority: 9},
		{Diet: []string{"Веган/вегетарианец"}, Reason: "восполняет дефицит жирных кислот при растительном питании", Priority: 8},
		{WorkType: []string{"Умственная работа"}, Reason: "поддерживает работу мозга при интенсивных умственных нагрузках", Priority: 8},
	},
	KeyMagnesiumCitrate: {
		{Goals: []string{"Улучшить сон", "Снизить стресс"}, Reason: "помогает расслабиться и улучшает качество сна", Priority: 10},
		{HealthIssues: []string{"Проблемы со сном", "Тревожность", "Мышечные спазмы"}, Reason: "снижает тревожность и расслабляет мышцы", Priority: 9},
		{Habits: []string{"Высокий стресс", "Много кофе"}, Reason: "компенсирует потери магния из-за стресса и кофеина", Priority: 8},
		{Activity: []string{"Высокая активность"}, Reason: "восстанавливает мышцы после физических нагрузок", Priority: 7},
	},
	KeyBComplex: {
		{Goals: []string{"Повысить энергию"}, Reason: "участвует в энергетическом обмене и повышает работоспособность", Priority: 10},
		{HealthIssues: []string{"Усталость", "Проблемы с концентрацией"}, Reason: "борется с усталостью и улучшает концентрацию", Priority: 9},
		{WorkType: []string{"Умственная работа", "Физическая работа"}, Reason: "поддерживает высокую работоспособность", Priority: 8},
		{Habits: []string{"Много кофе", "Курение", "Алкоголь"}, Reason: "восполняет дефицит витаминов группы B", Priority: 7},
	},
	KeyVitaminC: {
		{Goals: []string{"Укрепить иммунитет", "Улучшить кожу"}, Reason: "мощный антиоксидант для иммунитета и красоты кожи", Priority: 9},
		{HealthIssues: []string{"Частые простуды", "Долгое заживление"}, Reason: "укрепляет иммунитет и ускоряет восстановление", Priority: 9},
		{Habits: []string{"Курение"}, Reason: "компенсирует повышенную потребность в витамине C", Priority: 8},
	},
	KeyZincChelate: {
		{Goals: []string{"Укрепить иммунитет", "Улучшить кожу"}, Reason: "поддерживает иммунитет и здоровье кожи", Priority: 8},
		{HealthIssues: []string{"Частые простуды", "Проблемы с кожей", "Выпадение волос"}, Reason: "укрепляет иммунитет, улучшает состояние кожи и волос", Priority: 9},
		{Gender: []string{"male"}, Reason: "особенно важен для мужского здоровья", Priority: 7},
	},
	KeyCoQ10: {
		{Goals: []string{"Повысить энергию", "Здоровье сердца"}, Reason: "улучшает энергетику клеток и поддерживает сердце", Priority: 8},
		{Activity: []string{"Высокая активность"}, Reason: "повышает выносливость при физических нагрузках", Priority: 8},
		{HealthIssues: []string{"Усталость"}, Reason: "борется с хронической усталостью на клеточном уровне", Priority: 7},
	},
	KeyIronBisglycinate: {
		{HealthIssues: []string{"Усталость", "Головокружение"}, Reason: "устраняет дефицит железа и повышает уровень энергии", Priority: 9},
		{Gender: []string{"female"}, Reason: "компенсирует потери железа", Priority: 8},
		{Diet: []string{"Веган/вегетарианец"}, Reason: "восполняет дефицит при растительном питании", Priority: 8},
	},
	KeyCurcumin: {
		{Goals: []string{"Снизить воспаление"}, Reason: "мощный натуральный противовоспалительный агент", Priority: 9},
		{HealthIssues: []string{"Боли в суставах", "Воспаления"}, Reason: "снижает воспаление и боль в суставах", Priority: 9},
		{Activity: []string{"Высокая активность"}, Reason: "ускоряет восстановление после тренировок", Priority: 7},
	},
	KeyProbiotics: {
		{Goals: []string{"Улучшить пищеварение"}, Reason: "восстанавливает баланс микрофлоры кишечника", Priority: 10},
		{HealthIssues: []string{"Проблемы с пищеварением"}, Reason: "нормализует работу ЖКТ", Priority: 10},
		{Diet: []string{"Много обработанной пищи"}, Reason: "компенсирует негативное влияние обработанной пищи", Priority: 7},
	},
	KeyMarineCollagen: {
		{Goals: []string{"Улучшить кожу", "Здоровье суставов"}, Reason: "улучшает состояние кожи, волос и суставов", Priority: 8},
		{HealthIssues: []string{"Проблемы с кожей", "Боли в суставах"}, Reason: "восстанавливает коллаген в коже и суставах", Priority: 8},
	},
	KeyAshwagandha: {
		{Goals: []string{"Снизить стресс", "Улучшить сон"}, Reason: "адаптоген, который снижает стресс и улучшает сон", Priority: 9},
		{HealthIssues: []string{"Тревожность", "Проблемы со сном"}, Reason: "помогает справиться со стрессом и нормализует сон", Priority: 9},
		{Habits: []string{"Высокий стресс"}, Reason: "повышает стрессоустойчивость", Priority: 8},
	},
	KeyLTheanine: {
		{Goals: []string{"Улучшить концентрацию", "Снизить стресс"}, Reason: "улучшает фокус без перевозбуждения", Priority: 7},
		{HealthIssues: []string{"Тревожность", "Проблемы с концентрацией"}, Reason: "снижает тревожность и улучшает концентрацию", Priority: 8},
		{Habits: []string{"Много кофе"}, Reason: "снижает нервозность от кофеина", Priority: 7},
	},
	KeyMelatonin: {
		{Goals: []string{"Улучшить сон"}, Reason: "регулирует циркадные ритмы и улучшает засыпание", Priority: 9},
		{HealthIssues: []string{"Проблемы со сном"}, Reason: "помогает быстрее засыпать и улучшает качество сна", Priority: 10},
		{WorkType: []string{"Ночные смены"}, Reason: "помогает адаптироваться к нерегулярному графику", Priority: 9},
	},
	KeyCreatine: {
		{Goals: []string{"Повысить энергию", "Набрать мышечную массу"}, Reason: "увеличивает силу и мышечную массу", Priority: 9},
		{Activity: []string{"Высокая активность"}, Reason: "повышает спортивную производительность", Priority: 10},
		{WorkType: []string{"Физическая работа"}, Reason: "увеличивает силу и выносливость", Priority: 7},
	},
	KeyRhodiola: {
		{Goals: []string{"Повысить энергию", "Снизить стресс"}, Reason: "адаптоген для энергии и стрессоустойчивости", Priority: 8},
		{HealthIssues: []string{"Усталость", "Тревожность"}, Reason: "борется с усталостью и повышает устойчивость к стрессу", Priority: 8},
		{Habits: []string{"Высокий стресс"}, Reason: "помогает организму адаптироваться к стрессу", Priority: 7},
	},
}
