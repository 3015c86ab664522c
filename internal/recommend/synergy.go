package recommend

import "github.com/tbourn/go-vitamins-backend/internal/domain"

// synergyTable holds known pairwise interactions, authored as directional
// "A+B" display-name keys. Lookups check both directions, so authoring one
// direction is enough.
var synergyTable = map[string]string{
	"Витамин D3+Омега-3 Premium":                   "Омега-3 улучшает усвоение витамина D3, усиливая противовоспалительный эффект",
	"Витамин D3+Магний цитрат":                     "Магний необходим для преобразования D3 в активную форму",
	"B-комплекс энергия+Магний цитрат":             "Магний активирует витамины группы B, повышая энергетический потенциал",
	"Витамин C липосомальный+Цинк хелат":           "Взаимно усиливают иммунную защиту организма",
	"Коэнзим Q10+Омега-3 Premium":                  "Синергия для здоровья сердца и энергии клеток",
	"Куркумин+Омега-3 Premium":                     "Усиленный противовоспалительный эффект",
	"Магний цитрат+Мелатонин":                      "Комплексное улучшение качества сна",
	"L-теанин+B-комплекс энергия":                  "Спокойная концентрация и продуктивность",
	"Ашваганда+Магний цитрат":                      "Глубокое расслабление и снижение стресса",
	"Коллаген морской+Витамин C липосомальный":     "Витамин C необходим для синтеза коллагена",
}

// Synergies returns the known pairwise interactions among the given product
// names. Each unordered pair is evaluated exactly once (i < j); the combo
// label preserves the input order regardless of which key direction the
// table was authored in. Unmatched pairs produce no entry.
func Synergies(productNames []string) []domain.Synergy {
	out := make([]domain.Synergy, 0)
	for i := 0; i < len(productNames); i++ {
		for j := i + 1; j < len(productNames); j++ {
			a, b := productNames[i], productNames[j]
			effect, ok := synergyTable[a+"+"+b]
			if !ok {
				effect, ok = synergyTable[b+"+"+a]
			}
			if ok {
				out = append(out, domain.Synergy{Combo: a + " + " + b, Effect: effect})
			}
		}
	}
	return out
}
