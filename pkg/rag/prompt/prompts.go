// Package prompt holds the fixed prompt texts of the producer assistant.
// The assistant speaks Russian; the prompts match the language of the
// knowledge base.
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// RouterSystem is the fixed system prompt of the intent classifier. The
// model must answer with exactly one label.
const RouterSystem = `Ты — классификатор намерений для ассистента контент-продюсера.
Определи намерение последнего сообщения пользователя и ответь РОВНО ОДНИМ словом из списка:

knowledge_base_search — вопрос требует знаний из базы (книги, транскрипты, методология, главы);
creative_writing — просьба написать сценарий, hook, заголовок или другой творческий текст;
direct_response — приветствие, уточнение, разговор о процессе или всё остальное.

Никаких пояснений. Только одно слово из списка.`

// MetadataExtractor asks the model to pull a chapter number out of a query.
const MetadataExtractor = `Извлеки номер главы из запроса пользователя.
Если пользователь явно ссылается на главу, часть или раздел с номером, ответь только этим числом.
Если номера главы в запросе нет, ответь "none".

Запрос: %s`

// Apology is the only user-visible failure text of the pipeline.
const Apology = "Извините, произошла ошибка при генерации ответа."

// PassportMissing is what the summary loader yields when no passport record
// exists, so the generator can always explain the lack of global context.
const PassportMissing = "Глобальный паспорт книги не найден. Ассистент будет использовать только найденные фрагменты."

const generatorSystem = `Ты — персональный контент-продюсер. Ты ведёшь пользователя по 10 этапам построения контент-стратегии: позиционирование, целевая аудитория, боли, триггеры, форматы, контент-план, сценарии, упаковка, дистрибуция, монетизация.

Сейчас идёт ЭТАП %d.

%s

Работай только с текущим этапом. Когда данные этапа собраны, выведи их в конце ответа одним JSON-объектом в блоке ` + "```json```" + `. Не выдумывай факты: опирайся на контекст из базы знаний и на стратегию пользователя, если они даны ниже.`

// GeneratorSystem renders the stage-aware system prompt: the current stage
// number plus a short review of everything already recorded in the
// blueprint.
func GeneratorSystem(currentStage int, blueprint map[int]string) string {
	var review string
	if len(blueprint) == 0 {
		review = "Стратегия еще не начата. Мы на ЭТАПЕ 1."
	} else {
		stages := make([]int, 0, len(blueprint))
		for n := range blueprint {
			stages = append(stages, n)
		}
		sort.Ints(stages)

		var b strings.Builder
		b.WriteString("Накопленная стратегия (ContentBlueprint):\n")
		for _, n := range stages {
			b.WriteString(fmt.Sprintf("Этап %d: %s\n", n, blueprint[n]))
		}
		review = strings.TrimRight(b.String(), "\n")
	}
	return fmt.Sprintf(generatorSystem, currentStage, review)
}

// ContextBlock wraps retrieved knowledge-base passages for the generator.
func ContextBlock(context string) string {
	return "Контекст из базы знаний:\n\n" + context
}

// SummaryBlock wraps the global passport / strategy summary.
func SummaryBlock(summary string) string {
	return "Глобальный контекст книги (паспорт):\n\n" + summary
}
