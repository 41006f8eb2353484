package advice

import "github.com/tartampluch/go-lunar/internal/lunar"

// Table maps each phase to its advisory strings.
type Table map[lunar.Phase][]string

// Tables holds the built-in tables per language.
var Tables = map[string]Table{
	"ru": {
		lunar.NewMoon: {
			"💼 Запишите намерения на месяц и выберите одно главное дело",
			"⛔ Отложите крупные покупки и подписание договоров",
			"🕯 Вечером зажгите свечу и проговорите один желаемый итог",
			"💰 Составьте простой бюджет на ближайшие четыре недели",
			"🧹 Освободите рабочий стол от лишнего перед новым циклом",
			"🌱 Начните маленькую привычку, которую легко повторять каждый день",
		},
		lunar.WaxingCrescent: {
			"💼 Сделайте первый шаг по проекту, который давно откладывали",
			"⛔ Не берите на себя новые обязательства сверх намеченного",
			"🕯 Утром выпейте стакан тёплой воды и составьте список на день",
			"📞 Напишите человеку, с которым хотите укрепить связь",
			"💰 Отложите небольшую сумму на будущую цель",
			"📚 Выделите полчаса на обучение новому навыку",
		},
		lunar.FirstQuarter: {
			"💼 Решите одну трудную задачу до обеда, пока хватает сил",
			"⛔ Отложите спорные разговоры до вечера",
			"🕯 Сделайте короткую прогулку и отметьте три удачных момента дня",
			"🎯 Проверьте, не отклонились ли вы от плана, и скорректируйте курс",
			"🤝 Договоритесь о помощи там, где не справляетесь в одиночку",
		},
		lunar.WaxingGibbous: {
			"💼 Доведите до ума детали и отшлифуйте результат",
			"⛔ Не начинайте новых проектов, завершите текущие",
			"🕯 Перед сном запишите, чему научились за неделю",
			"📈 Подготовьте отчёт или презентацию о достигнутом",
			"🥗 Добавьте в рацион больше овощей и воды",
		},
		lunar.FullMoon: {
			"💼 Подведите итоги и поблагодарите команду за работу",
			"⛔ Отложите резкие решения и выяснение отношений",
			"🕯 Вечером выйдите на улицу и несколько минут посмотрите на Луну",
			"💰 Проверьте счета и закройте мелкие долги",
			"🧘 Снизьте нагрузку и дайте себе время на отдых",
			"📖 Перечитайте намерения, записанные в новолуние",
		},
		lunar.WaningGibbous: {
			"💼 Поделитесь опытом с коллегами или наставьте новичка",
			"⛔ Не начинайте затратных дел и новых диет",
			"🕯 Разберите одну полку и отдайте ненужное",
			"🧾 Упорядочьте документы и архивы",
			"🙏 Скажите спасибо тем, кто помог вам в этом месяце",
		},
		lunar.LastQuarter: {
			"💼 Закройте хвосты и удалите неактуальные задачи из списка",
			"⛔ Отложите запуск новых проектов до новолуния",
			"🕯 Проведите вечер без экранов и с тёплым чаем",
			"🔍 Проанализируйте, что не сработало, и сделайте выводы",
			"🧹 Проведите генеральную уборку рабочего места",
		},
		lunar.WaningCrescent: {
			"💼 Выполняйте только рутинные и спокойные задачи",
			"⛔ Отложите важные встречи и переговоры",
			"🕯 Ложитесь спать пораньше и проветрите спальню",
			"🧘 Уделите время медитации или дыхательным упражнениям",
			"✂️ Откажитесь от одной привычки, которая отнимает силы",
		},
	},
	"en": {
		lunar.NewMoon: {
			"💼 Write down your intentions for the month and pick one main goal",
			"⛔ Postpone large purchases and signing contracts",
			"🕯 Light a candle in the evening and name one outcome you want",
			"💰 Draft a simple budget for the next four weeks",
			"🌱 Start a small habit that is easy to repeat every day",
		},
		lunar.WaxingCrescent: {
			"💼 Take the first step on a project you have been putting off",
			"⛔ Avoid commitments beyond what you already planned",
			"🕯 Start the morning with a glass of warm water and a short list",
			"📞 Message someone you want to stay closer to",
			"📚 Spend half an hour learning a new skill",
		},
		lunar.FirstQuarter: {
			"💼 Tackle one hard task before lunch while energy is high",
			"⛔ Leave contentious conversations for later",
			"🕯 Take a short walk and note three good moments of the day",
			"🎯 Check the plan and correct course where needed",
			"🤝 Ask for help where you cannot manage alone",
		},
		lunar.WaxingGibbous: {
			"💼 Polish the details and refine the result",
			"⛔ Finish current projects instead of starting new ones",
			"🕯 Before bed, write down what you learned this week",
			"📈 Prepare a report on what has been achieved",
			"🥗 Add more vegetables and water to your day",
		},
		lunar.FullMoon: {
			"💼 Review results and thank the team",
			"⛔ Hold off on abrupt decisions and arguments",
			"🕯 Step outside in the evening and watch the Moon for a few minutes",
			"💰 Check accounts and settle small debts",
			"🧘 Lower the load and allow time to rest",
		},
		lunar.WaningGibbous: {
			"💼 Share your experience with colleagues or mentor a newcomer",
			"⛔ Avoid costly undertakings and new diets",
			"🕯 Clear one shelf and give away what you do not need",
			"🧾 Sort documents and archives",
			"🙏 Thank those who helped you this month",
		},
		lunar.LastQuarter: {
			"💼 Close loose ends and drop outdated tasks",
			"⛔ Delay launches until the new moon",
			"🕯 Spend an evening without screens",
			"🔍 Review what did not work and draw conclusions",
			"🧹 Deep-clean your workspace",
		},
		lunar.WaningCrescent: {
			"💼 Keep to routine and quiet tasks",
			"⛔ Postpone important meetings and negotiations",
			"🕯 Go to bed early and air the bedroom",
			"🧘 Make time for meditation or breathing exercises",
			"✂️ Drop one habit that drains your energy",
		},
	},
}

// TableFor returns the built-in table for lang, or the Russian one.
func TableFor(lang string) Table {
	if t, ok := Tables[lang]; ok {
		return t
	}
	return Tables["ru"]
}

// PeriodTable maps each phase to a two-sentence period description with one
// "%s" verb for the month.
type PeriodTable map[lunar.Phase]string

// PeriodTables holds the built-in period descriptions per language.
var PeriodTables = map[string]PeriodTable{
	"ru": {
		lunar.NewMoon:        "В новолуние в %s открываются ворота к новым намерениям и перезапуску. Сформулируйте желания, очистите пространство и посейте семена будущих дел.",
		lunar.WaxingCrescent: "Растущий серп в %s приносит импульс к началу дел и укреплению связей. Двигайтесь шаг за шагом, чтобы создать прочный фундамент для успеха.",
		lunar.FirstQuarter:   "В первую четверть в %s энергия Луны побуждает к действию и реализации задуманного. Используйте этот период для постановки целей и активных шагов к их достижению.",
		lunar.WaxingGibbous:  "Растущая Луна в %s наполняет энергией роста и новых начинаний. Используйте этот период для реализации своих планов и укрепления уверенности в себе.",
		lunar.FullMoon:       "Полнолуние в %s приносит мощное очищение и возможность трансформации. Это удачное время для завершения старых дел и создания пространства для нового.",
		lunar.WaningGibbous:  "Убывающая Луна в %s подталкивает к завершению и мягкому отпусканию лишнего. Подведите итоги и подготовьте почву для следующего цикла.",
		lunar.LastQuarter:    "В период последней четверти в %s самое время для рефлексии и наведения порядка. Сфокусируйтесь на внутреннем равновесии и завершении незавершённого.",
		lunar.WaningCrescent: "Убывающий серп в %s помогает мягко завершить начатое и отпустить лишнее. Позаботьтесь о себе и накопите ресурсы для нового этапа.",
	},
	"en": {
		lunar.NewMoon:        "The new moon in %s opens the way to fresh intentions and a clean restart. Name your wishes and plant the seeds of future plans.",
		lunar.WaxingCrescent: "The waxing crescent in %s brings the push to begin things and strengthen ties. Move step by step to build a solid foundation.",
		lunar.FirstQuarter:   "The first quarter in %s urges action on what you planned. Use it to set goals and take active steps toward them.",
		lunar.WaxingGibbous:  "The waxing moon in %s fills the days with the energy of growth. Use this period to carry plans forward and build confidence.",
		lunar.FullMoon:       "The full moon in %s brings release and room for change. It is a good time to finish old business and make space for the new.",
		lunar.WaningGibbous:  "The waning moon in %s favors completion and gently letting go. Take stock and prepare the ground for the next cycle.",
		lunar.LastQuarter:    "The last quarter in %s is a time for reflection and putting things in order. Focus on inner balance and finishing what is left.",
		lunar.WaningCrescent: "The waning crescent in %s helps wrap up what was started. Look after yourself and gather strength for the next stage.",
	},
}

// PeriodTableFor returns the built-in period texts for lang, or the Russian ones.
func PeriodTableFor(lang string) PeriodTable {
	if t, ok := PeriodTables[lang]; ok {
		return t
	}
	return PeriodTables["ru"]
}
