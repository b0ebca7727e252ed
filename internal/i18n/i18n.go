package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

var lang string

var translations = map[string]map[string]string{
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Stop": {
		"pt": "Parar",
		"es": "Parar",
		"ru": "Стоп",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Work": {
		"pt": "Trabalho",
		"es": "Trabajo",
		"ru": "Работа",
	},
	"Rest": {
		"pt": "Descanso",
		"es": "Descanso",
		"ru": "Отдых",
	},
	"Ready": {
		"pt": "Pronto",
		"es": "Listo",
		"ru": "Готово",
	},
	"Paused": {
		"pt": "Pausado",
		"es": "En pausa",
		"ru": "Пауза",
	},
	"Pause": {
		"pt": "Pausar",
		"es": "Pausar",
		"ru": "Пауза",
	},
	"Resume": {
		"pt": "Retomar",
		"es": "Reanudar",
		"ru": "Продолжить",
	},
	"Settings": {
		"pt": "Configurações",
		"es": "Configuración",
		"ru": "Настройки",
	},
	"Save": {
		"pt": "Salvar",
		"es": "Guardar",
		"ru": "Сохранить",
	},
	"Cancel": {
		"pt": "Cancelar",
		"es": "Cancelar",
		"ru": "Отмена",
	},
	"Quit": {
		"pt": "Sair",
		"es": "Salir",
		"ru": "Выход",
	},
	"Done": {
		"pt": "Concluído",
		"es": "Hecho",
		"ru": "Готово",
	},
	"Volume": {
		"pt": "Volume",
		"es": "Volumen",
		"ru": "Громкость",
	},
	"Cycles": {
		"pt": "Ciclos",
		"es": "Ciclos",
		"ru": "Циклы",
	},
	"Workout complete!": {
		"pt": "Treino concluído!",
		"es": "¡Entrenamiento completado!",
		"ru": "Тренировка завершена!",
	},
	"Stopwatch": {
		"pt": "Cronômetro",
		"es": "Cronómetro",
		"ru": "Секундомер",
	},
	"Workout": {
		"pt": "Treino",
		"es": "Entrenamiento",
		"ru": "Тренировка",
	},
	"Begin": {
		"pt": "Começar",
		"es": "Comenzar",
		"ru": "Начать",
	},
	"Abort": {
		"pt": "Abortar",
		"es": "Abortar",
		"ru": "Прервать",
	},
	"Plan": {
		"pt": "Plano",
		"es": "Plan",
		"ru": "План",
	},
	"Next": {
		"pt": "Próximo",
		"es": "Siguiente",
		"ru": "Далее",
	},
	"FitClock Settings": {
		"pt": "Configurações do FitClock",
		"es": "Configuración de FitClock",
		"ru": "Настройки FitClock",
	},
	"Intervals": {
		"pt": "Intervalos",
		"es": "Intervalos",
		"ru": "Интервалы",
	},
	"Work interval": {
		"pt": "Intervalo de trabalho",
		"es": "Intervalo de trabajo",
		"ru": "Интервал работы",
	},
	"Rest interval": {
		"pt": "Intervalo de descanso",
		"es": "Intervalo de descanso",
		"ru": "Интервал отдыха",
	},
	"sec": {
		"pt": "seg",
		"es": "seg",
		"ru": "сек",
	},
	"Sound": {
		"pt": "Som",
		"es": "Sonido",
		"ru": "Звук",
	},
	"Enable sounds": {
		"pt": "Ativar sons",
		"es": "Activar sonidos",
		"ru": "Включить звуки",
	},
	"Beep when a phase starts": {
		"pt": "Bipe ao iniciar uma fase",
		"es": "Pitido al iniciar una fase",
		"ru": "Сигнал при начале фазы",
	},
	"Beep at the halfway mark": {
		"pt": "Bipe na metade",
		"es": "Pitido a mitad de camino",
		"ru": "Сигнал на середине",
	},
	"Beep when work ends": {
		"pt": "Bipe ao terminar o trabalho",
		"es": "Pitido al terminar el trabajo",
		"ru": "Сигнал при окончании работы",
	},
	"Stealth mode (mute all cues)": {
		"pt": "Modo silencioso (sem sons)",
		"es": "Modo silencioso (sin sonidos)",
		"ru": "Тихий режим (без звуков)",
	},
	"Start at login": {
		"pt": "Iniciar com o sistema",
		"es": "Iniciar con el sistema",
		"ru": "Запускать при входе",
	},
	"System": {
		"pt": "Sistema",
		"es": "Sistema",
		"ru": "Система",
	},
	"Show": {
		"pt": "Mostrar",
		"es": "Mostrar",
		"ru": "Показать",
	},
	"Mute": {
		"pt": "Silenciar",
		"es": "Silenciar",
		"ru": "Выключить звук",
	},
	"Unmute": {
		"pt": "Ativar som",
		"es": "Activar sonido",
		"ru": "Включить звук",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv("FITCLOCK_LANG")); forcedLang != "" {
		log.Printf("FITCLOCK_LANG is set to: '%s'", forcedLang)
		lang = forcedLang
		return
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		detected := userLocales[0]
		log.Printf("Detected user locale: %s", detected)
		switch {
		case strings.HasPrefix(detected, "pt"):
			lang = "pt"
		case strings.HasPrefix(detected, "es"):
			lang = "es"
		case strings.HasPrefix(detected, "ru"):
			lang = "ru"
		default:
			lang = "en"
		}
	} else {
		log.Println("No user locale detected, defaulting to english")
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

// T returns the translation of key for the active language, or the key
// itself when no translation exists.
func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

// GetLang returns the active language code.
func GetLang() string {
	return lang
}
