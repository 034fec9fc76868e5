package icontext

import (
	"sync"

	"github.com/vanderheijden86/walkthrough/pkg/debug"
)

var translations = map[Language]map[string]string{
	English: {
		"welcome":          "Welcome to the App",
		"profile":          "Profile Setup",
		"location":         "Location Services",
		"chat":             "Chat Features",
		"video":            "Video Sharing",
		"help":             "Get Help",
		"advanced":         "Advanced Options",
		"learnNavigation":  "Learn how to navigate the interface.",
		"customizeProfile": "Customize your profile for better experience.",
		"setLocation":      "Set your location for local features.",
		"connectOthers":    "Connect with others using our chat feature.",
		"shareVideos":      "Share and view videos with friends.",
		"getHelp":          "Learn how to get help when needed.",
		"exploreMore":      "Explore more features in the advanced menu.",
		"previous":         "Previous",
		"next":             "Next",
		"finish":           "Finish",
		"startTour":        "Start tour",
	},
	Spanish: {
		"welcome":          "Bienvenido a la Aplicación",
		"profile":          "Configuración de Perfil",
		"location":         "Servicios de Ubicación",
		"chat":             "Funciones de Chat",
		"video":            "Compartir Videos",
		"help":             "Obtener Ayuda",
		"advanced":         "Opciones Avanzadas",
		"learnNavigation":  "Aprende a navegar por la interfaz.",
		"customizeProfile": "Personaliza tu perfil para una mejor experiencia.",
		"setLocation":      "Establece tu ubicación para funciones locales.",
		"connectOthers":    "Conéctate con otros usando nuestra función de chat.",
		"shareVideos":      "Comparte y mira videos con amigos.",
		"getHelp":          "Aprende cómo obtener ayuda cuando la necesites.",
		"exploreMore":      "Explora más funciones en el menú avanzado.",
		"previous":         "Anterior",
		"next":             "Siguiente",
		"finish":           "Terminar",
	},
	French: {
		"welcome":          "Bienvenue dans l'Application",
		"profile":          "Configuration du Profil",
		"location":         "Services de Localisation",
		"chat":             "Fonctionnalités de Chat",
		"video":            "Partage de Vidéos",
		"help":             "Obtenir de l'Aide",
		"advanced":         "Options Avancées",
		"learnNavigation":  "Apprenez à naviguer dans l'interface.",
		"customizeProfile": "Personnalisez votre profil pour une meilleure expérience.",
		"setLocation":      "Définissez votre emplacement pour les fonctionnalités locales.",
		"connectOthers":    "Connectez-vous avec d'autres personnes à l'aide de notre fonction de chat.",
		"shareVideos":      "Partagez et regardez des vidéos avec des amis.",
		"getHelp":          "Apprenez à obtenir de l'aide en cas de besoin.",
		"exploreMore":      "Explorez plus de fonctionnalités dans le menu avancé.",
		"previous":         "Précédent",
		"next":             "Suivant",
		"finish":           "Terminer",
	},
}

// Translator resolves UI string keys in the current language.
type Translator struct {
	mu   sync.RWMutex
	lang Language
}

// NewTranslator returns an English translator.
func NewTranslator() *Translator {
	return &Translator{lang: English}
}

// SetLanguage switches language. Unsupported languages are rejected and the
// current language is kept.
func (t *Translator) SetLanguage(s string) error {
	lang, err := ParseLanguage(s)
	if err != nil {
		debug.Warn(err, "language not supported")
		return err
	}
	t.mu.Lock()
	t.lang = lang
	t.mu.Unlock()
	debug.Log("language changed to %s", lang)
	return nil
}

// Language returns the current language.
func (t *Translator) Language() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// T translates key, falling back to English and then to the key itself.
func (t *Translator) T(key string) string {
	lang := t.Language()
	if s := translations[lang][key]; s != "" {
		return s
	}
	if s := translations[English][key]; s != "" {
		return s
	}
	return key
}
