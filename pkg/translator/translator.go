package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var embeddedCatalogs embed.FS

var Translator *i18n.Bundle

type Config struct {
	// TranslationFolder overrides the catalogs compiled into the binary.
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

// InitTranslator builds the global bundle. Catalogs for languages outside
// SupportedLanguages are skipped; an unreadable folder falls back to the
// embedded catalogs.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	var (
		catalogs fs.FS = embeddedCatalogs
		dir            = "translation"
	)
	if cfg.TranslationFolder != "" {
		if _, err := os.Stat(cfg.TranslationFolder); err != nil {
			zap.L().Warn("translation folder unavailable, using embedded catalogs",
				zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		} else {
			catalogs = os.DirFS(cfg.TranslationFolder)
			dir = "."
		}
	}

	entries, err := fs.ReadDir(catalogs, dir)
	if err != nil {
		zap.L().Error("failed to list translation catalogs", zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !isSupported(entry.Name(), cfg.SupportedLanguages) {
			continue
		}
		if err := loadCatalog(catalogs, path.Join(dir, entry.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", entry.Name()), zap.Error(err))
		}
	}
}

func loadCatalog(catalogs fs.FS, name string) error {
	content, err := fs.ReadFile(catalogs, name)
	if err != nil {
		return err
	}
	if _, err := Translator.ParseMessageFileBytes(content, path.Base(name)); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func isSupported(fileName string, supported []string) bool {
	if len(supported) == 0 {
		return true
	}
	lang := strings.SplitN(fileName, ".", 2)[0]
	for _, candidate := range supported {
		if strings.EqualFold(candidate, lang) {
			return true
		}
	}
	return false
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value, defaulting to English.
func MatchLanguage(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	_, index, _ := matcher.Match(tags...)
	if index == 1 {
		return LanguageFr
	}
	return LanguageEn
}
