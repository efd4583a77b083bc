package translation

import "strings"

// 対応言語とデフォルト言語。プロセス全体の設定としてResolverに注入する。
type Config struct {
	Supported []string
	Default   string
}

// en/fr/ar、デフォルトはen
func DefaultConfig() Config {
	return Config{
		Supported: []string{"en", "fr", "ar"},
		Default:   "en",
	}
}

// 訳文の解決。副作用なし。
type Resolver struct {
	cfg       Config
	supported map[string]struct{}
}

// DI
func NewResolver(cfg Config) *Resolver {
	supported := make(map[string]struct{}, len(cfg.Supported))
	for _, lang := range cfg.Supported {
		supported[lang] = struct{}{}
	}
	return &Resolver{cfg: cfg, supported: supported}
}

// 未対応の言語コードはデフォルト言語に置き換える
func (r *Resolver) Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return r.cfg.Default
	}
	if _, ok := r.supported[lang]; !ok {
		return r.cfg.Default
	}
	return lang
}

// 表示値の解決：
//   - 言語コードを正規化する
//   - 訳文マップに空白以外のエントリがあればそれを返す
//   - なければデフォルト値をそのまま返す
func (r *Resolver) Resolve(defaultValue string, translations map[string]string, lang string) string {
	lang = r.Normalize(lang)

	if translations != nil {
		if translated, ok := translations[lang]; ok {
			if v := strings.TrimSpace(translated); v != "" {
				return v
			}
		}
	}

	return defaultValue
}
