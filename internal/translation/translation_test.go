package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	r := NewResolver(DefaultConfig())

	//未対応の言語はデフォルトに落ちる
	assert.Equal(t, "en", r.Normalize("de"))
	assert.Equal(t, "en", r.Normalize(""))
	assert.Equal(t, "fr", r.Normalize("fr"))
	assert.Equal(t, "ar", r.Normalize("ar"))
	assert.Equal(t, "fr", r.Normalize("FR"))
}

func TestResolve_FallbackToDefault(t *testing.T) {
	r := NewResolver(DefaultConfig())

	translations := map[string]string{
		"fr": "Fruits Frais",
		"ar": "فواكه طازجة",
	}

	assert.Equal(t, "Fruits Frais", r.Resolve("Fresh Fruits", translations, "fr"))
	assert.Equal(t, "فواكه طازجة", r.Resolve("Fresh Fruits", translations, "ar"))

	//未対応言語はenに正規化され、enの訳が無ければ既定値
	assert.Equal(t, "Fresh Fruits", r.Resolve("Fresh Fruits", translations, "de"))
	assert.Equal(t, "Fresh Fruits", r.Resolve("Fresh Fruits", translations, "en"))
}

func TestResolve_EmptyEntries(t *testing.T) {
	r := NewResolver(DefaultConfig())

	//空や空白だけの訳は無い扱い
	assert.Equal(t, "Apple", r.Resolve("Apple", map[string]string{"fr": ""}, "fr"))
	assert.Equal(t, "Apple", r.Resolve("Apple", map[string]string{"fr": "   "}, "fr"))
	assert.Equal(t, "Apple", r.Resolve("Apple", nil, "fr"))
	assert.Equal(t, "Pomme", r.Resolve("Apple", map[string]string{"fr": " Pomme "}, "fr"))
}

func TestResolve_CustomConfig(t *testing.T) {
	r := NewResolver(Config{
		Supported: []string{"en", "ja"},
		Default:   "ja",
	})

	translations := map[string]string{"ja": "りんご", "en": "Apple"}

	assert.Equal(t, "りんご", r.Resolve("fallback", translations, "ja"))
	assert.Equal(t, "Apple", r.Resolve("fallback", translations, "en"))
	assert.Equal(t, "りんご", r.Resolve("fallback", translations, "fr"))
}
