package helpers

import (
	_ "embed"
	"fmt"
	"math/rand"
	"sync"

	"github.com/Jeffail/gabs"
)

//go:embed _assets/i18n.json
var translationsFile []byte

var (
	translations      *gabs.Container
	translationsMutex sync.RWMutex
)

// LoadTranslations parses the embedded i18n.json
func LoadTranslations() {
	json, err := gabs.ParseJSON(translationsFile)
	Relax(err)

	translationsMutex.Lock()
	translations = json
	translationsMutex.Unlock()
}

// GetText returns the text stored at $id, or $id itself if there is none
func GetText(id string) string {
	translationsMutex.RLock()
	defer translationsMutex.RUnlock()

	if translations == nil || !translations.ExistsP(id) {
		return id
	}

	item := translations.Path(id)

	// objects resolve to their "__" entry
	if _, ok := item.Data().(map[string]interface{}); ok {
		item = item.Path("__")
	}

	switch data := item.Data().(type) {
	case string:
		return data
	case []interface{}:
		// arrays return a random item
		if len(data) > 0 {
			if text, ok := data[rand.Intn(len(data))].(string); ok {
				return text
			}
		}
	}

	return id
}

func GetTextF(id string, replacements ...interface{}) string {
	return fmt.Sprintf(GetText(id), replacements...)
}
