package bankdir

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
)

// Directory — справочник "код банка -> название банка".
// Заполняется один раз при старте, дальше только читается.
type Directory struct {
	names map[string]string
}

func New(names map[string]string) *Directory {
	copied := make(map[string]string, len(names))
	for code, name := range names {
		copied[code] = name
	}
	return &Directory{names: copied}
}

// LoadFromFile читает bank_codes.json. Отсутствие или порча файла не фатальны:
// справочник остаётся пустым и вместо названий показываются коды.
func LoadFromFile(path string) *Directory {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Warnf("Справочник банков %s не прочитан: %s", path, err)
		return New(nil)
	}

	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		logrus.Warnf("Справочник банков %s не разобран: %s", path, err)
		return New(nil)
	}
	return New(names)
}

// Name возвращает название банка или fallback, если код неизвестен.
func (d *Directory) Name(code, fallback string) string {
	if name, ok := d.names[code]; ok {
		return name
	}
	return fallback
}

func (d *Directory) Len() int {
	return len(d.names)
}
