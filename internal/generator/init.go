package generator

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var initFiles = map[string]string{
	"bitmasks.toml": `# bitmasks.toml: объявления битовых масок
# Каждая секция [[bitmask]] описывает один тип.

# Perm describes access rights to a resource.
[[bitmask]]
name = "Perm"
type = "u8"
config = ["inverted_flags", "vec_debug", "flags_iter"]
prefix = "Perm"
flags = [
  "Read",
  "Write",
  "Exec",
  { name = "All", value = "Read | Write | Exec", doc = "All grants every right." },
]
`,

	"bitmasks.yaml.example": `# bitmasks.yaml.example: то же в YAML, переименуйте в bitmasks.yaml
bitmask:
  - name: Mode
    type: u16
    config: flags_iter
    flags:
      - Dir
      - Symlink
      - name: Special
        value: 0x100
`,
}

// Init создаёт пример спецификации в указанной директории
func Init(specDir string) error {
	if err := os.MkdirAll(specDir, 0o755); err != nil {
		return errors.Wrapf(err, "создание директории %s", specDir)
	}

	for _, name := range []string{"bitmasks.toml", "bitmasks.yaml.example"} {
		path := filepath.Join(specDir, name)
		if _, err := os.Stat(path); err == nil {
			log.WithField("file", name).Info("skip: already exists")
			continue
		}
		if err := os.WriteFile(path, []byte(initFiles[name]), 0o644); err != nil {
			return errors.Wrapf(err, "запись %s", name)
		}
		log.WithField("file", name).Info("created")
	}

	return nil
}
