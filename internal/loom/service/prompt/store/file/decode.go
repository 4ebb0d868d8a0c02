package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
	"github.com/kiosk404/promptloom/pkg/utils/json"
	"gopkg.in/yaml.v3"
)

// decodeFile reads a JSON or YAML file into v.
// YAML is normalised through JSON so both formats share the same field names.
func decodeFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}
	return decode(filepath.Ext(path), data, v)
}

func decode(ext string, data []byte, v interface{}) error {
	switch strings.ToLower(ext) {
	case ".json":
		return json.Unmarshal(data, v)
	case ".yaml", ".yml":
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		if generic == nil {
			return nil
		}
		raw, err := json.Marshal(generic)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, v)
	default:
		return fmt.Errorf("%w: %q", errno.ErrUnsupportedConfigExtension, ext)
	}
}
