package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// BindJsonOrYaml loads the file at filePath into obj, accepting either json
// or yaml based on the file extension (yaml by default).
func BindJsonOrYaml(filePath string, obj interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed opening file %s due to %s", filePath, err)
	}
	if strings.HasSuffix(filePath, ".json") {
		err = json.Unmarshal(data, obj)
	} else {
		err = yaml.Unmarshal(data, obj)
	}
	if err != nil {
		return fmt.Errorf("failed to parse file %s because: %v", filePath, err)
	}
	return nil
}
