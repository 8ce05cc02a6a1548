package export

import (
	"embed"
	"fmt"
)

// Icons are compiled into the binary so an export is self-contained in dev
// and packaged builds alike.
//
//go:embed icons/*.png
var iconFS embed.FS

// iconBytes returns the embedded icon file for a canonical name like
// "bug.png".
func iconBytes(name string) ([]byte, error) {
	data, err := iconFS.ReadFile("icons/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown icon %q: %w", name, err)
	}
	return data, nil
}
