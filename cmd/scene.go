package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const builtinPrefix = "builtin:"

// loadScene resolves a scene argument. Existing files are parsed as scene
// descriptions; anything else is looked up among the built-in scene IDs,
// with or without the "builtin:" prefix.
func loadScene(arg string) (*scene.Scene, error) {
	if arg == "" {
		return nil, errors.New("missing scene argument")
	}

	if !strings.HasPrefix(arg, builtinPrefix) {
		if _, err := os.Stat(arg); err == nil {
			logger.Infof("loading scene file %s", arg)
			return loaders.LoadScene(arg)
		}
	}

	id := strings.TrimPrefix(arg, builtinPrefix)
	if sc, ok := scene.BuiltinScene(id); ok {
		logger.Infof("using built-in scene %q", id)
		return sc, nil
	}
	return nil, fmt.Errorf("scene %q is neither a readable file nor a built-in scene", arg)
}

// outputPath picks the image filename for a render. Without an explicit
// name, the scene name is reused with a .ppm extension.
func outputPath(arg, out string) string {
	if out != "" {
		return out
	}
	base := strings.TrimPrefix(arg, builtinPrefix)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".ppm"
}
