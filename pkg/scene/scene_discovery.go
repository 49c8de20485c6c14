package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/log"
)

var logger = log.New("scene")

const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"

	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string // Unique identifier
	Name        string // Scene name
	DisplayName string // Display name, including the variant
	Description string // Optional description
	Group       string // Grouping category
	Type        string // TypeBuiltin or TypeFile
	FilePath    string // Path to the scene file (file type only)
	Variant     string // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

type builtinScene struct {
	info SceneInfo
	make func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Glass and mirror spheres over a checkerboard floor"},
		NewDefaultScene},
	{SceneInfo{ID: "cornell-box", Name: "Cornell Box", Description: "Cornell box with a glass and a mirror sphere"},
		NewCornellScene},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "10x10 grid of rainbow-colored glossy spheres"},
		func() *Scene { return NewSphereGridScene(10) }},
	{SceneInfo{ID: "triangle-mesh", Name: "Triangle Mesh", Description: "Box, pyramid and smooth icosahedron meshes"},
		NewTriangleMeshScene},
	{SceneInfo{ID: "textures", Name: "Texture Test", Description: "Image textures on spheres and triangles"},
		NewTextureTestScene},
}

// BuiltinScene constructs the built-in scene with the given ID
func BuiltinScene(id string) (*Scene, bool) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.make(), true
		}
	}
	return nil, false
}

// ListBuiltinScenes returns metadata for every built-in scene
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = TypeBuiltin
		infos[i] = info
	}
	return infos
}

// ListSceneFiles scans dir for *.txt scene files and returns their metadata.
// A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			logger.Warningf("failed to parse metadata for %s: %v", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata extracts metadata from the leading comment lines of a
// scene file:
//
//	# Scene: Cornell Box
//	# Variant: Glass
//	# Description: ...
//	# Group: ...
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	sceneInfo := SceneInfo{
		ID:       fmt.Sprintf("file:%s", nameWithoutExt),
		Name:     titleCase(nameWithoutExt),
		Group:    fileGroup,
		Type:     TypeFile,
		FilePath: filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return sceneInfo, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, ok := strings.Cut(content, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "Scene":
			sceneInfo.Name = value
		case "Variant":
			sceneInfo.Variant = value
		case "Description":
			sceneInfo.Description = value
		case "Group":
			sceneInfo.Group = value
		}
	}

	if sceneInfo.Variant != "" {
		sceneInfo.DisplayName = fmt.Sprintf("%s - %s", sceneInfo.Name, sceneInfo.Variant)
	} else {
		sceneInfo.DisplayName = sceneInfo.Name
	}

	return sceneInfo, scanner.Err()
}

// ListAllScenes returns built-in scenes and the scene files found in dir,
// grouped by category with built-in scenes first
func ListAllScenes(dir string) ([]SceneGroup, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}

	groupMap := make(map[string][]SceneInfo)
	for _, s := range append(ListBuiltinScenes(), files...) {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	var groupNames []string
	for name := range groupMap {
		if name != builtinGroup {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)

	groups := []SceneGroup{{Name: builtinGroup, Scenes: groupMap[builtinGroup]}}
	for _, name := range groupNames {
		groups = append(groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}

	return groups, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
