package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// List built-in scenes and the scene files found in a directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	groups, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Group", "Scene", "Argument", "Description"})

	count := 0
	for _, group := range groups {
		name := group.Name
		for _, info := range group.Scenes {
			arg := info.ID
			if info.Type == scene.TypeFile {
				arg = info.FilePath
			}
			table.Append([]string{name, info.DisplayName, arg, info.Description})
			name = ""
			count++
		}
	}

	table.Render()
	logger.Noticef("%d scenes available\n%s", count, buf.String())
	return nil
}
