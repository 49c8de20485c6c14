package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/cmd"
	"github.com/df07/go-whitted-raytracer/pkg/log"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render scenes using Whitted-style ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image",
			Description: `
Load a scene description file (or a built-in scene ID), build a BVH over its
spheres and triangles and trace one ray per pixel with Phong shading, shadows,
reflection and refraction.

The image is written as ASCII PPM unless the output name ends in .png.`,
			ArgsUsage: "scene.txt | builtin-id",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename (default: scene name with a .ppm extension)",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: 8,
					Usage: "maximum reflection/refraction recursion depth",
				},
				cli.BoolFlag{
					Name:  "soft-shadows",
					Usage: "average jittered shadow rays toward each light",
				},
				cli.IntFlag{
					Name:  "shadow-samples",
					Value: 50,
					Usage: "shadow rays per light when soft shadows are enabled",
				},
				cli.BoolFlag{
					Name:  "dof",
					Usage: "enable depth of field by jittering the eye",
				},
				cli.IntFlag{
					Name:  "dof-samples",
					Value: 20,
					Usage: "primary rays per pixel when depth of field is enabled",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "tiles rendered concurrently (0 = number of CPUs)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "tile edge length in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "base seed for soft shadow and depth of field sampling",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:      "inspect",
			Usage:     "print scene and BVH statistics",
			ArgsUsage: "scene.txt | builtin-id",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "verify",
					Usage: "check BVH queries against a linear scan on this many random rays",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "seed for the verification rays",
				},
				cli.StringFlag{
					Name:  "pixel",
					Usage: "describe the surface seen through pixel x,y",
				},
			},
			Action: cmd.InspectScene,
		},
		{
			Name:  "list",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory searched for *.txt scene files",
				},
			},
			Action: cmd.ListScenes,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("whitted").Errorf("%v", err)
		os.Exit(1)
	}
}
