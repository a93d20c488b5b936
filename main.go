package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/achilleasa/hairbvh/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "hairbvh"
	app.Usage = "build a BVH4Hair acceleration structure over cubic Bezier curve geometry"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging, including a statistics dump after the build",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "build",
			Usage:     "build a hair BVH from a curve scene file",
			ArgsUsage: "scene_file.bin",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "mode",
					Value: "",
					Usage: "build mode token stream, e.g. \"P2 auO uST aSP\"",
				},
				cli.Float64Flag{
					Name:  "replication",
					Value: 0.2,
					Usage: "replication factor bounding spatial-split duplication",
				},
				cli.IntFlag{
					Name:  "max-leaf-size",
					Value: 16,
					Usage: "maximum number of primitives per leaf",
				},
				cli.IntFlag{
					Name:  "threads",
					Value: 0,
					Usage: "worker thread count (0 = number of CPUs)",
				},
			},
			Action: cmd.BuildHairBVH,
		},
	}

	app.Run(os.Args)
}
