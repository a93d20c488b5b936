package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/urfave/cli"

	"github.com/achilleasa/hairbvh/curvescene"
	"github.com/achilleasa/hairbvh/hair"
	"github.com/achilleasa/hairbvh/workerpool"
)

// BuildHairBVH parses the build-mode string and scene file given on the
// command line, builds a BVH4Hair tree, and prints a statistics dump
// when verbosity is at least 2 (-vv).
func BuildHairBVH(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return fmt.Errorf("build: no scene file specified")
	}

	tokens := strings.Fields(ctx.String("mode"))
	cfg, err := hair.ParseMode(tokens, ctx.Float64("replication"))
	if err != nil {
		return err
	}

	sc, err := curvescene.Load(ctx.Args().First())
	if err != nil {
		return err
	}

	threadCount := ctx.Int("threads")
	if threadCount <= 0 {
		threadCount = runtime.NumCPU()
	}

	bvh := hair.Build(sc, workerpool.New(), cfg, hair.InlineLeaf, ctx.Int("max-leaf-size"), threadCount)

	if ctx.GlobalBool("vv") {
		fmt.Print(hair.Dump(bvh))
	}

	logger.Noticef("built hair BVH: %d primitives, %d vertices", bvh.NumPrimitives, bvh.NumVertices)
	return nil
}
