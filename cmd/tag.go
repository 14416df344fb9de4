/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/rotblauer/polytag/api"
	"github.com/rotblauer/polytag/catz"
	"github.com/rotblauer/polytag/common"
	"github.com/rotblauer/polytag/params"
	"github.com/rotblauer/polytag/shape"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"io"
	"log/slog"
	"os"
	"strings"
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Tag objects from stdin with the property of their container",
	Long: `Tag reads objects, one per line, from stdin and writes them as GeoJSON features
(NDJSON) with the tag of their container set as a property.

An object line may be a GeoJSON Feature, FeatureCollection, or geometry,
a [lon, lat] pair, or an object with lat and lon fields.

Containers are the Polygon and MultiPolygon features of --containers, in order.
--containers may instead name a built-in Natural Earth dataset:
rgeo:Countries110, rgeo:Countries10, rgeo:Provinces10, rgeo:US_Counties10 or rgeo:Cities10.
A container's tag is its --tag.property property.

By default only the first container is tested for each object,
so objects outside it fail with a containment error. Use --all to
search every container and tag with the first one containing the object.

An interrupt stops the run after the current object. Input is read line by
line, so while stdin is idle a second interrupt is needed to exit.

Examples:

  zcat tracks.json.gz | polytag tag --containers states.geojson.gz --tag.property NAME --all --skip-unmatched
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaultSlog(cmd, args)
		return runTagger(cmd, func(t *api.Tagger, ctx context.Context, in io.Reader, out io.Writer) (api.Summary, error) {
			return t.Tag(ctx, in, out)
		})
	},
}

var tagFlags = pflag.NewFlagSet("tag", pflag.ContinueOnError)

func init() {
	rootCmd.AddCommand(tagCmd)

	// This flagset is shared with the index command,
	// and writes to the same configuration structure.
	c := params.InProcTagConfig
	tagFlags.StringVar(&c.ContainersPath, "containers", c.ContainersPath,
		`GeoJSON FeatureCollection of container polygons (.gz ok), or a built-in dataset, eg. rgeo:Countries10`)
	tagFlags.StringVar(&c.TagProperty, "tag.property", c.TagProperty,
		`Container feature property to tag with`)
	tagFlags.StringVar(&c.TagKey, "tag.key", c.TagKey,
		`Property to write tags to`)
	tagFlags.StringVarP(&c.OutputPath, "output", "o", c.OutputPath,
		`Output file, "-" for stdout (.gz ok)`)
	tagFlags.BoolVar(&c.SearchAll, "all", c.SearchAll,
		`Search all containers, not just the first`)
	tagFlags.BoolVar(&c.Spherical, "spherical", c.Spherical,
		`Use spherical (S2) containment instead of planar`)
	tagFlags.BoolVar(&c.SkipUnmatched, "skip-unmatched", c.SkipUnmatched,
		`Pass through objects no container contains, untagged, instead of failing`)
	tagFlags.BoolVar(&c.DropUnmatched, "drop-unmatched", c.DropUnmatched,
		`Drop objects no container contains instead of failing`)
	tagFlags.BoolVar(&c.Dedupe, "dedupe", c.Dedupe,
		`Drop recently seen duplicate objects`)
	tagFlags.IntVar(&c.DedupeSize, "dedupe.size", c.DedupeSize,
		`Number of recent objects remembered by --dedupe`)
	tagFlags.IntVar(&c.CacheSize, "cache.size", c.CacheSize,
		`Containment test LRU size, 0 disables`)

	tagCmd.Flags().AddFlagSet(tagFlags)
}

type runFn func(t *api.Tagger, ctx context.Context, in io.Reader, out io.Writer) (api.Summary, error)

func runTagger(cmd *cobra.Command, run runFn) error {
	config := params.InProcTagConfig
	if config.ContainersPath == "" {
		return errors.New("--containers is required")
	}

	containersPath := config.ContainersPath
	if !strings.HasPrefix(containersPath, shape.DatasetPrefix) {
		var err error
		containersPath, err = homedir.Expand(containersPath)
		if err != nil {
			return err
		}
	}
	regions, err := shape.LoadContainers(containersPath)
	if err != nil {
		return fmt.Errorf("load containers: %w", err)
	}
	slog.Info("Loaded containers", "path", containersPath, "count", len(regions))

	t, err := api.NewTagger(config, regions)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var closer io.Closer
	if config.OutputPath != "" && config.OutputPath != "-" {
		outputPath, err := homedir.Expand(config.OutputPath)
		if err != nil {
			return err
		}
		w, err := catz.Create(outputPath)
		if err != nil {
			return err
		}
		out, closer = w, w
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	done := make(chan struct{})
	defer close(done)
	sigCtx, stopSignals := context.WithCancel(context.Background())
	defer stopSignals()
	go onInterrupt(common.Interrupted(sigCtx), done, cancel, os.Exit)

	_, err = run(t, ctx, cmd.InOrStdin(), out)
	if closer != nil {
		err = errors.Join(err, closer.Close())
	}
	return err
}

// onInterrupt cancels the run on the first signal. Cancellation is only seen
// between objects, so a second signal exits while a read is blocked.
func onInterrupt(sigs <-chan os.Signal, done <-chan struct{}, cancel context.CancelFunc, exit func(code int)) {
	select {
	case sig := <-sigs:
		slog.Warn("Interrupted, stopping after the current object (interrupt again to exit)", "signal", sig)
		cancel()
	case <-done:
		return
	}
	select {
	case sig := <-sigs:
		slog.Warn("Interrupted again, exiting", "signal", sig)
		exit(130)
	case <-done:
	}
}
