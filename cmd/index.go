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
	"github.com/rotblauer/polytag/api"
	"github.com/spf13/cobra"
	"io"
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Print the container index of objects from stdin",
	Long: `Index reads objects like tag does, and writes one line per object:

  {"object":0,"index":3}

where object is the object's input position and index is its container's.
With --skip-unmatched, unmatched objects have a null index.
Without --all, index is always 0, the first container being the only one tested.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		setDefaultSlog(cmd, args)
		return runTagger(cmd, func(t *api.Tagger, ctx context.Context, in io.Reader, out io.Writer) (api.Summary, error) {
			return t.Index(ctx, in, out)
		})
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().AddFlagSet(tagFlags)
}
