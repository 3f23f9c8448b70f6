package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filament-ui/filament/pkg/reconcile"
	"github.com/filament-ui/filament/pkg/render"
	"github.com/filament-ui/filament/pkg/term"
)

func renderCmd() *cobra.Command {
	var (
		target string
		pretty bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo app once",
		Long: `Render the demo app to HTML or to the terminal and print the
result. Useful for checking output without starting a server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			switch target {
			case "html":
				r := render.NewRenderer(render.Config{Pretty: pretty})
				result, err := r.RenderToString(demoApp())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, result.HTML)
				return err

			case "page":
				r := render.NewRenderer(render.Config{Pretty: pretty})
				return r.RenderPage(out, render.Page{
					Title: "Filament",
					Body:  demoApp(),
				})

			case "term":
				t := term.New(out)
				root := reconcile.Render(t, t.Root(), demoApp())
				defer root.Unmount()
				_, err := fmt.Fprintln(out, t.Frame())
				return err

			default:
				return fmt.Errorf("unknown target %q (want html, page, or term)", target)
			}
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "html", "Output target: html, page, or term")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent HTML output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
