package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/mahar/pkg/route"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	Long: "routes prints every site path and the page it shows, in match order.\n" +
		"With --resolve it prints the page each given location resolves to; hash\n" +
		"links and full URLs are accepted.",
	Example: "  mahar routes --resolve '#/articles/4' --resolve https://mahar-milhama.co.il/#/faq",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		locs, _ := cmd.Flags().GetStringArray("resolve")
		t := route.DefaultTable()
		w := cmd.OutOrStdout()
		if len(locs) == 0 {
			printRoutes(w, t)
			return nil
		}
		for _, loc := range locs {
			printResolved(w, t, loc)
		}
		return nil
	},
}

func init() {
	routesCmd.Flags().StringArray("resolve", nil, "resolve this location (repeatable)")
	rootCmd.AddCommand(routesCmd)
}

func printRoutes(w io.Writer, t *route.Table) {
	for _, r := range t.Routes() {
		fmt.Fprintf(w, "%-18s %s\n", r.Pattern, r.View)
	}
	fmt.Fprintf(w, "%-18s %s\n", "*", t.Fallback())
}

func printResolved(w io.Writer, t *route.Table, loc string) {
	m := t.Resolve(route.ParseLocation(loc))
	fmt.Fprintf(w, "%s -> %s %s", loc, m.Path, m.View)
	keys := make([]string, 0, len(m.Params))
	for k := range m.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%s", k, m.Params[k])
	}
	fmt.Fprintln(w)
}
